package forecast

import (
	"context"

	"slack_weather/internal/model"
)

// Source fetches the current conditions at a coordinate
type Source interface {
	CurrentConditions(ctx context.Context, latitude, longitude float64) (model.WeatherSnapshot, error)
}
