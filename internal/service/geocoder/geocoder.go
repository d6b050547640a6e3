package geocoder

import (
	"context"
	"errors"

	"slack_weather/internal/model"
)

// ErrNotFound is returned when the provider has no match for an address
var ErrNotFound = errors.New("no geocoding match")

// Geocoder resolves free-text addresses to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.GeoLocation, error)
}
