package weather

import (
	"context"
	"fmt"

	"slack_weather/internal/model"
	"slack_weather/internal/service/forecast"
	"slack_weather/internal/service/geocoder"
)

// Service resolves a place name to its current weather
type Service interface {
	// Lookup geocodes address and fetches the current conditions there.
	// Failures are *GeocodeError or *ForecastError.
	Lookup(ctx context.Context, address string) (*Report, error)
}

// Report is the outcome of a successful lookup
type Report struct {
	Address  string
	Location model.GeoLocation
	Snapshot model.WeatherSnapshot
}

type weatherService struct {
	geocoder geocoder.Geocoder
	forecast forecast.Source
}

// NewService creates a weather service on top of the given providers
func NewService(g geocoder.Geocoder, f forecast.Source) Service {
	return &weatherService{
		geocoder: g,
		forecast: f,
	}
}

// Lookup runs geocode then forecast; the forecast stage needs the geocode
// result so the two calls are never issued concurrently
func (s *weatherService) Lookup(ctx context.Context, address string) (*Report, error) {
	location, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, &GeocodeError{Address: address, Err: err}
	}
	if !location.Valid() {
		return nil, &GeocodeError{
			Address: address,
			Err:     fmt.Errorf("non-finite coordinates (%v, %v): %w", location.Latitude, location.Longitude, geocoder.ErrNotFound),
		}
	}

	snapshot, err := s.forecast.CurrentConditions(ctx, location.Latitude, location.Longitude)
	if err != nil {
		return nil, &ForecastError{Latitude: location.Latitude, Longitude: location.Longitude, Err: err}
	}

	return &Report{
		Address:  address,
		Location: location,
		Snapshot: snapshot,
	}, nil
}
