package geocoder

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"slack_weather/internal/logger"
	"slack_weather/internal/model"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"
)

// API Docs: https://developers.google.com/maps/documentation/geocoding/requests-geocoding
// Sample request: https://maps.googleapis.com/maps/api/geocode/json?address=94107&key=KEY

const zeroResults = "ZERO_RESULTS"

// GoogleClient geocodes addresses with the Google Maps Geocoding API
type GoogleClient struct {
	client *maps.Client
}

// NewGoogleClient creates a Google geocoder. An empty baseURL selects the
// public endpoint.
func NewGoogleClient(apiKey, baseURL string, timeout time.Duration) (*GoogleClient, error) {
	opts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google maps client: %w", err)
	}
	return &GoogleClient{client: client}, nil
}

// Geocode returns the location of the first match for address
func (c *GoogleClient) Geocode(ctx context.Context, address string) (model.GeoLocation, error) {
	results, err := c.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		if strings.Contains(err.Error(), zeroResults) {
			return model.GeoLocation{}, ErrNotFound
		}
		return model.GeoLocation{}, fmt.Errorf("failed to geocode: %w", err)
	}
	if len(results) == 0 {
		return model.GeoLocation{}, ErrNotFound
	}

	first := results[0]
	loc := model.GeoLocation{
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}
	logger.GetLogger().Debug("geocoded address",
		zap.String("provider", "google"),
		zap.String("address", address),
		zap.String("formatted_address", first.FormattedAddress),
		zap.Float64("latitude", loc.Latitude),
		zap.Float64("longitude", loc.Longitude),
	)
	return loc, nil
}
