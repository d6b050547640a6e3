package weather

import (
	"fmt"

	"slack_weather/internal/config"
	"slack_weather/internal/logger"
	"slack_weather/internal/service/forecast"
	"slack_weather/internal/service/geocoder"

	"go.uber.org/zap"
)

// NewServiceFromConfig builds the geocoder and the cached forecast client
// selected by cfg and returns a Service on top of them
func NewServiceFromConfig(cfg *config.Config) (Service, error) {
	g, err := newGeocoder(cfg)
	if err != nil {
		return nil, err
	}

	source := forecast.NewClient(cfg.ForecastAPIKey, cfg.ForecastBaseURL, cfg.ProviderTimeout)
	cached := forecast.NewCachedClient(source, cfg.ForecastCacheTTL)

	logger.GetLogger().Info("weather providers configured",
		zap.String("geocoder", cfg.GeocoderProvider),
		zap.Duration("forecast_cache_ttl", cfg.ForecastCacheTTL),
		zap.Duration("provider_timeout", cfg.ProviderTimeout),
	)

	return NewService(g, cached), nil
}

func newGeocoder(cfg *config.Config) (geocoder.Geocoder, error) {
	switch cfg.GeocoderProvider {
	case config.GeocoderGoogle:
		return geocoder.NewGoogleClient(cfg.GoogleMapsAPIKey, cfg.GeocoderBaseURL, cfg.ProviderTimeout)
	case config.GeocoderNominatim:
		return geocoder.NewNominatimClient(cfg.GeocoderBaseURL, cfg.ProviderTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported geocoder provider %q", cfg.GeocoderProvider)
	}
}
