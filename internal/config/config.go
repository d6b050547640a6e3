package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment represents the running environment of the application
type Environment string

const (
	GeocoderGoogle    = "google"
	GeocoderNominatim = "nominatim"
)

// Config holds all configuration for the application
type Config struct {
	// Environment is the current running environment (development, production, test)
	Environment Environment

	// Slack configuration
	SlackVerificationToken string // Required: legacy slash command verification token
	SlackSigningSecret     string // Optional: enables X-Slack-Signature checks
	SlackClientID          string // Required: app client id used by the install flow
	SlackClientSecret      string // Required: app client secret used by the install flow
	SlackRedirectURI       string

	// Geocoding
	GeocoderProvider string // google or nominatim
	GoogleMapsAPIKey string
	GeocoderBaseURL  string // overrides the provider default when set

	// Forecast
	ForecastAPIKey   string // Required
	ForecastBaseURL  string
	ForecastCacheTTL time.Duration

	ProviderTimeout time.Duration

	// Server
	Port    int
	GinMode string

	// Log level
	LogLevel string
}

var (
	// instance holds the singleton config instance
	instance *Config
)

// Get returns the singleton config instance
func Get() *Config {
	if instance == nil {
		panic("config not initialized")
	}
	return instance
}

// Load creates a new Config instance from config.yaml (optional) and
// environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("environment", "production")
	v.SetDefault("geocoder_provider", GeocoderGoogle)
	v.SetDefault("forecast_base_url", "https://api.pirateweather.net")
	v.SetDefault("forecast_cache_ttl", 27*time.Minute+45*time.Second)
	v.SetDefault("provider_timeout", 10*time.Second)
	v.SetDefault("port", 3000)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_level", "info")

	// keys map to upper-cased environment variables, e.g. slack_client_id -> SLACK_CLIENT_ID
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Environment:            Environment(v.GetString("environment")),
		SlackVerificationToken: v.GetString("slack_verification_token"),
		SlackSigningSecret:     v.GetString("slack_signing_secret"),
		SlackClientID:          v.GetString("slack_client_id"),
		SlackClientSecret:      v.GetString("slack_client_secret"),
		SlackRedirectURI:       v.GetString("slack_redirect_uri"),
		GeocoderProvider:       strings.ToLower(v.GetString("geocoder_provider")),
		GoogleMapsAPIKey:       v.GetString("google_maps_geocoding_api_key"),
		GeocoderBaseURL:        v.GetString("geocoder_base_url"),
		ForecastAPIKey:         v.GetString("forecast_api_key"),
		ForecastBaseURL:        v.GetString("forecast_base_url"),
		ForecastCacheTTL:       v.GetDuration("forecast_cache_ttl"),
		ProviderTimeout:        v.GetDuration("provider_timeout"),
		Port:                   v.GetInt("port"),
		GinMode:                v.GetString("gin_mode"),
		LogLevel:               v.GetString("log_level"),
	}

	// Load required values
	requiredVars := map[string]string{
		"FORECAST_API_KEY": cfg.ForecastAPIKey,
	}
	switch cfg.GeocoderProvider {
	case GeocoderGoogle:
		requiredVars["GOOGLE_MAPS_GEOCODING_API_KEY"] = cfg.GoogleMapsAPIKey
	case GeocoderNominatim:
	default:
		return nil, fmt.Errorf("unsupported geocoder provider %q", cfg.GeocoderProvider)
	}
	if err := checkRequired(requiredVars); err != nil {
		return nil, err
	}

	// Store the instance
	instance = cfg

	return cfg, nil
}

// RequireSlack validates the settings needed by the HTTP entrypoints
func (c *Config) RequireSlack() error {
	return checkRequired(map[string]string{
		"SLACK_VERIFICATION_TOKEN": c.SlackVerificationToken,
		"SLACK_CLIENT_ID":          c.SlackClientID,
		"SLACK_CLIENT_SECRET":      c.SlackClientSecret,
	})
}

// ServerAddr returns the listen address in the format ":port"
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func checkRequired(vars map[string]string) error {
	var missingVars []string
	for env, value := range vars {
		if value == "" {
			missingVars = append(missingVars, env)
		}
	}
	if len(missingVars) > 0 {
		sort.Strings(missingVars)
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missingVars, ", "))
	}
	return nil
}
