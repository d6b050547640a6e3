package weather

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"testing"
	"time"

	"slack_weather/internal/config"
	"slack_weather/internal/model"
	"slack_weather/internal/service/geocoder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGeocoder struct {
	location model.GeoLocation
	err      error
	calls    int
	got      string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (model.GeoLocation, error) {
	f.calls++
	f.got = address
	return f.location, f.err
}

type fakeForecast struct {
	snapshot model.WeatherSnapshot
	err      error
	calls    int
	lat, lng float64
}

func (f *fakeForecast) CurrentConditions(ctx context.Context, latitude, longitude float64) (model.WeatherSnapshot, error) {
	f.calls++
	f.lat, f.lng = latitude, longitude
	return f.snapshot, f.err
}

func clearSnapshot() model.WeatherSnapshot {
	return model.WeatherSnapshot{
		Timezone:                 "America/Los_Angeles",
		UTCOffsetHours:           -7,
		Summary:                  "Clear",
		TemperatureC:             18,
		DewPointC:                9.5,
		Humidity:                 0.42,
		PrecipIntensityMmPerHour: 0,
		PrecipProbability:        0,
		WindSpeedMph:             6.2,
		VisibilityMiles:          10,
		CloudCover:               1,
		PressureMillibars:        1015.3,
		OzoneDobsonUnits:         290.1,
	}
}

func TestService_Lookup(t *testing.T) {
	tests := []struct {
		name          string
		geo           *fakeGeocoder
		fc            *fakeForecast
		wantErr       bool
		wantGeocode   bool
		wantForecast  bool
		forecastCalls int
	}{
		{
			name:          "success",
			geo:           &fakeGeocoder{location: model.GeoLocation{Latitude: 37.77, Longitude: -122.41}},
			fc:            &fakeForecast{snapshot: clearSnapshot()},
			forecastCalls: 1,
		},
		{
			name:          "no geocoding match",
			geo:           &fakeGeocoder{err: geocoder.ErrNotFound},
			fc:            &fakeForecast{},
			wantErr:       true,
			wantGeocode:   true,
			forecastCalls: 0,
		},
		{
			name:          "geocoder transport error",
			geo:           &fakeGeocoder{err: errors.New("dial tcp: timeout")},
			fc:            &fakeForecast{},
			wantErr:       true,
			wantGeocode:   true,
			forecastCalls: 0,
		},
		{
			name:          "non-finite coordinates",
			geo:           &fakeGeocoder{location: model.GeoLocation{Latitude: math.NaN(), Longitude: 1}},
			fc:            &fakeForecast{},
			wantErr:       true,
			wantGeocode:   true,
			forecastCalls: 0,
		},
		{
			name:          "forecast error",
			geo:           &fakeGeocoder{location: model.GeoLocation{Latitude: 37.77, Longitude: -122.41}},
			fc:            &fakeForecast{err: errors.New("status 500")},
			wantErr:       true,
			wantForecast:  true,
			forecastCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.geo, tt.fc)

			report, err := svc.Lookup(context.Background(), "94107")

			assert.Equal(t, 1, tt.geo.calls)
			assert.Equal(t, "94107", tt.geo.got)
			assert.Equal(t, tt.forecastCalls, tt.fc.calls)

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "Clear", report.Snapshot.Summary)
				assert.Equal(t, 37.77, tt.fc.lat)
				assert.Equal(t, -122.41, tt.fc.lng)
				return
			}

			require.Error(t, err)
			var geoErr *GeocodeError
			var fcErr *ForecastError
			assert.Equal(t, tt.wantGeocode, errors.As(err, &geoErr))
			assert.Equal(t, tt.wantForecast, errors.As(err, &fcErr))
			if tt.wantGeocode {
				assert.Equal(t, GeocodeFailureMessage, geoErr.UserMessage())
			}
			if tt.wantForecast {
				assert.Equal(t, ForecastFailureMessage, fcErr.UserMessage())
			}
		})
	}
}

func TestGeocodeError_UnwrapsNotFound(t *testing.T) {
	err := error(&GeocodeError{Address: "x", Err: geocoder.ErrNotFound})
	assert.ErrorIs(t, err, geocoder.ErrNotFound)
}

func TestFormat(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	resp := Format(clearSnapshot(), "94107", at)

	assert.Equal(t, "in_channel", resp.ResponseType)
	assert.Equal(t, "Clear", resp.Text)
	assert.Equal(t, int64(1700000000123), resp.Timestamp)
	require.Len(t, resp.Attachments, 1)

	att := resp.Attachments[0]
	assert.Equal(t, "Summary of the weather forecast for 94107", att.Fallback)
	assert.Equal(t, "#36a64f", att.Color)

	var titles, values []string
	for _, f := range att.Fields {
		titles = append(titles, f.Title)
		values = append(values, f.Value)
		assert.True(t, f.Short)
	}
	assert.Equal(t, []string{
		"Timezone", "Offset", "Precipitation intensity", "Precipitation probability",
		"Temperature", "Dew point", "Humidity", "Wind speed", "Visibility",
		"Cloud cover", "Pressure", "Ozone",
	}, titles)
	assert.Equal(t, []string{
		"America/Los_Angeles",
		"-7",
		"0 (millimeters per hour)",
		"0.00%",
		"18 (Degrees Celsius)",
		"9.5 (Degrees Celsius)",
		"42.00%",
		"6.2 (miles per hour)",
		"10 (miles)",
		"100.00%",
		"1015.3 (millibars)",
		"290.1 (Dobson units)",
	}, values)
}

func TestFormat_Deterministic(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := json.Marshal(Format(clearSnapshot(), "Paris", at))
	require.NoError(t, err)
	second, err := json.Marshal(Format(clearSnapshot(), "Paris", at))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestPercentShape(t *testing.T) {
	shape := regexp.MustCompile(`^\d+\.\d{2}%$`)
	for _, v := range []float64{0, 0.001, 0.005, 0.1, 0.42, 0.999, 0.9999, 1} {
		got := percent(v)
		assert.Regexp(t, shape, got, "fraction %v", v)
	}
	assert.Equal(t, "0.00%", percent(0))
	assert.Equal(t, "100.00%", percent(1))
	assert.Equal(t, "42.00%", percent(0.42))
}

func TestNewServiceFromConfig(t *testing.T) {
	for _, provider := range []string{config.GeocoderGoogle, config.GeocoderNominatim} {
		svc, err := NewServiceFromConfig(&config.Config{
			GeocoderProvider: provider,
			GoogleMapsAPIKey: "maps-key",
			ForecastAPIKey:   "forecast-key",
			ForecastCacheTTL: time.Minute,
			ProviderTimeout:  time.Second,
		})
		require.NoError(t, err, provider)
		assert.NotNil(t, svc)
	}

	_, err := NewServiceFromConfig(&config.Config{GeocoderProvider: "bing"})
	assert.EqualError(t, err, `unsupported geocoder provider "bing"`)
}
