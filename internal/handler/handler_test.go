package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"slack_weather/internal/model"
	"slack_weather/internal/service/weather"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testToken = "verification-token"

type fakeGeocoder struct {
	location model.GeoLocation
	err      error
	calls    int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (model.GeoLocation, error) {
	f.calls++
	return f.location, f.err
}

type fakeForecast struct {
	snapshot model.WeatherSnapshot
	err      error
	calls    int
}

func (f *fakeForecast) CurrentConditions(ctx context.Context, latitude, longitude float64) (model.WeatherSnapshot, error) {
	f.calls++
	return f.snapshot, f.err
}

type fixture struct {
	geo     *fakeGeocoder
	fc      *fakeForecast
	handler *SlackHandler
	router  *gin.Engine
}

func newFixture(opts Options) *fixture {
	if opts.VerificationToken == "" {
		opts.VerificationToken = testToken
	}
	f := &fixture{
		geo: &fakeGeocoder{location: model.GeoLocation{Latitude: 37.77, Longitude: -122.41}},
		fc: &fakeForecast{snapshot: model.WeatherSnapshot{
			Timezone:       "America/Los_Angeles",
			UTCOffsetHours: -7,
			Summary:        "Clear",
			TemperatureC:   18,
			Humidity:       0.42,
		}},
	}
	f.handler = NewSlackHandler(weather.NewService(f.geo, f.fc), opts)
	f.handler.now = func() time.Time { return time.UnixMilli(1700000000000) }
	f.router = NewRouter(f.handler)
	return f
}

func (f *fixture) providerCalls() int {
	return f.geo.calls + f.fc.calls
}

func (f *fixture) post(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}
