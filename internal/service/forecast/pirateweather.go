package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"slack_weather/internal/logger"
	"slack_weather/internal/model"

	"go.uber.org/zap"
)

// API Docs: https://pirateweather.net/en/latest/API/
// Sample request: https://api.pirateweather.net/forecast/KEY/37.77,-122.41?units=uk
const (
	defaultBaseURL = "https://api.pirateweather.net"
	// uk units: Celsius, mm/h, miles per hour and miles
	units         = "uk"
	excludeBlocks = "minutely,hourly,daily,alerts,flags"
	maxVisibility = 10
)

// Client talks to a Dark Sky compatible forecast API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type forecastAPIResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Offset    float64 `json:"offset"`
	Currently struct {
		Time              int64   `json:"time"`
		Summary           string  `json:"summary"`
		Icon              string  `json:"icon"`
		PrecipIntensity   float64 `json:"precipIntensity"`
		PrecipProbability float64 `json:"precipProbability"`
		Temperature       float64 `json:"temperature"`
		DewPoint          float64 `json:"dewPoint"`
		Humidity          float64 `json:"humidity"`
		Pressure          float64 `json:"pressure"`
		WindSpeed         float64 `json:"windSpeed"`
		CloudCover        float64 `json:"cloudCover"`
		Visibility        float64 `json:"visibility"`
		Ozone             float64 `json:"ozone"`
	} `json:"currently"`
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// CurrentConditions fetches the "currently" block for a coordinate
func (c *Client) CurrentConditions(ctx context.Context, latitude, longitude float64) (model.WeatherSnapshot, error) {
	point := strconv.FormatFloat(latitude, 'f', -1, 64) + "," + strconv.FormatFloat(longitude, 'f', -1, 64)
	u, err := url.Parse(fmt.Sprintf("%s/forecast/%s/%s", c.baseURL, url.PathEscape(c.apiKey), point))
	if err != nil {
		return model.WeatherSnapshot{}, fmt.Errorf("failed to parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("units", units)
	q.Set("exclude", excludeBlocks)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.WeatherSnapshot{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.WeatherSnapshot{}, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return model.WeatherSnapshot{}, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp forecastAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return model.WeatherSnapshot{}, fmt.Errorf("failed to decode response: %w", err)
	}

	logger.GetLogger().Debug("fetched current conditions",
		zap.Float64("latitude", latitude),
		zap.Float64("longitude", longitude),
		zap.String("timezone", apiResp.Timezone),
		zap.String("summary", apiResp.Currently.Summary),
	)

	return translateSnapshot(&apiResp), nil
}

func translateSnapshot(resp *forecastAPIResponse) model.WeatherSnapshot {
	cur := resp.Currently
	return model.WeatherSnapshot{
		Timezone:                 resp.Timezone,
		UTCOffsetHours:           resp.Offset,
		Summary:                  cur.Summary,
		TemperatureC:             cur.Temperature,
		DewPointC:                cur.DewPoint,
		Humidity:                 cur.Humidity,
		PrecipIntensityMmPerHour: cur.PrecipIntensity,
		PrecipProbability:        cur.PrecipProbability,
		WindSpeedMph:             cur.WindSpeed,
		VisibilityMiles:          math.Min(cur.Visibility, maxVisibility),
		CloudCover:               cur.CloudCover,
		PressureMillibars:        cur.Pressure,
		OzoneDobsonUnits:         cur.Ozone,
	}
}
