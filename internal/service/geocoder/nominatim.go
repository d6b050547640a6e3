package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"slack_weather/internal/logger"
	"slack_weather/internal/model"

	"go.uber.org/zap"
)

// API Docs: https://nominatim.org/release-docs/develop/api/Search/
// Sample request: https://nominatim.openstreetmap.org/search?q=94107&format=json&limit=1
const (
	nominatimBaseURL = "https://nominatim.openstreetmap.org"
	userAgent        = "slack-weather/1.0"
)

// NominatimClient geocodes addresses with OpenStreetMap Nominatim
type NominatimClient struct {
	httpClient *http.Client
	baseURL    string
}

type nominatimSearchResult struct {
	PlaceID     int    `json:"place_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewNominatimClient(baseURL string, timeout time.Duration) *NominatimClient {
	if baseURL == "" {
		baseURL = nominatimBaseURL
	}
	return &NominatimClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// Geocode returns the location of the best match for address
func (c *NominatimClient) Geocode(ctx context.Context, address string) (model.GeoLocation, error) {
	u, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return model.GeoLocation{}, fmt.Errorf("failed to parse base URL: %w", err)
	}
	q := u.Query()
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.GeoLocation{}, fmt.Errorf("failed to create request: %w", err)
	}
	// Nominatim's usage policy rejects requests without an identifying agent
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.GeoLocation{}, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return model.GeoLocation{}, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.GeoLocation{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return model.GeoLocation{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return model.GeoLocation{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return model.GeoLocation{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	logger.GetLogger().Debug("geocoded address",
		zap.String("provider", "nominatim"),
		zap.String("address", address),
		zap.String("display_name", results[0].DisplayName),
		zap.Float64("latitude", lat),
		zap.Float64("longitude", lon),
	)
	return model.GeoLocation{Latitude: lat, Longitude: lon}, nil
}
