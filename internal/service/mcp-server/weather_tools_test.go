package mcpserver

import (
	"context"
	"errors"
	"testing"

	"slack_weather/internal/model"
	"slack_weather/internal/service/geocoder"
	"slack_weather/internal/service/weather"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	report *weather.Report
	err    error
	got    string
}

func (s *stubService) Lookup(ctx context.Context, address string) (*weather.Report, error) {
	s.got = address
	return s.report, s.err
}

func callTool(t *testing.T, svc weather.Service, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Name = currentWeatherTool
	request.Params.Arguments = args

	result, err := currentWeatherHandler(svc)(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "unexpected content %T", result.Content[0])
	return text.Text
}

func TestCurrentWeather(t *testing.T) {
	svc := &stubService{report: &weather.Report{
		Address: "Paris",
		Snapshot: model.WeatherSnapshot{
			Timezone:     "Europe/Paris",
			Summary:      "Light Rain",
			TemperatureC: 12.5,
			Humidity:     0.81,
		},
	}}

	result := callTool(t, svc, map[string]any{"place": "  Paris "})

	assert.False(t, result.IsError)
	assert.Equal(t, "Paris", svc.got)
	text := resultText(t, result)
	assert.Contains(t, text, "Light Rain\n")
	assert.Contains(t, text, "Timezone: Europe/Paris")
	assert.Contains(t, text, "Temperature: 12.5 (Degrees Celsius)")
	assert.Contains(t, text, "Humidity: 81.00%")
}

func TestCurrentWeather_Errors(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		err  error
		want string
	}{
		{
			name: "blank place",
			args: map[string]any{"place": " "},
			want: "place is required",
		},
		{
			name: "unknown place",
			args: map[string]any{"place": "atlantis"},
			err:  &weather.GeocodeError{Address: "atlantis", Err: geocoder.ErrNotFound},
			want: weather.GeocodeFailureMessage,
		},
		{
			name: "forecast down",
			args: map[string]any{"place": "Paris"},
			err:  &weather.ForecastError{Err: errors.New("status 503")},
			want: weather.ForecastFailureMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, &stubService{err: tt.err}, tt.args)

			assert.True(t, result.IsError)
			assert.Equal(t, tt.want, resultText(t, result))
		})
	}
}

func TestNewServer(t *testing.T) {
	s, err := NewServer(&stubService{})
	require.NoError(t, err)
	assert.NotNil(t, s)
}
