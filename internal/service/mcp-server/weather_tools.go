package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"slack_weather/internal/logger"
	"slack_weather/internal/service/weather"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const currentWeatherTool = "current_weather"

type currentWeatherArgs struct {
	Place string `json:"place"`
}

// registerWeatherTools registers the weather tools with the server
func registerWeatherTools(s *server.MCPServer, weatherService weather.Service) error {
	tool := mcp.NewTool(currentWeatherTool,
		mcp.WithDescription("Get the current weather conditions for a place"),
		mcp.WithString("place",
			mcp.Required(),
			mcp.Description("Address, city or postcode (e.g., 'San Francisco' or '94107')"),
		),
	)

	s.AddTool(tool, currentWeatherHandler(weatherService))
	return nil
}

func currentWeatherHandler(weatherService weather.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args currentWeatherArgs
		if err := decodeArguments(request.Params.Arguments, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		place := strings.TrimSpace(args.Place)
		if place == "" {
			return mcp.NewToolResultError("place is required"), nil
		}

		report, err := weatherService.Lookup(ctx, place)
		if err != nil {
			logger.GetLogger().Warn("weather lookup failed", zap.String("place", place), zap.Error(err))
			var geocodeErr *weather.GeocodeError
			if errors.As(err, &geocodeErr) {
				return mcp.NewToolResultError(geocodeErr.UserMessage()), nil
			}
			return mcp.NewToolResultError(weather.ForecastFailureMessage), nil
		}

		return mcp.NewToolResultText(describe(report)), nil
	}
}

// describe renders a report as the summary followed by one "Title: value"
// line per field
func describe(report *weather.Report) string {
	lines := []string{report.Snapshot.Summary}
	for _, f := range weather.Fields(report.Snapshot) {
		lines = append(lines, f.Title+": "+f.Value)
	}
	return strings.Join(lines, "\n")
}

// decodeArguments copies the raw tool arguments into out
func decodeArguments(arguments any, out any) error {
	raw, err := json.Marshal(arguments)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
