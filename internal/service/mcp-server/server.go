package mcpserver

import (
	"slack_weather/internal/service/weather"

	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server exposing the weather lookup as a tool
func NewServer(weatherService weather.Service) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"slack weather",
		"1.0.0",
	)

	if err := registerWeatherTools(s, weatherService); err != nil {
		return nil, err
	}

	return s, nil
}

// Serve starts the MCP server on stdio
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
