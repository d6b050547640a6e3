package main

import (
	"log"

	"slack_weather/internal/config"
	"slack_weather/internal/logger"
	mcpserver "slack_weather/internal/service/mcp-server"
	"slack_weather/internal/service/weather"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// stdout carries the MCP protocol
	if err := logger.Init(cfg.LogLevel, "stderr"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	weatherService, err := weather.NewServiceFromConfig(cfg)
	if err != nil {
		logger.GetLogger().Fatal("failed to create weather service", zap.Error(err))
	}

	server, err := mcpserver.NewServer(weatherService)
	if err != nil {
		logger.GetLogger().Fatal("failed to create MCP server", zap.Error(err))
	}

	logger.GetLogger().Info("starting weather MCP server")
	if err := mcpserver.Serve(server); err != nil {
		logger.GetLogger().Fatal("MCP server error", zap.Error(err))
	}
}
