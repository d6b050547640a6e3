package main

import (
	"log"

	"slack_weather/internal/config"
	"slack_weather/internal/handler"
	"slack_weather/internal/logger"
	"slack_weather/internal/service/weather"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireSlack(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	weatherService, err := weather.NewServiceFromConfig(cfg)
	if err != nil {
		logger.GetLogger().Fatal("failed to create weather service", zap.Error(err))
	}

	slackHandler := handler.NewSlackHandler(weatherService, handler.Options{
		VerificationToken: cfg.SlackVerificationToken,
		SigningSecret:     cfg.SlackSigningSecret,
		ClientID:          cfg.SlackClientID,
		ClientSecret:      cfg.SlackClientSecret,
		RedirectURI:       cfg.SlackRedirectURI,
	})
	router := handler.NewRouter(slackHandler)

	logger.GetLogger().Info("starting server", zap.String("addr", cfg.ServerAddr()))
	if err := router.Run(cfg.ServerAddr()); err != nil {
		logger.GetLogger().Fatal("server stopped", zap.Error(err))
	}
}
