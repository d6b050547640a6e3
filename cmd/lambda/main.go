package main

import (
	"log"

	"slack_weather/internal/logger"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	router, err := newRouter(cfg)
	if err != nil {
		logger.GetLogger().Fatal("failed to build router", zap.Error(err))
	}
	lambda.Start(newProxy(router))
}
