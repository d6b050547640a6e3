package main

import (
	"context"

	"slack_weather/internal/config"
	"slack_weather/internal/handler"
	"slack_weather/internal/service/weather"

	"github.com/aws/aws-lambda-go/events"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
)

type proxyFunc func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// loadConfig reads the configuration from the Lambda environment
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireSlack(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRouter builds the same router the HTTP server uses
func newRouter(cfg *config.Config) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)

	weatherService, err := weather.NewServiceFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	slackHandler := handler.NewSlackHandler(weatherService, handler.Options{
		VerificationToken: cfg.SlackVerificationToken,
		SigningSecret:     cfg.SlackSigningSecret,
		ClientID:          cfg.SlackClientID,
		ClientSecret:      cfg.SlackClientSecret,
		RedirectURI:       cfg.SlackRedirectURI,
	})
	return handler.NewRouter(slackHandler), nil
}

// newProxy translates API Gateway events into requests on router. Requests
// the router drops without a response surface as a Lambda error.
func newProxy(router *gin.Engine) proxyFunc {
	adapter := ginadapter.New(router)
	return adapter.ProxyWithContext
}
