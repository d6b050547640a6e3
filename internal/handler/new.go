package handler

import (
	"net/http"
	"time"

	"slack_weather/internal/logger"
	"slack_weather/internal/service/weather"

	"go.uber.org/zap"
)

// SlackHandler serves the /weather slash command and the app install flow
type SlackHandler struct {
	weather weather.Service

	verificationToken string
	signingSecret     string

	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client // used for Slack Web API calls

	now func() time.Time
}

// Options carries the Slack app settings
type Options struct {
	VerificationToken string
	SigningSecret     string
	ClientID          string
	ClientSecret      string
	RedirectURI       string
	HTTPClient        *http.Client
}

func NewSlackHandler(weatherService weather.Service, opts Options) *SlackHandler {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.SigningSecret == "" {
		logger.GetLogger().Info("slack signing secret not configured, relying on verification token only")
	}
	logger.GetLogger().Debug("slack handler created", zap.Bool("redirect_uri_set", opts.RedirectURI != ""))

	return &SlackHandler{
		weather:           weatherService,
		verificationToken: opts.VerificationToken,
		signingSecret:     opts.SigningSecret,
		clientID:          opts.ClientID,
		clientSecret:      opts.ClientSecret,
		redirectURI:       opts.RedirectURI,
		httpClient:        httpClient,
		now:               time.Now,
	}
}
