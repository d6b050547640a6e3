package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"slack_weather/internal/logger"
	"slack_weather/internal/model"
	"slack_weather/internal/service/weather"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// userFacing is implemented by pipeline errors that carry a channel message
type userFacing interface {
	UserMessage() string
}

// HandleCommand answers the /weather slash command. Exactly one response is
// written, except for unverified requests which get none.
func (h *SlackHandler) HandleCommand(c *gin.Context) {
	log := logger.GetLogger().With(zap.String("request_id", logger.RequestID(c)))

	cmd, err := parseSlashCommand(c)
	if err != nil {
		log.Warn("failed to parse slash command", zap.Error(err))
		dropRequest(c)
		return
	}

	if !h.validToken(cmd) {
		// The request is not coming from Slack
		log.Warn("slash command verification failed",
			zap.String("team_id", cmd.TeamID),
			zap.String("client_ip", c.ClientIP()))
		dropRequest(c)
		return
	}

	address := strings.TrimSpace(cmd.Text)
	if address == "" {
		sendOK(c, EmptyQueryMessage)
		return
	}

	log = log.With(
		zap.String("team_id", cmd.TeamID),
		zap.String("user_id", cmd.UserID),
		zap.String("address", address),
	)

	report, err := h.weather.Lookup(c.Request.Context(), address)
	if err != nil {
		var uf userFacing
		if errors.As(err, &uf) {
			log.Error("weather lookup failed", zap.Error(err))
			sendOK(c, uf.UserMessage())
			return
		}
		// weather.NewService only returns stage errors; other Service
		// implementations still get exactly one reply
		log.Error("weather lookup failed outside a known stage", zap.Error(err))
		sendOK(c, weather.ForecastFailureMessage)
		return
	}

	log.Info("weather lookup succeeded",
		zap.Float64("latitude", report.Location.Latitude),
		zap.Float64("longitude", report.Location.Longitude),
		zap.String("summary", report.Snapshot.Summary))

	c.JSON(http.StatusOK, weather.Format(report.Snapshot, address, h.now()))
}

func (h *SlackHandler) validToken(cmd model.SlashCommand) bool {
	if h.verificationToken == "" {
		return false
	}
	return cmd.ValidateToken(h.verificationToken)
}

// parseSlashCommand normalizes GET query parameters, form bodies and JSON
// bodies into one slash command
func parseSlashCommand(c *gin.Context) (model.SlashCommand, error) {
	if err := c.Request.ParseForm(); err != nil {
		return model.SlashCommand{}, fmt.Errorf("failed to parse form: %w", err)
	}
	params := c.Request.Form

	if c.Request.Method == http.MethodPost && c.ContentType() == gin.MIMEJSON {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			return model.SlashCommand{}, fmt.Errorf("failed to parse json body: %w", err)
		}
		for k, v := range body {
			params.Set(k, v)
		}
	}

	return model.SlashCommand{
		Token:          params.Get("token"),
		TeamID:         params.Get("team_id"),
		TeamDomain:     params.Get("team_domain"),
		EnterpriseID:   params.Get("enterprise_id"),
		EnterpriseName: params.Get("enterprise_name"),
		ChannelID:      params.Get("channel_id"),
		ChannelName:    params.Get("channel_name"),
		UserID:         params.Get("user_id"),
		UserName:       params.Get("user_name"),
		Command:        params.Get("command"),
		Text:           params.Get("text"),
		ResponseURL:    params.Get("response_url"),
		TriggerID:      params.Get("trigger_id"),
		APIAppID:       params.Get("api_app_id"),
	}, nil
}
