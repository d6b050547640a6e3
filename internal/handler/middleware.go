package handler

import (
	"bytes"
	"io"

	"slack_weather/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// VerifySlackSignature drops requests whose X-Slack-Signature does not match
// the signing secret. It is a no-op when no secret is configured.
func VerifySlackSignature(signingSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if signingSecret == "" {
			c.Next()
			return
		}
		log := logger.GetLogger().With(zap.String("request_id", logger.RequestID(c)))

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Warn("failed to read request body", zap.Error(err))
			dropRequest(c)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		sv, err := slack.NewSecretsVerifier(c.Request.Header, signingSecret)
		if err != nil {
			log.Warn("missing or stale slack signature headers", zap.Error(err))
			dropRequest(c)
			return
		}
		if _, err := sv.Write(body); err != nil {
			log.Warn("failed to hash request body", zap.Error(err))
			dropRequest(c)
			return
		}
		if err := sv.Ensure(); err != nil {
			log.Warn("invalid slack signature", zap.Error(err))
			dropRequest(c)
			return
		}
		c.Next()
	}
}
