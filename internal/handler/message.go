package handler

import (
	"net"
	"net/http"

	"slack_weather/internal/logger"

	"github.com/gin-gonic/gin"
)

// Fixed texts sent back to Slack
const (
	EmptyQueryMessage          = "Please enter place you want to view weather forecast."
	InstallConfirmationMessage = "The Weather Forecast has been added to your team."
	InstallFailureMessage      = "Failed to install the Weather Forecast app."
)

// dropRequest ends a request without sending any status or body. The
// connection is hijacked and closed when the writer allows it; otherwise
// nothing is written.
func dropRequest(c *gin.Context) {
	logger.MarkDropped(c)
	c.Abort()
	if conn, ok := hijack(c.Writer); ok {
		_ = conn.Close()
	}
}

func hijack(w gin.ResponseWriter) (conn net.Conn, ok bool) {
	defer func() {
		// gin panics when the wrapped writer is not an http.Hijacker
		if recover() != nil {
			conn, ok = nil, false
		}
	}()
	conn, _, err := w.Hijack()
	if err != nil {
		return nil, false
	}
	return conn, true
}

// sendText writes a plain-text reply
func sendText(c *gin.Context, status int, text string) {
	c.String(status, text)
}

// sendOK writes a plain-text 200, the status Slack expects even for failures
func sendOK(c *gin.Context, text string) {
	sendText(c, http.StatusOK, text)
}
