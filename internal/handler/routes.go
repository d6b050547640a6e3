package handler

import (
	"net/http"

	"slack_weather/internal/logger"

	"github.com/gin-gonic/gin"
)

// PingResponse represents the response for the ping endpoint
type PingResponse struct {
	Message string `json:"message"`
}

// NewRouter wires the HTTP surface shared by the server and Lambda entrypoints
func NewRouter(h *SlackHandler) *gin.Engine {
	router := gin.New()
	router.Use(logger.GinLogMiddleware(), gin.Recovery())

	router.GET("/ping", handlePing)

	// Slash command, as query string or form body
	verify := VerifySlackSignature(h.signingSecret)
	router.GET("/", verify, h.HandleCommand)
	router.POST("/", verify, h.HandleCommand)

	// OAuth redirect target
	router.GET("/slack", h.HandleInstall)

	return router
}

func handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
