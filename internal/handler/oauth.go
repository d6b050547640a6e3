package handler

import (
	"errors"
	"fmt"
	"net/http"

	"slack_weather/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

const missingScope = "missing_scope"

// HandleInstall completes the "Add to Slack" flow: the authorization code is
// exchanged for a token, the team is looked up and the installer is sent to
// their workspace.
func (h *SlackHandler) HandleInstall(c *gin.Context) {
	log := logger.GetLogger().With(zap.String("request_id", logger.RequestID(c)))

	code := c.Query("code")
	if code == "" {
		// access denied by the installer
		log.Info("install without authorization code", zap.String("error", c.Query("error")))
		dropRequest(c)
		return
	}

	ctx := c.Request.Context()

	oauthResp, err := slack.GetOAuthV2ResponseContext(ctx, h.httpClient, h.clientID, h.clientSecret, code, h.redirectURI)
	if err != nil {
		log.Error("failed to exchange OAuth code with Slack", zap.Error(err))
		sendText(c, http.StatusBadGateway, InstallFailureMessage)
		return
	}
	if oauthResp.AccessToken == "" {
		log.Error("access token not found in Slack OAuth response", zap.String("team_id", oauthResp.Team.ID))
		sendText(c, http.StatusBadGateway, InstallFailureMessage)
		return
	}
	log = log.With(zap.String("team_id", oauthResp.Team.ID), zap.String("team_name", oauthResp.Team.Name))

	api := slack.New(oauthResp.AccessToken, slack.OptionHTTPClient(h.httpClient))
	team, err := api.GetTeamInfoContext(ctx)
	if err != nil {
		if isMissingScope(err) {
			// installed, only the optional team:read scope is missing
			log.Info("app installed without team:read scope")
			sendOK(c, InstallConfirmationMessage)
			return
		}
		log.Error("failed to fetch team info", zap.Error(err))
		sendText(c, http.StatusBadGateway, InstallFailureMessage)
		return
	}
	if team.Domain == "" {
		log.Error("team domain not found in team info")
		sendText(c, http.StatusBadGateway, InstallFailureMessage)
		return
	}

	log.Info("app installed", zap.String("team_domain", team.Domain))
	c.Redirect(http.StatusFound, teamURL(team.Domain))
}

func teamURL(domain string) string {
	return fmt.Sprintf("https://%s.slack.com", domain)
}

func isMissingScope(err error) bool {
	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		return slackErr.Err == missingScope
	}
	return err.Error() == missingScope
}
