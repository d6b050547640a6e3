package model

import "github.com/slack-go/slack"

// SlashCommand is the normalized slash command payload, built from either the
// query string (GET) or the form body (POST)
type SlashCommand = slack.SlashCommand

// ChatResponse is the JSON body sent back to Slack for a slash command
type ChatResponse struct {
	ResponseType string             `json:"response_type"`
	Text         string             `json:"text"`
	Timestamp    int64              `json:"ts"` // unix millis
	Attachments  []slack.Attachment `json:"attachments"`
}
