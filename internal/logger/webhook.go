package logger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ErrInvalidWebhookURL is returned for URLs that do not name a Discord webhook.
var ErrInvalidWebhookURL = errors.New("invalid discord webhook url")

// Reporter records failures that operators should see.
type Reporter interface {
	Report(ctx context.Context, scope string, err error)
}

// WebhookReporter logs errors and mirrors them to a Discord webhook when one
// is configured. Posting failures are logged and swallowed.
type WebhookReporter struct {
	session   *discordgo.Session
	webhookID string
	token     string
	now       func() time.Time
}

// NewWebhookReporter builds a reporter. An empty URL yields a log-only reporter.
func NewWebhookReporter(webhookURL string, client *http.Client) (*WebhookReporter, error) {
	r := &WebhookReporter{now: time.Now}
	if webhookURL == "" {
		return r, nil
	}

	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	// Webhook execution is authorized by the token in the path, not a bot token
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook session: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	session.Client = client

	r.session = session
	r.webhookID = id
	r.token = token
	return r, nil
}

// Enabled reports whether errors are mirrored to a webhook.
func (r *WebhookReporter) Enabled() bool {
	return r.session != nil
}

// Report logs err under scope and posts it to the webhook.
func (r *WebhookReporter) Report(ctx context.Context, scope string, err error) {
	if err == nil {
		return
	}
	log := FromContext(ctx)
	log.Error("Error reported", AttrKeyScope, scope, AttrKeyError, err)

	if !r.Enabled() {
		return
	}

	embed := r.buildEmbed(ctx, scope, err)
	_, postErr := r.session.WebhookExecute(r.webhookID, r.token, false, &discordgo.WebhookParams{
		Username: WebhookUsername,
		Embeds:   []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	if postErr != nil {
		log.Warn("Failed to send error to webhook", AttrKeyScope, scope, AttrKeyError, postErr)
	}
}

func (r *WebhookReporter) buildEmbed(ctx context.Context, scope string, err error) *discordgo.MessageEmbed {
	message := firstLine(err.Error())
	if message == "" {
		message = "(no message)"
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: "Message", Value: truncate(message, WebhookMaxDetailRunes)},
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Request ID", Value: id, Inline: true})
	}

	return &discordgo.MessageEmbed{
		Title:       truncate("🚨 Error in "+scope, WebhookMaxTitleRunes),
		Color:       WebhookEmbedColor,
		Description: "```\n" + truncate(fmt.Sprintf("%+v", err), WebhookMaxDetailRunes) + "\n```",
		Fields:      fields,
		Timestamp:   r.now().UTC().Format(time.RFC3339),
	}
}

// parseWebhookURL extracts the id and token from .../api/webhooks/{id}/{token}
func parseWebhookURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidWebhookURL, raw)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrInvalidWebhookURL, raw)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
