package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func TestParseWebhookURL(t *testing.T) {
	id, token, err := parseWebhookURL("https://discord.com/api/webhooks/123456/abc-DEF_token")
	require.NoError(t, err)
	assert.Equal(t, "123456", id)
	assert.Equal(t, "abc-DEF_token", token)

	for _, bad := range []string{
		"http://discord.com/api/webhooks/1/2",
		"https://discord.com/api/channels/1/2",
		"https://discord.com/api/webhooks/1",
		"::not a url",
	} {
		_, _, err := parseWebhookURL(bad)
		assert.ErrorIs(t, err, ErrInvalidWebhookURL, bad)
	}
}

func TestNewWebhookReporter_EmptyURLIsLogOnly(t *testing.T) {
	r, err := NewWebhookReporter("", nil)
	require.NoError(t, err)
	assert.False(t, r.Enabled())

	// Must not panic without a session
	r.Report(context.Background(), "Startup", errors.New("boom"))
}

func TestWebhookReporter_PostsEmbed(t *testing.T) {
	var captured discordgo.WebhookParams
	var capturedPath string
	client := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		capturedPath = req.URL.Path
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &captured)
		return &http.Response{
			StatusCode: http.StatusNoContent,
			Body:       io.NopCloser(bytes.NewBufferString("")),
			Header:     make(http.Header),
		}, nil
	})}

	r, err := NewWebhookReporter("https://discord.com/api/webhooks/42/secret", client)
	require.NoError(t, err)
	require.True(t, r.Enabled())

	ctx := WithRequestID(context.Background(), "req-1")
	r.Report(ctx, "Command: /search", errors.New("upstream data source unreachable\nstatus 502"))

	assert.True(t, strings.HasSuffix(capturedPath, "/webhooks/42/secret"))
	require.Len(t, captured.Embeds, 1)
	embed := captured.Embeds[0]
	assert.Equal(t, "🚨 Error in Command: /search", embed.Title)
	assert.Equal(t, WebhookEmbedColor, embed.Color)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "upstream data source unreachable", embed.Fields[0].Value)
	assert.Equal(t, "req-1", embed.Fields[1].Value)
	assert.Contains(t, embed.Description, "status 502")
}

func TestWebhookReporter_PostFailureIsSwallowed(t *testing.T) {
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}

	r, err := NewWebhookReporter("https://discord.com/api/webhooks/42/secret", client)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		r.Report(context.Background(), "Startup", errors.New("boom"))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ééé…", truncate("éééééé", 4))
}
