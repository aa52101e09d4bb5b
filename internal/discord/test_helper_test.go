package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/stats"
	"github.com/osse101/SpellcastersBot_Go/internal/validation"
)

const (
	testAppID  = "app-1"
	testToken  = "interaction-token"
	testUserID = "user-1"
)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// sentComponent is the subset of a button the tests look at
type sentComponent struct {
	Label    string `json:"label"`
	CustomID string `json:"custom_id"`
	Disabled bool   `json:"disabled"`
}

// sentMessage is what the bot sent in a callback or a webhook edit
type sentMessage struct {
	Content    string                    `json:"content"`
	Flags      discordgo.MessageFlags    `json:"flags"`
	Embeds     []*discordgo.MessageEmbed `json:"embeds"`
	Components []struct {
		Components []sentComponent `json:"components"`
	} `json:"components"`
	Choices []*discordgo.ApplicationCommandOptionChoice `json:"choices"`
}

func (m sentMessage) Ephemeral() bool {
	return m.Flags&discordgo.MessageFlagsEphemeral != 0
}

func (m sentMessage) Buttons() []sentComponent {
	var out []sentComponent
	for _, row := range m.Components {
		out = append(out, row.Components...)
	}
	return out
}

// DiscordCall is one captured request to the Discord REST API
type DiscordCall struct {
	Method       string
	Path         string
	ResponseType discordgo.InteractionResponseType
	Message      sentMessage
}

// IsCallback reports whether the call was an initial interaction response
func (c DiscordCall) IsCallback() bool {
	return strings.HasSuffix(c.Path, "/callback")
}

// TestContext holds a session whose REST calls are captured instead of sent
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
	Services     *Services

	mu    sync.Mutex
	calls []DiscordCall
}

// Calls returns the captured Discord calls in order
func (tc *TestContext) Calls() []DiscordCall {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	out := make([]DiscordCall, len(tc.calls))
	copy(out, tc.calls)
	return out
}

// Last returns the most recent captured call
func (tc *TestContext) Last(t *testing.T) DiscordCall {
	t.Helper()
	calls := tc.Calls()
	require.NotEmpty(t, calls, "no Discord calls captured")
	return calls[len(calls)-1]
}

// LastEmbed returns the first embed of the most recent call
func (tc *TestContext) LastEmbed(t *testing.T) *discordgo.MessageEmbed {
	t.Helper()
	msg := tc.Last(t).Message
	require.NotEmpty(t, msg.Embeds, "last call carried no embed")
	return msg.Embeds[0]
}

func (tc *TestContext) capture(req *http.Request) error {
	call := DiscordCall{Method: req.Method, Path: req.URL.Path}
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return err
		}
		if len(body) > 0 {
			if call.IsCallback() {
				var resp struct {
					Type discordgo.InteractionResponseType `json:"type"`
					Data sentMessage                       `json:"data"`
				}
				if err := json.Unmarshal(body, &resp); err != nil {
					return err
				}
				call.ResponseType = resp.Type
				call.Message = resp.Data
			} else if err := json.Unmarshal(body, &call.Message); err != nil {
				return err
			}
		}
	}
	tc.mu.Lock()
	tc.calls = append(tc.calls, call)
	tc.mu.Unlock()
	return nil
}

func okResponse() *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewBufferString("{}")),
		Header:     make(http.Header),
	}
}

// SetupTestContext wires a capturing Discord session to a catalog loaded
// from the shared fixture
func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()
	return setupWithFetcher(t, fixtureFetcher(t))
}

func setupWithFetcher(t *testing.T, fetcher catalog.Fetcher) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	tc := &TestContext{
		Session: session,
		Services: &Services{
			Catalog: catalog.NewService(catalog.NewCache(fetcher)),
			Stats:   stats.NewService(),
			AppID:   testAppID,
			Version: "test",
		},
	}
	tc.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			if err := tc.capture(req); err != nil {
				return nil, err
			}
			return okResponse(), nil
		},
	}
	session.Client = &http.Client{Transport: tc.DiscordMocks}

	return tc
}

type staticFetcher struct {
	payload []byte
}

func (f staticFetcher) Fetch(ctx context.Context) (*domain.Dataset, error) {
	return validation.MustNewSchemaValidator().ValidateBytes(f.payload)
}

type failingFetcher struct{}

func (failingFetcher) Fetch(ctx context.Context) (*domain.Dataset, error) {
	return nil, &domain.NetworkError{URL: "http://upstream.invalid", Err: errors.New("connection refused")}
}

func fixtureFetcher(t *testing.T) staticFetcher {
	t.Helper()
	payload, err := os.ReadFile(filepath.Join("..", "catalog", "testdata", "all_data.json"))
	require.NoError(t, err)
	return staticFetcher{payload: payload}
}

func fixtureStore(t *testing.T) *catalog.Store {
	t.Helper()
	ds, err := fixtureFetcher(t).Fetch(context.Background())
	require.NoError(t, err)
	return catalog.NewStore(ds, domain.DefaultSearchThreshold)
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func focusedOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	opt := stringOpt(name, value)
	opt.Focused = true
	return opt
}

func baseInteraction(t discordgo.InteractionType, data discordgo.InteractionData) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:    "1234567890123456789",
			AppID: testAppID,
			Token: testToken,
			Type:  t,
			Data:  data,
			Member: &discordgo.Member{
				User: &discordgo.User{ID: testUserID, Username: "Tester"},
			},
		},
	}
}

func commandInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return baseInteraction(discordgo.InteractionApplicationCommand, discordgo.ApplicationCommandInteractionData{
		Name:    name,
		Options: opts,
	})
}

func autocompleteInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return baseInteraction(discordgo.InteractionApplicationCommandAutocomplete, discordgo.ApplicationCommandInteractionData{
		Name:    name,
		Options: opts,
	})
}

func componentInteraction(customID, userID string) *discordgo.InteractionCreate {
	i := baseInteraction(discordgo.InteractionMessageComponent, discordgo.MessageComponentInteractionData{
		CustomID:      customID,
		ComponentType: discordgo.ButtonComponent,
	})
	i.Member.User.ID = userID
	return i
}

// run invokes a command handler the way the registry would
func run(t *testing.T, tc *TestContext, cmd Command, i *discordgo.InteractionCreate) {
	t.Helper()
	require.NoError(t, cmd.Handler(context.Background(), tc.Session, i, tc.Services))
}
