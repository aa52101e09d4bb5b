package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	GuildID  string
	Registry *CommandRegistry
	Services *Services

	connected atomic.Bool
}

// Config holds the bot configuration
type Config struct {
	Token   string
	AppID   string
	GuildID string
}

// New creates a new Discord bot
func New(cfg Config, svc *Services) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	// Slash commands need no privileged intents
	s.Identify.Intents = discordgo.IntentsGuilds

	if svc == nil {
		svc = &Services{}
	}
	svc.AppID = cfg.AppID

	return &Bot{
		Session:  s,
		AppID:    cfg.AppID,
		GuildID:  cfg.GuildID,
		Registry: NewDefaultRegistry(),
		Services: svc,
	}, nil
}

// Start opens the gateway connection
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.connect)
	b.Session.AddHandler(b.disconnect)
	b.Session.AddHandler(b.interactionCreate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running")
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() {
	b.connected.Store(false)
	if err := b.Session.Close(); err != nil {
		slog.Warn("Error closing Discord session", "error", err)
	}
}

// Run runs the bot until ctx is cancelled
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	<-ctx.Done()
	slog.Info("Shutting down Discord bot")
	return nil
}

// ApplicationID returns the configured application ID, falling back to the
// bot user of the open session
func (b *Bot) ApplicationID() string {
	return applicationID(b.Session, b.AppID)
}

func applicationID(s *discordgo.Session, configured string) string {
	if configured != "" {
		return configured
	}
	if s != nil && s.State != nil && s.State.User != nil {
		return s.State.User.ID
	}
	return ""
}

// Connected reports whether the gateway connection is up
func (b *Bot) Connected() bool {
	return b.connected.Load()
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	b.connected.Store(true)
	var username string
	if r.User != nil {
		username = r.User.Username
	}
	slog.Info("Bot is ready", "user", username, "guilds", len(r.Guilds))

	if err := s.UpdateGameStatus(0, PresenceText); err != nil {
		slog.Warn("Failed to set presence", "error", err)
	}

	go b.warmCache()
}

// warmCache fetches the dataset so the first command does not wait on it
func (b *Bot) warmCache() {
	if b.Services.Catalog == nil {
		return
	}
	ctx := context.Background()
	store, err := b.Services.Catalog.FetchData(ctx, false)
	if err != nil {
		report(ctx, b.Services, ScopeStartup, err)
		return
	}
	slog.Info("Catalog warmed", "entities", store.Len(), "version", store.BuildInfo().Version)
}

func (b *Bot) connect(s *discordgo.Session, _ *discordgo.Connect) {
	b.connected.Store(true)
}

func (b *Bot) disconnect(s *discordgo.Session, _ *discordgo.Disconnect) {
	b.connected.Store(false)
	slog.Warn("Disconnected from Discord gateway, waiting for reconnect")
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.Registry != nil {
		b.Registry.Handle(s, i, b.Services)
	}
}
