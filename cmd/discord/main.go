package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/config"
	"github.com/osse101/SpellcastersBot_Go/internal/cooldown"
	"github.com/osse101/SpellcastersBot_Go/internal/discord"
	"github.com/osse101/SpellcastersBot_Go/internal/logger"
	"github.com/osse101/SpellcastersBot_Go/internal/server"
	"github.com/osse101/SpellcastersBot_Go/internal/stats"
	"github.com/osse101/SpellcastersBot_Go/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration (.env files are read inside)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	slog.Info("Starting Spellcasters bot",
		"version", cfg.Version,
		"environment", cfg.Environment,
		"data_url", cfg.DataURL)

	reporter, err := logger.NewWebhookReporter(cfg.ErrorWebhookURL, nil)
	if err != nil {
		slog.Error("Invalid error webhook", "error", err)
		os.Exit(1)
	}

	validator, err := validation.NewSchemaValidator()
	if err != nil {
		slog.Error("Failed to compile dataset schema", "error", err)
		os.Exit(1)
	}

	cache := catalog.NewCache(
		catalog.NewHTTPFetcher(cfg.DataURL, validator),
		catalog.WithTTL(cfg.CacheTTL),
		catalog.WithFetchTimeout(cfg.FetchTimeout),
		catalog.WithSearchThreshold(cfg.SearchThreshold),
	)

	svc := &discord.Services{
		Catalog:         catalog.NewService(cache),
		Stats:           stats.NewService(),
		Cooldowns:       cooldown.NewService(),
		Reporter:        reporter,
		RefreshLimiter:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RefreshRatePerMinute)), 1),
		DefaultCooldown: cfg.CommandCooldown,
		Version:         cfg.Version,
	}

	bot, err := discord.New(discord.Config{
		Token:   cfg.DiscordToken,
		AppID:   cfg.DiscordAppID,
		GuildID: cfg.GuildID,
	}, svc)
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var healthServer *server.Server
	if addr := cfg.HealthAddr(); addr != "" {
		healthServer = server.NewServer(addr, server.Dependencies{
			Catalog:   cache,
			Gateway:   bot,
			Version:   cfg.Version,
			StartedAt: time.Now(),
		})
		go func() {
			if err := healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Health server failed", "error", err)
			}
		}()
	}

	if err := bot.Start(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}

	// Register with Discord API
	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}
	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	<-ctx.Done()
	slog.Info("Shutting down")

	bot.Stop()
	if healthServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := healthServer.Stop(shutdownCtx); err != nil {
			slog.Warn("Health server shutdown failed", "error", err)
		}
	}
}
