package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PingCommand returns the ping command definition and handler
func PingCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check bot latency and API responsiveness",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "🏓 Pinging...",
			},
		}); err != nil {
			return fmt.Errorf("respond to ping: %w", err)
		}

		var roundtrip time.Duration
		if created, err := discordgo.SnowflakeTimestamp(i.ID); err == nil {
			roundtrip = time.Since(created)
		}

		content := pongMessage(roundtrip, websocketLatency(s))
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
			return fmt.Errorf("edit ping response: %w", err)
		}
		return nil
	}

	return Command{Definition: cmd, Handler: handler}
}

// websocketLatency renders the gateway heartbeat latency, or "n/a" before
// the first heartbeat has been sent
func websocketLatency(s *discordgo.Session) string {
	if s.LastHeartbeatSent.IsZero() {
		return "n/a"
	}
	return fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds())
}

func pongMessage(roundtrip time.Duration, websocket string) string {
	return fmt.Sprintf("🏓 **Pong!**\n> Roundtrip: **%dms**\n> WebSocket: **%s**",
		roundtrip.Milliseconds(), websocket)
}
