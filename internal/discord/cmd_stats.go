package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/stats"
)

// StatsCommand returns the stats command definition and handler
func StatsCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "stats",
		Description: "Show bot usage statistics and database info",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if !deferResponse(s, i, false) {
			return nil
		}

		var snapshot stats.Snapshot
		if svc.Stats != nil {
			snapshot = svc.Stats.Snapshot()
		}

		entities := 0
		if store, err := svc.Catalog.FetchData(ctx, false); err == nil {
			entities = store.Len()
		}

		sendEmbed(s, i, "", statsEmbed(snapshot, entities))
		return nil
	}

	return Command{Definition: cmd, Handler: handler}
}

func statsEmbed(snapshot stats.Snapshot, entities int) *discordgo.MessageEmbed {
	top := snapshot.TopCommands(stats.DefaultTopCommands)
	lines := make([]string, 0, len(top))
	for _, c := range top {
		lines = append(lines, fmt.Sprintf("**/%s**: %d", c.Name, c.Count))
	}
	topCommands := strings.Join(lines, "\n")
	if topCommands == "" {
		topCommands = "None yet"
	}

	return &discordgo.MessageEmbed{
		Title: "📊 Bot Statistics",
		Color: ColorStats,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "⏱️ Uptime", Value: stats.FormatUptime(snapshot.Uptime), Inline: true},
			{Name: "🔢 Total Commands", Value: strconv.FormatInt(snapshot.TotalCommands, 10), Inline: true},
			{Name: "🔎 Searches Run", Value: strconv.FormatInt(snapshot.SearchesRun, 10), Inline: true},
			{Name: "🏆 Top Commands", Value: topCommands},
			{Name: "📚 Database Size", Value: fmt.Sprintf("%d total entities loaded", entities)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
