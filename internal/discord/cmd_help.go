package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

var helpFields = []*discordgo.MessageEmbedField{
	{Name: "🔍 /search <query>", Value: "Find any entity by name (fuzzy match).\n*Example:* `/search Fire Ball`"},
	{Name: "🦸 /hero <name>", Value: "Detailed hero card with all abilities.\n*Example:* `/hero Swamp Witch`"},
	{Name: "📋 /list <type> [school] [rank] [sort]", Value: "Browse entities with filters. Sort by Name (default) or Rank.\n*Example:* `/list units War II`"},
	{Name: "⚔️ /compare <first> <second>", Value: "Side-by-side stat comparison.\n*Example:* `/compare Harpy Lizard Archer`"},
	{Name: "🎲 /random [type]", Value: "Show a random entity. Optionally filter by type.\n*Example:* `/random spell`"},
	{Name: "ℹ️ /about", Value: "Game info, database stats, and links."},
	{Name: "🏓 /ping", Value: "Check bot latency and API responsiveness."},
	{Name: "📩 /invite", Value: "Get a link to add this bot to your server."},
	{Name: "📊 /stats", Value: "Show bot usage statistics and database info."},
}

// HelpCommand returns the help command definition and handler
func HelpCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "Show all available commands",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		return respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "📖 Spellcasters Bot: Commands",
			Color:       ColorHelp,
			Description: "Use these slash commands to explore the world of Spellcasters.",
			Fields:      helpFields,
			Footer:      &discordgo.MessageEmbedFooter{Text: FooterHelp},
		})
	}

	return Command{Definition: cmd, Handler: handler}
}

// AboutCommand returns the about command definition and handler
func AboutCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "about",
		Description: "Information about the game and bot",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if !deferResponse(s, i, false) {
			return nil
		}

		store, ok := loadStore(ctx, s, i, svc)
		if !ok {
			return nil
		}

		sendEmbed(s, i, "", aboutEmbed(store.Dataset(), svc.Version))
		return nil
	}

	return Command{Definition: cmd, Handler: handler}
}

func aboutEmbed(ds *domain.Dataset, botVersion string) *discordgo.MessageEmbed {
	description := "Spellcasters Community Bot"
	if ds.GameConfig != nil {
		description = fmt.Sprintf("%s: %s",
			ds.GameConfigString(GameConfigGameName, "Spellcasters"),
			ds.GameConfigString(GameConfigGenre, "Strategy"))
	}

	counts := ds.Counts()
	parts := make([]string, 0, len(counts))
	for _, t := range domain.EntityTypes() {
		parts = append(parts, fmt.Sprintf("%d %s", counts[t], pluralName(t)))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "About Spellcasters",
		Color:       ColorAbout,
		Description: description,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Developer", Value: ds.GameConfigString(GameConfigDeveloper, "Terrible Turtle Games"), Inline: true},
			{Name: "API Version", Value: safe(ds.BuildInfo.Version), Inline: true},
			{Name: "Data Updated", Value: safe(ds.BuildInfo.GeneratedAt), Inline: true},
			{Name: "Database", Value: strings.Join(parts, " · ")},
			{Name: "Links", Value: fmt.Sprintf("[SpellcastersDB](%s) · [Support Server](%s)", SpellcastersDBURL, SupportServerURL)},
			{Name: "Privacy", Value: "This bot stores no user data. It only reads public game data from the Spellcasters Community API."},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: FooterAbout},
	}
	if botVersion != "" {
		embed.Footer.Text += " | Bot " + botVersion
	}
	return embed
}

// InviteCommand returns the invite command definition and handler
func InviteCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "invite",
		Description: "Get a link to add this bot to your server",
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		appID := applicationID(s, svc.AppID)
		if appID == "" {
			appID = i.AppID
		}
		inviteURL := fmt.Sprintf(InviteURLFormat, appID)
		respondEphemeral(s, i, fmt.Sprintf("📩 **Add Spellcasters Bot to your server:**\n> [Click here to invite](%s)", inviteURL))
		return nil
	}

	return Command{Definition: cmd, Handler: handler}
}
