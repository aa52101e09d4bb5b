package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// CompareCommand returns the compare command definition and handlers
func CompareCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "compare",
		Description: "Compare two entities side-by-side",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "first",
				Description:  "First entity",
				Required:     true,
				Autocomplete: true,
			},
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "second",
				Description:  "Second entity",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		first := stringOption(i, "first")
		second := stringOption(i, "second")

		if !deferResponse(s, i, false) {
			return nil
		}

		store, ok := loadStore(ctx, s, i, svc)
		if !ok {
			return nil
		}

		a, foundA := store.FindByName(first)
		b, foundB := store.FindByName(second)
		if !foundA || !foundB {
			respondError(s, i, MsgCompareNotFound)
			return nil
		}

		if a.GetType() != b.GetType() {
			respondError(s, i, fmt.Sprintf("❌ Cannot compare different types: **%s** vs **%s**.", a.GetType(), b.GetType()))
			return nil
		}

		rows, err := catalog.Compare(a, b)
		if err != nil {
			return err
		}

		sendEmbed(s, i, "", compareEmbed(a, b, rows))
		return nil
	}

	return Command{
		Definition:   cmd,
		Handler:      handler,
		Autocomplete: entityAutocomplete("", false),
	}
}

func compareEmbed(a, b domain.Entity, rows []catalog.ComparisonRow) *discordgo.MessageEmbed {
	emoji, ok := TypeEmojis[string(a.GetType())]
	if !ok {
		emoji = "⚔️"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s Compare: %s vs %s", emoji, a.GetName(), b.GetName()),
		Color:       ColorCompare,
		Description: fmt.Sprintf("Comparing two **%s**.", pluralName(a.GetType())),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s vs %s", domain.SlugOf(a), domain.SlugOf(b)),
		},
	}

	for _, row := range rows {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: row.Label,
			Value: fmt.Sprintf("**%s:** %s\n**%s:** %s",
				a.GetName(), statText(row.Left, row.Suffix, row.LeftHigher),
				b.GetName(), statText(row.Right, row.Suffix, row.RightHigher)),
			Inline: true,
		})
	}
	return embed
}

// statText renders one side of a comparison row, marking the higher value
func statText(st catalog.Stat, suffix string, higher bool) string {
	text := st.Text
	if st.Number != nil {
		text += suffix
	}
	if higher {
		text += " 🟢"
	}
	return text
}
