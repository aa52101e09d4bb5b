package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// RandomCommand returns the random command definition and handler
func RandomCommand() Command {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.EntityTypes()))
	for _, t := range domain.EntityTypes() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: string(t), Value: string(t)})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        "random",
		Description: "Show a random entity",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Filter by type",
				Choices:     choices,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		entityType := stringOption(i, "type")

		if !deferResponse(s, i, false) {
			return nil
		}

		store, ok := loadStore(ctx, s, i, svc)
		if !ok {
			return nil
		}

		entity, found, err := svc.Catalog.Random(ctx, entityType)
		if err != nil {
			return fmt.Errorf("random %q: %w", entityType, err)
		}
		if !found {
			sendEmbed(s, i, "", ErrorEmbed(MsgNoRandomResults))
			return nil
		}

		sendEmbed(s, i, fmt.Sprintf("🎲 **Random %s**", entity.GetType()), EntityEmbed(entity, linksFor(store)))
		return nil
	}

	return Command{Definition: cmd, Handler: handler}
}
