package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/logger"
)

// SearchCommand returns the search command definition and handlers
func SearchCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "search",
		Description: "Search for any entity (Hero, Unit, Spell, Titan, Consumable).",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "name",
				Description:  "The name of the entity",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		query := stringOption(i, "name")

		store, err := svc.Catalog.FetchData(ctx, false)
		if err != nil {
			logger.FromContext(ctx).Warn("Catalog unavailable", "error", err)
			respondEphemeral(s, i, MsgDataUnavailable)
			return nil
		}

		if e, ok := store.FindByName(query); ok {
			return respondEmbed(s, i, EntityEmbed(e, linksFor(store)))
		}

		results, err := svc.Catalog.Search(ctx, query)
		if err != nil {
			return fmt.Errorf("search %q: %w", query, err)
		}
		if len(results) > 0 {
			respondEphemeral(s, i, fmt.Sprintf("Entity \"%s\" not found. Did you mean **%s**?", query, results[0].GetName()))
			return nil
		}
		respondEphemeral(s, i, fmt.Sprintf("No entity found matching \"%s\".", query))
		return nil
	}

	return Command{
		Definition:   cmd,
		Handler:      handler,
		Autocomplete: entityAutocomplete("", true),
	}
}
