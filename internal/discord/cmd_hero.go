package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// HeroCommand returns the hero command definition and handlers
func HeroCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:        "hero",
		Description: "Get detailed information about a specific Hero",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionString,
				Name:         "name",
				Description:  "Name of the hero",
				Required:     true,
				Autocomplete: true,
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		name := stringOption(i, "name")

		if !deferResponse(s, i, false) {
			return nil
		}

		store, ok := loadStore(ctx, s, i, svc)
		if !ok {
			return nil
		}

		e, found := store.FindByName(name)
		hero, isHero := e.(*domain.Hero)
		if !found || !isHero {
			respondError(s, i, fmt.Sprintf("❌ Could not find hero \"**%s**\".", name))
			return nil
		}

		sendEmbed(s, i, "", EntityEmbed(hero, linksFor(store)))
		return nil
	}

	return Command{
		Definition:   cmd,
		Handler:      handler,
		Autocomplete: entityAutocomplete(domain.EntityHero, false),
	}
}
