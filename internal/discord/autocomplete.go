package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// entityAutocomplete suggests entity names matching the focused option.
// typeFilter restricts suggestions to one variant when non-empty; withType
// appends the variant to the displayed label.
func entityAutocomplete(typeFilter domain.EntityType, withType bool) CommandHandler {
	return func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		focusedValue := getFocusedOptionValue(i.ApplicationCommandData().Options)

		results, err := svc.Catalog.Search(ctx, focusedValue)
		if err != nil {
			// Discord drops the request after 3 seconds, so answer with nothing
			respondAutocomplete(s, i, []*discordgo.ApplicationCommandOptionChoice{})
			return fmt.Errorf("autocomplete search: %w", err)
		}

		respondAutocomplete(s, i, entityChoices(results, typeFilter, withType))
		return nil
	}
}

func entityChoices(results []domain.Entity, typeFilter domain.EntityType, withType bool) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, min(len(results), MaxAutocompleteChoices))
	for _, e := range results {
		if typeFilter != "" && e.GetType() != typeFilter {
			continue
		}
		label := e.GetName()
		if withType {
			label = fmt.Sprintf("%s (%s)", e.GetName(), e.GetType())
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  label,
			Value: e.GetName(),
		})
		if len(choices) >= MaxAutocompleteChoices {
			break
		}
	}
	return choices
}

func getFocusedOptionValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range options {
		if opt.Focused {
			return opt.StringValue()
		}
	}
	return ""
}

func respondAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
	if err != nil {
		slog.Error("Failed to respond to autocomplete", "error", err)
	}
}
