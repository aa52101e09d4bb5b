package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/logger"
)

var refreshPermission int64 = discordgo.PermissionManageServer

// RefreshCommand returns the refresh command definition and handler
func RefreshCommand() Command {
	cmd := &discordgo.ApplicationCommand{
		Name:                     "refresh",
		Description:              "Force refresh database from API",
		DefaultMemberPermissions: &refreshPermission,
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		if !canRefresh(i) {
			respondEphemeral(s, i, MsgNoPermission)
			return nil
		}

		if svc.RefreshLimiter != nil && !svc.RefreshLimiter.Allow() {
			respondEphemeral(s, i, MsgRefreshRateLimited)
			return nil
		}

		if !deferResponse(s, i, true) {
			return nil
		}

		store, err := svc.Catalog.FetchData(ctx, true)
		if err != nil {
			report(ctx, svc, ScopeCommand+"refresh", err)
			respondError(s, i, MsgRefreshFailed)
			return nil
		}

		logger.FromContext(ctx).Info("Catalog refreshed on request",
			"entities", store.Len(), "version", store.BuildInfo().Version)
		respondMessage(s, i, refreshSummary(store.Dataset()))
		return nil
	}

	return Command{Definition: cmd, Handler: handler}
}

// canRefresh reports whether the invoking member may manage the guild.
// Direct messages carry no member and are always refused.
func canRefresh(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	perms := i.Member.Permissions
	return perms&discordgo.PermissionAdministrator != 0 || perms&discordgo.PermissionManageServer != 0
}

func refreshSummary(ds *domain.Dataset) string {
	counts := ds.Counts()
	lines := []string{"✅ **Database Refreshed!**"}
	for _, t := range domain.EntityTypes() {
		lines = append(lines, fmt.Sprintf("- %s: %d", pluralName(t), counts[t]))
	}
	return strings.Join(lines, "\n")
}
