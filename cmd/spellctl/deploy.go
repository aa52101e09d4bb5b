package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/osse101/SpellcastersBot_Go/internal/config"
	"github.com/osse101/SpellcastersBot_Go/internal/discord"
)

var deployFlags struct {
	Force       bool
	ClearGuilds bool
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Register the bot's slash commands with Discord",
	Long: `Register every slash command with Discord without starting the bot.
Commands go to GUILD_ID when it is set and are global otherwise. Unchanged
command sets are skipped unless --force is given.

--clear-guilds removes guild-scoped copies from every guild the bot is in,
which is needed after moving from guild to global registration.`,
	Example: `  spellctl deploy
  spellctl deploy --force --clear-guilds`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		bot, err := discord.New(discord.Config{
			Token:   cfg.DiscordToken,
			AppID:   cfg.DiscordAppID,
			GuildID: cfg.GuildID,
		}, nil)
		if err != nil {
			return err
		}

		if bot.AppID == "" {
			// A bot's user ID is its application ID
			me, err := bot.Session.User("@me")
			if err != nil {
				return fmt.Errorf("resolve application ID: %w", err)
			}
			bot.AppID = me.ID
			slog.Info("Resolved application ID from bot user", "app_id", me.ID)
		}

		out := cmd.OutOrStdout()
		if deployFlags.ClearGuilds {
			cleared, err := bot.ClearGuildCommands()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared guild commands in %d guilds.\n", cleared)
		}

		if err := bot.RegisterCommands(bot.Registry, deployFlags.Force); err != nil {
			return err
		}

		scope := "globally"
		if cfg.GuildID != "" {
			scope = "to guild " + cfg.GuildID
		}
		fmt.Fprintf(out, "Deployed %d commands %s.\n", len(bot.Registry.Definitions()), scope)
		return nil
	},
}

func init() {
	deployCmd.Flags().BoolVar(&deployFlags.Force, "force", false, "overwrite commands even when unchanged")
	deployCmd.Flags().BoolVar(&deployFlags.ClearGuilds, "clear-guilds", false, "remove guild-scoped commands first")
}
