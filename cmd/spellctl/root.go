package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/config"
	"github.com/osse101/SpellcastersBot_Go/internal/logger"
	"github.com/osse101/SpellcastersBot_Go/internal/validation"
)

// globalFlags holds the persistent flags shared by every subcommand
var globalFlags struct {
	DataURL string
	Verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "spellctl",
	Short: "Operator tooling for the Spellcasters bot",
	Long: `spellctl inspects the Spellcasters Community API dataset the bot serves
and manages the bot's slash command registration.

Configuration is read from the environment and from .env.local / .env,
the same way the bot reads it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if globalFlags.Verbose {
			level = "debug"
		}
		logger.InitLoggerWithWriter(logger.NewConfig(level, "text", "spellctl", "dev", "dev", false), os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalFlags.DataURL, "url", "", "dataset URL (overrides DATA_URL)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "debug logging on stderr")

	rootCmd.AddCommand(validateCmd, searchCmd, listCmd, deployCmd)
}

// loadCLIConfig loads configuration without requiring a Discord token and
// applies flag overrides
func loadCLIConfig() (*config.Config, error) {
	cfg, err := config.LoadForCLI()
	if err != nil {
		return nil, err
	}
	if globalFlags.DataURL != "" {
		cfg.DataURL = globalFlags.DataURL
	}
	slog.Debug("Loaded configuration", "data_url", cfg.DataURL)
	return cfg, nil
}

// newCatalog builds the same cache and query service the bot runs on
func newCatalog(cfg *config.Config) (catalog.Service, error) {
	validator, err := validation.NewSchemaValidator()
	if err != nil {
		return nil, err
	}
	cache := catalog.NewCache(
		catalog.NewHTTPFetcher(cfg.DataURL, validator),
		catalog.WithFetchTimeout(cfg.FetchTimeout),
		catalog.WithSearchThreshold(cfg.SearchThreshold),
	)
	return catalog.NewService(cache), nil
}
