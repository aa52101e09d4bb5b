package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search entity names the way /search does",
	Example: `  spellctl search "fire ball"
  spellctl search harpy --limit 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadCLIConfig()
		if err != nil {
			return err
		}
		svc, err := newCatalog(cfg)
		if err != nil {
			return err
		}

		results, err := svc.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No entity found matching %q.\n", args[0])
			return nil
		}
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}
		renderEntities(cmd.OutOrStdout(), results)
		return nil
	},
}

var listFlags struct {
	Type   string
	School string
	Rank   string
	Sort   string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entities with the /list filters",
	Example: `  spellctl list --type Unit --school War
  spellctl list --type Spell --sort rank`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := domain.ParseEntityType(listFlags.Type); !ok {
			return fmt.Errorf("unknown --type %q (want one of %v)", listFlags.Type, domain.EntityTypes())
		}

		cfg, err := loadCLIConfig()
		if err != nil {
			return err
		}
		svc, err := newCatalog(cfg)
		if err != nil {
			return err
		}

		entities, err := svc.Filter(cmd.Context(), catalog.FilterOptions{
			Type:   listFlags.Type,
			School: listFlags.School,
			Rank:   listFlags.Rank,
		})
		if err != nil {
			return err
		}
		if len(entities) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No entities found matching your filters.")
			return nil
		}
		renderEntities(cmd.OutOrStdout(), catalog.SortEntities(entities, catalog.ParseSortOrder(listFlags.Sort)))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of matches (0 = all)")

	listCmd.Flags().StringVarP(&listFlags.Type, "type", "t", "", "entity type: Hero, Unit, Spell, Titan or Consumable")
	listCmd.Flags().StringVar(&listFlags.School, "school", "", "magic school (class for heroes)")
	listCmd.Flags().StringVar(&listFlags.Rank, "rank", "", "rank: I to V")
	listCmd.Flags().StringVar(&listFlags.Sort, "sort", string(catalog.SortByName), "sort order: name or rank")
	_ = listCmd.MarkFlagRequired("type")
}
