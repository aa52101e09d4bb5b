package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/domain"
	"github.com/osse101/SpellcastersBot_Go/internal/validation"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Fetch the dataset and check it against the schema",
	Long: `Download the dataset (or read --file) and validate it against the embedded
JSON schema. Every violating path is listed; the exit status is 1 when the
payload is rejected.`,
	Example: `  spellctl validate
  spellctl validate --file ./all_data.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		validator, err := validation.NewSchemaValidator()
		if err != nil {
			return err
		}

		var ds *domain.Dataset
		if validateFile != "" {
			data, readErr := os.ReadFile(validateFile)
			if readErr != nil {
				return readErr
			}
			ds, err = validator.ValidateBytes(data)
		} else {
			cfg, cfgErr := loadCLIConfig()
			if cfgErr != nil {
				return cfgErr
			}
			ds, err = catalog.NewHTTPFetcher(cfg.DataURL, validator).Fetch(cmd.Context())
		}

		out := cmd.OutOrStdout()
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			renderIssues(out, validationErr.Issues)
			return fmt.Errorf("dataset rejected with %d issues", len(validationErr.Issues))
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Dataset %s (generated %s) is valid.\n", ds.BuildInfo.Version, ds.BuildInfo.GeneratedAt)
		renderCounts(out, ds)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "validate a local JSON file instead of fetching")
}
