package main

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sengkeat-dex/Tokenize/ingest"
	"github.com/sengkeat-dex/Tokenize/repositories"
)

var importCmd = &cobra.Command{
	Use:   "import [csv-file]",
	Short: "Load the component CSV into Postgres",
	Long: `Load the component CSV into the tokenization_components table.
The file defaults to CSV_PATH. All rows are inserted in one transaction.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	path := cfg.CSVPath
	if len(args) == 1 {
		path = args[0]
	}

	components, err := ingest.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := repositories.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewComponentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return err
	}
	ids, err := repo.InsertComponents(ctx, components)
	if err != nil {
		return err
	}

	log.Info().Str("path", path).Int("inserted", len(ids)).Msg("components imported")
	return nil
}
