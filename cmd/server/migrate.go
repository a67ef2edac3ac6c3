package main

import (
	"fmt"
	"log"

	"anoa.com/skinannotator/internal/bootstrap"
	"anoa.com/skinannotator/internal/config"
	"anoa.com/skinannotator/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := bootstrap.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Println("Migration completed")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed-images",
	Short: "Register a range of image ids as pending annotations",
	Long: `Inserts one pending annotation record per image id in [--from, --to].
Ids that already exist are skipped.

Example: skinannotator seed-images --from 1 --to 5000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetInt64("from")
		to, _ := cmd.Flags().GetInt64("to")
		if from <= 0 || to < from {
			return fmt.Errorf("invalid range: --from must be positive and --to >= --from (got %d..%d)", from, to)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close(db)

		inserted, err := bootstrap.SeedAnnotations(db.WithContext(cmd.Context()), from, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d records inserted\n", inserted)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int64("from", 1, "First image id")
	seedCmd.Flags().Int64("to", 0, "Last image id (inclusive)")
}
