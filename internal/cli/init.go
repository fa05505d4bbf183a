package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/db"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/warehouse"
)

var initDropExisting bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the warehouse schema",
	Long: `Create the star schema in the target PostgreSQL database: the
product, customer, time, and store dimensions and the sales and
inventory facts, with all quality constraints and indexes.

Example:
  salesdw init --connection "postgres://..."`,
	RunE: runSchemaInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop the existing warehouse schema first")
}

func runSchemaInit(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if initDropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := warehouse.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating warehouse schema")
	if err := warehouse.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.SaveMetadata(ctx, pool, nil); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().Msg("Warehouse initialization complete")
	return nil
}
