package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/config"
	"github.com/salesdw/salesdw/internal/db"
	"github.com/salesdw/salesdw/internal/model"
	"github.com/salesdw/salesdw/internal/scd"
	"github.com/salesdw/salesdw/internal/warehouse"
)

var loadMaxRowErrors int

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the CSV datasets into the warehouse",
	Long: `Run the batch ETL load: read the CSV datasets from the data
directory, validate every row against the data quality rules, apply
the slowly-changing-dimension policy to dimension rows, and append
fact rows. Rows that fail validation are rejected and reported; the
rest of the batch still loads.

Example:
  salesdw load --data-dir ./data --connection "postgres://..."`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().IntVar(&loadMaxRowErrors, "max-row-errors", -1,
		"cap on reported row errors per file (0 = unlimited)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadMaxRowErrors >= 0 {
		cfg.Load.MaxRowErrors = loadMaxRowErrors
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	dateMin, err := time.Parse(config.DateFormat, cfg.Load.DateMin)
	if err != nil {
		return err
	}
	dateMax, err := time.Parse(config.DateFormat, cfg.Load.DateMax)
	if err != nil {
		return err
	}

	policies := make(map[model.Entity]scd.Policy, len(cfg.Load.SCD))
	for entity, attrs := range cfg.Load.SCD {
		p, err := scd.PolicyFromConfig(attrs)
		if err != nil {
			return fmt.Errorf("load.scd.%s: %w", entity, err)
		}
		policies[model.Entity(entity)] = p
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	loader := warehouse.NewLoader(pool, warehouse.LoaderConfig{
		DataDir:      cfg.DataDir,
		DateMin:      dateMin,
		DateMax:      dateMax,
		SCDPolicies:  policies,
		MaxRowErrors: cfg.Load.MaxRowErrors,
	})

	report, err := loader.Run(ctx)
	if err != nil {
		return err
	}

	report.Write(os.Stdout)

	if err := db.SetMetadataValue(ctx, pool, "last_load_batch", report.BatchID); err != nil {
		return fmt.Errorf("failed to record load batch: %w", err)
	}
	if err := db.SetMetadataValue(ctx, pool, "last_load_at",
		report.StartedAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record load time: %w", err)
	}

	return nil
}
