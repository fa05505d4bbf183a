package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/config"
	"github.com/salesdw/salesdw/internal/datagen"
	"github.com/salesdw/salesdw/internal/logging"
)

var (
	genProducts  int
	genCustomers int
	genStores    int
	genDays      int
	genSales     int
	genStartDate string
	genSeed      uint64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic CSV datasets",
	Long: `Generate the six warehouse CSV datasets (products, customers,
time dimension, stores, sales, inventory) into the data directory.
Generated data satisfies all load-time quality rules.

Example:
  salesdw generate --products 1000 --sales 100000 --data-dir ./data`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genProducts, "products", 0,
		"number of products to generate")
	generateCmd.Flags().IntVar(&genCustomers, "customers", 0,
		"number of customers to generate")
	generateCmd.Flags().IntVar(&genStores, "stores", 0,
		"number of stores to generate")
	generateCmd.Flags().IntVar(&genDays, "days", 0,
		"number of calendar days in the time dimension")
	generateCmd.Flags().IntVar(&genSales, "sales", 0,
		"number of sales transactions to generate")
	generateCmd.Flags().StringVar(&genStartDate, "start-date", "",
		"first date of the time dimension (YYYY-MM-DD)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed for reproducible output")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genProducts > 0 {
		cfg.Generate.Products = genProducts
	}
	if genCustomers > 0 {
		cfg.Generate.Customers = genCustomers
	}
	if genStores > 0 {
		cfg.Generate.Stores = genStores
	}
	if genDays > 0 {
		cfg.Generate.Days = genDays
	}
	if genSales > 0 {
		cfg.Generate.Sales = genSales
	}
	if genStartDate != "" {
		cfg.Generate.StartDate = genStartDate
	}
	if genSeed != 0 {
		cfg.Generate.Seed = genSeed
	}

	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	startDate, err := time.Parse(config.DateFormat, cfg.Generate.StartDate)
	if err != nil {
		return err
	}

	logging.Info().
		Int("products", cfg.Generate.Products).
		Int("customers", cfg.Generate.Customers).
		Int("stores", cfg.Generate.Stores).
		Int("days", cfg.Generate.Days).
		Int("sales", cfg.Generate.Sales).
		Str("data_dir", cfg.DataDir).
		Msg("Generating datasets")

	gen := datagen.NewGenerator(datagen.Config{
		Products:          cfg.Generate.Products,
		Customers:         cfg.Generate.Customers,
		Stores:            cfg.Generate.Stores,
		Days:              cfg.Generate.Days,
		Sales:             cfg.Generate.Sales,
		StartDate:         startDate,
		InventoryInterval: cfg.Generate.InventoryIntervalDays,
		Seed:              cfg.Generate.Seed,
	})
	if err := gen.Generate(cfg.DataDir); err != nil {
		return err
	}

	logging.Info().Msg("Dataset generation complete")
	return nil
}
