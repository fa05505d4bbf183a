//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesdw.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/config"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/warehouse"
	"github.com/salesdw/salesdw/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string
	dataDir    string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesdw",
		Short: "Sales data warehouse toolkit for PostgreSQL",
		Long: `salesdw manages a star-schema sales data warehouse in PostgreSQL.

It creates the warehouse schema (product, customer, time, and store
dimensions plus sales and inventory facts), generates synthetic CSV
datasets, runs the batch ETL load with data quality validation and
slowly-changing-dimension versioning, and executes the canned
analytics queries.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesdw.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "",
		"directory holding the CSV datasets")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(queriesCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the canned analytics queries",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available analytics queries:")
		cmd.Println()
		for _, q := range warehouse.Queries {
			cmd.Printf("  %-22s - %s\n", q.Name, q.Description)
		}
		cmd.Println()
		cmd.Println("Use 'salesdw query <name>' to run one, or 'salesdw query' for all.")
	},
}
