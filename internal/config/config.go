//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesdw.
// Configuration is loaded from a YAML config file, a .env file, and CLI
// flags. CLI flags take precedence over config file values, which take
// precedence over environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// Config holds all configuration for salesdw.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// DataDir is the directory holding the CSV datasets.
	DataDir string `mapstructure:"data_dir"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Query holds configuration for the query subcommand.
	Query QueryConfig `mapstructure:"query"`
}

// GenerateConfig holds configuration for dataset generation.
type GenerateConfig struct {
	// Products is the number of product dimension rows to generate.
	Products int `mapstructure:"products"`

	// Customers is the number of customer dimension rows to generate.
	Customers int `mapstructure:"customers"`

	// Stores is the number of store dimension rows to generate.
	Stores int `mapstructure:"stores"`

	// Days is the number of calendar days in the time dimension.
	Days int `mapstructure:"days"`

	// Sales is the number of sales fact rows to generate.
	Sales int `mapstructure:"sales"`

	// StartDate is the first date of the time dimension (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// InventoryIntervalDays is the spacing between inventory snapshots.
	InventoryIntervalDays int `mapstructure:"inventory_interval_days"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// LoadConfig holds configuration for the ETL load.
type LoadConfig struct {
	// DateMin is the lower bound of the valid date range (YYYY-MM-DD).
	DateMin string `mapstructure:"date_min"`

	// DateMax is the upper bound of the valid date range (YYYY-MM-DD).
	DateMax string `mapstructure:"date_max"`

	// SCD maps entity name to attribute name to change-tracking mode
	// ("type1" or "type2"). Attributes not listed default to type1.
	SCD map[string]map[string]string `mapstructure:"scd"`

	// MaxRowErrors caps the number of row errors reported per file
	// (0 = unlimited). Rows past the cap are still counted as rejected.
	MaxRowErrors int `mapstructure:"max_row_errors"`
}

// QueryConfig holds configuration for analytics queries.
type QueryConfig struct {
	// Limit caps the number of result rows printed per query.
	Limit int `mapstructure:"limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		DataDir:  "data",
		Generate: GenerateConfig{
			Products:              1000,
			Customers:             5000,
			Stores:                50,
			Days:                  365,
			Sales:                 100000,
			StartDate:             "2023-01-01",
			InventoryIntervalDays: 7,
		},
		Load: LoadConfig{
			DateMin: "2015-01-01",
			DateMax: "2030-12-31",
			SCD: map[string]map[string]string{
				"customer": {"customer_segment": "type2"},
				"store":    {"store_type": "type2", "manager": "type2"},
			},
			MaxRowErrors: 100,
		},
		Query: QueryConfig{
			Limit: 20,
		},
	}
}

// Load reads configuration from .env and config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesdw.yaml
// 3. ~/.config/salesdw/config.yaml
func Load(configFile string) (*Config, error) {
	// A .env file in the working directory supplies environment
	// variables such as DATABASE_URL. Missing files are fine.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("salesdw")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesdw"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Environment bindings; config file values win over these.
	_ = v.BindEnv("connection", "DATABASE_URL")
	_ = v.BindEnv("log_level", "SALESDW_LOG_LEVEL")
	_ = v.BindEnv("data_dir", "SALESDW_DATA_DIR")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	if c.Generate.Products < 1 {
		return fmt.Errorf("generate.products must be at least 1")
	}
	if c.Generate.Customers < 1 {
		return fmt.Errorf("generate.customers must be at least 1")
	}
	if c.Generate.Stores < 1 {
		return fmt.Errorf("generate.stores must be at least 1")
	}
	if c.Generate.Days < 1 {
		return fmt.Errorf("generate.days must be at least 1")
	}
	if c.Generate.Sales < 0 {
		return fmt.Errorf("generate.sales must be non-negative")
	}
	if c.Generate.InventoryIntervalDays < 1 {
		return fmt.Errorf("generate.inventory_interval_days must be at least 1")
	}
	if _, err := time.Parse(DateFormat, c.Generate.StartDate); err != nil {
		return fmt.Errorf("generate.start_date must be YYYY-MM-DD: %w", err)
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DataDir == "" {
		return fmt.Errorf("data directory is required")
	}
	dateMin, err := time.Parse(DateFormat, c.Load.DateMin)
	if err != nil {
		return fmt.Errorf("load.date_min must be YYYY-MM-DD: %w", err)
	}
	dateMax, err := time.Parse(DateFormat, c.Load.DateMax)
	if err != nil {
		return fmt.Errorf("load.date_max must be YYYY-MM-DD: %w", err)
	}
	if dateMax.Before(dateMin) {
		return fmt.Errorf("load.date_max must not be before load.date_min")
	}
	if c.Load.MaxRowErrors < 0 {
		return fmt.Errorf("load.max_row_errors must be non-negative")
	}
	for entity, attrs := range c.Load.SCD {
		for attr, mode := range attrs {
			if mode != "type1" && mode != "type2" {
				return fmt.Errorf(
					"load.scd.%s.%s: mode must be 'type1' or 'type2', got %q",
					entity, attr, mode)
			}
		}
	}
	return nil
}

// ValidateQuery checks configuration required for the query command.
func (c *Config) ValidateQuery() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Query.Limit < 0 {
		return fmt.Errorf("query.limit must be non-negative")
	}
	return nil
}
