package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salesdw/salesdw/internal/db"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/warehouse"
)

var queryLimit int

var queryCmd = &cobra.Command{
	Use:   "query [name]",
	Short: "Run analytics queries against the warehouse",
	Long: `Run one canned analytics query by name, or all of them when no
name is given. Use 'salesdw queries' to list the available names.

Example:
  salesdw query top_stores --limit 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0,
		"maximum result rows per query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryLimit > 0 {
		cfg.Query.Limit = queryLimit
	}

	if err := cfg.ValidateQuery(); err != nil {
		return err
	}

	queries := warehouse.Queries
	if len(args) == 1 {
		q, ok := warehouse.FindQuery(args[0])
		if !ok {
			return fmt.Errorf("unknown query %q; run 'salesdw queries' for the list", args[0])
		}
		queries = []warehouse.Query{q}
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	for _, q := range queries {
		fmt.Printf("=== %s: %s ===\n", q.Name, q.Description)
		count, err := warehouse.RunQuery(ctx, pool, q, cfg.Query.Limit, os.Stdout)
		if err != nil {
			return err
		}
		logging.Debug().
			Str("query", q.Name).
			Int64("rows", count).
			Msg("Query complete")
		fmt.Println()
	}

	return nil
}
