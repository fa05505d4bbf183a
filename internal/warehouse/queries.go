//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Query is one canned analytical query. SQL takes a single $1 row
// limit. Monetary aggregates are cast to float8 in the SQL so results
// render uniformly.
type Query struct {
	Name        string
	Description string
	SQL         string
}

// Queries is the canned analytics catalog, in presentation order.
var Queries = []Query{
	{
		Name:        "daily_sales_by_store",
		Description: "Daily sales totals by store",
		SQL: `
            SELECT s.store_name,
                   t.full_date,
                   SUM(fs.net_amount)::float8 AS total_sales,
                   COUNT(fs.sale_id) AS number_of_transactions,
                   AVG(fs.net_amount)::float8 AS average_transaction_value
            FROM salesdw.fact_sales fs
            JOIN salesdw.dim_store s ON fs.store_sk = s.store_sk
            JOIN salesdw.dim_time t ON fs.date_id = t.date_id
            GROUP BY s.store_name, t.full_date
            ORDER BY t.full_date, total_sales DESC
            LIMIT $1
        `,
	},
	{
		Name:        "product_performance",
		Description: "Product performance by revenue",
		SQL: `
            SELECT p.product_name,
                   p.category,
                   p.brand,
                   COUNT(fs.sale_id) AS total_sales,
                   SUM(fs.quantity) AS total_quantity_sold,
                   SUM(fs.net_amount)::float8 AS total_revenue,
                   AVG(fs.unit_price)::float8 AS average_price
            FROM salesdw.fact_sales fs
            JOIN salesdw.dim_product p ON fs.product_sk = p.product_sk
            GROUP BY p.product_name, p.category, p.brand
            ORDER BY total_revenue DESC
            LIMIT $1
        `,
	},
	{
		Name:        "customer_segments",
		Description: "Revenue and transaction counts by customer segment",
		SQL: `
            SELECT c.customer_segment,
                   COUNT(DISTINCT c.customer_id) AS number_of_customers,
                   SUM(fs.net_amount)::float8 AS total_revenue,
                   AVG(fs.net_amount)::float8 AS average_transaction_value,
                   COUNT(fs.sale_id) AS total_transactions
            FROM salesdw.fact_sales fs
            JOIN salesdw.dim_customer c ON fs.customer_sk = c.customer_sk
            GROUP BY c.customer_segment
            ORDER BY total_revenue DESC
            LIMIT $1
        `,
	},
	{
		Name:        "inventory_status",
		Description: "Stock position by store and product category",
		SQL: `
            SELECT s.store_name,
                   p.category,
                   SUM(fi.ending_quantity) AS current_stock,
                   SUM(fi.units_sold) AS total_sold,
                   SUM(fi.units_damaged) AS total_damaged,
                   AVG(fi.reorder_point)::float8 AS average_reorder_point
            FROM salesdw.fact_inventory fi
            JOIN salesdw.dim_store s ON fi.store_sk = s.store_sk
            JOIN salesdw.dim_product p ON fi.product_sk = p.product_sk
            GROUP BY s.store_name, p.category
            ORDER BY s.store_name, p.category
            LIMIT $1
        `,
	},
	{
		Name:        "sales_trends",
		Description: "Sales trends by month and product category",
		SQL: `
            SELECT t.year,
                   t.month,
                   p.category,
                   SUM(fs.net_amount)::float8 AS total_sales,
                   COUNT(fs.sale_id) AS number_of_transactions,
                   AVG(fs.net_amount)::float8 AS average_transaction_value
            FROM salesdw.fact_sales fs
            JOIN salesdw.dim_time t ON fs.date_id = t.date_id
            JOIN salesdw.dim_product p ON fs.product_sk = p.product_sk
            GROUP BY t.year, t.month, p.category
            ORDER BY t.year, t.month, total_sales DESC
            LIMIT $1
        `,
	},
	{
		Name:        "top_stores",
		Description: "Top performing stores by revenue",
		SQL: `
            SELECT s.store_name,
                   s.store_type,
                   s.city,
                   s.state,
                   COUNT(fs.sale_id) AS total_transactions,
                   SUM(fs.net_amount)::float8 AS total_revenue,
                   AVG(fs.net_amount)::float8 AS average_transaction_value,
                   COUNT(DISTINCT fs.customer_id) AS unique_customers
            FROM salesdw.fact_sales fs
            JOIN salesdw.dim_store s ON fs.store_sk = s.store_sk
            GROUP BY s.store_name, s.store_type, s.city, s.state
            ORDER BY total_revenue DESC
            LIMIT $1
        `,
	},
	{
		Name:        "purchase_patterns",
		Description: "Purchase patterns by day of week and hour",
		SQL: `
            SELECT t.day_of_week,
                   EXTRACT(HOUR FROM fs.transaction_time)::int AS hour_of_day,
                   COUNT(fs.sale_id) AS number_of_transactions,
                   SUM(fs.net_amount)::float8 AS total_sales,
                   AVG(fs.net_amount)::float8 AS average_transaction_value
            FROM salesdw.fact_sales fs
            JOIN salesdw.dim_time t ON fs.date_id = t.date_id
            GROUP BY t.day_of_week, EXTRACT(HOUR FROM fs.transaction_time)
            ORDER BY t.day_of_week, hour_of_day
            LIMIT $1
        `,
	},
}

// FindQuery looks up a catalog query by name.
func FindQuery(name string) (Query, bool) {
	for _, q := range Queries {
		if q.Name == name {
			return q, true
		}
	}
	return Query{}, false
}

// RunQuery executes a catalog query and renders its result set as an
// aligned text table.
func RunQuery(ctx context.Context, pool *pgxpool.Pool, q Query, limit int, w io.Writer) (int64, error) {
	rows, err := pool.Query(ctx, q.SQL, limit)
	if err != nil {
		return 0, fmt.Errorf("query %s failed: %w", q.Name, err)
	}
	defer rows.Close()

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for i, fd := range rows.FieldDescriptions() {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, fd.Name)
	}
	fmt.Fprintln(tw)

	var count int64
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return count, err
		}
		for i, v := range values {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatValue(v))
		}
		fmt.Fprintln(tw)
		count++
	}
	if err := rows.Err(); err != nil {
		return count, err
	}
	return count, tw.Flush()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.2f", x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
