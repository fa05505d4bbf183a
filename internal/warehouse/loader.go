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
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salesdw/salesdw/internal/csvio"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/model"
	"github.com/salesdw/salesdw/internal/scd"
	"github.com/salesdw/salesdw/internal/validate"
)

// LoaderConfig configures one ETL batch.
type LoaderConfig struct {
	// DataDir is the directory holding the CSV datasets.
	DataDir string

	// DateMin and DateMax bound the valid date range for all rows.
	DateMin time.Time
	DateMax time.Time

	// SCDPolicies holds the per-attribute change-tracking policy for
	// each dimension entity. Missing entities default to all-type1.
	SCDPolicies map[model.Entity]scd.Policy

	// MaxRowErrors caps retained row errors per entity (0 = unlimited).
	MaxRowErrors int

	// LoadDate stamps SCD version boundaries. Zero means today (UTC).
	LoadDate time.Time
}

// Loader runs batch loads against the warehouse. Loads are
// single-writer: dimensions are committed before any fact row is
// written, so fact foreign keys always resolve against durable rows.
type Loader struct {
	pool *pgxpool.Pool
	cfg  LoaderConfig
}

// NewLoader creates a Loader.
func NewLoader(pool *pgxpool.Pool, cfg LoaderConfig) *Loader {
	if cfg.LoadDate.IsZero() {
		now := time.Now().UTC()
		cfg.LoadDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return &Loader{pool: pool, cfg: cfg}
}

func (l *Loader) policy(entity model.Entity) scd.Policy {
	if p, ok := l.cfg.SCDPolicies[entity]; ok {
		return p
	}
	return scd.Policy{}
}

func (l *Loader) path(entity model.Entity) string {
	return filepath.Join(l.cfg.DataDir, csvio.FileNames[entity])
}

// Run executes the full batch: dimensions first, then facts. Row-level
// failures are collected into the report; only unreadable files and
// infrastructure errors abort the batch.
func (l *Loader) Run(ctx context.Context) (*validate.Report, error) {
	report := &validate.Report{
		BatchID:   uuid.NewString(),
		StartedAt: time.Now(),
	}
	v := validate.New(l.cfg.DateMin, l.cfg.DateMax)

	logging.Info().
		Str("batch_id", report.BatchID).
		Str("data_dir", l.cfg.DataDir).
		Msg("Starting load batch")

	if err := l.loadProducts(ctx, v, report); err != nil {
		return report, err
	}
	if err := l.loadCustomers(ctx, v, report); err != nil {
		return report, err
	}
	if err := l.loadTimeRows(ctx, v, report); err != nil {
		return report, err
	}
	if err := l.loadStores(ctx, v, report); err != nil {
		return report, err
	}

	// Dimension rows are durably committed at this point; build the
	// key indexes facts resolve against.
	timeKeys, err := l.timeKeys(ctx)
	if err != nil {
		return report, err
	}
	products, err := l.dimIndex(ctx,
		"SELECT product_sk, product_id, rec_start_date, rec_end_date FROM salesdw.dim_product")
	if err != nil {
		return report, err
	}
	customers, err := l.dimIndex(ctx,
		"SELECT customer_sk, customer_id, rec_start_date, rec_end_date FROM salesdw.dim_customer")
	if err != nil {
		return report, err
	}
	stores, err := l.dimIndex(ctx,
		"SELECT store_sk, store_id, rec_start_date, rec_end_date FROM salesdw.dim_store")
	if err != nil {
		return report, err
	}

	refs := &dimRefs{timeKeys: timeKeys, products: products, customers: customers, stores: stores}

	if err := l.loadSales(ctx, v, report, refs); err != nil {
		return report, err
	}
	if err := l.loadInventory(ctx, v, report, refs); err != nil {
		return report, err
	}

	report.Duration = time.Since(report.StartedAt)

	logging.Info().
		Str("batch_id", report.BatchID).
		Int("accepted", report.TotalAccepted()).
		Int("rejected", report.TotalRejected()).
		Dur("duration", report.Duration).
		Msg("Load batch complete")

	return report, nil
}

// rejectParseErrors folds decode errors into the report, counting one
// rejected row per source line.
func rejectParseErrors(er *validate.EntityReport, errs []*validate.RowError) {
	byLine := make(map[int][]*validate.RowError)
	var lines []int
	for _, e := range errs {
		if _, seen := byLine[e.Line]; !seen {
			lines = append(lines, e.Line)
		}
		byLine[e.Line] = append(byLine[e.Line], e)
	}
	for _, line := range lines {
		er.Reject(byLine[line]...)
	}
}

// classifyDBError converts a constraint violation into a row error.
// Anything that is not a constraint violation is batch-fatal.
func classifyDBError(entity model.Entity, rowID string, line int, err error) (*validate.RowError, error) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, fmt.Errorf("failed to write %s %s: %w", entity, rowID, err)
	}
	switch pgErr.Code {
	case "23503": // foreign_key_violation
		return validate.NewRowError(entity, rowID, line, validate.KindReferential,
			"foreign key violation: %s", pgErr.Detail), nil
	case "23505": // unique_violation
		return validate.NewRowError(entity, rowID, line, validate.KindConsistency,
			"duplicate identifier %q already loaded", rowID), nil
	case "23514": // check_violation
		return validate.NewRowError(entity, rowID, line, validate.KindAccuracy,
			"check constraint %s violated", pgErr.ConstraintName), nil
	case "23502": // not_null_violation
		return validate.NewRowError(entity, rowID, line, validate.KindCompleteness,
			"column %s is required", pgErr.ColumnName), nil
	}
	return nil, fmt.Errorf("failed to write %s %s: %w", entity, rowID, err)
}

//
// Dimension loads
//

func (l *Loader) loadProducts(ctx context.Context, v *validate.Validator, report *validate.Report) error {
	er := report.Entity(model.EntityProduct, l.cfg.MaxRowErrors)
	rows, parseErrs, err := csvio.ReadProducts(l.path(model.EntityProduct))
	if err != nil {
		return err
	}
	rejectParseErrors(er, parseErrs)

	policy := l.policy(model.EntityProduct)
	for _, row := range rows {
		if errs := v.Product(row.Value, row.Line); len(errs) > 0 {
			er.Reject(errs...)
			continue
		}
		action, err := l.upsertProduct(ctx, policy, row.Value)
		if err != nil {
			rowErr, fatal := classifyDBError(model.EntityProduct, row.Value.ProductID, row.Line, err)
			if fatal != nil {
				return fatal
			}
			er.Reject(rowErr)
			continue
		}
		er.Accept()
		logging.Debug().
			Str("product_id", row.Value.ProductID).
			Str("action", action.String()).
			Msg("Loaded product")
	}

	logging.Info().
		Int("accepted", er.Accepted).
		Int("rejected", er.Rejected).
		Msg("dim_product load complete")
	return nil
}

func (l *Loader) upsertProduct(ctx context.Context, policy scd.Policy, p model.Product) (scd.Action, error) {
	var sk int64
	current := model.Product{ProductID: p.ProductID}
	var price, cost string
	err := l.pool.QueryRow(ctx, `
        SELECT product_sk, product_name, category, subcategory, brand,
               unit_price::text, cost::text
        FROM salesdw.dim_product
        WHERE product_id = $1 AND rec_end_date IS NULL
    `, p.ProductID).Scan(&sk, &current.ProductName, &current.Category,
		&current.Subcategory, &current.Brand, &price, &cost)

	if errors.Is(err, pgx.ErrNoRows) {
		// First version: history starts at the row's own creation date.
		_, err := l.pool.Exec(ctx, `
            INSERT INTO salesdw.dim_product
                (product_id, product_name, category, subcategory, brand,
                 unit_price, cost, rec_start_date, created_date, modified_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `, p.ProductID, p.ProductName, p.Category, p.Subcategory, p.Brand,
			p.UnitPrice.String(), p.Cost.String(), p.CreatedDate, p.CreatedDate, p.ModifiedDate)
		return scd.ActionVersion, err
	}
	if err != nil {
		return scd.ActionNone, err
	}
	current.UnitPrice, _ = model.ParseDecimal2(price)
	current.Cost, _ = model.ParseDecimal2(cost)

	action, changed := policy.Decide(current.Attributes(), p.Attributes())
	switch action {
	case scd.ActionNone:
		return action, nil
	case scd.ActionUpdate:
		_, err := l.pool.Exec(ctx, `
            UPDATE salesdw.dim_product
            SET product_name = $2, category = $3, subcategory = $4, brand = $5,
                unit_price = $6, cost = $7, modified_date = $8
            WHERE product_sk = $1
        `, sk, p.ProductName, p.Category, p.Subcategory, p.Brand,
			p.UnitPrice.String(), p.Cost.String(), p.ModifiedDate)
		return action, err
	}

	logging.Debug().
		Str("product_id", p.ProductID).
		Strs("changed", changed).
		Msg("Versioning product")

	return action, l.closeAndInsert(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
            UPDATE salesdw.dim_product SET rec_end_date = $2 WHERE product_sk = $1
        `, sk, l.cfg.LoadDate); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO salesdw.dim_product
                (product_id, product_name, category, subcategory, brand,
                 unit_price, cost, rec_start_date, created_date, modified_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        `, p.ProductID, p.ProductName, p.Category, p.Subcategory, p.Brand,
			p.UnitPrice.String(), p.Cost.String(), l.cfg.LoadDate, p.CreatedDate, p.ModifiedDate)
		return err
	})
}

func (l *Loader) loadCustomers(ctx context.Context, v *validate.Validator, report *validate.Report) error {
	er := report.Entity(model.EntityCustomer, l.cfg.MaxRowErrors)
	rows, parseErrs, err := csvio.ReadCustomers(l.path(model.EntityCustomer))
	if err != nil {
		return err
	}
	rejectParseErrors(er, parseErrs)

	policy := l.policy(model.EntityCustomer)
	for _, row := range rows {
		if errs := v.Customer(row.Value, row.Line); len(errs) > 0 {
			er.Reject(errs...)
			continue
		}
		action, err := l.upsertCustomer(ctx, policy, row.Value)
		if err != nil {
			rowErr, fatal := classifyDBError(model.EntityCustomer, row.Value.CustomerID, row.Line, err)
			if fatal != nil {
				return fatal
			}
			er.Reject(rowErr)
			continue
		}
		er.Accept()
		logging.Debug().
			Str("customer_id", row.Value.CustomerID).
			Str("action", action.String()).
			Msg("Loaded customer")
	}

	logging.Info().
		Int("accepted", er.Accepted).
		Int("rejected", er.Rejected).
		Msg("dim_customer load complete")
	return nil
}

func (l *Loader) upsertCustomer(ctx context.Context, policy scd.Policy, c model.Customer) (scd.Action, error) {
	var sk int64
	current := model.Customer{CustomerID: c.CustomerID}
	var segment string
	err := l.pool.QueryRow(ctx, `
        SELECT customer_sk, first_name, last_name, COALESCE(email, ''),
               COALESCE(phone, ''), address, city, state, country,
               postal_code, customer_segment
        FROM salesdw.dim_customer
        WHERE customer_id = $1 AND rec_end_date IS NULL
    `, c.CustomerID).Scan(&sk, &current.FirstName, &current.LastName,
		&current.Email, &current.Phone, &current.Address, &current.City,
		&current.State, &current.Country, &current.PostalCode, &segment)

	if errors.Is(err, pgx.ErrNoRows) {
		_, err := l.pool.Exec(ctx, `
            INSERT INTO salesdw.dim_customer
                (customer_id, first_name, last_name, email, phone, address,
                 city, state, country, postal_code, customer_segment,
                 rec_start_date, created_date, modified_date)
            VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8,
                    $9, $10, $11, $12, $13, $14)
        `, c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address,
			c.City, c.State, c.Country, c.PostalCode, string(c.Segment),
			c.CreatedDate, c.CreatedDate, c.ModifiedDate)
		return scd.ActionVersion, err
	}
	if err != nil {
		return scd.ActionNone, err
	}
	current.Segment = model.CustomerSegment(segment)

	action, changed := policy.Decide(current.Attributes(), c.Attributes())
	switch action {
	case scd.ActionNone:
		return action, nil
	case scd.ActionUpdate:
		_, err := l.pool.Exec(ctx, `
            UPDATE salesdw.dim_customer
            SET first_name = $2, last_name = $3, email = NULLIF($4, ''),
                phone = NULLIF($5, ''), address = $6, city = $7, state = $8,
                country = $9, postal_code = $10, customer_segment = $11,
                modified_date = $12
            WHERE customer_sk = $1
        `, sk, c.FirstName, c.LastName, c.Email, c.Phone, c.Address, c.City,
			c.State, c.Country, c.PostalCode, string(c.Segment), c.ModifiedDate)
		return action, err
	}

	logging.Debug().
		Str("customer_id", c.CustomerID).
		Strs("changed", changed).
		Msg("Versioning customer")

	return action, l.closeAndInsert(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
            UPDATE salesdw.dim_customer SET rec_end_date = $2 WHERE customer_sk = $1
        `, sk, l.cfg.LoadDate); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO salesdw.dim_customer
                (customer_id, first_name, last_name, email, phone, address,
                 city, state, country, postal_code, customer_segment,
                 rec_start_date, created_date, modified_date)
            VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8,
                    $9, $10, $11, $12, $13, $14)
        `, c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address,
			c.City, c.State, c.Country, c.PostalCode, string(c.Segment),
			l.cfg.LoadDate, c.CreatedDate, c.ModifiedDate)
		return err
	})
}

func (l *Loader) loadTimeRows(ctx context.Context, v *validate.Validator, report *validate.Report) error {
	er := report.Entity(model.EntityTime, l.cfg.MaxRowErrors)
	rows, parseErrs, err := csvio.ReadTimeRows(l.path(model.EntityTime))
	if err != nil {
		return err
	}
	rejectParseErrors(er, parseErrs)

	for _, row := range rows {
		if errs := v.TimeRow(row.Value, row.Line); len(errs) > 0 {
			er.Reject(errs...)
			continue
		}
		t := row.Value
		// Calendar rows never change; a reload is a no-op.
		_, err := l.pool.Exec(ctx, `
            INSERT INTO salesdw.dim_time
                (date_id, full_date, day_of_week, day_of_month, day_of_year,
                 week_of_year, month, quarter, year, is_holiday, holiday_name)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
            ON CONFLICT (date_id) DO NOTHING
        `, string(t.DateID), t.FullDate, t.DayOfWeek, t.DayOfMonth, t.DayOfYear,
			t.WeekOfYear, t.Month, t.Quarter, t.Year, t.IsHoliday, t.HolidayName)
		if err != nil {
			rowErr, fatal := classifyDBError(model.EntityTime, string(t.DateID), row.Line, err)
			if fatal != nil {
				return fatal
			}
			er.Reject(rowErr)
			continue
		}
		er.Accept()
	}

	logging.Info().
		Int("accepted", er.Accepted).
		Int("rejected", er.Rejected).
		Msg("dim_time load complete")
	return nil
}

func (l *Loader) loadStores(ctx context.Context, v *validate.Validator, report *validate.Report) error {
	er := report.Entity(model.EntityStore, l.cfg.MaxRowErrors)
	rows, parseErrs, err := csvio.ReadStores(l.path(model.EntityStore))
	if err != nil {
		return err
	}
	rejectParseErrors(er, parseErrs)

	policy := l.policy(model.EntityStore)
	for _, row := range rows {
		if errs := v.Store(row.Value, row.Line); len(errs) > 0 {
			er.Reject(errs...)
			continue
		}
		action, err := l.upsertStore(ctx, policy, row.Value)
		if err != nil {
			rowErr, fatal := classifyDBError(model.EntityStore, row.Value.StoreID, row.Line, err)
			if fatal != nil {
				return fatal
			}
			er.Reject(rowErr)
			continue
		}
		er.Accept()
		logging.Debug().
			Str("store_id", row.Value.StoreID).
			Str("action", action.String()).
			Msg("Loaded store")
	}

	logging.Info().
		Int("accepted", er.Accepted).
		Int("rejected", er.Rejected).
		Msg("dim_store load complete")
	return nil
}

func (l *Loader) upsertStore(ctx context.Context, policy scd.Policy, s model.Store) (scd.Action, error) {
	var sk int64
	current := model.Store{StoreID: s.StoreID}
	var storeType, size string
	err := l.pool.QueryRow(ctx, `
        SELECT store_sk, store_name, address, city, state, country,
               postal_code, manager, opening_date, store_type, store_size::text
        FROM salesdw.dim_store
        WHERE store_id = $1 AND rec_end_date IS NULL
    `, s.StoreID).Scan(&sk, &current.StoreName, &current.Address, &current.City,
		&current.State, &current.Country, &current.PostalCode, &current.Manager,
		&current.OpeningDate, &storeType, &size)

	if errors.Is(err, pgx.ErrNoRows) {
		_, err := l.pool.Exec(ctx, `
            INSERT INTO salesdw.dim_store
                (store_id, store_name, address, city, state, country,
                 postal_code, manager, opening_date, store_type, store_size,
                 rec_start_date, created_date, modified_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        `, s.StoreID, s.StoreName, s.Address, s.City, s.State, s.Country,
			s.PostalCode, s.Manager, s.OpeningDate, string(s.StoreType),
			s.StoreSize.String(), s.CreatedDate, s.CreatedDate, s.ModifiedDate)
		return scd.ActionVersion, err
	}
	if err != nil {
		return scd.ActionNone, err
	}
	current.StoreType = model.StoreType(storeType)
	current.StoreSize, _ = model.ParseDecimal2(size)

	action, changed := policy.Decide(current.Attributes(), s.Attributes())
	switch action {
	case scd.ActionNone:
		return action, nil
	case scd.ActionUpdate:
		_, err := l.pool.Exec(ctx, `
            UPDATE salesdw.dim_store
            SET store_name = $2, address = $3, city = $4, state = $5,
                country = $6, postal_code = $7, manager = $8, opening_date = $9,
                store_type = $10, store_size = $11, modified_date = $12
            WHERE store_sk = $1
        `, sk, s.StoreName, s.Address, s.City, s.State, s.Country, s.PostalCode,
			s.Manager, s.OpeningDate, string(s.StoreType), s.StoreSize.String(),
			s.ModifiedDate)
		return action, err
	}

	logging.Debug().
		Str("store_id", s.StoreID).
		Strs("changed", changed).
		Msg("Versioning store")

	return action, l.closeAndInsert(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
            UPDATE salesdw.dim_store SET rec_end_date = $2 WHERE store_sk = $1
        `, sk, l.cfg.LoadDate); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
            INSERT INTO salesdw.dim_store
                (store_id, store_name, address, city, state, country,
                 postal_code, manager, opening_date, store_type, store_size,
                 rec_start_date, created_date, modified_date)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        `, s.StoreID, s.StoreName, s.Address, s.City, s.State, s.Country,
			s.PostalCode, s.Manager, s.OpeningDate, string(s.StoreType),
			s.StoreSize.String(), l.cfg.LoadDate, s.CreatedDate, s.ModifiedDate)
		return err
	})
}

// closeAndInsert runs a type2 close-and-insert atomically: there is no
// moment where the natural key has zero or two current versions visible
// to a committed reader.
func (l *Loader) closeAndInsert(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := l.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

//
// Fact loads
//

// dimVersion is one version of a dimension row.
type dimVersion struct {
	sk    int64
	start time.Time
	end   *time.Time // nil = current
}

// dimIndex maps natural keys to their version history.
type dimIndex map[string][]dimVersion

// resolve returns the surrogate key of the version valid as of the
// given date. A fact dated before the earliest version attributes to
// that earliest version, since history cannot predate first knowledge
// of the row.
func (ix dimIndex) resolve(key string, asOf time.Time) (int64, bool) {
	versions := ix[key]
	if len(versions) == 0 {
		return 0, false
	}
	var earliest *dimVersion
	for i := range versions {
		v := &versions[i]
		if earliest == nil || v.start.Before(earliest.start) {
			earliest = v
		}
		if v.start.After(asOf) {
			continue
		}
		if v.end == nil || asOf.Before(*v.end) {
			return v.sk, true
		}
	}
	if asOf.Before(earliest.start) {
		return earliest.sk, true
	}
	return 0, false
}

// dimRefs holds the dimension key indexes used to resolve fact rows.
type dimRefs struct {
	timeKeys  map[model.DateID]bool
	products  dimIndex
	customers dimIndex
	stores    dimIndex
}

func (l *Loader) timeKeys(ctx context.Context) (map[model.DateID]bool, error) {
	rows, err := l.pool.Query(ctx, "SELECT date_id FROM salesdw.dim_time")
	if err != nil {
		return nil, fmt.Errorf("failed to index dim_time: %w", err)
	}
	defer rows.Close()

	keys := make(map[model.DateID]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		keys[model.DateID(id)] = true
	}
	return keys, rows.Err()
}

func (l *Loader) dimIndex(ctx context.Context, sql string) (dimIndex, error) {
	rows, err := l.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to index dimension: %w", err)
	}
	defer rows.Close()

	ix := make(dimIndex)
	for rows.Next() {
		var sk int64
		var key string
		var start time.Time
		var end *time.Time
		if err := rows.Scan(&sk, &key, &start, &end); err != nil {
			return nil, err
		}
		ix[key] = append(ix[key], dimVersion{sk: sk, start: start, end: end})
	}
	return ix, rows.Err()
}

func (l *Loader) loadSales(ctx context.Context, v *validate.Validator, report *validate.Report, refs *dimRefs) error {
	er := report.Entity(model.EntitySales, l.cfg.MaxRowErrors)
	rows, parseErrs, err := csvio.ReadSales(l.path(model.EntitySales))
	if err != nil {
		return err
	}
	rejectParseErrors(er, parseErrs)

	for _, row := range rows {
		s := row.Value
		if errs := v.Sale(s, row.Line); len(errs) > 0 {
			er.Reject(errs...)
			continue
		}

		factDate, _ := s.DateID.Date()
		var refErrs []*validate.RowError
		if !refs.timeKeys[s.DateID] {
			refErrs = append(refErrs, validate.NewRowError(model.EntitySales, s.SaleID,
				row.Line, validate.KindReferential,
				"date_id %s does not resolve to a time dimension row", s.DateID))
		}
		productSK, ok := refs.products.resolve(s.ProductID, factDate)
		if !ok {
			refErrs = append(refErrs, validate.NewRowError(model.EntitySales, s.SaleID,
				row.Line, validate.KindReferential,
				"product_id %s does not resolve to a product valid on %s",
				s.ProductID, factDate.Format("2006-01-02")))
		}
		customerSK, ok := refs.customers.resolve(s.CustomerID, factDate)
		if !ok {
			refErrs = append(refErrs, validate.NewRowError(model.EntitySales, s.SaleID,
				row.Line, validate.KindReferential,
				"customer_id %s does not resolve to a customer valid on %s",
				s.CustomerID, factDate.Format("2006-01-02")))
		}
		storeSK, ok := refs.stores.resolve(s.StoreID, factDate)
		if !ok {
			refErrs = append(refErrs, validate.NewRowError(model.EntitySales, s.SaleID,
				row.Line, validate.KindReferential,
				"store_id %s does not resolve to a store valid on %s",
				s.StoreID, factDate.Format("2006-01-02")))
		}
		if len(refErrs) > 0 {
			er.Reject(refErrs...)
			continue
		}

		_, err := l.pool.Exec(ctx, `
            INSERT INTO salesdw.fact_sales
                (sale_id, date_id, product_sk, customer_sk, store_sk,
                 product_id, customer_id, store_id, quantity, unit_price,
                 total_amount, discount_amount, net_amount, payment_method,
                 transaction_time)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        `, s.SaleID, string(s.DateID), productSK, customerSK, storeSK,
			s.ProductID, s.CustomerID, s.StoreID, s.Quantity,
			s.UnitPrice.String(), s.TotalAmount.String(),
			s.DiscountAmount.String(), s.NetAmount.String(),
			string(s.PaymentMethod), s.TransactionTime)
		if err != nil {
			rowErr, fatal := classifyDBError(model.EntitySales, s.SaleID, row.Line, err)
			if fatal != nil {
				return fatal
			}
			er.Reject(rowErr)
			continue
		}
		er.Accept()
	}

	logging.Info().
		Int("accepted", er.Accepted).
		Int("rejected", er.Rejected).
		Msg("fact_sales load complete")
	return nil
}

func (l *Loader) loadInventory(ctx context.Context, v *validate.Validator, report *validate.Report, refs *dimRefs) error {
	er := report.Entity(model.EntityInventory, l.cfg.MaxRowErrors)
	rows, parseErrs, err := csvio.ReadInventory(l.path(model.EntityInventory))
	if err != nil {
		return err
	}
	rejectParseErrors(er, parseErrs)

	for _, row := range rows {
		inv := row.Value
		if errs := v.Inventory(inv, row.Line); len(errs) > 0 {
			er.Reject(errs...)
			continue
		}

		factDate, _ := inv.DateID.Date()
		var refErrs []*validate.RowError
		if !refs.timeKeys[inv.DateID] {
			refErrs = append(refErrs, validate.NewRowError(model.EntityInventory, inv.InventoryID,
				row.Line, validate.KindReferential,
				"date_id %s does not resolve to a time dimension row", inv.DateID))
		}
		productSK, ok := refs.products.resolve(inv.ProductID, factDate)
		if !ok {
			refErrs = append(refErrs, validate.NewRowError(model.EntityInventory, inv.InventoryID,
				row.Line, validate.KindReferential,
				"product_id %s does not resolve to a product valid on %s",
				inv.ProductID, factDate.Format("2006-01-02")))
		}
		storeSK, ok := refs.stores.resolve(inv.StoreID, factDate)
		if !ok {
			refErrs = append(refErrs, validate.NewRowError(model.EntityInventory, inv.InventoryID,
				row.Line, validate.KindReferential,
				"store_id %s does not resolve to a store valid on %s",
				inv.StoreID, factDate.Format("2006-01-02")))
		}
		if len(refErrs) > 0 {
			er.Reject(refErrs...)
			continue
		}

		_, err := l.pool.Exec(ctx, `
            INSERT INTO salesdw.fact_inventory
                (inventory_id, date_id, product_sk, store_sk, product_id,
                 store_id, beginning_quantity, ending_quantity, units_received,
                 units_sold, units_damaged, reorder_point, reorder_quantity)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        `, inv.InventoryID, string(inv.DateID), productSK, storeSK,
			inv.ProductID, inv.StoreID, inv.BeginningQuantity, inv.EndingQuantity,
			inv.UnitsReceived, inv.UnitsSold, inv.UnitsDamaged,
			inv.ReorderPoint, inv.ReorderQuantity)
		if err != nil {
			rowErr, fatal := classifyDBError(model.EntityInventory, inv.InventoryID, row.Line, err)
			if fatal != nil {
				return fatal
			}
			er.Reject(rowErr)
			continue
		}
		er.Accept()
	}

	logging.Info().
		Int("accepted", er.Accepted).
		Int("rejected", er.Rejected).
		Msg("fact_inventory load complete")
	return nil
}
