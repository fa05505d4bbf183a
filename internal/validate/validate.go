//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package validate

import (
	"net/mail"
	"time"

	"github.com/salesdw/salesdw/internal/model"
)

// Validator applies the per-row quality rules for one load batch.
// It tracks identifiers seen so far, so duplicate detection spans the
// whole batch. Not safe for concurrent use; loads are single-writer.
type Validator struct {
	dateMin time.Time
	dateMax time.Time
	seen    map[model.Entity]map[string]bool
}

// New creates a Validator enforcing the given valid date range.
func New(dateMin, dateMax time.Time) *Validator {
	return &Validator{
		dateMin: dateMin,
		dateMax: dateMax,
		seen:    make(map[model.Entity]map[string]bool),
	}
}

// checkUnique records the key and reports a duplicate if already seen.
func (v *Validator) checkUnique(entity model.Entity, key string, line int) *RowError {
	keys := v.seen[entity]
	if keys == nil {
		keys = make(map[string]bool)
		v.seen[entity] = keys
	}
	if keys[key] {
		return NewRowError(entity, key, line, KindConsistency,
			"duplicate identifier %q in batch", key)
	}
	keys[key] = true
	return nil
}

// checkDateRange reports a date outside the configured valid range.
func (v *Validator) checkDateRange(entity model.Entity, key string, line int, field string, d time.Time) *RowError {
	if d.Before(v.dateMin) || d.After(v.dateMax) {
		return NewRowError(entity, key, line, KindConsistency,
			"%s %s outside valid range [%s, %s]",
			field, d.Format("2006-01-02"),
			v.dateMin.Format("2006-01-02"), v.dateMax.Format("2006-01-02"))
	}
	return nil
}

func appendErr(errs []*RowError, e *RowError) []*RowError {
	if e != nil {
		errs = append(errs, e)
	}
	return errs
}

// Product validates a product dimension row.
func (v *Validator) Product(p model.Product, line int) []*RowError {
	const entity = model.EntityProduct
	var errs []*RowError

	if p.ProductID == "" {
		return append(errs, NewRowError(entity, "", line, KindCompleteness,
			"product_id is required"))
	}
	errs = appendErr(errs, v.checkUnique(entity, p.ProductID, line))

	if p.UnitPrice <= 0 {
		errs = append(errs, NewRowError(entity, p.ProductID, line, KindConsistency,
			"unit_price must be positive, got %s", p.UnitPrice))
	}
	if p.Cost <= 0 {
		errs = append(errs, NewRowError(entity, p.ProductID, line, KindConsistency,
			"cost must be positive, got %s", p.Cost))
	}
	errs = appendErr(errs, v.checkDateRange(entity, p.ProductID, line, "created_date", p.CreatedDate))
	errs = appendErr(errs, v.checkDateRange(entity, p.ProductID, line, "modified_date", p.ModifiedDate))

	return errs
}

// Customer validates a customer dimension row.
func (v *Validator) Customer(c model.Customer, line int) []*RowError {
	const entity = model.EntityCustomer
	var errs []*RowError

	if c.CustomerID == "" {
		return append(errs, NewRowError(entity, "", line, KindCompleteness,
			"customer_id is required"))
	}
	errs = appendErr(errs, v.checkUnique(entity, c.CustomerID, line))

	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			errs = append(errs, NewRowError(entity, c.CustomerID, line, KindConsistency,
				"invalid email address %q", c.Email))
		}
	}
	if _, err := model.ParseCustomerSegment(string(c.Segment)); err != nil {
		errs = append(errs, NewRowError(entity, c.CustomerID, line, KindConsistency,
			"%v", err))
	}
	errs = appendErr(errs, v.checkDateRange(entity, c.CustomerID, line, "created_date", c.CreatedDate))
	errs = appendErr(errs, v.checkDateRange(entity, c.CustomerID, line, "modified_date", c.ModifiedDate))

	return errs
}

// TimeRow validates a time dimension row. The derived calendar fields
// must match what the full date dictates, field for field.
func (v *Validator) TimeRow(t model.TimeRow, line int) []*RowError {
	const entity = model.EntityTime
	var errs []*RowError

	if t.DateID == "" {
		return append(errs, NewRowError(entity, "", line, KindCompleteness,
			"date_id is required"))
	}
	errs = appendErr(errs, v.checkUnique(entity, string(t.DateID), line))
	errs = appendErr(errs, v.checkDateRange(entity, string(t.DateID), line, "full_date", t.FullDate))

	want := model.Calendar(t.FullDate)
	key := string(t.DateID)
	if t.DateID != want.DateID {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"date_id %s does not encode full_date %s", t.DateID, t.FullDate.Format("2006-01-02")))
	}
	if t.DayOfWeek != want.DayOfWeek {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"day_of_week %q, want %q", t.DayOfWeek, want.DayOfWeek))
	}
	if t.DayOfMonth != want.DayOfMonth {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"day_of_month %d, want %d", t.DayOfMonth, want.DayOfMonth))
	}
	if t.DayOfYear != want.DayOfYear {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"day_of_year %d, want %d", t.DayOfYear, want.DayOfYear))
	}
	if t.WeekOfYear != want.WeekOfYear {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"week_of_year %d, want %d", t.WeekOfYear, want.WeekOfYear))
	}
	if t.Month != want.Month {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"month %d, want %d", t.Month, want.Month))
	}
	if t.Quarter != want.Quarter {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"quarter %d, want %d", t.Quarter, want.Quarter))
	}
	if t.Year != want.Year {
		errs = append(errs, NewRowError(entity, key, line, KindAccuracy,
			"year %d, want %d", t.Year, want.Year))
	}

	return errs
}

// Store validates a store dimension row.
func (v *Validator) Store(s model.Store, line int) []*RowError {
	const entity = model.EntityStore
	var errs []*RowError

	if s.StoreID == "" {
		return append(errs, NewRowError(entity, "", line, KindCompleteness,
			"store_id is required"))
	}
	errs = appendErr(errs, v.checkUnique(entity, s.StoreID, line))

	if _, err := model.ParseStoreType(string(s.StoreType)); err != nil {
		errs = append(errs, NewRowError(entity, s.StoreID, line, KindConsistency,
			"%v", err))
	}
	if s.StoreSize <= 0 {
		errs = append(errs, NewRowError(entity, s.StoreID, line, KindConsistency,
			"store_size must be positive, got %s", s.StoreSize))
	}
	errs = appendErr(errs, v.checkDateRange(entity, s.StoreID, line, "opening_date", s.OpeningDate))

	return errs
}

// Sale validates a sales fact row: non-negative measures and the exact
// monetary identities total = quantity * unit_price and
// net = total - discount, with discount never exceeding total.
func (v *Validator) Sale(s model.Sale, line int) []*RowError {
	const entity = model.EntitySales
	var errs []*RowError

	if s.SaleID == "" {
		return append(errs, NewRowError(entity, "", line, KindCompleteness,
			"sale_id is required"))
	}
	errs = appendErr(errs, v.checkUnique(entity, s.SaleID, line))

	if d, err := s.DateID.Date(); err != nil {
		errs = append(errs, NewRowError(entity, s.SaleID, line, KindConsistency, "%v", err))
	} else {
		errs = appendErr(errs, v.checkDateRange(entity, s.SaleID, line, "date_id", d))
	}

	if s.Quantity < 0 {
		errs = append(errs, NewRowError(entity, s.SaleID, line, KindConsistency,
			"quantity must be non-negative, got %d", s.Quantity))
	}
	for _, m := range []struct {
		name  string
		value model.Decimal2
	}{
		{"unit_price", s.UnitPrice},
		{"total_amount", s.TotalAmount},
		{"discount_amount", s.DiscountAmount},
		{"net_amount", s.NetAmount},
	} {
		if m.value < 0 {
			errs = append(errs, NewRowError(entity, s.SaleID, line, KindConsistency,
				"%s must be non-negative, got %s", m.name, m.value))
		}
	}
	if _, err := model.ParsePaymentMethod(string(s.PaymentMethod)); err != nil {
		errs = append(errs, NewRowError(entity, s.SaleID, line, KindConsistency,
			"%v", err))
	}

	if s.Quantity >= 0 {
		if want := s.UnitPrice.MulInt(s.Quantity); s.TotalAmount != want {
			errs = append(errs, NewRowError(entity, s.SaleID, line, KindAccuracy,
				"total_amount %s, want quantity * unit_price = %s", s.TotalAmount, want))
		}
	}
	if s.DiscountAmount > s.TotalAmount {
		errs = append(errs, NewRowError(entity, s.SaleID, line, KindConsistency,
			"discount_amount %s exceeds total_amount %s", s.DiscountAmount, s.TotalAmount))
	}
	if want := s.TotalAmount.Sub(s.DiscountAmount); s.NetAmount != want {
		errs = append(errs, NewRowError(entity, s.SaleID, line, KindAccuracy,
			"net_amount %s, want total_amount - discount_amount = %s", s.NetAmount, want))
	}

	return errs
}

// Inventory validates an inventory fact row: non-negative quantities
// and the stock balance ending = beginning + received - sold - damaged.
func (v *Validator) Inventory(i model.Inventory, line int) []*RowError {
	const entity = model.EntityInventory
	var errs []*RowError

	if i.InventoryID == "" {
		return append(errs, NewRowError(entity, "", line, KindCompleteness,
			"inventory_id is required"))
	}
	errs = appendErr(errs, v.checkUnique(entity, i.InventoryID, line))

	if d, err := i.DateID.Date(); err != nil {
		errs = append(errs, NewRowError(entity, i.InventoryID, line, KindConsistency, "%v", err))
	} else {
		errs = appendErr(errs, v.checkDateRange(entity, i.InventoryID, line, "date_id", d))
	}

	for _, q := range []struct {
		name  string
		value int
	}{
		{"beginning_quantity", i.BeginningQuantity},
		{"ending_quantity", i.EndingQuantity},
		{"units_received", i.UnitsReceived},
		{"units_sold", i.UnitsSold},
		{"units_damaged", i.UnitsDamaged},
		{"reorder_point", i.ReorderPoint},
		{"reorder_quantity", i.ReorderQuantity},
	} {
		if q.value < 0 {
			errs = append(errs, NewRowError(entity, i.InventoryID, line, KindConsistency,
				"%s must be non-negative, got %d", q.name, q.value))
		}
	}

	want := i.BeginningQuantity + i.UnitsReceived - i.UnitsSold - i.UnitsDamaged
	if i.EndingQuantity != want {
		errs = append(errs, NewRowError(entity, i.InventoryID, line, KindAccuracy,
			"ending_quantity %d, want beginning + received - sold - damaged = %d",
			i.EndingQuantity, want))
	}

	return errs
}
