//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package csvio reads the warehouse source datasets: one CSV file per
// entity, headers fixed by the entity contract. A header that does not
// match is batch-fatal; everything else is reported per row.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/salesdw/salesdw/internal/model"
	"github.com/salesdw/salesdw/internal/validate"
)

// FileNames maps each entity to its dataset file name.
var FileNames = map[model.Entity]string{
	model.EntityProduct:   "products.csv",
	model.EntityCustomer:  "customers.csv",
	model.EntityTime:      "time_dimension.csv",
	model.EntityStore:     "stores.csv",
	model.EntitySales:     "sales.csv",
	model.EntityInventory: "inventory.csv",
}

// Headers maps each entity to its required column set, in order.
var Headers = map[model.Entity][]string{
	model.EntityProduct: {
		"product_id", "product_name", "category", "subcategory", "brand",
		"unit_price", "cost", "created_date", "modified_date",
	},
	model.EntityCustomer: {
		"customer_id", "first_name", "last_name", "email", "phone",
		"address", "city", "state", "country", "postal_code",
		"customer_segment", "created_date", "modified_date",
	},
	model.EntityTime: {
		"date_id", "full_date", "day_of_week", "day_of_month", "day_of_year",
		"week_of_year", "month", "quarter", "year", "is_holiday", "holiday_name",
	},
	model.EntityStore: {
		"store_id", "store_name", "address", "city", "state", "country",
		"postal_code", "manager", "opening_date", "store_type", "store_size",
		"created_date", "modified_date",
	},
	model.EntitySales: {
		"sale_id", "date_id", "product_id", "customer_id", "store_id",
		"quantity", "unit_price", "total_amount", "discount_amount",
		"net_amount", "payment_method", "transaction_time",
	},
	model.EntityInventory: {
		"inventory_id", "date_id", "product_id", "store_id",
		"beginning_quantity", "ending_quantity", "units_received",
		"units_sold", "units_damaged", "reorder_point", "reorder_quantity",
	},
}

// TimestampFormat is the wire format for fact transaction times.
const TimestampFormat = "2006-01-02 15:04:05"

// Row pairs a decoded value with its 1-based line number in the file.
type Row[T any] struct {
	Value T
	Line  int
}

// record is one raw CSV record with its line number.
type record struct {
	fields []string
	line   int
}

// readRecords opens a file, verifies the header, and returns the data
// records. The returned error is a *validate.FileError on header
// mismatch, or an I/O error.
func readRecords(entity model.Entity, path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s dataset: %w", entity, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field count checked per row

	header, err := r.Read()
	if err != nil {
		return nil, &validate.FileError{
			Entity:  entity,
			Path:    path,
			Message: fmt.Sprintf("cannot read header: %v", err),
		}
	}

	want := Headers[entity]
	if len(header) != len(want) {
		return nil, &validate.FileError{
			Entity:  entity,
			Path:    path,
			Message: fmt.Sprintf("header has %d columns, want %d", len(header), len(want)),
		}
	}
	for i, col := range want {
		if strings.TrimSpace(header[i]) != col {
			return nil, &validate.FileError{
				Entity:  entity,
				Path:    path,
				Message: fmt.Sprintf("column %d is %q, want %q", i+1, header[i], col),
			}
		}
	}

	var records []record
	line := 1
	for {
		line++
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed reading %s dataset at line %d: %w", entity, line, err)
		}
		records = append(records, record{fields: fields, line: line})
	}
	return records, nil
}

// decoder accumulates field-level errors while decoding one record.
type decoder struct {
	entity model.Entity
	rowID  string
	line   int
	errs   []*validate.RowError
}

func (d *decoder) fail(kind validate.Kind, format string, args ...any) {
	d.errs = append(d.errs,
		validate.NewRowError(d.entity, d.rowID, d.line, kind, format, args...))
}

func (d *decoder) required(name, v string) string {
	if strings.TrimSpace(v) == "" {
		d.fail(validate.KindCompleteness, "%s is required", name)
		return ""
	}
	return v
}

func (d *decoder) date(name, v string) time.Time {
	if d.required(name, v) == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		d.fail(validate.KindConsistency, "%s %q is not a valid date", name, v)
		return time.Time{}
	}
	return t
}

func (d *decoder) timestamp(name, v string) time.Time {
	if d.required(name, v) == "" {
		return time.Time{}
	}
	t, err := time.Parse(TimestampFormat, v)
	if err != nil {
		d.fail(validate.KindConsistency, "%s %q is not a valid timestamp", name, v)
		return time.Time{}
	}
	return t
}

func (d *decoder) decimal(name, v string) model.Decimal2 {
	if d.required(name, v) == "" {
		return 0
	}
	m, err := model.ParseDecimal2(v)
	if err != nil {
		d.fail(validate.KindConsistency,
			"%s %q is not a decimal with two fractional digits", name, v)
		return 0
	}
	return m
}

func (d *decoder) integer(name, v string) int {
	if d.required(name, v) == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		d.fail(validate.KindConsistency, "%s %q is not an integer", name, v)
		return 0
	}
	return n
}

func (d *decoder) boolean(name, v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "t", "1":
		return true
	case "false", "f", "0", "":
		return false
	}
	d.fail(validate.KindConsistency, "%s %q is not a boolean", name, v)
	return false
}

// checkWidth reports a row whose field count does not match the header.
func checkWidth(entity model.Entity, rec record) *validate.RowError {
	want := len(Headers[entity])
	if len(rec.fields) != want {
		return validate.NewRowError(entity, "", rec.line, validate.KindSchema,
			"row has %d fields, want %d", len(rec.fields), want)
	}
	return nil
}

// ReadProducts reads and decodes the product dataset.
func ReadProducts(path string) ([]Row[model.Product], []*validate.RowError, error) {
	records, err := readRecords(model.EntityProduct, path)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row[model.Product]
	var rowErrs []*validate.RowError
	for _, rec := range records {
		if e := checkWidth(model.EntityProduct, rec); e != nil {
			rowErrs = append(rowErrs, e)
			continue
		}
		d := &decoder{entity: model.EntityProduct, rowID: rec.fields[0], line: rec.line}
		p := model.Product{
			ProductID:    d.required("product_id", rec.fields[0]),
			ProductName:  d.required("product_name", rec.fields[1]),
			Category:     d.required("category", rec.fields[2]),
			Subcategory:  d.required("subcategory", rec.fields[3]),
			Brand:        d.required("brand", rec.fields[4]),
			UnitPrice:    d.decimal("unit_price", rec.fields[5]),
			Cost:         d.decimal("cost", rec.fields[6]),
			CreatedDate:  d.date("created_date", rec.fields[7]),
			ModifiedDate: d.date("modified_date", rec.fields[8]),
		}
		if len(d.errs) > 0 {
			rowErrs = append(rowErrs, d.errs...)
			continue
		}
		rows = append(rows, Row[model.Product]{Value: p, Line: rec.line})
	}
	return rows, rowErrs, nil
}

// ReadCustomers reads and decodes the customer dataset.
func ReadCustomers(path string) ([]Row[model.Customer], []*validate.RowError, error) {
	records, err := readRecords(model.EntityCustomer, path)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row[model.Customer]
	var rowErrs []*validate.RowError
	for _, rec := range records {
		if e := checkWidth(model.EntityCustomer, rec); e != nil {
			rowErrs = append(rowErrs, e)
			continue
		}
		d := &decoder{entity: model.EntityCustomer, rowID: rec.fields[0], line: rec.line}
		c := model.Customer{
			CustomerID:   d.required("customer_id", rec.fields[0]),
			FirstName:    d.required("first_name", rec.fields[1]),
			LastName:     d.required("last_name", rec.fields[2]),
			Email:        rec.fields[3], // optional
			Phone:        rec.fields[4], // optional
			Address:      d.required("address", rec.fields[5]),
			City:         d.required("city", rec.fields[6]),
			State:        d.required("state", rec.fields[7]),
			Country:      d.required("country", rec.fields[8]),
			PostalCode:   d.required("postal_code", rec.fields[9]),
			Segment:      model.CustomerSegment(d.required("customer_segment", rec.fields[10])),
			CreatedDate:  d.date("created_date", rec.fields[11]),
			ModifiedDate: d.date("modified_date", rec.fields[12]),
		}
		if len(d.errs) > 0 {
			rowErrs = append(rowErrs, d.errs...)
			continue
		}
		rows = append(rows, Row[model.Customer]{Value: c, Line: rec.line})
	}
	return rows, rowErrs, nil
}

// ReadTimeRows reads and decodes the time dimension dataset.
func ReadTimeRows(path string) ([]Row[model.TimeRow], []*validate.RowError, error) {
	records, err := readRecords(model.EntityTime, path)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row[model.TimeRow]
	var rowErrs []*validate.RowError
	for _, rec := range records {
		if e := checkWidth(model.EntityTime, rec); e != nil {
			rowErrs = append(rowErrs, e)
			continue
		}
		d := &decoder{entity: model.EntityTime, rowID: rec.fields[0], line: rec.line}
		t := model.TimeRow{
			DateID:      model.DateID(d.required("date_id", rec.fields[0])),
			FullDate:    d.date("full_date", rec.fields[1]),
			DayOfWeek:   d.required("day_of_week", rec.fields[2]),
			DayOfMonth:  d.integer("day_of_month", rec.fields[3]),
			DayOfYear:   d.integer("day_of_year", rec.fields[4]),
			WeekOfYear:  d.integer("week_of_year", rec.fields[5]),
			Month:       d.integer("month", rec.fields[6]),
			Quarter:     d.integer("quarter", rec.fields[7]),
			Year:        d.integer("year", rec.fields[8]),
			IsHoliday:   d.boolean("is_holiday", rec.fields[9]),
			HolidayName: rec.fields[10], // optional
		}
		if len(d.errs) > 0 {
			rowErrs = append(rowErrs, d.errs...)
			continue
		}
		rows = append(rows, Row[model.TimeRow]{Value: t, Line: rec.line})
	}
	return rows, rowErrs, nil
}

// ReadStores reads and decodes the store dataset.
func ReadStores(path string) ([]Row[model.Store], []*validate.RowError, error) {
	records, err := readRecords(model.EntityStore, path)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row[model.Store]
	var rowErrs []*validate.RowError
	for _, rec := range records {
		if e := checkWidth(model.EntityStore, rec); e != nil {
			rowErrs = append(rowErrs, e)
			continue
		}
		d := &decoder{entity: model.EntityStore, rowID: rec.fields[0], line: rec.line}
		s := model.Store{
			StoreID:      d.required("store_id", rec.fields[0]),
			StoreName:    d.required("store_name", rec.fields[1]),
			Address:      d.required("address", rec.fields[2]),
			City:         d.required("city", rec.fields[3]),
			State:        d.required("state", rec.fields[4]),
			Country:      d.required("country", rec.fields[5]),
			PostalCode:   d.required("postal_code", rec.fields[6]),
			Manager:      d.required("manager", rec.fields[7]),
			OpeningDate:  d.date("opening_date", rec.fields[8]),
			StoreType:    model.StoreType(d.required("store_type", rec.fields[9])),
			StoreSize:    d.decimal("store_size", rec.fields[10]),
			CreatedDate:  d.date("created_date", rec.fields[11]),
			ModifiedDate: d.date("modified_date", rec.fields[12]),
		}
		if len(d.errs) > 0 {
			rowErrs = append(rowErrs, d.errs...)
			continue
		}
		rows = append(rows, Row[model.Store]{Value: s, Line: rec.line})
	}
	return rows, rowErrs, nil
}

// ReadSales reads and decodes the sales fact dataset.
func ReadSales(path string) ([]Row[model.Sale], []*validate.RowError, error) {
	records, err := readRecords(model.EntitySales, path)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row[model.Sale]
	var rowErrs []*validate.RowError
	for _, rec := range records {
		if e := checkWidth(model.EntitySales, rec); e != nil {
			rowErrs = append(rowErrs, e)
			continue
		}
		d := &decoder{entity: model.EntitySales, rowID: rec.fields[0], line: rec.line}
		s := model.Sale{
			SaleID:          d.required("sale_id", rec.fields[0]),
			DateID:          model.DateID(d.required("date_id", rec.fields[1])),
			ProductID:       d.required("product_id", rec.fields[2]),
			CustomerID:      d.required("customer_id", rec.fields[3]),
			StoreID:         d.required("store_id", rec.fields[4]),
			Quantity:        d.integer("quantity", rec.fields[5]),
			UnitPrice:       d.decimal("unit_price", rec.fields[6]),
			TotalAmount:     d.decimal("total_amount", rec.fields[7]),
			DiscountAmount:  d.decimal("discount_amount", rec.fields[8]),
			NetAmount:       d.decimal("net_amount", rec.fields[9]),
			PaymentMethod:   model.PaymentMethod(d.required("payment_method", rec.fields[10])),
			TransactionTime: d.timestamp("transaction_time", rec.fields[11]),
		}
		if len(d.errs) > 0 {
			rowErrs = append(rowErrs, d.errs...)
			continue
		}
		rows = append(rows, Row[model.Sale]{Value: s, Line: rec.line})
	}
	return rows, rowErrs, nil
}

// ReadInventory reads and decodes the inventory fact dataset.
func ReadInventory(path string) ([]Row[model.Inventory], []*validate.RowError, error) {
	records, err := readRecords(model.EntityInventory, path)
	if err != nil {
		return nil, nil, err
	}

	var rows []Row[model.Inventory]
	var rowErrs []*validate.RowError
	for _, rec := range records {
		if e := checkWidth(model.EntityInventory, rec); e != nil {
			rowErrs = append(rowErrs, e)
			continue
		}
		d := &decoder{entity: model.EntityInventory, rowID: rec.fields[0], line: rec.line}
		inv := model.Inventory{
			InventoryID:       d.required("inventory_id", rec.fields[0]),
			DateID:            model.DateID(d.required("date_id", rec.fields[1])),
			ProductID:         d.required("product_id", rec.fields[2]),
			StoreID:           d.required("store_id", rec.fields[3]),
			BeginningQuantity: d.integer("beginning_quantity", rec.fields[4]),
			EndingQuantity:    d.integer("ending_quantity", rec.fields[5]),
			UnitsReceived:     d.integer("units_received", rec.fields[6]),
			UnitsSold:         d.integer("units_sold", rec.fields[7]),
			UnitsDamaged:      d.integer("units_damaged", rec.fields[8]),
			ReorderPoint:      d.integer("reorder_point", rec.fields[9]),
			ReorderQuantity:   d.integer("reorder_quantity", rec.fields[10]),
		}
		if len(d.errs) > 0 {
			rowErrs = append(rowErrs, d.errs...)
			continue
		}
		rows = append(rows, Row[model.Inventory]{Value: inv, Line: rec.line})
	}
	return rows, rowErrs, nil
}
