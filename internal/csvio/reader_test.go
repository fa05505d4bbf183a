package csvio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salesdw/salesdw/internal/model"
	"github.com/salesdw/salesdw/internal/validate"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

func TestReadProducts(t *testing.T) {
	path := writeTemp(t, "products.csv", strings.Join([]string{
		"product_id,product_name,category,subcategory,brand,unit_price,cost,created_date,modified_date",
		"P0001,Widget,Electronics,Accessories,Acme,19.99,8.00,2021-06-01,2021-06-01",
		"P0002,Gadget,Toys,Games,Blasto,5.50,2.25,2022-01-15,2022-03-01",
	}, "\n"))

	rows, rowErrs, err := ReadProducts(path)
	if err != nil {
		t.Fatalf("ReadProducts failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("Expected no row errors, got %v", rowErrs)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	p := rows[0].Value
	if p.ProductID != "P0001" || p.ProductName != "Widget" {
		t.Errorf("Unexpected product: %+v", p)
	}
	if p.UnitPrice.String() != "19.99" || p.Cost.String() != "8.00" {
		t.Errorf("Unexpected prices: %s / %s", p.UnitPrice, p.Cost)
	}
	if rows[0].Line != 2 || rows[1].Line != 3 {
		t.Errorf("Unexpected line numbers: %d, %d", rows[0].Line, rows[1].Line)
	}
}

func TestReadProductsHeaderMismatch(t *testing.T) {
	path := writeTemp(t, "products.csv", strings.Join([]string{
		"id,name,category,subcategory,brand,unit_price,cost,created_date,modified_date",
		"P0001,Widget,Electronics,Accessories,Acme,19.99,8.00,2021-06-01,2021-06-01",
	}, "\n"))

	_, _, err := ReadProducts(path)
	var fe *validate.FileError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FileError, got %v", err)
	}
	if fe.Entity != model.EntityProduct {
		t.Errorf("FileError entity = %s, want product", fe.Entity)
	}
}

func TestReadProductsMissingColumn(t *testing.T) {
	path := writeTemp(t, "products.csv", strings.Join([]string{
		"product_id,product_name,category,subcategory,brand,unit_price,cost,created_date",
		"P0001,Widget,Electronics,Accessories,Acme,19.99,8.00,2021-06-01",
	}, "\n"))

	_, _, err := ReadProducts(path)
	var fe *validate.FileError
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FileError for short header, got %v", err)
	}
}

func TestReadProductsRowErrors(t *testing.T) {
	path := writeTemp(t, "products.csv", strings.Join([]string{
		"product_id,product_name,category,subcategory,brand,unit_price,cost,created_date,modified_date",
		"P0001,Widget,Electronics,Accessories,Acme,19.99,8.00,2021-06-01,2021-06-01",
		"P0002,Gadget,Toys,Games,Blasto,5.5,2.25,2022-01-15,2022-03-01",
		"P0003,Gizmo,Toys,Games,Blasto,5.50,2.25,01/15/2022,2022-03-01",
		"P0004,Doohickey,Toys,Games",
	}, "\n"))

	rows, rowErrs, err := ReadProducts(path)
	if err != nil {
		t.Fatalf("ReadProducts failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected 1 clean row, got %d", len(rows))
	}
	if len(rowErrs) != 3 {
		t.Fatalf("Expected 3 row errors, got %v", rowErrs)
	}

	// One-decimal price on line 3.
	if rowErrs[0].Line != 3 || rowErrs[0].Kind != validate.KindConsistency {
		t.Errorf("Unexpected error 0: %v", rowErrs[0])
	}
	// Bad date format on line 4.
	if rowErrs[1].Line != 4 || rowErrs[1].Kind != validate.KindConsistency {
		t.Errorf("Unexpected error 1: %v", rowErrs[1])
	}
	// Short row on line 5 is a schema violation.
	if rowErrs[2].Line != 5 || rowErrs[2].Kind != validate.KindSchema {
		t.Errorf("Unexpected error 2: %v", rowErrs[2])
	}
}

func TestReadCustomersOptionalFields(t *testing.T) {
	path := writeTemp(t, "customers.csv", strings.Join([]string{
		"customer_id,first_name,last_name,email,phone,address,city,state,country,postal_code,customer_segment,created_date,modified_date",
		"C0001,Ada,Lovelace,,,1 Main St,Springfield,IL,USA,62701,Premium,2020-02-01,2020-02-01",
	}, "\n"))

	rows, rowErrs, err := ReadCustomers(path)
	if err != nil {
		t.Fatalf("ReadCustomers failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("Expected no row errors, got %v", rowErrs)
	}
	c := rows[0].Value
	if c.Email != "" || c.Phone != "" {
		t.Errorf("Expected empty optional fields, got %q / %q", c.Email, c.Phone)
	}
	if c.Segment != model.SegmentPremium {
		t.Errorf("Segment = %s, want Premium", c.Segment)
	}
}

func TestReadTimeRows(t *testing.T) {
	path := writeTemp(t, "time_dimension.csv", strings.Join([]string{
		"date_id,full_date,day_of_week,day_of_month,day_of_year,week_of_year,month,quarter,year,is_holiday,holiday_name",
		"20230101,2023-01-01,Sunday,1,1,52,1,1,2023,True,New Year's Day",
		"20230102,2023-01-02,Monday,2,2,1,1,1,2023,False,",
	}, "\n"))

	rows, rowErrs, err := ReadTimeRows(path)
	if err != nil {
		t.Fatalf("ReadTimeRows failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("Expected no row errors, got %v", rowErrs)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Value.IsHoliday || rows[0].Value.HolidayName != "New Year's Day" {
		t.Errorf("Unexpected holiday row: %+v", rows[0].Value)
	}
	if rows[1].Value.IsHoliday {
		t.Error("Expected non-holiday row")
	}
}

func TestReadSales(t *testing.T) {
	path := writeTemp(t, "sales.csv", strings.Join([]string{
		"sale_id,date_id,product_id,customer_id,store_id,quantity,unit_price,total_amount,discount_amount,net_amount,payment_method,transaction_time",
		"T000001,20230315,P0001,C0001,S001,5,10.00,50.00,5.00,45.00,Cash,2023-03-15 14:30:00",
	}, "\n"))

	rows, rowErrs, err := ReadSales(path)
	if err != nil {
		t.Fatalf("ReadSales failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("Expected no row errors, got %v", rowErrs)
	}
	s := rows[0].Value
	if s.Quantity != 5 || s.TotalAmount.String() != "50.00" || s.NetAmount.String() != "45.00" {
		t.Errorf("Unexpected sale: %+v", s)
	}
	if s.TransactionTime.Hour() != 14 || s.TransactionTime.Minute() != 30 {
		t.Errorf("Unexpected transaction time: %v", s.TransactionTime)
	}
}

func TestReadInventory(t *testing.T) {
	path := writeTemp(t, "inventory.csv", strings.Join([]string{
		"inventory_id,date_id,product_id,store_id,beginning_quantity,ending_quantity,units_received,units_sold,units_damaged,reorder_point,reorder_quantity",
		"I00000001,20230315,P0001,S001,50,52,20,15,3,10,25",
	}, "\n"))

	rows, rowErrs, err := ReadInventory(path)
	if err != nil {
		t.Fatalf("ReadInventory failed: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("Expected no row errors, got %v", rowErrs)
	}
	inv := rows[0].Value
	if inv.BeginningQuantity != 50 || inv.EndingQuantity != 52 {
		t.Errorf("Unexpected inventory: %+v", inv)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, _, err := ReadProducts(filepath.Join(t.TempDir(), "products.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	var fe *validate.FileError
	if errors.As(err, &fe) {
		t.Error("Missing file should be an I/O error, not a FileError")
	}
}
