package datagen

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/salesdw/salesdw/internal/csvio"
	"github.com/salesdw/salesdw/internal/model"
	"github.com/salesdw/salesdw/internal/validate"
)

func testConfig() Config {
	return Config{
		Products:          20,
		Customers:         30,
		Stores:            5,
		Days:              28,
		Sales:             200,
		StartDate:         time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		InventoryInterval: 7,
		Seed:              42,
	}
}

func TestGenerateDatasetsAreValid(t *testing.T) {
	dir := t.TempDir()
	gen := NewGenerator(testConfig())
	if err := gen.Generate(dir); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	v := validate.New(
		time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC))

	products, rowErrs, err := csvio.ReadProducts(filepath.Join(dir, "products.csv"))
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("ReadProducts: err=%v rowErrs=%v", err, rowErrs)
	}
	if len(products) != 20 {
		t.Fatalf("Expected 20 products, got %d", len(products))
	}
	for _, row := range products {
		if errs := v.Product(row.Value, row.Line); len(errs) != 0 {
			t.Errorf("Generated product failed validation: %v", errs[0])
		}
	}

	customers, rowErrs, err := csvio.ReadCustomers(filepath.Join(dir, "customers.csv"))
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("ReadCustomers: err=%v rowErrs=%v", err, rowErrs)
	}
	if len(customers) != 30 {
		t.Fatalf("Expected 30 customers, got %d", len(customers))
	}
	for _, row := range customers {
		if errs := v.Customer(row.Value, row.Line); len(errs) != 0 {
			t.Errorf("Generated customer failed validation: %v", errs[0])
		}
	}

	times, rowErrs, err := csvio.ReadTimeRows(filepath.Join(dir, "time_dimension.csv"))
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("ReadTimeRows: err=%v rowErrs=%v", err, rowErrs)
	}
	if len(times) != 28 {
		t.Fatalf("Expected 28 time rows, got %d", len(times))
	}
	for _, row := range times {
		if errs := v.TimeRow(row.Value, row.Line); len(errs) != 0 {
			t.Errorf("Generated time row failed validation: %v", errs[0])
		}
	}
	if times[0].Value.DateID != "20230101" {
		t.Errorf("First date_id = %s, want 20230101", times[0].Value.DateID)
	}
	if !times[0].Value.IsHoliday {
		t.Error("Expected 2023-01-01 to be a holiday")
	}

	stores, rowErrs, err := csvio.ReadStores(filepath.Join(dir, "stores.csv"))
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("ReadStores: err=%v rowErrs=%v", err, rowErrs)
	}
	if len(stores) != 5 {
		t.Fatalf("Expected 5 stores, got %d", len(stores))
	}
	for _, row := range stores {
		if errs := v.Store(row.Value, row.Line); len(errs) != 0 {
			t.Errorf("Generated store failed validation: %v", errs[0])
		}
	}

	sales, rowErrs, err := csvio.ReadSales(filepath.Join(dir, "sales.csv"))
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("ReadSales: err=%v rowErrs=%v", err, rowErrs)
	}
	if len(sales) != 200 {
		t.Fatalf("Expected 200 sales, got %d", len(sales))
	}
	productIDs := make(map[string]bool)
	for _, row := range products {
		productIDs[row.Value.ProductID] = true
	}
	for _, row := range sales {
		if errs := v.Sale(row.Value, row.Line); len(errs) != 0 {
			t.Errorf("Generated sale failed validation: %v", errs[0])
		}
		if !productIDs[row.Value.ProductID] {
			t.Errorf("Sale references unknown product %s", row.Value.ProductID)
		}
	}

	inventory, rowErrs, err := csvio.ReadInventory(filepath.Join(dir, "inventory.csv"))
	if err != nil || len(rowErrs) != 0 {
		t.Fatalf("ReadInventory: err=%v rowErrs=%v", err, rowErrs)
	}
	// 5 stores * 20 products * 4 snapshots (28 days, weekly)
	if len(inventory) != 400 {
		t.Fatalf("Expected 400 inventory rows, got %d", len(inventory))
	}
	for _, row := range inventory {
		if errs := v.Inventory(row.Value, row.Line); len(errs) != 0 {
			t.Errorf("Generated inventory failed validation: %v", errs[0])
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	cfg := testConfig()

	dirA := t.TempDir()
	if err := NewGenerator(cfg).Generate(dirA); err != nil {
		t.Fatalf("Generate A failed: %v", err)
	}
	dirB := t.TempDir()
	if err := NewGenerator(cfg).Generate(dirB); err != nil {
		t.Fatalf("Generate B failed: %v", err)
	}

	salesA, _, err := csvio.ReadSales(filepath.Join(dirA, "sales.csv"))
	if err != nil {
		t.Fatalf("ReadSales A failed: %v", err)
	}
	salesB, _, err := csvio.ReadSales(filepath.Join(dirB, "sales.csv"))
	if err != nil {
		t.Fatalf("ReadSales B failed: %v", err)
	}

	if len(salesA) != len(salesB) {
		t.Fatalf("Run lengths differ: %d vs %d", len(salesA), len(salesB))
	}
	for i := range salesA {
		if salesA[i].Value != salesB[i].Value {
			t.Fatalf("Row %d differs between seeded runs:\n%+v\n%+v",
				i, salesA[i].Value, salesB[i].Value)
		}
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(7)
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		counts[ChooseWeighted(f, []string{"a", "b"}, []int{99, 1})]++
	}
	if counts["a"] < 900 {
		t.Errorf("Expected 'a' to dominate, got %v", counts)
	}
	if counts["a"]+counts["b"] != 1000 {
		t.Errorf("Lost draws: %v", counts)
	}
}

func TestChooseEmpty(t *testing.T) {
	f := NewFakerWithSeed(1)
	if got := Choose(f, []model.Entity(nil)); got != "" {
		t.Errorf("Choose on empty slice = %q, want zero value", got)
	}
}
