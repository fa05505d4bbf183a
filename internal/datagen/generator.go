//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/salesdw/salesdw/internal/csvio"
	"github.com/salesdw/salesdw/internal/logging"
	"github.com/salesdw/salesdw/internal/model"
)

var categories = []string{
	"Electronics", "Clothing", "Home & Garden", "Sports",
	"Books", "Toys", "Food", "Beauty",
}

var subcategories = map[string][]string{
	"Electronics":   {"Phones", "Laptops", "Audio", "Accessories"},
	"Clothing":      {"Menswear", "Womenswear", "Footwear", "Outerwear"},
	"Home & Garden": {"Furniture", "Kitchen", "Garden", "Decor"},
	"Sports":        {"Fitness", "Outdoor", "Team Sports", "Cycling"},
	"Books":         {"Fiction", "Nonfiction", "Children", "Reference"},
	"Toys":          {"Games", "Building", "Dolls", "Educational"},
	"Food":          {"Snacks", "Beverages", "Pantry", "Frozen"},
	"Beauty":        {"Skincare", "Haircare", "Fragrance", "Makeup"},
}

// Config controls dataset generation.
type Config struct {
	Products          int
	Customers         int
	Stores            int
	Days              int
	Sales             int
	StartDate         time.Time
	InventoryInterval int
	Seed              uint64
}

// Generator produces the six warehouse CSV datasets. Generated data
// always satisfies the quality rules the loader enforces: monetary
// fields carry exactly two decimals, sale arithmetic is exact, and
// inventory balances hold.
type Generator struct {
	faker *Faker
	cfg   Config
}

// NewGenerator creates a Generator. A non-zero seed makes the output
// reproducible.
func NewGenerator(cfg Config) *Generator {
	f := NewFaker()
	if cfg.Seed != 0 {
		f = NewFakerWithSeed(cfg.Seed)
	}
	return &Generator{faker: f, cfg: cfg}
}

// Generate writes all six datasets into dataDir.
func (g *Generator) Generate(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	products := g.generateProducts()
	customers := g.generateCustomers()
	times := g.generateTimeRows()
	stores := g.generateStores()
	sales := g.generateSales(products, customers, stores, times)
	inventory := g.generateInventory(products, stores, times)

	writes := []struct {
		entity model.Entity
		count  int
		write  func() error
	}{
		{model.EntityProduct, len(products), func() error {
			return csvio.WriteProducts(filepath.Join(dataDir, csvio.FileNames[model.EntityProduct]), products)
		}},
		{model.EntityCustomer, len(customers), func() error {
			return csvio.WriteCustomers(filepath.Join(dataDir, csvio.FileNames[model.EntityCustomer]), customers)
		}},
		{model.EntityTime, len(times), func() error {
			return csvio.WriteTimeRows(filepath.Join(dataDir, csvio.FileNames[model.EntityTime]), times)
		}},
		{model.EntityStore, len(stores), func() error {
			return csvio.WriteStores(filepath.Join(dataDir, csvio.FileNames[model.EntityStore]), stores)
		}},
		{model.EntitySales, len(sales), func() error {
			return csvio.WriteSales(filepath.Join(dataDir, csvio.FileNames[model.EntitySales]), sales)
		}},
		{model.EntityInventory, len(inventory), func() error {
			return csvio.WriteInventory(filepath.Join(dataDir, csvio.FileNames[model.EntityInventory]), inventory)
		}},
	}
	for _, w := range writes {
		if err := w.write(); err != nil {
			return err
		}
		logging.Info().
			Str("entity", string(w.entity)).
			Int("rows", w.count).
			Msg("Dataset written")
	}
	return nil
}

func (g *Generator) generateProducts() []model.Product {
	products := make([]model.Product, 0, g.cfg.Products)
	for i := 1; i <= g.cfg.Products; i++ {
		category := Choose(g.faker, categories)
		created := g.dateBetween(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), g.cfg.StartDate)
		products = append(products, model.Product{
			ProductID:    fmt.Sprintf("P%04d", i),
			ProductName:  Truncate(g.faker.ProductName(), 100),
			Category:     category,
			Subcategory:  Choose(g.faker, subcategories[category]),
			Brand:        Truncate(g.faker.Company(), 50),
			UnitPrice:    model.Decimal2(g.faker.Int(1000, 100000)),
			Cost:         model.Decimal2(g.faker.Int(500, 50000)),
			CreatedDate:  created,
			ModifiedDate: created,
		})
	}
	return products
}

func (g *Generator) generateCustomers() []model.Customer {
	customers := make([]model.Customer, 0, g.cfg.Customers)
	for i := 1; i <= g.cfg.Customers; i++ {
		first := g.faker.FirstName()
		last := g.faker.LastName()
		created := g.dateBetween(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), g.cfg.StartDate)
		customers = append(customers, model.Customer{
			CustomerID: fmt.Sprintf("C%04d", i),
			FirstName:  first,
			LastName:   last,
			Email:      fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Phone:      g.faker.Phone(),
			Address:    Truncate(g.faker.Street(), 100),
			City:       g.faker.City(),
			State:      g.faker.State(),
			Country:    "USA",
			PostalCode: g.faker.Zip(),
			Segment: model.CustomerSegment(ChooseWeighted(g.faker,
				[]string{"Regular", "Premium", "VIP", "Wholesale"},
				[]int{60, 20, 10, 10})),
			CreatedDate:  created,
			ModifiedDate: created,
		})
	}
	return customers
}

func (g *Generator) generateTimeRows() []model.TimeRow {
	times := make([]model.TimeRow, 0, g.cfg.Days)
	for i := 0; i < g.cfg.Days; i++ {
		times = append(times, model.Calendar(g.cfg.StartDate.AddDate(0, 0, i)))
	}
	return times
}

func (g *Generator) generateStores() []model.Store {
	stores := make([]model.Store, 0, g.cfg.Stores)
	for i := 1; i <= g.cfg.Stores; i++ {
		opened := g.dateBetween(time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), g.cfg.StartDate)
		stores = append(stores, model.Store{
			StoreID:      fmt.Sprintf("S%03d", i),
			StoreName:    Truncate(g.faker.Company()+" "+g.faker.City(), 100),
			Address:      Truncate(g.faker.Street(), 100),
			City:         g.faker.City(),
			State:        g.faker.State(),
			Country:      "USA",
			PostalCode:   g.faker.Zip(),
			Manager:      Truncate(g.faker.Name(), 100),
			OpeningDate:  opened,
			StoreType:    model.StoreType(Choose(g.faker, []string{"Mall", "Standalone", "Outlet", "Supermarket"})),
			StoreSize:    model.Decimal2(g.faker.Int(100000, 1000000)),
			CreatedDate:  opened,
			ModifiedDate: opened,
		})
	}
	return stores
}

func (g *Generator) generateSales(products []model.Product, customers []model.Customer,
	stores []model.Store, times []model.TimeRow) []model.Sale {

	sales := make([]model.Sale, 0, g.cfg.Sales)
	for i := 1; i <= g.cfg.Sales; i++ {
		product := Choose(g.faker, products)
		day := Choose(g.faker, times)

		quantity := g.faker.Int(1, 5)
		total := product.UnitPrice.MulInt(quantity)
		// Discount is a whole percentage of the total, up to 30%,
		// truncated to cents so the net amount stays exact.
		discount := model.Decimal2(int64(total) * int64(g.faker.Int(0, 30)) / 100)
		net := total.Sub(discount)

		sales = append(sales, model.Sale{
			SaleID:         fmt.Sprintf("T%06d", i),
			DateID:         day.DateID,
			ProductID:      product.ProductID,
			CustomerID:     Choose(g.faker, customers).CustomerID,
			StoreID:        Choose(g.faker, stores).StoreID,
			Quantity:       quantity,
			UnitPrice:      product.UnitPrice,
			TotalAmount:    total,
			DiscountAmount: discount,
			NetAmount:      net,
			PaymentMethod: model.PaymentMethod(Choose(g.faker,
				[]string{"Credit Card", "Debit Card", "Cash", "Mobile Payment"})),
			TransactionTime: day.FullDate.Add(
				time.Duration(g.faker.Int(8, 20))*time.Hour +
					time.Duration(g.faker.Int(0, 59))*time.Minute +
					time.Duration(g.faker.Int(0, 59))*time.Second),
		})
	}
	return sales
}

func (g *Generator) generateInventory(products []model.Product, stores []model.Store,
	times []model.TimeRow) []model.Inventory {

	var inventory []model.Inventory
	id := 0
	for _, store := range stores {
		for _, product := range products {
			for i := 0; i < len(times); i += g.cfg.InventoryInterval {
				beginning := g.faker.Int(0, 100)
				received := g.faker.Int(0, 50)
				sold := g.faker.Int(0, beginning)
				// Damage cannot exceed what is left on the shelf.
				maxDamaged := min(5, beginning+received-sold)
				damaged := g.faker.Int(0, maxDamaged)

				id++
				inventory = append(inventory, model.Inventory{
					InventoryID:       fmt.Sprintf("I%08d", id),
					DateID:            times[i].DateID,
					ProductID:         product.ProductID,
					StoreID:           store.StoreID,
					BeginningQuantity: beginning,
					EndingQuantity:    beginning + received - sold - damaged,
					UnitsReceived:     received,
					UnitsSold:         sold,
					UnitsDamaged:      damaged,
					ReorderPoint:      g.faker.Int(10, 30),
					ReorderQuantity:   g.faker.Int(20, 50),
				})
			}
		}
	}
	return inventory
}

func (g *Generator) dateBetween(start, end time.Time) time.Time {
	if !start.Before(end) {
		return start
	}
	d := g.faker.DateRange(start, end)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
