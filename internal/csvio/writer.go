//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/salesdw/salesdw/internal/model"
)

// writeFile writes a header plus data rows to a CSV file.
func writeFile(entity model.Entity, path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s dataset: %w", entity, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Headers[entity]); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteProducts writes the product dataset.
func WriteProducts(path string, products []model.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.ProductID, p.ProductName, p.Category, p.Subcategory, p.Brand,
			p.UnitPrice.String(), p.Cost.String(),
			p.CreatedDate.Format("2006-01-02"),
			p.ModifiedDate.Format("2006-01-02"),
		})
	}
	return writeFile(model.EntityProduct, path, rows)
}

// WriteCustomers writes the customer dataset.
func WriteCustomers(path string, customers []model.Customer) error {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			c.CustomerID, c.FirstName, c.LastName, c.Email, c.Phone,
			c.Address, c.City, c.State, c.Country, c.PostalCode,
			string(c.Segment),
			c.CreatedDate.Format("2006-01-02"),
			c.ModifiedDate.Format("2006-01-02"),
		})
	}
	return writeFile(model.EntityCustomer, path, rows)
}

// WriteTimeRows writes the time dimension dataset.
func WriteTimeRows(path string, times []model.TimeRow) error {
	rows := make([][]string, 0, len(times))
	for _, t := range times {
		rows = append(rows, []string{
			string(t.DateID),
			t.FullDate.Format("2006-01-02"),
			t.DayOfWeek,
			strconv.Itoa(t.DayOfMonth),
			strconv.Itoa(t.DayOfYear),
			strconv.Itoa(t.WeekOfYear),
			strconv.Itoa(t.Month),
			strconv.Itoa(t.Quarter),
			strconv.Itoa(t.Year),
			strconv.FormatBool(t.IsHoliday),
			t.HolidayName,
		})
	}
	return writeFile(model.EntityTime, path, rows)
}

// WriteStores writes the store dataset.
func WriteStores(path string, stores []model.Store) error {
	rows := make([][]string, 0, len(stores))
	for _, s := range stores {
		rows = append(rows, []string{
			s.StoreID, s.StoreName, s.Address, s.City, s.State, s.Country,
			s.PostalCode, s.Manager,
			s.OpeningDate.Format("2006-01-02"),
			string(s.StoreType),
			s.StoreSize.String(),
			s.CreatedDate.Format("2006-01-02"),
			s.ModifiedDate.Format("2006-01-02"),
		})
	}
	return writeFile(model.EntityStore, path, rows)
}

// WriteSales writes the sales fact dataset.
func WriteSales(path string, sales []model.Sale) error {
	rows := make([][]string, 0, len(sales))
	for _, s := range sales {
		rows = append(rows, []string{
			s.SaleID, string(s.DateID), s.ProductID, s.CustomerID, s.StoreID,
			strconv.Itoa(s.Quantity),
			s.UnitPrice.String(), s.TotalAmount.String(),
			s.DiscountAmount.String(), s.NetAmount.String(),
			string(s.PaymentMethod),
			s.TransactionTime.Format(TimestampFormat),
		})
	}
	return writeFile(model.EntitySales, path, rows)
}

// WriteInventory writes the inventory fact dataset.
func WriteInventory(path string, inventory []model.Inventory) error {
	rows := make([][]string, 0, len(inventory))
	for _, inv := range inventory {
		rows = append(rows, []string{
			inv.InventoryID, string(inv.DateID), inv.ProductID, inv.StoreID,
			strconv.Itoa(inv.BeginningQuantity),
			strconv.Itoa(inv.EndingQuantity),
			strconv.Itoa(inv.UnitsReceived),
			strconv.Itoa(inv.UnitsSold),
			strconv.Itoa(inv.UnitsDamaged),
			strconv.Itoa(inv.ReorderPoint),
			strconv.Itoa(inv.ReorderQuantity),
		})
	}
	return writeFile(model.EntityInventory, path, rows)
}
