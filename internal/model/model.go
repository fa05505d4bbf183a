//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package model defines the dimensional model of the sales warehouse:
// four dimensions (product, customer, time, store) and two facts
// (sales, inventory), with their categorical value sets and the
// fixed-point representation used for monetary fields.
package model

import "time"

// Entity names the warehouse entities as they appear in reports,
// configuration, and CSV file names.
type Entity string

const (
	EntityProduct   Entity = "product"
	EntityCustomer  Entity = "customer"
	EntityTime      Entity = "time"
	EntityStore     Entity = "store"
	EntitySales     Entity = "sales"
	EntityInventory Entity = "inventory"
)

// Dimensions lists the dimension entities in load order.
var Dimensions = []Entity{EntityProduct, EntityCustomer, EntityTime, EntityStore}

// Facts lists the fact entities in load order.
var Facts = []Entity{EntitySales, EntityInventory}

// Product is a row of the product dimension.
type Product struct {
	ProductID    string
	ProductName  string
	Category     string
	Subcategory  string
	Brand        string
	UnitPrice    Decimal2
	Cost         Decimal2
	CreatedDate  time.Time
	ModifiedDate time.Time
}

// Key returns the natural key.
func (p Product) Key() string { return p.ProductID }

// Attributes returns the SCD-trackable attributes as canonical strings.
func (p Product) Attributes() map[string]string {
	return map[string]string{
		"product_name": p.ProductName,
		"category":     p.Category,
		"subcategory":  p.Subcategory,
		"brand":        p.Brand,
		"unit_price":   p.UnitPrice.String(),
		"cost":         p.Cost.String(),
	}
}

// Customer is a row of the customer dimension.
type Customer struct {
	CustomerID   string
	FirstName    string
	LastName     string
	Email        string // optional
	Phone        string // optional
	Address      string
	City         string
	State        string
	Country      string
	PostalCode   string
	Segment      CustomerSegment
	CreatedDate  time.Time
	ModifiedDate time.Time
}

// Key returns the natural key.
func (c Customer) Key() string { return c.CustomerID }

// Attributes returns the SCD-trackable attributes as canonical strings.
func (c Customer) Attributes() map[string]string {
	return map[string]string{
		"first_name":       c.FirstName,
		"last_name":        c.LastName,
		"email":            c.Email,
		"phone":            c.Phone,
		"address":          c.Address,
		"city":             c.City,
		"state":            c.State,
		"country":          c.Country,
		"postal_code":      c.PostalCode,
		"customer_segment": string(c.Segment),
	}
}

// TimeRow is a row of the time dimension, one per calendar date.
// All derived fields are pure functions of FullDate (see Calendar).
type TimeRow struct {
	DateID      DateID
	FullDate    time.Time
	DayOfWeek   string
	DayOfMonth  int
	DayOfYear   int
	WeekOfYear  int
	Month       int
	Quarter     int
	Year        int
	IsHoliday   bool
	HolidayName string
}

// Key returns the natural key.
func (t TimeRow) Key() string { return string(t.DateID) }

// Store is a row of the store dimension.
type Store struct {
	StoreID      string
	StoreName    string
	Address      string
	City         string
	State        string
	Country      string
	PostalCode   string
	Manager      string
	OpeningDate  time.Time
	StoreType    StoreType
	StoreSize    Decimal2
	CreatedDate  time.Time
	ModifiedDate time.Time
}

// Key returns the natural key.
func (s Store) Key() string { return s.StoreID }

// Attributes returns the SCD-trackable attributes as canonical strings.
func (s Store) Attributes() map[string]string {
	return map[string]string{
		"store_name":   s.StoreName,
		"address":      s.Address,
		"city":         s.City,
		"state":        s.State,
		"country":      s.Country,
		"postal_code":  s.PostalCode,
		"manager":      s.Manager,
		"opening_date": s.OpeningDate.Format("2006-01-02"),
		"store_type":   string(s.StoreType),
		"store_size":   s.StoreSize.String(),
	}
}

// Sale is a row of the sales fact. Facts are append-only and immutable.
type Sale struct {
	SaleID          string
	DateID          DateID
	ProductID       string
	CustomerID      string
	StoreID         string
	Quantity        int
	UnitPrice       Decimal2
	TotalAmount     Decimal2
	DiscountAmount  Decimal2
	NetAmount       Decimal2
	PaymentMethod   PaymentMethod
	TransactionTime time.Time
}

// Key returns the natural key.
func (s Sale) Key() string { return s.SaleID }

// Inventory is a row of the inventory fact: a stock snapshot for a
// product at a store on a date.
type Inventory struct {
	InventoryID       string
	DateID            DateID
	ProductID         string
	StoreID           string
	BeginningQuantity int
	EndingQuantity    int
	UnitsReceived     int
	UnitsSold         int
	UnitsDamaged      int
	ReorderPoint      int
	ReorderQuantity   int
}

// Key returns the natural key.
func (i Inventory) Key() string { return i.InventoryID }
