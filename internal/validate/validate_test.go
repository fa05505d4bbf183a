package validate

import (
	"testing"
	"time"

	"github.com/salesdw/salesdw/internal/model"
)

var (
	dateMin = time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)
	dateMax = time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)
)

func kinds(errs []*RowError) []Kind {
	out := make([]Kind, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Kind)
	}
	return out
}

func hasKind(errs []*RowError, kind Kind) bool {
	for _, e := range errs {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func validSale() model.Sale {
	return model.Sale{
		SaleID:          "T000001",
		DateID:          "20230315",
		ProductID:       "P0001",
		CustomerID:      "C0001",
		StoreID:         "S001",
		Quantity:        5,
		UnitPrice:       1000, // 10.00
		TotalAmount:     5000, // 50.00
		DiscountAmount:  500,  // 5.00
		NetAmount:       4500, // 45.00
		PaymentMethod:   model.PaymentCash,
		TransactionTime: time.Date(2023, 3, 15, 14, 30, 0, 0, time.UTC),
	}
}

func TestSaleValid(t *testing.T) {
	v := New(dateMin, dateMax)
	if errs := v.Sale(validSale(), 2); len(errs) != 0 {
		t.Errorf("Expected clean sale, got %v", kinds(errs))
	}
}

func TestSaleDiscountExceedsTotal(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.DiscountAmount = 6000 // 60.00 against a 50.00 total
	s.NetAmount = s.TotalAmount.Sub(s.DiscountAmount)

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation, got %v", kinds(errs))
	}
	// Net is negative too, which is its own consistency failure.
	if len(errs) < 2 {
		t.Errorf("Expected discount and negative net errors, got %v", kinds(errs))
	}
}

func TestSaleTotalMismatch(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.TotalAmount = 4999
	s.NetAmount = s.TotalAmount.Sub(s.DiscountAmount)

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindAccuracy) {
		t.Errorf("Expected AccuracyViolation for total, got %v", kinds(errs))
	}
}

func TestSaleNetMismatch(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.NetAmount = 4499

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindAccuracy) {
		t.Errorf("Expected AccuracyViolation for net, got %v", kinds(errs))
	}
}

func TestSaleZeroQuantity(t *testing.T) {
	// Zero quantity is allowed; total and net must be zero too.
	v := New(dateMin, dateMax)
	s := validSale()
	s.Quantity = 0
	s.TotalAmount = 0
	s.DiscountAmount = 0
	s.NetAmount = 0

	if errs := v.Sale(s, 2); len(errs) != 0 {
		t.Errorf("Expected clean zero-quantity sale, got %v", kinds(errs))
	}
}

func TestSaleNegativeQuantity(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.Quantity = -1

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation, got %v", kinds(errs))
	}
}

func TestSaleInvalidPaymentMethod(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.PaymentMethod = "Barter"

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation, got %v", kinds(errs))
	}
}

func TestSaleBadDateID(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.DateID = "2023-03-15"

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation, got %v", kinds(errs))
	}
}

func TestSaleDateOutOfRange(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.DateID = "19990315"

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation, got %v", kinds(errs))
	}
}

func TestSaleDuplicateID(t *testing.T) {
	v := New(dateMin, dateMax)
	if errs := v.Sale(validSale(), 2); len(errs) != 0 {
		t.Fatalf("First sale should be clean, got %v", kinds(errs))
	}
	errs := v.Sale(validSale(), 3)
	if !hasKind(errs, KindConsistency) {
		t.Errorf("Expected duplicate ConsistencyViolation, got %v", kinds(errs))
	}
}

func TestSaleMissingID(t *testing.T) {
	v := New(dateMin, dateMax)
	s := validSale()
	s.SaleID = ""

	errs := v.Sale(s, 2)
	if !hasKind(errs, KindCompleteness) {
		t.Errorf("Expected CompletenessViolation, got %v", kinds(errs))
	}
}

func TestProduct(t *testing.T) {
	v := New(dateMin, dateMax)
	created := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

	p := model.Product{
		ProductID:    "P0001",
		ProductName:  "Widget",
		Category:     "Electronics",
		Subcategory:  "Accessories",
		Brand:        "Acme",
		UnitPrice:    1999,
		Cost:         800,
		CreatedDate:  created,
		ModifiedDate: created,
	}
	if errs := v.Product(p, 2); len(errs) != 0 {
		t.Errorf("Expected clean product, got %v", kinds(errs))
	}

	bad := p
	bad.ProductID = "P0002"
	bad.UnitPrice = 0
	if errs := v.Product(bad, 3); !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation for zero price, got %v", kinds(errs))
	}

	old := p
	old.ProductID = "P0003"
	old.CreatedDate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	if errs := v.Product(old, 4); !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation for out-of-range date, got %v", kinds(errs))
	}
}

func TestCustomer(t *testing.T) {
	v := New(dateMin, dateMax)
	created := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)

	c := model.Customer{
		CustomerID:   "C0001",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		Phone:        "+15550100",
		Address:      "1 Main St",
		City:         "Springfield",
		State:        "IL",
		Country:      "USA",
		PostalCode:   "62701",
		Segment:      model.SegmentPremium,
		CreatedDate:  created,
		ModifiedDate: created,
	}
	if errs := v.Customer(c, 2); len(errs) != 0 {
		t.Errorf("Expected clean customer, got %v", kinds(errs))
	}

	// Email and phone are optional.
	blank := c
	blank.CustomerID = "C0002"
	blank.Email = ""
	blank.Phone = ""
	if errs := v.Customer(blank, 3); len(errs) != 0 {
		t.Errorf("Expected clean customer without email/phone, got %v", kinds(errs))
	}

	badEmail := c
	badEmail.CustomerID = "C0003"
	badEmail.Email = "not-an-email"
	if errs := v.Customer(badEmail, 4); !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation for bad email, got %v", kinds(errs))
	}

	badSegment := c
	badSegment.CustomerID = "C0004"
	badSegment.Segment = "Platinum"
	if errs := v.Customer(badSegment, 5); !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation for bad segment, got %v", kinds(errs))
	}
}

func TestTimeRow(t *testing.T) {
	v := New(dateMin, dateMax)

	good := model.Calendar(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC))
	if errs := v.TimeRow(good, 2); len(errs) != 0 {
		t.Errorf("Expected clean time row, got %v", kinds(errs))
	}

	// Each derived field is checked against the date independently.
	bad := model.Calendar(time.Date(2023, 3, 16, 0, 0, 0, 0, time.UTC))
	bad.DayOfWeek = "Monday" // actually a Thursday
	bad.Quarter = 2
	errs := v.TimeRow(bad, 3)
	if len(errs) != 2 {
		t.Fatalf("Expected 2 accuracy errors, got %v", kinds(errs))
	}
	for _, e := range errs {
		if e.Kind != KindAccuracy {
			t.Errorf("Expected AccuracyViolation, got %s", e.Kind)
		}
	}

	mismatch := model.Calendar(time.Date(2023, 3, 17, 0, 0, 0, 0, time.UTC))
	mismatch.DateID = "20230318"
	if errs := v.TimeRow(mismatch, 4); !hasKind(errs, KindAccuracy) {
		t.Errorf("Expected AccuracyViolation for date_id mismatch, got %v", kinds(errs))
	}
}

func TestStore(t *testing.T) {
	v := New(dateMin, dateMax)
	opened := time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC)

	s := model.Store{
		StoreID:      "S001",
		StoreName:    "Downtown",
		Address:      "10 Market St",
		City:         "Portland",
		State:        "OR",
		Country:      "USA",
		PostalCode:   "97201",
		Manager:      "Jordan Reyes",
		OpeningDate:  opened,
		StoreType:    model.StoreTypeMall,
		StoreSize:    250000, // 2500.00
		CreatedDate:  opened,
		ModifiedDate: opened,
	}
	if errs := v.Store(s, 2); len(errs) != 0 {
		t.Errorf("Expected clean store, got %v", kinds(errs))
	}

	bad := s
	bad.StoreID = "S002"
	bad.StoreType = "Kiosk"
	bad.StoreSize = 0
	errs := v.Store(bad, 3)
	if len(errs) != 2 {
		t.Errorf("Expected 2 errors, got %v", kinds(errs))
	}
}

func TestInventory(t *testing.T) {
	v := New(dateMin, dateMax)

	inv := model.Inventory{
		InventoryID:       "I00000001",
		DateID:            "20230315",
		ProductID:         "P0001",
		StoreID:           "S001",
		BeginningQuantity: 50,
		EndingQuantity:    52, // 50 + 20 - 15 - 3
		UnitsReceived:     20,
		UnitsSold:         15,
		UnitsDamaged:      3,
		ReorderPoint:      10,
		ReorderQuantity:   25,
	}
	if errs := v.Inventory(inv, 2); len(errs) != 0 {
		t.Errorf("Expected clean inventory, got %v", kinds(errs))
	}

	bad := inv
	bad.InventoryID = "I00000002"
	bad.EndingQuantity = 53
	if errs := v.Inventory(bad, 3); !hasKind(errs, KindAccuracy) {
		t.Errorf("Expected AccuracyViolation for balance, got %v", kinds(errs))
	}

	neg := inv
	neg.InventoryID = "I00000003"
	neg.UnitsSold = -1
	if errs := v.Inventory(neg, 4); !hasKind(errs, KindConsistency) {
		t.Errorf("Expected ConsistencyViolation for negative units, got %v", kinds(errs))
	}
}
