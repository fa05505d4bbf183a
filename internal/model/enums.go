//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package model

import "fmt"

// CustomerSegment is a closed categorical field on the customer dimension.
type CustomerSegment string

const (
	SegmentRegular   CustomerSegment = "Regular"
	SegmentPremium   CustomerSegment = "Premium"
	SegmentVIP       CustomerSegment = "VIP"
	SegmentWholesale CustomerSegment = "Wholesale"
)

// CustomerSegments lists all valid customer segments.
var CustomerSegments = []CustomerSegment{
	SegmentRegular, SegmentPremium, SegmentVIP, SegmentWholesale,
}

// ParseCustomerSegment validates a segment value at the boundary.
func ParseCustomerSegment(s string) (CustomerSegment, error) {
	for _, seg := range CustomerSegments {
		if s == string(seg) {
			return seg, nil
		}
	}
	return "", fmt.Errorf("invalid customer segment %q", s)
}

// StoreType is a closed categorical field on the store dimension.
type StoreType string

const (
	StoreTypeMall        StoreType = "Mall"
	StoreTypeStandalone  StoreType = "Standalone"
	StoreTypeOutlet      StoreType = "Outlet"
	StoreTypeSupermarket StoreType = "Supermarket"
)

// StoreTypes lists all valid store types.
var StoreTypes = []StoreType{
	StoreTypeMall, StoreTypeStandalone, StoreTypeOutlet, StoreTypeSupermarket,
}

// ParseStoreType validates a store type value at the boundary.
func ParseStoreType(s string) (StoreType, error) {
	for _, st := range StoreTypes {
		if s == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid store type %q", s)
}

// PaymentMethod is a closed categorical field on the sales fact.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentCash       PaymentMethod = "Cash"
	PaymentMobile     PaymentMethod = "Mobile Payment"
)

// PaymentMethods lists all valid payment methods.
var PaymentMethods = []PaymentMethod{
	PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentMobile,
}

// ParsePaymentMethod validates a payment method value at the boundary.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, pm := range PaymentMethods {
		if s == string(pm) {
			return pm, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", s)
}
