//-------------------------------------------------------------------------
//
// salesdw - Sales Data Warehouse Toolkit
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Decimal2 is a fixed-point value with exactly two fractional digits,
// stored in hundredths. Monetary amounts and store sizes use it so that
// equality checks on computed fields are exact.
type Decimal2 int64

// ParseDecimal2 parses a decimal string with exactly two fractional
// digits, e.g. "12.34" or "-0.50".
func ParseDecimal2(s string) (Decimal2, error) {
	neg := false
	body := s
	if strings.HasPrefix(body, "-") {
		neg = true
		body = body[1:]
	}

	whole, frac, ok := strings.Cut(body, ".")
	if !ok || len(frac) != 2 || whole == "" {
		return 0, fmt.Errorf("invalid decimal %q: want exactly two fractional digits", s)
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	f, err := strconv.ParseUint(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid decimal %q: %w", s, err)
	}

	v := w*100 + int64(f)
	if neg {
		v = -v
	}
	return Decimal2(v), nil
}

// MulInt multiplies the value by an integer quantity.
func (d Decimal2) MulInt(n int) Decimal2 {
	return d * Decimal2(n)
}

// Sub subtracts o from d.
func (d Decimal2) Sub(o Decimal2) Decimal2 {
	return d - o
}

// Add adds o to d.
func (d Decimal2) Add(o Decimal2) Decimal2 {
	return d + o
}

// Float64 returns the value as a float, for display only.
func (d Decimal2) Float64() float64 {
	return float64(d) / 100
}

// String formats the value with exactly two fractional digits.
func (d Decimal2) String() string {
	v := int64(d)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
