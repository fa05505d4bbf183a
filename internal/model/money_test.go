package model

import "testing"

func TestParseDecimal2(t *testing.T) {
	tests := []struct {
		input   string
		want    Decimal2
		wantErr bool
	}{
		{"0.00", 0, false},
		{"12.34", 1234, false},
		{"0.05", 5, false},
		{"999.99", 99999, false},
		{"-0.50", -50, false},
		{"-12.34", -1234, false},
		{"1000.00", 100000, false},
		{"12", 0, true},       // no fractional digits
		{"12.3", 0, true},     // one fractional digit
		{"12.345", 0, true},   // three fractional digits
		{".34", 0, true},      // no whole part
		{"12.ab", 0, true},    // non-numeric fraction
		{"ab.12", 0, true},    // non-numeric whole
		{"", 0, true},         // empty
		{"12,34", 0, true},    // wrong separator
		{"12.34.56", 0, true}, // two separators
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDecimal2(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecimal2(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecimal2(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecimal2(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecimal2Arithmetic(t *testing.T) {
	price, _ := ParseDecimal2("10.00")

	total := price.MulInt(5)
	if total.String() != "50.00" {
		t.Errorf("10.00 * 5 = %s, want 50.00", total)
	}

	discount, _ := ParseDecimal2("5.00")
	net := total.Sub(discount)
	if net.String() != "45.00" {
		t.Errorf("50.00 - 5.00 = %s, want 45.00", net)
	}

	if got := net.Add(discount); got != total {
		t.Errorf("45.00 + 5.00 = %s, want %s", got, total)
	}
}

func TestDecimal2String(t *testing.T) {
	tests := []struct {
		value Decimal2
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{50, "0.50"},
		{1234, "12.34"},
		{-1234, "-12.34"},
		{-5, "-0.05"},
		{100000, "1000.00"},
	}

	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Errorf("Decimal2(%d).String() = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestDecimal2RoundTrip(t *testing.T) {
	for _, s := range []string{"0.00", "0.07", "19.99", "-3.10", "12345.06"} {
		d, err := ParseDecimal2(s)
		if err != nil {
			t.Fatalf("ParseDecimal2(%q) failed: %v", s, err)
		}
		if d.String() != s {
			t.Errorf("round trip of %q gave %q", s, d.String())
		}
	}
}
