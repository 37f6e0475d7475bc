package model

import "testing"

func TestValue_Format(t *testing.T) {
	tests := []struct {
		v        Value
		decimals int
		want     string
	}{
		{Available(3.14159), 2, "3.14"},
		{Available(3.14159), 4, "3.1416"},
		{Available(0), 2, "0.00"},
		{Available(-0.5), 4, "-0.5000"},
		{Unavailable(), 2, "N/A"},
		{Unavailable(), 4, "N/A"},
	}
	for _, tt := range tests {
		if got := tt.v.Format(tt.decimals); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.decimals, got, tt.want)
		}
	}
}

func TestValue_ZeroIsUnavailable(t *testing.T) {
	var v Value
	if _, ok := v.Float(); ok {
		t.Error("zero Value must read as unavailable")
	}
}

func TestQuote_PricePrefersRegularMarket(t *testing.T) {
	q := &Quote{RegularMarketPrice: Available(101), CurrentPrice: Available(99)}
	if got, _ := q.Price().Float(); got != 101 {
		t.Errorf("price = %v, want the regular market price", got)
	}

	q = &Quote{CurrentPrice: Available(99)}
	if got, ok := q.Price().Float(); !ok || got != 99 {
		t.Errorf("price = %v (ok=%v), want the current-price fallback", got, ok)
	}

	q = &Quote{}
	if _, ok := q.Price().Float(); ok {
		t.Error("price must be unavailable when both fields are absent")
	}
}
