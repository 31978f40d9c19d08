package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a price string in major currency units (e.g. "45.00")
// to cents. Fractions beyond two decimal places are rejected.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("price %q must not be negative", s)
	}
	cents := d.Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("price %q has more than two decimal places", s)
	}
	return cents.IntPart(), nil
}

// FormatPrice renders cents as a major-unit string with two decimal places.
func FormatPrice(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
