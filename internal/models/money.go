package models

import (
	"fmt"
	"math"
)

// Money is an amount in integer cents. Arithmetic on Money is exact; the
// decimal form only appears when formatting for display.
type Money int64

// centsTolerance absorbs binary float error in decimal amounts like 12.99.
const centsTolerance = 1e-6

// ParseCents converts a decimal amount (as written in catalog files) to
// Money. ok is false when amount carries precision below one cent.
func ParseCents(amount float64) (m Money, ok bool) {
	cents := math.Round(amount * 100)
	if math.Abs(amount*100-cents) > centsTolerance {
		return 0, false
	}
	return Money(cents), true
}

// Times returns m multiplied by a quantity.
func (m Money) Times(qty int) Money {
	return m * Money(qty)
}

// String formats m with exactly two decimals, e.g. 2598 -> "25.98".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
