// Package rounding implements the accounting rounding rule used across the
// invoice pipeline.
//
// Values are rounded on their magnitude with the sign reapplied afterwards, so
// a fractional part of exactly one half always moves away from zero:
//
//	Round(10.5, 0)  == 11
//	Round(-10.5, 0) == -11
//	Round(10.49, 1) == 10.5
//
// Rounding to a number of decimal places scales the magnitude by 10^places,
// applies the whole-unit rule and scales back down.
package rounding

import "github.com/shopspring/decimal"

var half = decimal.New(5, -1)

// Round rounds n half-up on its magnitude to the given number of decimal
// places. Negative places are treated as zero.
func Round(n decimal.Decimal, places int32) decimal.Decimal {
	if places < 0 {
		places = 0
	}

	magnitude := n.Abs().Shift(places)
	rounded := magnitude.Add(half).Floor().Shift(-places)

	if n.Sign() < 0 {
		return rounded.Neg()
	}
	return rounded
}

// Float is Round for callers holding a float64. The float is converted using
// its shortest decimal representation, so Float(10.49, 1) sees 10.49 and not
// the nearest binary fraction.
func Float(n float64, places int32) float64 {
	return Round(decimal.NewFromFloat(n), places).InexactFloat64()
}
