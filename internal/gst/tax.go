package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tax is what an invoice states as its tax: a single leg when only one is
// printed, or a Combined tax when both are.
type Tax interface {
	Rate() decimal.Decimal
	Subtotal() decimal.Decimal
	Amount() decimal.Decimal
	Legs() []Component
}

var (
	_ Tax = Component{}
	_ Tax = Combined{}
)

// LegAmount returns the amount of the leg of the given kind, or zero when t
// has no such leg or is nil.
func LegAmount(t Tax, kind Kind) decimal.Decimal {
	if t == nil {
		return decimal.Zero
	}
	for _, leg := range t.Legs() {
		if leg.kind == kind {
			return leg.amount
		}
	}
	return decimal.Zero
}

// Reduce folds parsed tax lines into one Tax. A single line is returned as is.
// Otherwise CGST and SGST lines are paired in order and the pairs are summed,
// so every CGST line needs a matching SGST line.
func Reduce(components []Component) (Tax, error) {
	switch len(components) {
	case 0:
		return nil, ErrNoComponents
	case 1:
		return components[0], nil
	}

	var cgst, sgst []Component
	for _, c := range components {
		if c.kind == CGST {
			cgst = append(cgst, c)
		} else {
			sgst = append(sgst, c)
		}
	}
	if len(cgst) != len(sgst) {
		return nil, fmt.Errorf("%w: %d CGST lines against %d SGST lines",
			ErrIncompatibleComponents, len(cgst), len(sgst))
	}

	var total Combined
	for i := range cgst {
		pair, err := cgst[i].Add(sgst[i])
		if err != nil {
			return nil, err
		}
		if i == 0 {
			total = pair
			continue
		}
		if total, err = total.Add(pair); err != nil {
			return nil, err
		}
	}
	return total, nil
}
