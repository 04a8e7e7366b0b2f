package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gstbook/internal/rounding"
)

var hundred = decimal.NewFromInt(100)

// Option assigns one input field of a Component or Combined value. Options are
// applied in order, then the remaining fields are derived once and the value
// is frozen.
type Option func(*assignment) error

// assignment collects the inputs of one constructor call. In strict mode every
// field is write-once; otherwise the component rules apply.
type assignment struct {
	strict bool

	rate     decimal.Decimal
	subtotal decimal.Decimal
	amount   decimal.Decimal

	rateSet     bool
	subtotalSet bool
	amountSet   bool
}

// Rate sets the percentage of one tax leg, e.g. 1.5 for 1.5%.
func Rate(r decimal.Decimal) Option {
	return func(a *assignment) error {
		if a.rateSet {
			if a.strict {
				return immutableField("rate")
			}
			return ErrRateImmutable
		}
		a.rate, a.rateSet = r, true
		return nil
	}
}

// Subtotal sets the taxable value the amount is computed on. A zero subtotal
// never replaces a nonzero one.
func Subtotal(s decimal.Decimal) Option {
	return func(a *assignment) error {
		if a.subtotalSet && a.strict {
			return immutableField("subtotal")
		}
		if s.IsZero() && !a.subtotal.IsZero() {
			return nil
		}
		a.subtotal, a.subtotalSet = s, true
		return nil
	}
}

// Amount sets the tax amount directly. The subtotal is then derived from it.
func Amount(v decimal.Decimal) Option {
	return func(a *assignment) error {
		if a.amountSet && a.strict {
			return immutableField("amount")
		}
		if !v.IsZero() && !a.amount.IsZero() {
			return ErrAmountImmutable
		}
		a.amount, a.amountSet = v, true
		return nil
	}
}

func (a *assignment) apply(opts []Option) error {
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return err
		}
	}
	return nil
}

// derive fills whichever of subtotal and amount was not supplied. A nonzero
// subtotal takes precedence over a supplied amount.
func (a *assignment) derive() error {
	switch {
	case !a.subtotal.IsZero():
		a.amount = amountOn(a.subtotal, a.rate)
	case !a.amount.IsZero():
		if a.rate.IsZero() {
			return fmt.Errorf("%w: cannot derive subtotal from amount at zero rate", ErrInsufficientArguments)
		}
		a.subtotal = rounding.Round(a.amount.Mul(hundred).Div(a.rate), 2)
	}
	return nil
}

func amountOn(subtotal, rate decimal.Decimal) decimal.Decimal {
	return rounding.Round(subtotal.Mul(rate).Div(hundred), 2)
}
