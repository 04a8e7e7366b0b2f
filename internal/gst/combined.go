package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Combined is the full tax of an invoice or line: one CGST and one SGST leg of
// the same rate. Rate is the per-leg rate, so a 1.5% + 1.5% split has Rate 1.5
// and an effective rate of 3%.
type Combined struct {
	rate     decimal.Decimal
	subtotal decimal.Decimal
	amount   decimal.Decimal
	total    decimal.Decimal

	cgst Component
	sgst Component
}

// NewCombined builds both legs from a rate and a subtotal (or amount). Every
// option may be given at most once.
func NewCombined(opts ...Option) (Combined, error) {
	a := &assignment{strict: true}
	if err := a.apply(opts); err != nil {
		return Combined{}, err
	}
	if a.rate.IsZero() || (a.subtotal.IsZero() && a.amount.IsZero()) {
		return Combined{}, fmt.Errorf("%w: need a rate and a subtotal or amount", ErrInsufficientArguments)
	}

	legOpts := []Option{Rate(a.rate), Amount(a.amount), Subtotal(a.subtotal)}
	cgst, err := NewComponent(CGST, legOpts...)
	if err != nil {
		return Combined{}, err
	}
	sgst, err := NewComponent(SGST, legOpts...)
	if err != nil {
		return Combined{}, err
	}
	return CombineComponents(cgst, sgst)
}

// CombineComponents pairs two existing legs.
func CombineComponents(cgst, sgst Component) (Combined, error) {
	if cgst.kind != CGST || sgst.kind != SGST {
		return Combined{}, fmt.Errorf("%w: want CGST and SGST, got %s and %s",
			ErrIncompatibleComponents, cgst.kind, sgst.kind)
	}
	if !cgst.rate.Equal(sgst.rate) {
		return Combined{}, fmt.Errorf("%w: %s%% != %s%%", ErrRateMismatch, cgst.rate, sgst.rate)
	}

	amount := cgst.amount.Add(sgst.amount)
	return Combined{
		rate:     cgst.rate,
		subtotal: cgst.subtotal,
		amount:   amount,
		total:    cgst.subtotal.Add(amount),
		cgst:     cgst,
		sgst:     sgst,
	}, nil
}

func (c Combined) Rate() decimal.Decimal     { return c.rate }
func (c Combined) Subtotal() decimal.Decimal { return c.subtotal }
func (c Combined) Amount() decimal.Decimal   { return c.amount }
func (c Combined) Total() decimal.Decimal    { return c.total }
func (c Combined) CGST() Component           { return c.cgst }
func (c Combined) SGST() Component           { return c.sgst }

// Legs returns the two components, SGST first.
func (c Combined) Legs() []Component {
	return []Component{c.sgst, c.cgst}
}

// IsZero reports whether c is the zero value, i.e. no tax at all.
func (c Combined) IsZero() bool {
	return c.rate.IsZero() && c.amount.IsZero() && c.subtotal.IsZero()
}

// Equal reports whether both taxes carry the same rate and amount.
func (c Combined) Equal(other Combined) bool {
	return c.rate.Equal(other.rate) && c.amount.Equal(other.amount)
}

// Add sums two taxes of the same rate. The amount is recomputed on the summed
// subtotal rather than added, so per-line rounding does not accumulate.
func (c Combined) Add(other Combined) (Combined, error) {
	if !c.rate.Equal(other.rate) {
		return Combined{}, fmt.Errorf("%w: %s%% != %s%%", ErrRateMismatch, c.rate, other.rate)
	}
	return NewCombined(Rate(c.rate), Subtotal(c.subtotal.Add(other.subtotal)))
}

func (c Combined) String() string {
	return fmt.Sprintf("GST %s%% %s", c.cgst.rate.Add(c.sgst.rate), c.amount.StringFixed(2))
}
