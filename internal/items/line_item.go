package items

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gstbook/internal/gst"
	"gstbook/internal/rounding"
)

// DefaultTaxRate is the per-leg rate applied to jewelry lines.
var DefaultTaxRate = decimal.RequireFromString("1.5")

// Group is a LineItem or an Aggregate: anything that carries the money fields
// of one invoice.
type Group interface {
	InvoiceNo() int
	Subtotal() decimal.Decimal
	Tax() gst.Combined
	RoundOff() decimal.Decimal
	Total() decimal.Decimal
	Items() []LineItem
}

var (
	_ Group = LineItem{}
	_ Group = (*Aggregate)(nil)
)

// LineItem is one material line of an invoice. Total is the tax inclusive
// amount rounded to a whole unit; RoundOff is what that rounding added.
type LineItem struct {
	invoiceNo int
	material  Material
	quantity  decimal.Decimal
	subtotal  decimal.Decimal
	taxRate   decimal.Decimal
	tax       gst.Combined
	total     decimal.Decimal
	roundOff  decimal.Decimal
}

// NewLineItem builds a line, rounding quantity to 3 places and subtotal to 2,
// and derives its tax from taxRate.
func NewLineItem(invoiceNo int, m Material, quantity, subtotal, taxRate decimal.Decimal) (LineItem, error) {
	if m != Gold && m != Silver {
		return LineItem{}, fmt.Errorf("%w: %q", ErrUnknownMaterial, m)
	}

	subtotal = rounding.Round(subtotal, 2)
	tax, err := gst.NewCombined(gst.Rate(taxRate), gst.Subtotal(subtotal))
	if err != nil {
		return LineItem{}, fmt.Errorf("invoice %d %s line: %w", invoiceNo, m, err)
	}

	total := rounding.Round(tax.Total(), 0)
	return LineItem{
		invoiceNo: invoiceNo,
		material:  m,
		quantity:  rounding.Round(quantity, 3),
		subtotal:  subtotal,
		taxRate:   taxRate,
		tax:       tax,
		total:     total,
		roundOff:  rounding.Round(total.Sub(tax.Total()), 2),
	}, nil
}

func (l LineItem) InvoiceNo() int             { return l.invoiceNo }
func (l LineItem) Material() Material         { return l.material }
func (l LineItem) Quantity() decimal.Decimal  { return l.quantity }
func (l LineItem) Subtotal() decimal.Decimal  { return l.subtotal }
func (l LineItem) TaxRate() decimal.Decimal   { return l.taxRate }
func (l LineItem) Tax() gst.Combined          { return l.tax }
func (l LineItem) Total() decimal.Decimal     { return l.total }
func (l LineItem) RoundOff() decimal.Decimal  { return l.roundOff }
func (l LineItem) Items() []LineItem          { return []LineItem{l} }
func (l LineItem) IsZero() bool               { return l.material == "" }
func (l LineItem) compatible(o LineItem) bool { return l.invoiceNo == o.invoiceNo && l.taxRate.Equal(o.taxRate) }

// Add merges two lines of the same invoice and rate. Lines of the same
// material sum into one LineItem whose tax and total are recomputed; lines
// of different materials form an Aggregate. Any other line is ignored and l
// is returned unchanged.
func (l LineItem) Add(other LineItem) (Group, error) {
	if l.IsZero() {
		return other, nil
	}
	if other.IsZero() || !l.compatible(other) {
		return l, nil
	}
	if l.material != other.material {
		agg, err := NewAggregate([]LineItem{l, other})
		if err != nil {
			return nil, err
		}
		return agg, nil
	}

	merged, err := NewLineItem(l.invoiceNo, l.material,
		l.quantity.Add(other.quantity), l.subtotal.Add(other.subtotal), l.taxRate)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (l LineItem) String() string {
	return fmt.Sprintf("%s: %s gm - %s", l.material, l.quantity.StringFixed(3), l.subtotal.StringFixed(2))
}
