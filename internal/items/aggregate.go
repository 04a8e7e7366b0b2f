package items

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gstbook/internal/gst"
	"gstbook/internal/rounding"
)

// Aggregate holds the canonical lines of one invoice: at most one gold and
// one silver LineItem, with money fields summed over whichever are present.
// The zero Aggregate has no lines and zero totals.
type Aggregate struct {
	invoiceNo int
	gold      LineItem
	silver    LineItem

	subtotal decimal.Decimal
	tax      gst.Combined
	roundOff decimal.Decimal
	total    decimal.Decimal
}

// NewAggregate folds lines into one per material. All lines must share an
// invoice number and a tax rate.
func NewAggregate(lines []LineItem) (*Aggregate, error) {
	a := &Aggregate{}
	for i, line := range lines {
		if line.IsZero() {
			continue
		}
		if err := a.accept(line, i); err != nil {
			return nil, err
		}

		var err error
		switch line.material {
		case Gold:
			a.gold, err = fold(a.gold, line)
		case Silver:
			a.silver, err = fold(a.silver, line)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := a.summarize(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Aggregate) accept(line LineItem, i int) error {
	first, ok := a.first()
	if !ok {
		a.invoiceNo = line.invoiceNo
		return nil
	}
	if line.invoiceNo != first.invoiceNo {
		return fmt.Errorf("%w: line %d is from invoice %d, want %d",
			ErrInvoiceMismatch, i, line.invoiceNo, first.invoiceNo)
	}
	if !line.taxRate.Equal(first.taxRate) {
		return fmt.Errorf("%w: line %d taxed at %s%%, want %s%%",
			ErrIncompatibleItems, i, line.taxRate, first.taxRate)
	}
	return nil
}

func (a *Aggregate) first() (LineItem, bool) {
	switch {
	case !a.silver.IsZero():
		return a.silver, true
	case !a.gold.IsZero():
		return a.gold, true
	}
	return LineItem{}, false
}

func fold(acc, line LineItem) (LineItem, error) {
	if acc.IsZero() {
		return line, nil
	}
	return NewLineItem(acc.invoiceNo, acc.material,
		acc.quantity.Add(line.quantity), acc.subtotal.Add(line.subtotal), acc.taxRate)
}

func (a *Aggregate) summarize() error {
	present := a.Items()
	switch len(present) {
	case 0:
		return nil
	case 1:
		only := present[0]
		a.subtotal, a.tax, a.roundOff, a.total = only.subtotal, only.tax, only.roundOff, only.total
		return nil
	}

	tax, err := a.silver.tax.Add(a.gold.tax)
	if err != nil {
		return fmt.Errorf("invoice %d: %w", a.invoiceNo, err)
	}
	a.subtotal = a.silver.subtotal.Add(a.gold.subtotal)
	a.tax = tax
	a.roundOff = rounding.Round(a.silver.roundOff.Add(a.gold.roundOff), 2)
	a.total = a.silver.total.Add(a.gold.total)
	return nil
}

// Add folds one more line into a copy of the aggregate.
func (a *Aggregate) Add(line LineItem) (*Aggregate, error) {
	return NewAggregate(append(a.Items(), line))
}

// Merge combines two aggregates of the same invoice.
func (a *Aggregate) Merge(other *Aggregate) (*Aggregate, error) {
	if other == nil {
		return a, nil
	}
	return NewAggregate(append(a.Items(), other.Items()...))
}

// Items returns the present lines, silver before gold.
func (a *Aggregate) Items() []LineItem {
	if a == nil {
		return nil
	}
	var out []LineItem
	for _, l := range []LineItem{a.silver, a.gold} {
		if !l.IsZero() {
			out = append(out, l)
		}
	}
	return out
}

// Gold returns the gold line and whether one exists.
func (a *Aggregate) Gold() (LineItem, bool) { return a.gold, !a.gold.IsZero() }

// Silver returns the silver line and whether one exists.
func (a *Aggregate) Silver() (LineItem, bool) { return a.silver, !a.silver.IsZero() }

func (a *Aggregate) InvoiceNo() int            { return a.invoiceNo }
func (a *Aggregate) Subtotal() decimal.Decimal { return a.subtotal }
func (a *Aggregate) Tax() gst.Combined         { return a.tax }
func (a *Aggregate) RoundOff() decimal.Decimal { return a.roundOff }
func (a *Aggregate) Total() decimal.Decimal    { return a.total }
func (a *Aggregate) Len() int                  { return len(a.Items()) }

func (a *Aggregate) String() string {
	return fmt.Sprintf("invoice %d %v", a.invoiceNo, a.Items())
}
