package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row is one line of the invoice table: a merged gold or silver item of one
// invoice. Money fields are item derived unless the row was forced to the
// stated invoice values.
type Row struct {
	BillNo        int             // Invoice number
	Item          string          // "gold" or "silver"
	Date          time.Time       // Invoice date
	Quantity      decimal.Decimal // Grams, 3 decimals
	TaxableAmount decimal.Decimal // Subtotal before tax
	SGST          decimal.Decimal // State tax leg amount
	CGST          decimal.Decimal // Central tax leg amount
	RoundOff      decimal.Decimal // Rounding remainder
	Total         decimal.Decimal // Tax inclusive total, whole units

	// Spare columns, kept for manual bookkeeping in the exported sheet
	InvoiceRoundOff decimal.Decimal // Round off printed on the invoice
	ItemRoundOff    decimal.Decimal // Round off derived from the item

	Valid bool // Invoice reconciled against its items
}

// Values returns the row in column order. The first spare column is always
// nil.
func (r Row) Values() []any {
	return []any{
		r.BillNo,
		r.Item,
		r.Date,
		r.Quantity,
		r.TaxableAmount,
		r.SGST,
		r.CGST,
		r.RoundOff,
		r.Total,
		nil,
		r.InvoiceRoundOff,
		r.ItemRoundOff,
		r.Valid,
	}
}
