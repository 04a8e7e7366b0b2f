package invoice

import (
	"github.com/shopspring/decimal"
	"gstbook/internal/gst"
	"gstbook/internal/logger"
)

// Check compares one stated invoice field with the value derived from the
// item lines. Stated is invalid when the page did not print the field.
type Check struct {
	Field   string
	Stated  decimal.NullDecimal
	Derived decimal.Decimal
	Match   bool
}

// Report is the field by field reconciliation of an invoice.
type Report struct {
	Number int
	Checks []Check
	Valid  bool
}

// Mismatches returns the checks that failed.
func (r Report) Mismatches() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.Match {
			out = append(out, c)
		}
	}
	return out
}

// Reconcile compares invoice number, subtotal, tax, round off and total
// against the item aggregate. Only subtotal and tax decide validity; the
// other checks are informational.
func (inv *Invoice) Reconcile() Report {
	log := logger.WithComponent("reconciliation")
	derived := inv.Items

	var statedTax decimal.NullDecimal
	if inv.Tax != nil {
		statedTax = decimal.NewNullDecimal(inv.Tax.Amount())
	}

	report := Report{
		Number: inv.Number,
		Valid:  inv.IsValid(),
		Checks: []Check{
			{
				Field:   "invoice_no",
				Stated:  decimal.NewNullDecimal(decimal.NewFromInt(int64(inv.Number))),
				Derived: decimal.NewFromInt(int64(derived.InvoiceNo())),
				Match:   inv.Number == derived.InvoiceNo(),
			},
			{
				Field:   "subtotal",
				Stated:  decimal.NewNullDecimal(inv.Subtotal),
				Derived: derived.Subtotal(),
				Match:   inv.Subtotal.Equal(derived.Subtotal()),
			},
			{
				Field:   "tax",
				Stated:  statedTax,
				Derived: derived.Tax().Amount(),
				Match:   taxMatches(inv.Tax, derived.Tax()),
			},
			{
				Field:   "round_off",
				Stated:  decimal.NewNullDecimal(inv.RoundOff),
				Derived: derived.RoundOff(),
				Match:   inv.RoundOff.Equal(derived.RoundOff()),
			},
			{
				Field:   "total",
				Stated:  inv.Total,
				Derived: derived.Total(),
				Match:   inv.Total.Valid && inv.Total.Decimal.Equal(derived.Total()),
			},
		},
	}

	for _, c := range report.Checks {
		ev := log.Debug()
		if !c.Match {
			ev = log.Warn()
		}
		ev.Int("invoice_no", inv.Number).
			Str("field", c.Field).
			Str("stated", stated(c.Stated)).
			Str("derived", c.Derived.StringFixed(2)).
			Bool("match", c.Match).
			Msg("Reconciled invoice field")
	}

	log.Info().
		Int("invoice_no", inv.Number).
		Int("mismatches", len(report.Mismatches())).
		Bool("valid", report.Valid).
		Msg("Invoice reconciliation completed")

	return report
}

// LegAmount returns the stated amount of one tax leg, zero when absent.
func (inv *Invoice) LegAmount(kind gst.Kind) decimal.Decimal {
	return gst.LegAmount(inv.Tax, kind)
}

func stated(v decimal.NullDecimal) string {
	if !v.Valid {
		return "-"
	}
	return v.Decimal.StringFixed(2)
}
