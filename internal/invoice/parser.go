// Package invoice extracts the stated totals and item lines of one invoice
// page and reconciles them against each other.
package invoice

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gstbook/internal/gst"
	"gstbook/internal/items"
	"gstbook/internal/logger"
)

// MaxPageBytes bounds the text handed to the patterns.
const MaxPageBytes = 1 << 20

// DateLayout is how invoice dates are printed.
const DateLayout = "02-01-2006"

// RawItem is one matched item line before conversion.
type RawItem struct {
	Index       string
	Material    string
	Description string
	Quantity    string
	Unit        string
	UnitPrice   string
	Discount    string
	Amount      string
}

// Invoice is one parsed invoice page. Tax is nil when the page has no tax
// lines, and Total is invalid when no grand total line was found.
type Invoice struct {
	Number   int
	Date     time.Time
	Subtotal decimal.Decimal
	Tax      gst.Tax
	RoundOff decimal.Decimal
	Total    decimal.NullDecimal
	Items    *items.Aggregate
	RawItems []RawItem
}

// Option configures Parse.
type Option func(*parser)

type parser struct {
	defaultRate decimal.Decimal
}

// WithDefaultTaxRate sets the per-leg rate applied to item lines of a page
// without tax lines.
func WithDefaultTaxRate(rate decimal.Decimal) Option {
	return func(p *parser) {
		p.defaultRate = rate
	}
}

// ParseFunc parses the text returned by producer. Producer errors are
// wrapped in a ParseError.
func ParseFunc(producer func() (string, error), opts ...Option) (*Invoice, error) {
	const op = "ParseFunc"

	text, err := producer()
	if err != nil {
		return nil, newParseError(op, "", err, "reading page text")
	}
	return Parse(text, opts...)
}

// Parse extracts an invoice from page text. A missing invoice number, date
// or subtotal fails with ErrFieldNotFound; malformed numbers in any matched
// field fail with ErrNumericParse.
func Parse(text string, opts ...Option) (*Invoice, error) {
	const op = "Parse"
	log := logger.WithComponent("invoice-parser")

	p := &parser{defaultRate: items.DefaultTaxRate}
	for _, opt := range opts {
		opt(p)
	}

	if len(text) > MaxPageBytes {
		return nil, newParseError(op, "", ErrPageTooLarge, strconv.Itoa(len(text))+" bytes")
	}

	inv := &Invoice{}
	var err error

	if inv.Number, err = parseNumber(text); err != nil {
		return nil, err
	}
	if inv.Date, err = parseDate(text); err != nil {
		return nil, err
	}
	if inv.Subtotal, err = parseSubtotal(text); err != nil {
		return nil, err
	}
	if inv.Tax, err = parseTax(text); err != nil {
		return nil, err
	}
	if inv.RoundOff, err = parseRoundOff(text); err != nil {
		return nil, err
	}
	if inv.Total, err = parseTotal(text); err != nil {
		return nil, err
	}
	if err := inv.parseItems(text, p.defaultRate); err != nil {
		return nil, err
	}

	log.Debug().
		Int("invoice_no", inv.Number).
		Str("subtotal", inv.Subtotal.StringFixed(2)).
		Int("raw_items", len(inv.RawItems)).
		Bool("valid", inv.IsValid()).
		Msg("Parsed invoice page")

	return inv, nil
}

func parseNumber(text string) (int, error) {
	m := invoiceNoRe.FindStringSubmatch(text)
	if m == nil {
		return 0, newParseError("Parse", "invoice_no", ErrFieldNotFound, "")
	}
	raw := group(invoiceNoRe, m, "no")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newParseError("Parse", "invoice_no", ErrNumericParse, raw)
	}
	return n, nil
}

func parseDate(text string) (time.Time, error) {
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, newParseError("Parse", "date", ErrFieldNotFound, "")
	}
	raw := group(dateRe, m, "date")
	date, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, newParseError("Parse", "date", ErrNumericParse, raw)
	}
	return date, nil
}

func parseSubtotal(text string) (decimal.Decimal, error) {
	m := subtotalRe.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, newParseError("Parse", "subtotal", ErrFieldNotFound, "")
	}
	return amountField("subtotal", group(subtotalRe, m, "subtotal"))
}

// parseTax folds every tax line. Tax algebra errors come back as a
// ParseError wrapping the gst sentinel.
func parseTax(text string) (gst.Tax, error) {
	matches := taxRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	components := make([]gst.Component, 0, len(matches))
	for _, m := range matches {
		kind, err := gst.ParseKind(group(taxRe, m, "kind"))
		if err != nil {
			return nil, newParseError("Parse", "tax_kind", err, m[0])
		}
		rate, err := amountField("tax_rate", group(taxRe, m, "rate"))
		if err != nil {
			return nil, err
		}
		amount, err := amountField("tax_amount", group(taxRe, m, "amount"))
		if err != nil {
			return nil, err
		}

		c, err := gst.NewComponent(kind, gst.Rate(rate), gst.Amount(amount))
		if err != nil {
			return nil, newParseError("Parse", "tax", err, m[0])
		}
		components = append(components, c)
	}

	tax, err := gst.Reduce(components)
	if err != nil {
		return nil, newParseError("Parse", "tax", err, "")
	}
	return tax, nil
}

func parseRoundOff(text string) (decimal.Decimal, error) {
	m := roundOffRe.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, nil
	}
	return amountField("round_off", group(roundOffRe, m, "minus")+group(roundOffRe, m, "roundoff"))
}

func parseTotal(text string) (decimal.NullDecimal, error) {
	for _, m := range totalRe.FindAllStringSubmatch(text, -1) {
		if group(totalRe, m, "sub") != "" {
			continue
		}
		total, err := amountField("total", group(totalRe, m, "total"))
		if err != nil {
			return decimal.NullDecimal{}, err
		}
		return decimal.NewNullDecimal(total), nil
	}
	return decimal.NullDecimal{}, nil
}

func (inv *Invoice) parseItems(text string, defaultRate decimal.Decimal) error {
	rate := defaultRate
	if inv.Tax != nil {
		rate = inv.Tax.Rate()
	}

	var lines []items.LineItem
	for _, m := range itemRe.FindAllStringSubmatch(text, -1) {
		raw := RawItem{
			Index:       group(itemRe, m, "n"),
			Material:    group(itemRe, m, "item"),
			Description: strings.TrimSpace(group(itemRe, m, "desc")),
			Quantity:    group(itemRe, m, "quantity"),
			Unit:        group(itemRe, m, "unit"),
			UnitPrice:   group(itemRe, m, "unitprice"),
			Discount:    group(itemRe, m, "discount"),
			Amount:      group(itemRe, m, "amount"),
		}
		inv.RawItems = append(inv.RawItems, raw)

		material, err := items.ParseMaterial(raw.Material)
		if err != nil {
			return newParseError("Parse", "item", err, raw.Material)
		}
		quantity, err := amountField("item_quantity", raw.Quantity)
		if err != nil {
			return err
		}
		amount, err := amountField("item_amount", raw.Amount)
		if err != nil {
			return err
		}

		line, err := items.NewLineItem(inv.Number, material, quantity, amount, rate)
		if err != nil {
			return newParseError("Parse", "item", err, m[0])
		}
		lines = append(lines, line)
	}

	agg, err := items.NewAggregate(lines)
	if err != nil {
		return newParseError("Parse", "items", err, "")
	}
	inv.Items = agg
	return nil
}

func amountField(field, raw string) (decimal.Decimal, error) {
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, newParseError("Parse", field, errors.Unwrap(err), raw)
	}
	return d, nil
}

// IsValid reports whether the stated subtotal and tax exactly equal the
// values derived from the item lines.
func (inv *Invoice) IsValid() bool {
	return inv.Subtotal.Equal(inv.Items.Subtotal()) && taxMatches(inv.Tax, inv.Items.Tax())
}

// SingleItem reports whether exactly one item line was matched.
func (inv *Invoice) SingleItem() bool {
	return len(inv.RawItems) == 1
}

func taxMatches(stated gst.Tax, derived gst.Combined) bool {
	c, ok := stated.(gst.Combined)
	return ok && c.Equal(derived)
}
