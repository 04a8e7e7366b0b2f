// Package table holds the row oriented invoice table and the sort, filter
// and footer operations the exporters need.
package table

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gstbook/pkg/models"
)

// ErrUnknownColumn is returned for a column name not in Header.
var ErrUnknownColumn = errors.New("unknown column")

// Column names.
const (
	BillNo        = "BILL NO"
	Item          = "ITEM"
	Date          = "DATE"
	Quantity      = "QUANTITY"
	TaxableAmount = "TAXABLE AMOUNT"
	SGST          = "SGST"
	CGST          = "CGST"
	RoundOff      = "ROUND OFF"
	Total         = "TOTAL"
	Valid         = "VALID"
)

// Header is the fixed column layout. Spare columns are blank.
var Header = []string{BillNo, Item, Date, Quantity, TaxableAmount, SGST, CGST, RoundOff, Total, "", "", "", Valid}

// Table is an ordered list of rows.
type Table struct {
	rows []models.Row
}

// New copies rows into a table.
func New(rows []models.Row) *Table {
	return &Table{rows: slices.Clone(rows)}
}

func (t *Table) Len() int           { return len(t.rows) }
func (t *Table) IsEmpty() bool      { return len(t.rows) == 0 }
func (t *Table) Rows() []models.Row { return slices.Clone(t.rows) }

// ColumnIndex returns the zero based position of a named column.
func ColumnIndex(column string) (int, error) {
	if column != "" {
		if i := slices.Index(Header, column); i >= 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}

// SortBy orders rows by a column. The sort is stable in both directions.
func (t *Table) SortBy(column string, reverse bool) error {
	i, err := ColumnIndex(column)
	if err != nil {
		return err
	}
	slices.SortStableFunc(t.rows, func(a, b models.Row) int {
		c := compare(a.Values()[i], b.Values()[i])
		if reverse {
			return -c
		}
		return c
	})
	return nil
}

// Filter returns the rows whose column equals value.
func (t *Table) Filter(column string, value any) ([]models.Row, error) {
	i, err := ColumnIndex(column)
	if err != nil {
		return nil, err
	}
	return t.where(func(r models.Row) bool {
		return compare(r.Values()[i], value) == 0
	}), nil
}

// FilterByItem returns the rows of one material.
func (t *Table) FilterByItem(item string) []models.Row {
	return t.where(func(r models.Row) bool { return r.Item == item })
}

// FilterByDate returns the rows dated within [from, to]. A zero to leaves
// the range open; a to before from returns every row.
func (t *Table) FilterByDate(from, to time.Time) []models.Row {
	if !to.IsZero() && to.Before(from) {
		return t.Rows()
	}
	return t.where(func(r models.Row) bool {
		if r.Date.Before(from) {
			return false
		}
		return to.IsZero() || !r.Date.After(to)
	})
}

// Footer returns a row of =SUM formulas over the 1-based sheet rows start
// to end for the money columns, and QUANTITY when withQuantity is set. A
// nonpositive end runs to the last data row.
func (t *Table) Footer(start, end int, withQuantity bool) []string {
	if start < 1 {
		start = 1
	}
	if end < 1 {
		end = max(start+t.Len()-1, 1)
	}

	sums := []string{TaxableAmount, SGST, CGST, RoundOff, Total}
	if withQuantity {
		sums = append([]string{Quantity}, sums...)
	}

	footer := make([]string, len(Header))
	for _, column := range sums {
		i, _ := ColumnIndex(column)
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		footer[i] = fmt.Sprintf("=SUM(%s%d:%s%d)", letter, start, letter, end)
	}
	return footer
}

func (t *Table) where(keep func(models.Row) bool) []models.Row {
	var out []models.Row
	for _, r := range t.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// compare orders two cell values. Values of different kinds never compare
// equal.
func compare(a, b any) int {
	switch x := a.(type) {
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case string:
		if y, ok := b.(string); ok {
			return cmp.Compare(x, y)
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case decimal.Decimal:
		if y, ok := b.(decimal.Decimal); ok {
			return x.Cmp(y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmp.Compare(boolRank(x), boolRank(y))
		}
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	return 1
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
