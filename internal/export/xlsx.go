// Package export writes invoice tables to Excel workbooks and CSV.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gstbook/internal/table"
	"gstbook/pkg/models"
)

// Sheet names of an exported workbook.
const (
	MainSheet   = "main"
	GoldSheet   = "gold"
	SilverSheet = "silver"
)

const (
	moneyFormat    = "0.00"
	quantityFormat = "0.000"
	dateFormat     = "[$-en-US]dd-mmm-yy;@"
	highlight      = "FFFF00"
)

type styles struct {
	header   int
	money    int
	quantity int
	date     int
	text     int
	invalid  int
	footer   int
	footerQD int
}

// Workbook builds a workbook with every row on the main sheet and one sheet
// per material. Rows are ordered by bill number; the material sheets also
// total the quantity column.
func Workbook(t *table.Table) (*excelize.File, error) {
	sorted := table.New(t.Rows())
	if err := sorted.SortBy(table.BillNo, false); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create styles: %w", err)
	}

	sheets := []struct {
		name         string
		rows         []models.Row
		withQuantity bool
	}{
		{MainSheet, sorted.Rows(), false},
		{GoldSheet, sorted.FilterByItem("gold"), true},
		{SilverSheet, sorted.FilterByItem("silver"), true},
	}
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, st, s.name, s.rows, s.withQuantity); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write sheet %s: %w", s.name, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		_ = f.Close()
		return nil, err
	}
	if idx, err := f.GetSheetIndex(MainSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// SaveWorkbook writes the workbook for t to path.
func SaveWorkbook(t *table.Table, path string) error {
	f, err := Workbook(t)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// WriteWorkbook streams the workbook for t to w.
func WriteWorkbook(t *table.Table, w io.Writer) error {
	f, err := Workbook(t)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, st styles, sheet string, rows []models.Row, withQuantity bool) error {
	header := make([]interface{}, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(table.Header))
	if err := f.SetCellStyle(sheet, "A1", last+"1", st.header); err != nil {
		return err
	}

	for i, row := range rows {
		r := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, r)
		values := cells(row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		if err := styleRow(f, st, sheet, r, row); err != nil {
			return err
		}
	}

	footerRow := len(rows) + 2
	scratch := table.New(rows)
	for col, formula := range scratch.Footer(2, footerRow-1, withQuantity) {
		if formula == "" {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, footerRow)
		if err := f.SetCellFormula(sheet, cell, strings.TrimPrefix(formula, "=")); err != nil {
			return err
		}
		style := st.footer
		if table.Header[col] == table.Quantity {
			style = st.footerQD
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}

	widths := map[string]float64{"A": 8, "B": 8, "C": 12, "D": 10, "E": 12, "F": 10, "G": 10, "H": 10, "I": 12}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func styleRow(f *excelize.File, st styles, sheet string, r int, row models.Row) error {
	for col, name := range table.Header {
		style := st.text
		switch name {
		case table.Date:
			style = st.date
		case table.Quantity:
			style = st.quantity
		case table.TaxableAmount, table.SGST, table.CGST, table.RoundOff, table.Total:
			style = st.money
		case table.Valid:
			if !row.Valid {
				style = st.invalid
			}
		case "":
			style = st.money
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, r)
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// cells converts a row to workbook values: decimals become numbers and the
// empty spare column stays blank.
func cells(row models.Row) []interface{} {
	values := row.Values()
	out := make([]interface{}, len(values))
	for i, v := range values {
		if d, ok := v.(decimal.Decimal); ok {
			out[i] = d.InexactFloat64()
			continue
		}
		out[i] = v
	}
	return out
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	topBottom := []excelize.Border{
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true, ShrinkToFit: true}
	fill := excelize.Fill{Type: "pattern", Color: []string{highlight}, Pattern: 1}
	money, quantity, date := moneyFormat, quantityFormat, dateFormat

	var st styles
	var err error
	if st.header, err = f.NewStyle(&excelize.Style{Border: border, Alignment: center, Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	if st.money, err = f.NewStyle(&excelize.Style{Border: border, CustomNumFmt: &money}); err != nil {
		return st, err
	}
	if st.quantity, err = f.NewStyle(&excelize.Style{Border: border, CustomNumFmt: &quantity}); err != nil {
		return st, err
	}
	if st.date, err = f.NewStyle(&excelize.Style{Border: border, Alignment: center, CustomNumFmt: &date}); err != nil {
		return st, err
	}
	if st.text, err = f.NewStyle(&excelize.Style{Border: border, Alignment: center}); err != nil {
		return st, err
	}
	if st.invalid, err = f.NewStyle(&excelize.Style{Border: border, Alignment: center, Fill: fill}); err != nil {
		return st, err
	}
	if st.footer, err = f.NewStyle(&excelize.Style{Border: topBottom, Fill: fill, CustomNumFmt: &money}); err != nil {
		return st, err
	}
	if st.footerQD, err = f.NewStyle(&excelize.Style{Border: topBottom, Fill: fill, CustomNumFmt: &quantity}); err != nil {
		return st, err
	}
	return st, nil
}
