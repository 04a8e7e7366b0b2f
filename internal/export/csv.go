package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gstbook/internal/table"
)

// BOM lets Excel on Windows detect UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes invoice tables as CSV with the table header.
type CSVWriter struct {
	w   io.Writer
	csv *csv.Writer
	bom bool
}

// CSVOption configures a CSVWriter.
type CSVOption func(*CSVWriter)

// WithBOM prefixes the output with BOM.
func WithBOM() CSVOption {
	return func(w *CSVWriter) { w.bom = true }
}

// NewCSVWriter creates a CSVWriter that writes to w.
func NewCSVWriter(w io.Writer, opts ...CSVOption) *CSVWriter {
	cw := &CSVWriter{w: w, csv: csv.NewWriter(w)}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

// WriteTable writes the header and every row, then flushes.
func (w *CSVWriter) WriteTable(t *table.Table) error {
	if w.bom {
		if _, err := w.w.Write(BOM); err != nil {
			return err
		}
	}
	if err := w.csv.Write(table.Header); err != nil {
		return err
	}

	for _, row := range t.Rows() {
		values := row.Values()
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = csvValue(table.Header[i], v)
		}
		if err := w.csv.Write(record); err != nil {
			return err
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}

func csvValue(column string, v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format("02-01-2006")
	case decimal.Decimal:
		if column == table.Quantity {
			return x.StringFixed(3)
		}
		return x.StringFixed(2)
	}
	return ""
}
