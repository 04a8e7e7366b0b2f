package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gstbook/internal/collection"
	"gstbook/internal/config"
	"gstbook/internal/export"
	"gstbook/internal/invoice"
	"gstbook/internal/table"
)

const pageText = `Invoice No. : 7
Date : 01-04-2024
1 gold Ring 4gm ₹ 2,500.00 ₹ 10,000.00
2 silver Anklet 100gm ₹ 80.00 ₹ 8,000.00
Sub Total ₹ 18,000.00
SGST@1.5% ₹ 270.00
CGST@1.5% ₹ 270.00
Round off - 0.00
Total ₹ 18540.00`

func TestHandleParseError(t *testing.T) {
	log := zerolog.Nop()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"canceled", context.Canceled, "canceled"},
		{"missing file", fmt.Errorf("open: %w", os.ErrNotExist), "file not found"},
		{"wrong creator", collection.ErrSourceMismatch, "not generated by the Vyapar app"},
		{"unreadable", collection.ErrSourceRead, "cannot read the PDF"},
		{"not an invoice", invoice.ErrFieldNotFound, "not an invoice page"},
		{"other", fmt.Errorf("boom"), "invoice parsing failed: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := handleParseError(tt.err, log)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestPageOutput(t *testing.T) {
	inv, err := invoice.Parse(pageText)
	require.NoError(t, err)

	out := pageInvoice(inv)
	assert.Equal(t, 7, out.Number)
	assert.Equal(t, "18000.00", out.Subtotal)
	assert.Equal(t, "270.00", out.SGST)
	assert.Equal(t, "270.00", out.CGST)
	assert.Equal(t, "18540.00", out.Total)
	assert.Equal(t, "1.5", out.TaxRate)
	assert.True(t, out.Valid)

	lines := pageItems(inv)
	require.Len(t, lines, 2)
	assert.Equal(t, "silver", lines[0].Material)
	assert.Equal(t, "100.000", lines[0].Quantity)
	assert.Equal(t, "120.00", lines[0].SGST)
	assert.Equal(t, "gold", lines[1].Material)
	assert.Equal(t, "10300.00", lines[1].Total)

	checks := pageChecks(inv.Reconcile())
	require.NotEmpty(t, checks)
	for _, c := range checks {
		assert.True(t, c.Match, c.Field)
	}
}

func TestReadPageTextFromStdin(t *testing.T) {
	c := &cobra.Command{}
	c.SetIn(strings.NewReader(pageText))

	text, err := readPageText(c, "-")
	require.NoError(t, err)
	assert.Equal(t, pageText, text)

	_, err = readPageText(c, filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteTableCSV(t *testing.T) {
	inv, err := invoice.Parse(pageText)
	require.NoError(t, err)
	tbl := table.New(collection.Rows(inv, collection.RowOptions{}))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeTable(tbl, config.FormatCSV, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, string(export.BOM)))
	assert.Contains(t, content, table.Header[0])
	assert.Contains(t, content, "01-04-2024")
}
