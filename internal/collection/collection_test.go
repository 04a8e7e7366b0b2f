package collection

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gstbook/internal/table"
)

type fakeSource struct {
	creator string
	pages   []string
	failAt  int
}

func (f *fakeSource) Name() string    { return "fake.pdf" }
func (f *fakeSource) Creator() string { return f.creator }
func (f *fakeSource) NumPages() int   { return len(f.pages) }

func (f *fakeSource) PageText(page int) (string, error) {
	if page == f.failAt {
		return "", errors.New("broken content stream")
	}
	return f.pages[page-1], nil
}

func page(no int, lines ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tax Invoice\nInvoice No. : %d\nDate : 0%d-06-2023\n", no, no%9+1)
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}
	return sb.String()
}

func validPage(no int) string {
	return page(no,
		"1 gold Chain 22K 10gm ₹ 1,000.00 ₹ 10,000.00",
		"Sub Total ₹ 10,000.00",
		"SGST@1.5% ₹ 150.00",
		"CGST@1.5% ₹ 150.00",
		"Round off - 0.00",
		"Total ₹ 10300.00",
	)
}

func newSource(pages ...string) *fakeSource {
	return &fakeSource{creator: "Vyaparapp 18.2", pages: pages}
}

func TestLoadSkipsNonInvoicePages(t *testing.T) {
	src := newSource(validPage(1), "Terms and conditions", validPage(3))

	c, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Invoices()[0].Number)
	assert.Equal(t, 3, c.Invoices()[1].Number)
	assert.Equal(t, []int{2}, c.Skipped())
	assert.Equal(t, "fake.pdf", c.Name())
}

func TestLoadWorkersPreservePageOrder(t *testing.T) {
	var pages []string
	for i := 1; i <= 40; i++ {
		if i%5 == 0 {
			pages = append(pages, strings.Replace(validPage(i), "Invoice No.", "Estimate", 1))
			continue
		}
		pages = append(pages, validPage(i))
	}

	c, err := Load(context.Background(), newSource(pages...), Workers(8))
	require.NoError(t, err)
	require.Equal(t, 32, c.Len())
	assert.Len(t, c.Skipped(), 8)
	for i := 1; i < c.Len(); i++ {
		assert.Less(t, c.Invoices()[i-1].Number, c.Invoices()[i].Number)
	}
}

func TestLoadSourceMismatch(t *testing.T) {
	src := newSource(validPage(1))
	src.creator = "Microsoft Word"

	_, err := Load(context.Background(), src)
	assert.ErrorIs(t, err, ErrSourceMismatch)

	var serr *SourceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "fake.pdf", serr.Path)

	c, err := Load(context.Background(), src, WithCreatorMarker(""))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoadPageReadFailureAborts(t *testing.T) {
	src := newSource(validPage(1), validPage(2))
	src.failAt = 2

	_, err := Load(context.Background(), src)
	assert.ErrorIs(t, err, ErrSourceRead)
}

func TestLoadSkipsPagesWithInconsistentData(t *testing.T) {
	tests := []struct {
		name string
		page string
	}{
		{
			name: "zero amount item line",
			page: validPage(2) + "2 silver Coin gift 1gm ₹ 0.00 ₹ 0.00\n",
		},
		{
			name: "zero rate tax lines",
			page: page(2,
				"1 gold Chain 22K 10gm ₹ 1,000.00 ₹ 10,000.00",
				"Sub Total ₹ 10,000.00",
				"SGST@0% ₹ 0.00",
				"CGST@0% ₹ 0.00",
				"Total ₹ 10000.00",
			),
		},
		{
			name: "unequal tax legs",
			page: strings.Replace(validPage(2), "CGST@1.5% ₹ 150.00", "CGST@1.5% ₹ 150.01", 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(context.Background(), newSource(validPage(1), tt.page, validPage(3)))
			require.NoError(t, err)
			require.Equal(t, 2, c.Len())
			assert.Equal(t, 1, c.Invoices()[0].Number)
			assert.Equal(t, 3, c.Invoices()[1].Number)
			assert.Equal(t, []int{2}, c.Skipped())
		})
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, newSource(validPage(1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTableRows(t *testing.T) {
	mixed := page(4,
		"1 gold Ring 5gm ₹ 1,000.00 ₹ 5,000.00",
		"2 silver Anklet 100gm ₹ 20.00 ₹ 2,000.00",
		"Sub Total ₹ 7,000.00",
		"SGST@1.5% ₹ 105.00",
		"CGST@1.5% ₹ 105.00",
		"Total ₹ 7210.00",
	)
	c, err := Load(context.Background(), newSource(validPage(1), mixed))
	require.NoError(t, err)

	tbl := c.Table(RowOptions{})
	require.Equal(t, 3, tbl.Len())
	rows := tbl.Rows()

	assert.Equal(t, 1, rows[0].BillNo)
	assert.Equal(t, "gold", rows[0].Item)
	assert.True(t, rows[0].SGST.Equal(decimal.NewFromInt(150)))
	assert.True(t, rows[0].Total.Equal(decimal.NewFromInt(10300)))
	assert.True(t, rows[0].Valid)

	assert.Equal(t, "silver", rows[1].Item)
	assert.Equal(t, "gold", rows[2].Item)
	assert.True(t, rows[1].Valid)

	assert.Len(t, tbl.FilterByItem("gold"), 2)
	assert.Len(t, rows[0].Values(), len(table.Header))
}

func TestTableForceInvoiceData(t *testing.T) {
	// Item amount disagrees with the printed subtotal, so the invoice is invalid.
	p := page(9,
		"1 gold Chain 22K 10gm ₹ 1,000.00 ₹ 9,990.00",
		"Sub Total ₹ 10,000.00",
		"SGST@1.5% ₹ 150.00",
		"CGST@1.5% ₹ 150.00",
		"Round off - 0.40",
		"Total ₹ 10299.00",
	)
	c, err := Load(context.Background(), newSource(p))
	require.NoError(t, err)
	require.False(t, c.Invoices()[0].IsValid())

	derived := c.Table(RowOptions{}).Rows()[0]
	assert.True(t, derived.SGST.Equal(decimal.RequireFromString("149.85")))
	assert.True(t, derived.Total.Equal(decimal.NewFromInt(10290)))

	forced := c.Table(RowOptions{ForceInvoiceData: true}).Rows()[0]
	assert.True(t, forced.SGST.Equal(decimal.NewFromInt(150)))
	assert.True(t, forced.CGST.Equal(decimal.NewFromInt(150)))
	assert.True(t, forced.RoundOff.Equal(decimal.RequireFromString("-0.40")))
	assert.True(t, forced.Total.Equal(decimal.NewFromInt(10299)))
	assert.True(t, forced.TaxableAmount.Equal(decimal.NewFromInt(9990)))
	assert.False(t, forced.Valid)
}

func TestReadPDFRejectsGarbage(t *testing.T) {
	_, err := ReadPDF("notes.txt", []byte("hello"), "")
	assert.ErrorIs(t, err, ErrSourceRead)
	assert.ErrorContains(t, err, "not a pdf")

	_, err = ReadPDF("broken.pdf", []byte("%PDF-1.4 garbage"), "")
	assert.ErrorIs(t, err, ErrSourceRead)
	assert.ErrorContains(t, err, "corrupt pdf")
}

func TestOpenPDFMissingFile(t *testing.T) {
	_, err := OpenPDF(filepath.Join(t.TempDir(), "missing.pdf"), "")
	assert.ErrorIs(t, err, ErrSourceRead)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
