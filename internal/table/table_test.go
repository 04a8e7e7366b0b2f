package table

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gstbook/pkg/models"
)

func day(d int) time.Time { return time.Date(2023, time.June, d, 0, 0, 0, 0, time.UTC) }

func sampleRows() []models.Row {
	return []models.Row{
		{BillNo: 3, Item: "gold", Date: day(7), TaxableAmount: decimal.NewFromInt(300), Valid: true},
		{BillNo: 1, Item: "silver", Date: day(5), TaxableAmount: decimal.NewFromInt(100), Valid: true},
		{BillNo: 2, Item: "gold", Date: day(6), TaxableAmount: decimal.NewFromInt(200)},
		{BillNo: 1, Item: "gold", Date: day(5), TaxableAmount: decimal.NewFromInt(150), Valid: true},
	}
}

func billNos(rows []models.Row) []int {
	out := make([]int, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.BillNo)
	}
	return out
}

func TestHeader(t *testing.T) {
	require.Len(t, Header, 13)
	assert.Equal(t, "BILL NO", Header[0])
	assert.Equal(t, "VALID", Header[12])
	assert.Len(t, models.Row{}.Values(), len(Header))
}

func TestSortByIsStable(t *testing.T) {
	tbl := New(sampleRows())
	require.NoError(t, tbl.SortBy(BillNo, false))

	rows := tbl.Rows()
	assert.Equal(t, []int{1, 1, 2, 3}, billNos(rows))
	assert.Equal(t, "silver", rows[0].Item)
	assert.Equal(t, "gold", rows[1].Item)

	require.NoError(t, tbl.SortBy(TaxableAmount, true))
	assert.Equal(t, []int{3, 2, 1, 1}, billNos(tbl.Rows()))
}

func TestSortByUnknownColumn(t *testing.T) {
	tbl := New(sampleRows())
	assert.ErrorIs(t, tbl.SortBy("PRICE", false), ErrUnknownColumn)
	assert.ErrorIs(t, tbl.SortBy("", false), ErrUnknownColumn)
	assert.Equal(t, []int{3, 1, 2, 1}, billNos(tbl.Rows()))
}

func TestFilter(t *testing.T) {
	tbl := New(sampleRows())
	require.NoError(t, tbl.SortBy(BillNo, false))

	gold := tbl.FilterByItem("gold")
	assert.Equal(t, []int{1, 2, 3}, billNos(gold))
	for _, r := range gold {
		assert.Equal(t, "gold", r.Item)
	}

	byAmount, err := tbl.Filter(TaxableAmount, decimal.RequireFromString("200.00"))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, billNos(byAmount))

	invalid, err := tbl.Filter(Valid, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, billNos(invalid))

	_, err = tbl.Filter("NOPE", 1)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFilterByDate(t *testing.T) {
	tbl := New(sampleRows())

	assert.Equal(t, []int{3, 2}, billNos(tbl.FilterByDate(day(6), day(7))))
	assert.Equal(t, []int{3, 1, 2, 1}, billNos(tbl.FilterByDate(day(5), time.Time{})))
	assert.Equal(t, []int{3}, billNos(tbl.FilterByDate(day(7), time.Time{})))
	assert.Len(t, tbl.FilterByDate(day(7), day(5)), 4)
	assert.Empty(t, tbl.FilterByDate(day(8), day(9)))
}

func TestFooter(t *testing.T) {
	tbl := New(sampleRows())

	footer := tbl.Footer(2, 0, false)
	require.Len(t, footer, len(Header))
	assert.Empty(t, footer[3])
	assert.Equal(t, "=SUM(E2:E5)", footer[4])
	assert.Equal(t, "=SUM(I2:I5)", footer[8])
	assert.Empty(t, footer[12])

	withQty := tbl.Footer(2, 10, true)
	assert.Equal(t, "=SUM(D2:D10)", withQty[3])

	empty := New(nil)
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "=SUM(E1:E1)", empty.Footer(0, 0, false)[4])
}

func TestNewCopiesRows(t *testing.T) {
	rows := sampleRows()
	tbl := New(rows)
	rows[0].BillNo = 99
	assert.Equal(t, 3, tbl.Rows()[0].BillNo)
}
