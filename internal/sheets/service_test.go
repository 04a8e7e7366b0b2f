package sheets

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gstbook/internal/table"
	"gstbook/pkg/models"
)

func TestSpreadsheetID(t *testing.T) {
	id, err := SpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_9", id)

	_, err = SpreadsheetID("https://example.com/sheet")
	assert.Error(t, err)
}

func TestValues(t *testing.T) {
	tbl := table.New([]models.Row{{
		BillNo:        1021,
		Item:          "gold",
		Date:          time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC),
		Quantity:      decimal.RequireFromString("10.5"),
		TaxableAmount: decimal.RequireFromString("10000"),
		Valid:         true,
	}})

	values := Values(tbl)
	require.Len(t, values, 1)
	row := values[0]
	require.Len(t, row, len(table.Header))
	assert.Equal(t, 1021, row[0])
	assert.Equal(t, "05-06-2023", row[2])
	assert.Equal(t, 10.5, row[3])
	assert.Equal(t, "", row[9])
	assert.Equal(t, true, row[12])
}

func TestRanges(t *testing.T) {
	assert.Equal(t, "A:M", columnRange())
	assert.Equal(t, "A1:M1", headerCells())
}

func TestBillNumbers(t *testing.T) {
	values := [][]interface{}{
		{table.BillNo},
		{"1021"},
		{"1021"},
		{" 1022 "},
		{},
		{""},
		{"=SUM(E2:E4)"},
		{1023},
	}

	got := billNumbers(values, zerolog.Nop())
	assert.Equal(t, map[int]struct{}{1021: {}, 1022: {}, 1023: {}}, got)
}

func TestWithoutBillNumbers(t *testing.T) {
	tbl := table.New([]models.Row{
		{BillNo: 1, Item: "gold"},
		{BillNo: 2, Item: "gold"},
		{BillNo: 2, Item: "silver"},
		{BillNo: 3, Item: "silver"},
	})

	rest := WithoutBillNumbers(tbl, map[int]struct{}{2: {}})
	require.Equal(t, 2, rest.Len())
	assert.Equal(t, 1, rest.Rows()[0].BillNo)
	assert.Equal(t, 3, rest.Rows()[1].BillNo)

	assert.Equal(t, 4, WithoutBillNumbers(tbl, nil).Len())
}
