package collection

import (
	"gstbook/internal/gst"
	"gstbook/internal/invoice"
	"gstbook/internal/items"
	"gstbook/internal/table"
	"gstbook/pkg/models"
)

// RowOptions controls how invoices are flattened into table rows.
type RowOptions struct {
	// ForceInvoiceData replaces the derived tax, round off and total of an
	// invalid single line invoice with the values printed on it.
	ForceInvoiceData bool
}

// Table flattens the collection into one row per merged item, silver before
// gold within an invoice.
func (c *Collection) Table(opts RowOptions) *table.Table {
	var rows []models.Row
	for _, inv := range c.invoices {
		rows = append(rows, Rows(inv, opts)...)
	}
	return table.New(rows)
}

// Rows returns the table rows of one invoice.
func Rows(inv *invoice.Invoice, opts RowOptions) []models.Row {
	force := opts.ForceInvoiceData && inv.SingleItem() && !inv.IsValid()
	valid := inv.IsValid()

	var rows []models.Row
	for _, item := range inv.Items.Items() {
		row := itemRow(inv, item, valid)
		if force {
			row.SGST = inv.LegAmount(gst.SGST)
			row.CGST = inv.LegAmount(gst.CGST)
			row.RoundOff = inv.RoundOff
			if inv.Total.Valid {
				row.Total = inv.Total.Decimal
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func itemRow(inv *invoice.Invoice, item items.LineItem, valid bool) models.Row {
	return models.Row{
		BillNo:          item.InvoiceNo(),
		Item:            item.Material().String(),
		Date:            inv.Date,
		Quantity:        item.Quantity(),
		TaxableAmount:   item.Subtotal(),
		SGST:            gst.LegAmount(item.Tax(), gst.SGST),
		CGST:            gst.LegAmount(item.Tax(), gst.CGST),
		RoundOff:        item.RoundOff(),
		Total:           item.Total(),
		InvoiceRoundOff: inv.RoundOff,
		ItemRoundOff:    item.RoundOff(),
		Valid:           valid,
	}
}
