package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gstbook/internal/gst"
	"gstbook/internal/invoice"
	"gstbook/internal/logger"
)

var pageCmd = &cobra.Command{
	Use:   "page [text-file|-]",
	Short: "Parse the text of a single invoice page and print it as JSON",
	Long: `Parse one invoice page from plain text, e.g. copied from a PDF viewer or
produced by pdftotext, and print the stated fields, the merged item lines and
the reconciliation result as JSON. Use "-" to read from stdin.`,
	Example: `  gstbook page page-3.txt
  pdftotext -f 3 -l 3 invoices.pdf - | gstbook page - -o page-3.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPage,
}

// PageOutput is the JSON shape of one parsed page.
type PageOutput struct {
	Invoice  PageInvoice  `json:"invoice"`
	Items    []PageItem   `json:"items"`
	Checks   []PageCheck  `json:"checks"`
	Metadata PageMetadata `json:"metadata"`
}

// PageInvoice holds the values printed on the page.
type PageInvoice struct {
	Number   int       `json:"invoice_no"`
	Date     time.Time `json:"date"`
	Subtotal string    `json:"subtotal"`
	TaxRate  string    `json:"tax_rate,omitempty"`
	SGST     string    `json:"sgst"`
	CGST     string    `json:"cgst"`
	RoundOff string    `json:"round_off"`
	Total    string    `json:"total,omitempty"`
	Valid    bool      `json:"valid"`
}

// PageItem is one merged line per material.
type PageItem struct {
	Material string `json:"material"`
	Quantity string `json:"quantity"`
	Subtotal string `json:"subtotal"`
	SGST     string `json:"sgst"`
	CGST     string `json:"cgst"`
	RoundOff string `json:"round_off"`
	Total    string `json:"total"`
}

// PageCheck mirrors invoice.Check with formatted amounts.
type PageCheck struct {
	Field   string `json:"field"`
	Stated  string `json:"stated,omitempty"`
	Derived string `json:"derived"`
	Match   bool   `json:"match"`
}

// PageMetadata describes the run.
type PageMetadata struct {
	ID                 string        `json:"id"`
	Source             string        `json:"source"`
	RawItems           int           `json:"raw_items"`
	ProcessedAt        time.Time     `json:"processed_at"`
	ProcessingDuration time.Duration `json:"processing_duration"`
}

func init() {
	rootCmd.AddCommand(pageCmd)

	pageCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
}

func runPage(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("page")
	source := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	startTime := time.Now()
	inv, err := invoice.ParseFunc(func() (string, error) {
		return readPageText(cmd, source)
	}, invoice.WithDefaultTaxRate(cfg.DefaultTaxRate()))
	if err != nil {
		return handleParseError(err, log)
	}

	output := PageOutput{
		Invoice: pageInvoice(inv),
		Items:   pageItems(inv),
		Checks:  pageChecks(inv.Reconcile()),
		Metadata: PageMetadata{
			ID:                 uuid.NewString(),
			Source:             source,
			RawItems:           len(inv.RawItems),
			ProcessedAt:        time.Now(),
			ProcessingDuration: time.Since(startTime),
		},
	}

	return outputPage(output, outputPath, log)
}

func readPageText(cmd *cobra.Command, source string) (string, error) {
	if source == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(source)
	return string(data), err
}

func pageInvoice(inv *invoice.Invoice) PageInvoice {
	out := PageInvoice{
		Number:   inv.Number,
		Date:     inv.Date,
		Subtotal: inv.Subtotal.StringFixed(2),
		SGST:     inv.LegAmount(gst.SGST).StringFixed(2),
		CGST:     inv.LegAmount(gst.CGST).StringFixed(2),
		RoundOff: inv.RoundOff.StringFixed(2),
		Valid:    inv.IsValid(),
	}
	if inv.Tax != nil {
		out.TaxRate = inv.Tax.Rate().String()
	}
	if inv.Total.Valid {
		out.Total = inv.Total.Decimal.StringFixed(2)
	}
	return out
}

func pageItems(inv *invoice.Invoice) []PageItem {
	lines := inv.Items.Items()
	out := make([]PageItem, 0, len(lines))
	for _, l := range lines {
		out = append(out, PageItem{
			Material: l.Material().String(),
			Quantity: l.Quantity().StringFixed(3),
			Subtotal: l.Subtotal().StringFixed(2),
			SGST:     l.Tax().SGST().Amount().StringFixed(2),
			CGST:     l.Tax().CGST().Amount().StringFixed(2),
			RoundOff: l.RoundOff().StringFixed(2),
			Total:    l.Total().StringFixed(2),
		})
	}
	return out
}

func pageChecks(report invoice.Report) []PageCheck {
	out := make([]PageCheck, 0, len(report.Checks))
	for _, c := range report.Checks {
		pc := PageCheck{
			Field:   c.Field,
			Derived: c.Derived.StringFixed(2),
			Match:   c.Match,
		}
		if c.Stated.Valid {
			pc.Stated = c.Stated.Decimal.StringFixed(2)
		}
		out = append(out, pc)
	}
	return out
}

func outputPage(output PageOutput, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal page data to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath == "" {
		if _, err := os.Stdout.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Println()
		return nil
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		log.Error().
			Err(err).
			Str("output_file", outputPath).
			Msg("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("output_file", outputPath).
		Int("bytes", len(jsonData)).
		Msg("Page data written to file")
	return nil
}
