package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gstbook/internal/collection"
	"gstbook/internal/config"
	"gstbook/internal/export"
	"gstbook/internal/logger"
	"gstbook/internal/sheets"
	"gstbook/internal/table"
)

var parseCmd = &cobra.Command{
	Use:   "parse [pdf-file]",
	Short: "Extract gold and silver lines from a Vyapar invoice PDF into a spreadsheet",
	Long: `Parse every invoice page of a Vyapar PDF, merge same-material lines per
invoice and write one row per invoice and material.

Pages that are not invoices are skipped. The workbook has a main sheet plus
gold and silver sheets, each with =SUM footers. Rows of invoices whose printed
subtotal or tax disagree with their items are marked VALID = false.`,
	Example: `  # Write invoices.xlsx next to the PDF
  gstbook parse invoices.pdf

  # CSV with a UTF-8 BOM for Excel
  gstbook parse invoices.pdf --csv -o june.csv

  # Encrypted PDF, 4 parser workers, append rows to a Google Sheet
  gstbook parse invoices.pdf --password secret --workers 4 \
    --sheet-url https://docs.google.com/spreadsheets/d/<id>/edit`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("output", "o", "", "Output file path (default: <pdf name>.xlsx or .csv)")
	parseCmd.Flags().Bool("csv", false, "Write CSV instead of an Excel workbook")
	parseCmd.Flags().Bool("force-invoice-data", false, "Use printed tax and total for invalid single item invoices")
	parseCmd.Flags().String("sheet-url", "", "Google Sheet URL to append rows to")
	parseCmd.Flags().String("worksheet", "", "Worksheet name in the Google Sheet")
	parseCmd.Flags().String("credentials", "", "Service account JSON file for Google Sheets")
	parseCmd.Flags().Bool("skip-existing", false, "Do not append invoices whose bill number is already in the worksheet")
	addSourceFlags(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("parse")
	pdfPath := args[0]

	format := cfg.Export.Format
	if asCSV, _ := cmd.Flags().GetBool("csv"); asCSV {
		format = config.FormatCSV
	}
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + "." + format
	}
	force := cfg.Export.ForceInvoiceData
	if cmd.Flags().Changed("force-invoice-data") {
		force, _ = cmd.Flags().GetBool("force-invoice-data")
	}

	ctx, cancel := createContext(log)
	defer cancel()

	startTime := time.Now()
	c, err := loadCollection(ctx, cmd, pdfPath, log)
	if err != nil {
		return handleParseError(err, log)
	}

	t := c.Table(collection.RowOptions{ForceInvoiceData: force})
	if err := writeTable(t, format, outputPath); err != nil {
		log.Error().Err(err).Str("output", outputPath).Msg("Failed to write output")
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	log.Info().
		Str("output", outputPath).
		Int("invoices", c.Len()).
		Int("rows", t.Len()).
		Int("skipped_pages", len(c.Skipped())).
		Dur("duration", time.Since(startTime)).
		Msg("Invoice table written")

	fmt.Printf("%d invoices, %d rows written to %s", c.Len(), t.Len(), outputPath)
	if n := len(c.Skipped()); n > 0 {
		fmt.Printf(" (%d non-invoice pages skipped)", n)
	}
	fmt.Println()

	return uploadTable(cmd, t, log)
}

func writeTable(t *table.Table, format, path string) error {
	if format == config.FormatXLSX {
		return export.SaveWorkbook(t, path)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.NewCSVWriter(file, export.WithBOM()).WriteTable(t); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// uploadTable appends the rows to Google Sheets when a sheet URL is set by
// flag or config.
func uploadTable(cmd *cobra.Command, t *table.Table, log zerolog.Logger) error {
	sheetURL, worksheet, credentials := cfg.Sheets.URL, cfg.Sheets.Worksheet, cfg.Sheets.CredentialsFile
	if v, _ := cmd.Flags().GetString("sheet-url"); v != "" {
		sheetURL = v
	}
	if v, _ := cmd.Flags().GetString("worksheet"); v != "" {
		worksheet = v
	}
	if v, _ := cmd.Flags().GetString("credentials"); v != "" {
		credentials = v
	}
	if sheetURL == "" {
		return nil
	}

	ctx, cancel := createContext(log)
	defer cancel()

	svc, err := sheets.NewService(ctx, sheetURL, credentials)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to Google Sheets")
		return fmt.Errorf("failed to connect to Google Sheets: %w", err)
	}
	if skip, _ := cmd.Flags().GetBool("skip-existing"); skip {
		existing, err := svc.ExistingBillNumbers(ctx, worksheet)
		if err != nil {
			return fmt.Errorf("failed to read existing rows: %w", err)
		}
		before := t.Len()
		t = sheets.WithoutBillNumbers(t, existing)
		log.Info().
			Int("skipped_rows", before-t.Len()).
			Msg("Skipping rows already in the worksheet")
	}

	if err := svc.WriteTable(ctx, t, worksheet); err != nil {
		return fmt.Errorf("failed to write to Google Sheets: %w", err)
	}

	fmt.Printf("%d rows appended to worksheet %q\n", t.Len(), worksheet)
	return nil
}
