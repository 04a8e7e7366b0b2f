package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gstbook/internal/invoice"
	"gstbook/internal/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check [pdf-file]",
	Short: "Reconcile stated invoice totals against their item lines",
	Long: `Parse every invoice page of a Vyapar PDF and compare the printed
subtotal, CGST/SGST, round off and grand total with the values derived from the
item lines. Subtotal and tax decide whether an invoice is valid; the other
fields are reported for information.`,
	Example: `  gstbook check invoices.pdf
  gstbook check invoices.pdf --only-invalid`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("only-invalid", false, "Only print invoices that fail reconciliation")
	addSourceFlags(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("check")
	onlyInvalid, _ := cmd.Flags().GetBool("only-invalid")

	ctx, cancel := createContext(log)
	defer cancel()

	startTime := time.Now()
	c, err := loadCollection(ctx, cmd, args[0], log)
	if err != nil {
		return handleParseError(err, log)
	}

	invalid := 0
	for _, inv := range c.Invoices() {
		report := inv.Reconcile()
		if !report.Valid {
			invalid++
		} else if onlyInvalid {
			continue
		}
		printReport(report)
	}

	log.Info().
		Int("invoices", c.Len()).
		Int("invalid", invalid).
		Dur("duration", time.Since(startTime)).
		Msg("Reconciliation completed")

	fmt.Printf("\n%d invoices checked, %d invalid, %d pages skipped\n", c.Len(), invalid, len(c.Skipped()))
	return nil
}

func printReport(report invoice.Report) {
	status := "OK"
	if !report.Valid {
		status = "INVALID"
	}
	fmt.Printf("Invoice %d: %s\n", report.Number, status)

	for _, check := range report.Checks {
		mark := " "
		if !check.Match {
			mark = "✗"
		}
		stated := "-"
		if check.Stated.Valid {
			stated = check.Stated.Decimal.StringFixed(2)
		}
		fmt.Printf("  %s %-10s stated %12s  derived %12s\n", mark, check.Field, stated, check.Derived.StringFixed(2))
	}
}
