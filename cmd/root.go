package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gstbook/internal/config"
	"gstbook/internal/logger"
)

var version = "1.0.0"

var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "gstbook",
	Short: "gstbook - turn jewelry GST invoices into reconciled spreadsheets",
	Long: `gstbook reads invoice PDFs exported by the Vyapar billing app, extracts
every gold and silver line together with its CGST/SGST split, and checks the
printed totals against the totals derived from the items.

Results are written as an Excel workbook or CSV file and can optionally be
appended to a Google Sheet.`,
	Version: version,
}

// SetConfig installs the configuration loaded by main.
func SetConfig(c *config.Config) {
	if c != nil {
		cfg = c
	}
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}
