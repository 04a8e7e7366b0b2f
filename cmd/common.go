package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gstbook/internal/collection"
	"gstbook/internal/gst"
	"gstbook/internal/invoice"
	"gstbook/internal/items"
)

// createContext returns a context canceled on interrupt.
func createContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("password", "", "Password of an encrypted PDF")
	cmd.Flags().Int("workers", 0, "Number of pages parsed in parallel (default from config)")
}

// loadCollection opens the PDF and parses its pages using config values,
// overridden by the command's flags.
func loadCollection(ctx context.Context, cmd *cobra.Command, pdfPath string, log zerolog.Logger) (*collection.Collection, error) {
	password, _ := cmd.Flags().GetString("password")
	workers := cfg.Parser.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}

	log.Info().
		Str("file", pdfPath).
		Int("workers", workers).
		Bool("encrypted", password != "").
		Msg("Loading invoice PDF")

	src, err := collection.OpenPDF(pdfPath, password)
	if err != nil {
		return nil, err
	}

	return collection.Load(ctx, src,
		collection.Workers(workers),
		collection.WithCreatorMarker(cfg.Parser.CreatorMarker),
		collection.WithParseOptions(invoice.WithDefaultTaxRate(cfg.DefaultTaxRate())),
	)
}

// handleParseError provides user-friendly error messages for load and parse failures
func handleParseError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice parsing failed")

	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("invoice parsing was canceled")
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("file not found: %w", err)
	case errors.Is(err, collection.ErrSourceMismatch):
		return fmt.Errorf("the PDF was not generated by the Vyapar app (creator marker %q missing)", cfg.Parser.CreatorMarker)
	case errors.Is(err, collection.ErrSourceRead):
		return fmt.Errorf("cannot read the PDF. It may be corrupt, encrypted or not a PDF at all: %w", err)
	case errors.Is(err, invoice.ErrFieldNotFound):
		return fmt.Errorf("the text is not an invoice page: %w", err)
	case errors.Is(err, invoice.ErrNumericParse):
		return fmt.Errorf("the invoice contains a malformed number or date: %w", err)
	case errors.Is(err, invoice.ErrPageTooLarge):
		return fmt.Errorf("the page text exceeds %d bytes", invoice.MaxPageBytes)
	case errors.Is(err, gst.ErrIncompatibleComponents),
		errors.Is(err, gst.ErrRateMismatch),
		errors.Is(err, gst.ErrInsufficientArguments):
		return fmt.Errorf("the invoice has an inconsistent CGST/SGST split: %w", err)
	case errors.Is(err, items.ErrIncompatibleItems), errors.Is(err, items.ErrInvoiceMismatch):
		return fmt.Errorf("the invoice items cannot be combined: %w", err)
	default:
		return fmt.Errorf("invoice parsing failed: %w", err)
	}
}
