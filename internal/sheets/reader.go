package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gstbook/internal/table"
	"gstbook/pkg/models"
)

// ReadRange reads values from a range in the spreadsheet.
func (s *Service) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	const op = "ReadRange"

	s.log.Debug().
		Str("range", rangeSpec).
		Msg("Reading range from spreadsheet")

	resp, err := s.sheetsService.Spreadsheets.Values.Get(s.spreadsheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read range %s: %w", op, rangeSpec, err)
	}

	s.log.Debug().
		Int("rows", len(resp.Values)).
		Str("range", rangeSpec).
		Msg("Successfully read range from spreadsheet")

	return resp.Values, nil
}

// ExistingBillNumbers returns the bill numbers already present in the
// worksheet's first column. A missing worksheet is created first.
func (s *Service) ExistingBillNumbers(ctx context.Context, worksheet string) (map[int]struct{}, error) {
	const op = "ExistingBillNumbers"

	if err := s.ensureSheetWithHeaders(ctx, worksheet); err != nil {
		return nil, fmt.Errorf("%s: failed to ensure sheet exists: %w", op, err)
	}

	values, err := s.ReadRange(ctx, worksheet+"!A:A")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing := billNumbers(values, s.log)
	s.log.Info().
		Str("sheet", worksheet).
		Int("bill_numbers", len(existing)).
		Msg("Read existing bill numbers")

	return existing, nil
}

// billNumbers collects the integer first cells of values, skipping the header
// row and footer or blank rows.
func billNumbers(values [][]interface{}, log zerolog.Logger) map[int]struct{} {
	existing := make(map[int]struct{})
	for i, row := range values {
		rowNum := i + 1
		if len(row) == 0 {
			continue
		}

		cell := strings.TrimSpace(fmt.Sprint(row[0]))
		if cell == "" || cell == table.BillNo {
			continue
		}

		n, err := strconv.Atoi(cell)
		if err != nil {
			log.Warn().
				Int("row", rowNum).
				Str("value", cell).
				Msg("Skipping row without a bill number")
			continue
		}
		existing[n] = struct{}{}
	}
	return existing
}

// WithoutBillNumbers returns a table of the rows of t whose bill number is
// not in existing.
func WithoutBillNumbers(t *table.Table, existing map[int]struct{}) *table.Table {
	var rows []models.Row
	for _, r := range t.Rows() {
		if _, ok := existing[r.BillNo]; !ok {
			rows = append(rows, r)
		}
	}
	return table.New(rows)
}
