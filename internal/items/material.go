// Package items models the gold and silver lines of a jewelry invoice and the
// per-invoice aggregate that folds them into at most one line per material.
package items

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownMaterial is returned for a material other than gold or silver.
	ErrUnknownMaterial = errors.New("unknown material")

	// ErrInvoiceMismatch is returned when lines of different invoices are combined.
	ErrInvoiceMismatch = errors.New("items belong to different invoices")

	// ErrIncompatibleItems is returned when lines taxed at different rates are
	// folded into one aggregate.
	ErrIncompatibleItems = errors.New("items cannot be combined")
)

// Material is the product category of a line.
type Material string

const (
	Gold   Material = "gold"
	Silver Material = "silver"
)

// ParseMaterial maps a keyword such as "Gold" to its Material.
func ParseMaterial(s string) (Material, error) {
	switch m := Material(strings.ToLower(strings.TrimSpace(s))); m {
	case Gold, Silver:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
}

func (m Material) String() string { return string(m) }
