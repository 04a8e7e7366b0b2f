package gst

import (
	"errors"
	"fmt"
)

// Tax algebra errors. They signal misuse of the algebra or inconsistent
// upstream data and are never recovered automatically.
var (
	// ErrInvalidTaxKind is returned when a kind label does not start with c or s.
	ErrInvalidTaxKind = errors.New("invalid tax kind")

	// ErrRateImmutable is returned when a component rate is assigned twice.
	ErrRateImmutable = errors.New("tax rate cannot be changed once assigned")

	// ErrAmountImmutable is returned when a nonzero component amount is reassigned.
	ErrAmountImmutable = errors.New("tax amount cannot be changed once assigned")

	// ErrIncompatibleComponents is returned when two components cannot form a
	// combined tax: same kind, different amounts, or swapped legs.
	ErrIncompatibleComponents = errors.New("incompatible tax components")

	// ErrInsufficientArguments is returned when a value has too little input to
	// derive its fields.
	ErrInsufficientArguments = errors.New("insufficient arguments for tax")

	// ErrRateMismatch is returned when combined legs or summed taxes carry
	// different rates.
	ErrRateMismatch = errors.New("tax rates do not match")

	// ErrImmutableField is returned when a combined tax field is assigned twice.
	ErrImmutableField = errors.New("combined tax field cannot be changed")

	// ErrNoComponents is returned when reducing an empty list of components.
	ErrNoComponents = errors.New("no tax components to reduce")
)

func immutableField(field string) error {
	return fmt.Errorf("%w: %s", ErrImmutableField, field)
}
