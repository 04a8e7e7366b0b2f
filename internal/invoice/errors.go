package invoice

import (
	"errors"
	"fmt"
)

// Parse errors. A collection drops a page that fails with one of these; a
// direct Parse call returns them to the caller.
var (
	// ErrFieldNotFound is returned when a required field (invoice number,
	// date or subtotal) has no match in the page text.
	ErrFieldNotFound = errors.New("required invoice field not found")

	// ErrNumericParse is returned when matched text is not a valid number or date.
	ErrNumericParse = errors.New("malformed numeric text")

	// ErrPageTooLarge is returned for page text over MaxPageBytes.
	ErrPageTooLarge = errors.New("page text exceeds maximum size")
)

// ParseError wraps a parse failure with the field it happened on.
type ParseError struct {
	// Op is the operation that failed (e.g. "Parse", "ParseFunc").
	Op string

	// Field is the invoice field being extracted, if any.
	Field string

	// Err is the underlying error.
	Err error

	// Details is the offending text or other context.
	Details string
}

func (e *ParseError) Error() string {
	msg := "invoice: " + e.Op
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %v: %s", msg, e.Err, e.Details)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is implements error matching for errors.Is.
func (e *ParseError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func newParseError(op, field string, err error, details string) *ParseError {
	return &ParseError{Op: op, Field: field, Err: err, Details: details}
}
