package collection

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceMismatch is returned when a PDF was not produced by the
	// expected billing application.
	ErrSourceMismatch = errors.New("pdf was not produced by the expected application")

	// ErrSourceRead is returned when the input is missing, corrupt or not a PDF.
	ErrSourceRead = errors.New("cannot read pdf")
)

// SourceError wraps a failure to open or validate an input document. It
// aborts the whole load.
type SourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("collection: %s %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("collection: %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func (e *SourceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

func readError(op, path string, err error) *SourceError {
	return &SourceError{Op: op, Path: path, Err: fmt.Errorf("%w: %w", ErrSourceRead, err)}
}
