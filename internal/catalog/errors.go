package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord marks a line whose arguments could not be parsed.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrUnrecognizedCommand marks a line with an unknown record code.
	ErrUnrecognizedCommand = errors.New("unrecognized command")
	// ErrNoCurrentMaterial marks a material line with no NM record before it.
	ErrNoCurrentMaterial = errors.New("no current material")
	// ErrSourceUnavailable is returned when a catalog file cannot be opened.
	ErrSourceUnavailable = errors.New("catalog source unavailable")
	// ErrMaterialNotFound is returned by lookups for unknown names.
	ErrMaterialNotFound = errors.New("material not found")
	// ErrAmbiguousName is returned by Resolve when a case-folded name matches
	// more than one material.
	ErrAmbiguousName = errors.New("ambiguous material name")
)

// LineError describes one catalog line that was skipped.
type LineError struct {
	Line    int
	Command string
	Args    string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s %s: %v", e.Line, e.Command, e.Args, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}
