package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat matches every FormatError.
	ErrFormat = errors.New("malformed record")

	// ErrCapacity matches every CapacityError.
	ErrCapacity = errors.New("capacity exceeded")

	// ErrUndefinedSymbol matches every UndefinedSymbolError.
	ErrUndefinedSymbol = errors.New("undefined symbol")

	// ErrMachineNotFound is returned when a name cannot be found in a machine store.
	ErrMachineNotFound = errors.New("machine not found")
)

// FormatError reports record text or a record stream that breaks the wire format.
type FormatError struct {
	Input  string // Offending text, possibly empty
	Reason string
}

func (e *FormatError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("format error: %s", e.Reason)
	}
	return fmt.Sprintf("format error: %s in %q", e.Reason, e.Input)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// CapacityError reports a symbol table that no longer fits a 16-bit field.
type CapacityError struct {
	Category Category
	Count    int
	Limit    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("too many %ss: %d exceeds limit %d", e.Category, e.Count, e.Limit)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

// UndefinedSymbolError reports a reference to a name missing from its table.
type UndefinedSymbolError struct {
	Category Category
	Symbol   string
	Context  string // Where the reference was found, e.g. "transition 3 target"
}

func (e *UndefinedSymbolError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("undefined %s %q", e.Category, e.Symbol)
	}
	return fmt.Sprintf("%s: undefined %s %q", e.Context, e.Category, e.Symbol)
}

func (e *UndefinedSymbolError) Is(target error) bool {
	return target == ErrUndefinedSymbol
}

// DuplicateSymbolError reports a name listed twice in the same table.
type DuplicateSymbolError struct {
	Category Category
	Symbol   string
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("duplicate %s %q", e.Category, e.Symbol)
}

// ShapeError reports a transition whose target list does not suit the machine kind.
type ShapeError struct {
	Index  int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("transition %d: %s", e.Index, e.Reason)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// Errors returns all validation errors if err is an AggregateError.
// Any other non-nil error is returned as a single-element slice.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return []error{err}
}
