package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrFormat is returned when a time-of-day string is malformed.
	ErrFormat = stderrors.New("invalid time format, use HH:MM AM/PM")

	// ErrInvalidSalary is returned when the salary is non-numeric or not positive.
	ErrInvalidSalary = stderrors.New("invalid salary amount, enter a positive number")

	// ErrInvalidCurrency is returned when the currency label is empty.
	ErrInvalidCurrency = stderrors.New("currency cannot be empty")

	// ErrInvertedWindow is returned when the shift ends at or before it starts.
	ErrInvertedWindow = stderrors.New("start time must be before the end time")

	// ErrStore is returned when the persistent store fails to load or save.
	ErrStore = stderrors.New("store operation failed")

	// ErrInvalidSettings is returned when workday settings leave no working days.
	ErrInvalidSettings = stderrors.New("invalid settings")

	// ErrAbandoned is returned by UI prompts when the user dismisses them.
	ErrAbandoned = stderrors.New("input abandoned")

	// ErrNotInitialized is returned by a store whose backing file or schema does not exist yet.
	ErrNotInitialized = stderrors.New("storage not initialized, run 'paytick init' first")
)

// FormatError records the offending time string.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %q", ErrFormat, e.Input)
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// InvalidSalaryError records the rejected salary text.
type InvalidSalaryError struct {
	Input string
}

func (e *InvalidSalaryError) Error() string {
	return fmt.Sprintf("%v: %q", ErrInvalidSalary, e.Input)
}

func (e *InvalidSalaryError) Unwrap() error {
	return ErrInvalidSalary
}

// InvertedWindowError records the rejected start and end.
type InvertedWindowError struct {
	Start string
	End   string
}

func (e *InvertedWindowError) Error() string {
	return fmt.Sprintf("%v (start %s, end %s)", ErrInvertedWindow, e.Start, e.End)
}

func (e *InvertedWindowError) Unwrap() error {
	return ErrInvertedWindow
}

// StoreError wraps a persistence failure with the operation that caused it.
// It matches both ErrStore and the underlying error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s state: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStore, e.Err}
}

// NewStoreError wraps err, returning nil when err is nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsValidation reports whether err ends the current start attempt.
func IsValidation(err error) bool {
	return stderrors.Is(err, ErrFormat) ||
		stderrors.Is(err, ErrInvalidSalary) ||
		stderrors.Is(err, ErrInvalidCurrency) ||
		stderrors.Is(err, ErrInvertedWindow) ||
		stderrors.Is(err, ErrInvalidSettings)
}
