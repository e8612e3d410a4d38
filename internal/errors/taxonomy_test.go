package errors

import (
	"errors"
	"io/fs"
	"testing"
)

func TestStructuredErrorsUnwrapToSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"format", &FormatError{Input: "25:00"}, ErrFormat},
		{"salary", &InvalidSalaryError{Input: "-5"}, ErrInvalidSalary},
		{"window", &InvertedWindowError{Start: "5:00 PM", End: "9:00 AM"}, ErrInvertedWindow},
		{"store", NewStoreError("load", fs.ErrPermission), ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestStoreErrorKeepsCause(t *testing.T) {
	err := NewStoreError("save", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("StoreError should match its cause, got %v", err)
	}

	var storeErr *StoreError
	if !errors.As(err, &storeErr) || storeErr.Op != "save" {
		t.Errorf("errors.As did not recover StoreError with op save: %v", err)
	}
}

func TestNewStoreErrorNil(t *testing.T) {
	if err := NewStoreError("save", nil); err != nil {
		t.Errorf("NewStoreError(nil) = %v, want nil", err)
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&FormatError{Input: "noon"}) {
		t.Error("FormatError should be a validation error")
	}
	if !IsValidation(ErrInvalidCurrency) {
		t.Error("ErrInvalidCurrency should be a validation error")
	}
	if IsValidation(NewStoreError("save", errors.New("boom"))) {
		t.Error("StoreError should not be a validation error")
	}
	if IsValidation(ErrAbandoned) {
		t.Error("ErrAbandoned should not be a validation error")
	}
}
