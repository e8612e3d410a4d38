package validation

import (
	"fmt"

	"github.com/julianstephens/paytick/internal/models"
)

// ConflictType represents the kind of problem found in a stored record
type ConflictType string

const (
	ConflictMissingSalary    ConflictType = "missing_salary"
	ConflictMissingCurrency  ConflictType = "missing_currency"
	ConflictMissingWindow    ConflictType = "missing_window"
	ConflictInvertedWindow   ConflictType = "inverted_window"
	ConflictStaleDenominator ConflictType = "stale_denominator"
	ConflictInvalidSettings  ConflictType = "invalid_settings"
)

// Conflict represents a detected problem in the stored record or settings
type Conflict struct {
	Type        ConflictType
	Description string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

func (vr *ValidationResult) add(t ConflictType, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, Description: fmt.Sprintf(format, args...)})
}

// ValidateRecord checks a stored ticker record against the current settings.
// An empty record (nothing saved yet) has no conflicts.
func ValidateRecord(rec models.TickerRecord, settings models.Settings) ValidationResult {
	var result ValidationResult

	if err := ValidateSettings(settings); err != nil {
		result.add(ConflictInvalidSettings, "Settings: %v", err)
	}

	if rec.AnnualSalary.IsZero() && rec.Currency == "" && rec.Start.IsZero() && rec.End.IsZero() {
		return result
	}

	if !rec.AnnualSalary.IsPositive() {
		result.add(ConflictMissingSalary, "Stored salary %s is not a positive amount", rec.AnnualSalary)
	}
	if rec.Currency == "" {
		result.add(ConflictMissingCurrency, "Stored shift has no currency")
	}
	switch {
	case rec.Start.IsZero() || rec.End.IsZero():
		result.add(ConflictMissingWindow, "Stored shift is missing its start or end time")
	case !rec.End.After(rec.Start):
		result.add(ConflictInvertedWindow, "Stored shift ends (%s) at or before it starts (%s)",
			models.TimeOfDayOf(rec.End), models.TimeOfDayOf(rec.Start))
	}

	if days := settings.DaysActivelyWorking(); days > 0 && rec.DaysActivelyWorking != days {
		result.add(ConflictStaleDenominator, "Stored shift uses %d working days, settings give %d",
			rec.DaysActivelyWorking, days)
	}

	return result
}
