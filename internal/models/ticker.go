package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TickerState is the live state of a ticker run. The controller replaces it whole on every change.
type TickerState struct {
	Config        *ShiftConfig
	Active        bool
	WorkdayActive bool
	CooldownArmed bool
	CooldownSince time.Time
}

// HasConfig reports whether a shift is loaded
func (s TickerState) HasConfig() bool {
	return s.Config != nil
}

// NewTickerState returns an active state for cfg with cleared flags
func NewTickerState(cfg ShiftConfig) TickerState {
	return TickerState{Config: &cfg, Active: true}
}

// TickerRecord is the persisted shape of the ticker: the last shift plus the active flag.
// Deactivating flips Active and leaves the shift fields in place so they can be reused.
type TickerRecord struct {
	AnnualSalary        decimal.Decimal `json:"annual_salary"`
	Currency            string          `json:"currency"`
	DaysActivelyWorking int             `json:"days_actively_working"`
	Start               time.Time       `json:"start"`
	End                 time.Time       `json:"end"`
	Active              bool            `json:"active"`
	SessionID           string          `json:"session_id"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Complete reports whether every shift field is populated
func (r TickerRecord) Complete() bool {
	return r.AnnualSalary.IsPositive() &&
		r.Currency != "" &&
		!r.Start.IsZero() &&
		!r.End.IsZero() &&
		r.End.After(r.Start)
}

// ShiftConfig returns the stored shift. Only meaningful when Complete is true.
func (r TickerRecord) ShiftConfig() ShiftConfig {
	return ShiftConfig{
		AnnualSalary:        r.AnnualSalary,
		Currency:            r.Currency,
		DaysActivelyWorking: r.DaysActivelyWorking,
		Start:               r.Start,
		End:                 r.End,
	}
}

// RecordFor builds the persisted shape of cfg
func RecordFor(cfg ShiftConfig, active bool, sessionID string) TickerRecord {
	return TickerRecord{
		AnnualSalary:        cfg.AnnualSalary,
		Currency:            cfg.Currency,
		DaysActivelyWorking: cfg.DaysActivelyWorking,
		Start:               cfg.Start,
		End:                 cfg.End,
		Active:              active,
		SessionID:           sessionID,
	}
}
