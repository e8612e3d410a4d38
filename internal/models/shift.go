package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/constants"
)

// TimeOfDay is a wall-clock hour and minute in 24-hour form.
type TimeOfDay struct {
	Hour   int `json:"hour"`   // 0-23
	Minute int `json:"minute"` // 0-59
}

// String renders the time the way users type it, e.g. "9:05 AM"
func (t TimeOfDay) String() string {
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format(constants.DisplayTimeFormat)
}

// Minutes returns the number of minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// On projects the time onto the calendar day of ref, in ref's location
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

// TimeOfDayOf extracts the wall-clock hour and minute of an instant
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

// ShiftConfig is one day's accrual schedule. It is treated as immutable once built.
type ShiftConfig struct {
	AnnualSalary        decimal.Decimal `json:"annual_salary"`
	Currency            string          `json:"currency"`
	DaysActivelyWorking int             `json:"days_actively_working"`
	Start               time.Time       `json:"start"`
	End                 time.Time       `json:"end"`
}

// DailyWage is the amount earned over one full shift
func (c ShiftConfig) DailyWage() decimal.Decimal {
	if c.DaysActivelyWorking <= 0 {
		return decimal.Zero
	}
	return c.AnnualSalary.Div(decimal.NewFromInt(int64(c.DaysActivelyWorking)))
}

// Duration is the length of the shift
func (c ShiftConfig) Duration() time.Duration {
	return c.End.Sub(c.Start)
}

// Valid reports whether the config satisfies its invariants
func (c ShiftConfig) Valid() bool {
	return c.AnnualSalary.IsPositive() &&
		c.Currency != "" &&
		c.DaysActivelyWorking > 0 &&
		c.End.After(c.Start)
}

// WithDaysActivelyWorking returns a copy with a new daily-wage denominator
func (c ShiftConfig) WithDaysActivelyWorking(days int) ShiftConfig {
	c.DaysActivelyWorking = days
	return c
}

func (c ShiftConfig) String() string {
	return fmt.Sprintf("%s %s, %s - %s on %s",
		c.AnnualSalary.String(), c.Currency,
		TimeOfDayOf(c.Start), TimeOfDayOf(c.End),
		c.Start.Format(constants.DateFormat))
}
