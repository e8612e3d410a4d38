package scheduler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/utils"
)

// BuildSchedule projects a validated shift window onto the calendar day of ref
func BuildSchedule(
	salary decimal.Decimal,
	currency string,
	daysActivelyWorking int,
	start, end models.TimeOfDay,
	ref time.Time,
) (models.ShiftConfig, error) {
	startAt := start.On(ref)
	endAt := end.On(ref)

	if !endAt.After(startAt) {
		return models.ShiftConfig{}, &errors.InvertedWindowError{
			Start: start.String(),
			End:   end.String(),
		}
	}

	return models.ShiftConfig{
		AnnualSalary:        salary,
		Currency:            currency,
		DaysActivelyWorking: daysActivelyWorking,
		Start:               startAt,
		End:                 endAt,
	}, nil
}

// Rebase moves a stored shift's wall-clock window onto the calendar day of ref.
// Everything else in the config is kept.
func Rebase(cfg models.ShiftConfig, ref time.Time) models.ShiftConfig {
	if utils.SameDay(ref, cfg.Start) {
		return cfg
	}
	start := models.TimeOfDayOf(cfg.Start.In(ref.Location()))
	end := models.TimeOfDayOf(cfg.End.In(ref.Location()))

	cfg.Start = start.On(ref)
	cfg.End = end.On(ref)
	return cfg
}
