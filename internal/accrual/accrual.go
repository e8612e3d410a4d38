// Package accrual computes how much of a shift's daily wage has been earned at an instant.
package accrual

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/models"
)

// Result is what a single Step observed.
type Result struct {
	Phase            models.Phase
	Earned           decimal.Decimal
	Visible          bool
	ShouldDeactivate bool
}

// Step advances state to now. It never mutates the ShiftConfig and only
// changes the workday and cooldown flags. Repeating a Step with the same now
// returns the same Result.
func Step(state models.TickerState, now time.Time, cooldown time.Duration) (models.TickerState, Result) {
	if !state.HasConfig() {
		return state, Result{Phase: models.PhaseIdle, Earned: decimal.Zero}
	}

	cfg := state.Config
	wage := cfg.DailyWage()

	switch {
	case now.Before(cfg.Start):
		return state, Result{Phase: models.PhasePreShift, Earned: decimal.Zero}

	case !now.After(cfg.End):
		state.WorkdayActive = true
		return state, Result{
			Phase:   models.PhaseActive,
			Earned:  wage.Mul(Fraction(*cfg, now)),
			Visible: true,
		}
	}

	ended := Result{Earned: wage, Visible: true}

	if !state.CooldownArmed {
		if now.Sub(cfg.End) > cooldown {
			ended.Phase = models.PhaseExpired
			ended.ShouldDeactivate = true
			return state, ended
		}
		state.CooldownArmed = true
		state.CooldownSince = now
		state.WorkdayActive = false
		ended.Phase = models.PhaseJustEnded
		return state, ended
	}

	// Re-stepping the arming instant must not report a second JustEnded.
	if now.Equal(state.CooldownSince) {
		ended.Phase = models.PhaseJustEnded
		return state, ended
	}

	if now.Sub(state.CooldownSince) >= cooldown {
		ended.Phase = models.PhaseExpired
		ended.ShouldDeactivate = true
		return state, ended
	}

	ended.Phase = models.PhaseCooldown
	return state, ended
}

// Fraction is the elapsed share of the shift at now, clamped to [0, 1].
func Fraction(cfg models.ShiftConfig, now time.Time) decimal.Decimal {
	total := cfg.Duration()
	if total <= 0 || !now.After(cfg.Start) {
		return decimal.Zero
	}
	elapsed := now.Sub(cfg.Start)
	if elapsed >= total {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(total)))
}

// Remaining is how long the final amount stays up before the run deactivates.
// It is zero when no cooldown is armed.
func Remaining(state models.TickerState, now time.Time, cooldown time.Duration) time.Duration {
	if !state.CooldownArmed {
		return 0
	}
	left := cooldown - now.Sub(state.CooldownSince)
	if left < 0 {
		return 0
	}
	return left
}
