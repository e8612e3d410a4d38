package accrual

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/paytick/internal/models"
)

const cooldown = 10 * time.Minute

var day = time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)

func shift() models.ShiftConfig {
	return models.ShiftConfig{
		AnnualSalary:        decimal.NewFromInt(47000),
		Currency:            "USD",
		DaysActivelyWorking: 235,
		Start:               day.Add(9 * time.Hour),
		End:                 day.Add(17 * time.Hour),
	}
}

func TestStep_NoConfig(t *testing.T) {
	state, res := Step(models.TickerState{}, day, cooldown)
	assert.Equal(t, models.PhaseIdle, res.Phase)
	assert.False(t, res.Visible)
	assert.False(t, res.ShouldDeactivate)
	assert.False(t, state.HasConfig())
}

func TestStep_PreShift(t *testing.T) {
	cfg := shift()
	state, res := Step(models.NewTickerState(cfg), cfg.Start.Add(-time.Minute), cooldown)

	assert.Equal(t, models.PhasePreShift, res.Phase)
	assert.True(t, res.Earned.IsZero())
	assert.False(t, res.Visible)
	assert.False(t, state.WorkdayActive)
}

func TestStep_MidShift(t *testing.T) {
	cfg := shift()
	require.True(t, cfg.DailyWage().Equal(decimal.NewFromInt(200)))

	state, res := Step(models.NewTickerState(cfg), cfg.Start.Add(4*time.Hour), cooldown)

	assert.Equal(t, models.PhaseActive, res.Phase)
	assert.True(t, res.Visible)
	assert.True(t, state.WorkdayActive)
	assert.Equal(t, "100.00", res.Earned.StringFixed(2))
}

func TestStep_Boundaries(t *testing.T) {
	cfg := shift()

	_, atStart := Step(models.NewTickerState(cfg), cfg.Start, cooldown)
	assert.Equal(t, models.PhaseActive, atStart.Phase)
	assert.True(t, atStart.Earned.IsZero())

	_, atEnd := Step(models.NewTickerState(cfg), cfg.End, cooldown)
	assert.Equal(t, models.PhaseActive, atEnd.Phase)
	assert.True(t, atEnd.Earned.Equal(cfg.DailyWage()))
}

func TestStep_JustEnded(t *testing.T) {
	cfg := shift()
	state := models.NewTickerState(cfg)
	state.WorkdayActive = true
	now := cfg.End.Add(time.Second)

	next, res := Step(state, now, cooldown)

	assert.Equal(t, models.PhaseJustEnded, res.Phase)
	assert.True(t, res.Earned.Equal(cfg.DailyWage()))
	assert.True(t, res.Visible)
	assert.False(t, res.ShouldDeactivate)
	assert.False(t, next.WorkdayActive)
	assert.True(t, next.CooldownArmed)
	assert.Equal(t, now, next.CooldownSince)
}

func TestStep_JustEndedWithoutActiveTick(t *testing.T) {
	cfg := shift()
	next, res := Step(models.NewTickerState(cfg), cfg.End.Add(3*time.Minute), cooldown)

	assert.Equal(t, models.PhaseJustEnded, res.Phase)
	assert.True(t, next.CooldownArmed)
}

func TestStep_Cooldown(t *testing.T) {
	cfg := shift()
	armed, _ := Step(models.NewTickerState(cfg), cfg.End.Add(time.Second), cooldown)

	next, res := Step(armed, cfg.End.Add(5*time.Minute), cooldown)
	assert.Equal(t, models.PhaseCooldown, res.Phase)
	assert.True(t, res.Earned.Equal(cfg.DailyWage()))
	assert.False(t, res.ShouldDeactivate)
	assert.Equal(t, armed, next)
}

func TestStep_CooldownElapsed(t *testing.T) {
	cfg := shift()
	armedAt := cfg.End.Add(time.Second)
	armed, _ := Step(models.NewTickerState(cfg), armedAt, cooldown)

	_, res := Step(armed, armedAt.Add(cooldown), cooldown)
	assert.Equal(t, models.PhaseExpired, res.Phase)
	assert.True(t, res.ShouldDeactivate)
	assert.True(t, res.Earned.Equal(cfg.DailyWage()))
}

func TestStep_LongAfterEnd(t *testing.T) {
	cfg := shift()
	next, res := Step(models.NewTickerState(cfg), cfg.End.Add(cooldown+time.Second), cooldown)

	assert.Equal(t, models.PhaseExpired, res.Phase)
	assert.True(t, res.ShouldDeactivate)
	assert.False(t, next.CooldownArmed, "expired shifts must not arm a cooldown")
}

func TestStep_Idempotent(t *testing.T) {
	cfg := shift()
	instants := []time.Time{
		cfg.Start.Add(-time.Hour),
		cfg.Start.Add(90 * time.Minute),
		cfg.End,
		cfg.End.Add(time.Second),
		cfg.End.Add(4 * time.Minute),
	}

	state := models.NewTickerState(cfg)
	for _, now := range instants {
		first, r1 := Step(state, now, cooldown)
		second, r2 := Step(first, now, cooldown)

		assert.Equal(t, r1.Phase, r2.Phase, "phase at %v", now)
		assert.True(t, r1.Earned.Equal(r2.Earned), "earned at %v", now)
		assert.Equal(t, first, second, "state at %v", now)
		state = first
	}
}

func TestStep_DoesNotMutateConfig(t *testing.T) {
	cfg := shift()
	state := models.NewTickerState(cfg)
	before := *state.Config

	for _, off := range []time.Duration{-time.Hour, time.Hour, 8*time.Hour + time.Second, 9 * time.Hour} {
		state, _ = Step(state, cfg.Start.Add(off), cooldown)
	}
	assert.Equal(t, before, *state.Config)
}

func TestFraction_Monotone(t *testing.T) {
	cfg := shift()

	assert.True(t, Fraction(cfg, cfg.Start).IsZero())
	assert.True(t, Fraction(cfg, cfg.End).Equal(decimal.NewFromInt(1)))
	assert.True(t, Fraction(cfg, cfg.Start.Add(-time.Hour)).IsZero())
	assert.True(t, Fraction(cfg, cfg.End.Add(time.Hour)).Equal(decimal.NewFromInt(1)))

	prev := decimal.Zero
	for now := cfg.Start; !now.After(cfg.End); now = now.Add(7 * time.Minute) {
		f := Fraction(cfg, now)
		require.True(t, f.GreaterThanOrEqual(prev), "fraction decreased at %v", now)
		require.True(t, f.LessThanOrEqual(decimal.NewFromInt(1)))
		prev = f
	}
}

func TestRemaining(t *testing.T) {
	cfg := shift()
	assert.Zero(t, Remaining(models.NewTickerState(cfg), cfg.End, cooldown))

	armed, _ := Step(models.NewTickerState(cfg), cfg.End.Add(time.Second), cooldown)
	assert.Equal(t, 6*time.Minute, Remaining(armed, cfg.End.Add(4*time.Minute+time.Second), cooldown))
	assert.Zero(t, Remaining(armed, cfg.End.Add(time.Hour), cooldown))
}
