package shift

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/paytick/internal/accrual"
	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/currency"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/scheduler"
	"github.com/julianstephens/paytick/internal/validation"
)

type StatusCmd struct {
	JSON bool `help:"Print machine-readable JSON."`
}

// Status is what the status command reports
type Status struct {
	Active              bool         `json:"active"`
	SessionID           string       `json:"session_id,omitempty"`
	Currency            string       `json:"currency,omitempty"`
	AnnualSalary        string       `json:"annual_salary,omitempty"`
	DaysActivelyWorking int          `json:"days_actively_working,omitempty"`
	Shift               string       `json:"shift,omitempty"`
	Phase               models.Phase `json:"phase"`
	Earned              string       `json:"earned,omitempty"`
	UpdatedAt           string       `json:"updated_at,omitempty"`
}

// Compute evaluates the stored shift at ctx's clock. An active shift is reported
// as it would run today under the current settings.
func Compute(ctx *cli.Context) (Status, error) {
	rec, err := ctx.Store.GetTickerRecord()
	if err != nil {
		return Status{}, fmt.Errorf("failed to read ticker state: %w", err)
	}
	if !rec.Complete() {
		return Status{Phase: models.PhaseIdle}, nil
	}

	now := ctx.Clock.Now()
	settings := ctx.Settings.Settings()
	cfg := rec.ShiftConfig()
	if rec.Active {
		cfg = scheduler.Rebase(cfg, now)
		// Matches what start would bill when reusing this shift
		if validation.ValidateSettings(settings) == nil {
			cfg = cfg.WithDaysActivelyWorking(settings.DaysActivelyWorking())
		}
	}

	st := Status{
		Active:              rec.Active,
		SessionID:           rec.SessionID,
		Currency:            cfg.Currency,
		AnnualSalary:        cfg.AnnualSalary.String(),
		DaysActivelyWorking: cfg.DaysActivelyWorking,
		Shift: fmt.Sprintf("%s - %s",
			models.TimeOfDayOf(cfg.Start), models.TimeOfDayOf(cfg.End)),
		Phase: models.PhaseIdle,
	}
	if !rec.UpdatedAt.IsZero() {
		st.UpdatedAt = humanize.RelTime(rec.UpdatedAt, now, "ago", "from now")
	}

	if rec.Active {
		_, res := accrual.Step(models.NewTickerState(cfg), now, settings.Cooldown())
		st.Phase = res.Phase
		if res.Visible {
			st.Earned = currency.Format(res.Earned, cfg.Currency)
		}
	}
	return st, nil
}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	st, err := Compute(ctx)
	if err != nil {
		return err
	}

	if c.JSON {
		out, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		ctx.Println(string(out))
		return nil
	}

	ctx.Printf("Store:          %s\n", ctx.Describe())
	if st.Shift == "" {
		ctx.Println("No shift configured. Run 'paytick start' to set one up.")
		return nil
	}

	ctx.Printf("Shift:          %s\n", st.Shift)
	ctx.Printf("Salary:         %s %s (%d working days)\n", st.AnnualSalary, st.Currency, st.DaysActivelyWorking)
	ctx.Printf("Active:         %v\n", st.Active)
	if st.Active {
		ctx.Printf("Phase:          %s\n", st.Phase)
	}
	if st.Earned != "" {
		ctx.Printf("Earned today:   %s\n", st.Earned)
	}
	if st.UpdatedAt != "" {
		ctx.Printf("Last updated:   %s\n", st.UpdatedAt)
	}
	return nil
}
