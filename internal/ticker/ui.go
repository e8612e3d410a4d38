package ticker

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/models"
)

// UI is the host surface the controller drives. Prompt methods block until the
// user answers or ctx is cancelled, and return errors.ErrAbandoned when dismissed.
type UI interface {
	PromptText(ctx context.Context, label, placeholder string) (string, error)
	ShowChoice(ctx context.Context, message string, options []string) (string, error)
	ShowError(message string)
	ShowInfo(message string)
	DisplayLiveValue(view LiveView)
	ClearDisplay()
}

// Notifier sends best-effort desktop notifications
type Notifier interface {
	Notify(text string) error
}

// LiveView is one frame of the earnings display.
type LiveView struct {
	Phase    models.Phase
	Visible  bool
	Text     string // formatted amount, or the end-of-shift message
	Earned   decimal.Decimal
	Currency string

	Start    time.Time
	End      time.Time
	Now      time.Time
	Progress float64       // share of the shift elapsed, 0-1
	Cooldown time.Duration // time left before the display goes away, once the shift has ended
}
