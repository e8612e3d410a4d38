package shift

import (
	"fmt"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/logger"
)

// CancelCmd marks the stored shift inactive so the next start does not offer to
// reuse it. A ticker running in another terminal is stopped with q or Ctrl+C.
type CancelCmd struct{}

func (c *CancelCmd) Run(ctx *cli.Context) error {
	rec, err := ctx.Store.GetTickerRecord()
	if err != nil {
		return fmt.Errorf("failed to read ticker state: %w", err)
	}

	if !rec.Active {
		ctx.Println("No active earnings ticker.")
		return nil
	}

	if err := ctx.Store.SetActive(false); err != nil {
		return fmt.Errorf("failed to deactivate ticker: %w", err)
	}
	logger.Info("Ticker deactivated from the command line", "session", rec.SessionID)
	ctx.Println("Earnings ticker deactivated. The last shift is kept for next time.")
	return nil
}
