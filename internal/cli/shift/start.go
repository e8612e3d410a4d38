package shift

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/logger"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/notifier"
	"github.com/julianstephens/paytick/internal/ticker"
	"github.com/julianstephens/paytick/internal/tui"
)

type StartCmd struct {
	Plain bool `help:"Print the ticker on a single line instead of the full-screen view."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Plain {
		return Run(runCtx, ctx, tui.NewPlain(os.Stdin, ctx.Out), nil)
	}

	term := tui.NewTerminal()
	return Run(runCtx, ctx, term, term.Run)
}

// Run starts a ticker on ui and blocks until it returns to idle or runCtx ends.
// display, when set, owns the terminal for the life of the run.
func Run(runCtx context.Context, ctx *cli.Context, ui ticker.UI, display func(context.Context, <-chan struct{}) error) error {
	settings, err := ctx.Settings.Load()
	if err != nil {
		logger.Warn("Using previous settings", "path", ctx.Settings.Path(), "error", err)
	}

	ctrl := ticker.New(ui, ticker.NewStateStore(ctx.Store), ticker.Options{
		Clock:    ctx.Clock,
		Settings: settings,
		Notifier: notifier.New(),
	})
	if term, ok := ui.(*tui.Terminal); ok {
		term.OnCancel(ctrl.Cancel)
	}

	if err := ctx.Settings.Watch(runCtx, func(s models.Settings) {
		logger.SetDebug(s.Debug)
		_ = ctrl.Reconfigure(s)
	}); err != nil {
		logger.Warn("Settings changes will not be picked up until restart", "error", err)
	}

	if err := ctrl.Start(runCtx); err != nil {
		if stderrors.Is(err, errors.ErrAbandoned) {
			return nil
		}
		if errors.IsValidation(err) {
			logger.Info("Shift rejected", "error", err)
		}
		return cli.Reported(err)
	}

	var displayErr error
	if display != nil {
		displayErr = display(runCtx, ctrl.Done())
	} else {
		select {
		case <-ctrl.Done():
		case <-runCtx.Done():
		}
	}

	// Interrupted or the display exited on its own
	ctrl.Cancel()
	return displayErr
}
