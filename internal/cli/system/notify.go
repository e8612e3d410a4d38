package system

import (
	"fmt"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/notifier"
)

type NotifyCmd struct {
	Message string `arg:"" optional:"" help:"Text to show." default:"paytick notifications are working."`
	DryRun  bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings.Load()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		ctx.Println("Notifications are disabled in settings.")
		return nil
	}

	if c.DryRun {
		ctx.Println("[DryRun] " + c.Message)
		return nil
	}

	if err := notifier.New().Notify(c.Message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	ctx.Println("Notification sent.")
	return nil
}
