package settings

import (
	"fmt"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/validation"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Workdays      *int  `help:"Approximate working days in a year."`
	DaysOff       *int  `help:"Vacation, holidays and sick days per year."`
	CooldownMin   *int  `help:"Minutes the final amount stays on screen after the shift ends."`
	Notifications *bool `help:"Enable or disable the end-of-shift desktop notification."`
	Debug         *bool `help:"Enable or disable verbose logging."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings.Load()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Printf("Current Settings (%s):\n", ctx.Settings.Path())
		ctx.Printf("  Annual Workdays:       %d\n", settings.AnnualWorkdays)
		ctx.Printf("  Days Off:              %d\n", settings.DaysOff)
		ctx.Printf("  Days Actively Working: %d\n", settings.DaysActivelyWorking())
		ctx.Printf("  Cooldown:              %d min\n", settings.CooldownMin)
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		ctx.Printf("  Debug:                 %v\n", settings.Debug)
		return nil
	}

	updated := false
	if c.Workdays != nil {
		settings.AnnualWorkdays = *c.Workdays
		updated = true
	}
	if c.DaysOff != nil {
		settings.DaysOff = *c.DaysOff
		updated = true
	}
	if c.CooldownMin != nil {
		settings.CooldownMin = *c.CooldownMin
		updated = true
	}
	if c.Notifications != nil {
		settings.NotificationsEnabled = *c.Notifications
		updated = true
	}
	if c.Debug != nil {
		settings.Debug = *c.Debug
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := validation.ValidateSettings(settings); err != nil {
		return err
	}
	if err := ctx.Settings.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}
