package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/keyring"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/notifier"
	"github.com/julianstephens/paytick/internal/storage"
	"github.com/julianstephens/paytick/internal/validation"
)

type DoctorCmd struct{}

// check is one diagnostic. Warnings are reported but do not fail the run.
type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Settings file", run: checkSettings},
	{name: "Ticker state", needsDB: true, run: checkTickerState},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "OS keyring", warnOnly: true, run: checkKeyring},
	{name: "Desktop notifications", warnOnly: true, run: checkTray},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetTickerRecord(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		// JSON and memory stores are unversioned
		return nil
	}

	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return nil
	}

	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Settings.Load()
	if err != nil {
		return err
	}
	return validation.ValidateSettings(settings)
}

func checkTickerState(ctx *cli.Context) error {
	rec, err := ctx.Store.GetTickerRecord()
	if err != nil {
		return err
	}
	result := validation.ValidateRecord(rec, ctx.Settings.Settings())
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	return clockSane(ctx.Clock.Now())
}

// clockSane rejects clocks that would place shifts on nonsense dates
func clockSane(now time.Time) error {
	if now.Year() < 2000 {
		return fmt.Errorf("system clock reads %s", now.Format(time.RFC3339))
	}
	// Round-trip a time of day to catch broken zone data
	tod := models.TimeOfDay{Hour: 9}
	if got := models.TimeOfDayOf(tod.On(now)); got != tod {
		return fmt.Errorf("local timezone %s shifts 9:00 AM to %s", now.Location(), got)
	}
	return nil
}

func checkKeyring(_ *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkTray(_ *cli.Context) error {
	if err := notifier.TrayAvailable(); err != nil {
		return fmt.Errorf("%v; end-of-shift notifications will be skipped", err)
	}
	return nil
}
