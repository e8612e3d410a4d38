package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/paytick/internal/cli"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpState    *DebugDumpStateCmd    `cmd:"" help:"Dump the stored ticker record as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	// Machine-readable output
	return printJSON(ctx, map[string]string{
		"path":  ctx.Store.GetConfigPath(),
		"store": ctx.Describe(),
	})
}

type DebugDumpStateCmd struct{}

func (cmd *DebugDumpStateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	rec, err := ctx.Store.GetTickerRecord()
	if err != nil {
		return fmt.Errorf("failed to get ticker record: %w", err)
	}
	return printJSON(ctx, rec)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings.Load()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(ctx, settings)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
