package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized paytick storage at: %s\n", ctx.Describe())

	if !ctx.Settings.Exists() {
		if err := ctx.Settings.Save(ctx.Settings.Settings()); err != nil {
			return fmt.Errorf("failed to write default settings: %w", err)
		}
		ctx.Printf("Wrote default settings to: %s\n", ctx.Settings.Path())
	}
	return nil
}

// reset removes a file-backed store. PostgreSQL schemas are left alone.
func (c *InitCmd) reset(ctx *cli.Context) error {
	switch ctx.Store.(type) {
	case *storage.MemoryStore:
		return nil
	}
	path := ctx.Store.GetConfigPath()
	if path == "postgresql" {
		return fmt.Errorf("--force is not supported for PostgreSQL; drop the %q schema manually", "paytick")
	}

	if _, err := os.Stat(path); err == nil {
		// Close first so the file is not held open
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing store: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing store: %w", err)
		}
		ctx.Printf("Deleted existing store at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing store: %w", err)
	}
	return nil
}
