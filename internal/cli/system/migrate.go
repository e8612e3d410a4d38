package system

import (
	"fmt"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/storage"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite and PostgreSQL storage")
	}

	count, err := migrator.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
