package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/paytick/internal/cli"
	"github.com/julianstephens/paytick/internal/config"
	"github.com/julianstephens/paytick/internal/storage"
	"github.com/julianstephens/paytick/internal/storage/sqlite"
)

// newTestContext builds a context around store with a settings file and clock in a temp dir
func newTestContext(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	settings, err := config.NewManager(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("failed to create settings manager: %v", err)
	}

	out := &bytes.Buffer{}
	return &cli.Context{
		Store:    store,
		Settings: settings,
		Clock:    clockwork.NewFakeClockAt(time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)),
		Out:      out,
	}, out
}

func newSQLiteContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "paytick.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { _ = store.Close() })

	ctx, out := newTestContext(t, store)
	return ctx, out, dbPath
}
