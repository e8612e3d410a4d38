package migration

import (
	"database/sql"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewRunnerRejectsUnknownDriver(t *testing.T) {
	db := openTestDB(t)
	if _, err := NewRunner(db, fstest.MapFS{}, Driver("mysql")); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if _, err := NewRunner(nil, fstest.MapFS{}, DriverSQLite); err == nil {
		t.Fatal("expected error for nil database")
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"002_add_column.sql": {Data: []byte("ALTER TABLE ticker ADD COLUMN currency TEXT;")},
		"001_init.sql":       {Data: []byte("CREATE TABLE ticker (id INTEGER PRIMARY KEY);")},
		"README.md":          {Data: []byte("ignored")},
	}

	runner, err := NewRunner(db, migrations, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	var logs []string
	applied, err := runner.ApplyMigrations(func(msg string) { logs = append(logs, msg) })
	if err != nil {
		t.Fatalf("ApplyMigrations() error = %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() error = %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	if _, err := db.Exec("INSERT INTO ticker (id, currency) VALUES (1, 'USD')"); err != nil {
		t.Errorf("migrated table unusable: %v", err)
	}

	again, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations() error = %v", err)
	}
	if again != 0 {
		t.Errorf("second run applied %d migrations, want 0", again)
	}
}

func TestApplyMigrationsRollsBackFailure(t *testing.T) {
	db := openTestDB(t)
	runner, err := NewRunner(db, fstest.MapFS{
		"001_init.sql":   {Data: []byte("CREATE TABLE ticker (id INTEGER PRIMARY KEY);")},
		"002_broken.sql": {Data: []byte("THIS IS NOT SQL;")},
	}, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	if version, _ := runner.GetCurrentVersion(); version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}

func TestReadMigrationFilesErrors(t *testing.T) {
	tests := []struct {
		name string
		fs   fstest.MapFS
	}{
		{"no underscore", fstest.MapFS{"001.sql": {Data: []byte("")}}},
		{"non numeric", fstest.MapFS{"abc_init.sql": {Data: []byte("")}}},
		{"zero version", fstest.MapFS{"000_init.sql": {Data: []byte("")}}},
		{"duplicate", fstest.MapFS{
			"001_a.sql": {Data: []byte("")},
			"01_b.sql":  {Data: []byte("")},
		}},
	}

	db := openTestDB(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner, err := NewRunner(db, tt.fs, DriverSQLite)
			if err != nil {
				t.Fatalf("NewRunner() error = %v", err)
			}
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidateVersionNewerSchema(t *testing.T) {
	db := openTestDB(t)
	runner, err := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE ticker (id INTEGER PRIMARY KEY);")},
	}, DriverSQLite)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion() error = %v", err)
	}
	err = runner.ValidateVersion()
	if err == nil || !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("ValidateVersion() error = %v, want newer-schema error", err)
	}
}

func TestPlaceholder(t *testing.T) {
	db := openTestDB(t)
	lite, _ := NewRunner(db, fstest.MapFS{}, DriverSQLite)
	pg, _ := NewRunner(db, fstest.MapFS{}, DriverPostgres)

	if got := lite.placeholder(1); got != "?" {
		t.Errorf("sqlite placeholder = %q", got)
	}
	if got := pg.placeholder(2); got != "$2" {
		t.Errorf("postgres placeholder = %q", got)
	}
}
