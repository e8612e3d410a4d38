package postgres

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/models"
)

// TestStore_Integration tests PostgreSQL store with a real database
// Set POSTGRES_TEST_URL environment variable to run this test
// Example: POSTGRES_TEST_URL="postgres://paytick_user@localhost:5432/paytick_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	cfg := models.ShiftConfig{
		AnnualSalary:        decimal.RequireFromString("61000.25"),
		Currency:            "EUR",
		DaysActivelyWorking: 230,
		Start:               day.Add(8 * time.Hour),
		End:                 day.Add(16*time.Hour + 30*time.Minute),
	}

	t.Run("SaveShift", func(t *testing.T) {
		if err := store.SaveShift(cfg, true, "pg-session"); err != nil {
			t.Fatalf("Failed to save shift: %v", err)
		}

		rec, err := store.GetTickerRecord()
		if err != nil {
			t.Fatalf("Failed to get record: %v", err)
		}
		if !rec.Active || rec.SessionID != "pg-session" {
			t.Errorf("Expected active record for pg-session, got %+v", rec)
		}
		if !rec.AnnualSalary.Equal(cfg.AnnualSalary) || !rec.Start.Equal(cfg.Start) || !rec.End.Equal(cfg.End) {
			t.Errorf("Round trip mismatch: %+v", rec)
		}
	})

	t.Run("SetActive", func(t *testing.T) {
		if err := store.SetActive(false); err != nil {
			t.Fatalf("Failed to deactivate: %v", err)
		}

		rec, err := store.GetTickerRecord()
		if err != nil {
			t.Fatalf("Failed to get record: %v", err)
		}
		if rec.Active {
			t.Error("Expected inactive record")
		}
		if rec.Currency != "EUR" || !rec.Start.Equal(cfg.Start) {
			t.Errorf("Shift fields lost on deactivate: %+v", rec)
		}
	})

	t.Run("Reload", func(t *testing.T) {
		other := New(connStr)
		if err := other.Load(); err != nil {
			t.Fatalf("Failed to load: %v", err)
		}
		defer other.Close()

		rec, err := other.GetTickerRecord()
		if err != nil {
			t.Fatalf("Failed to get record: %v", err)
		}
		if !rec.Complete() {
			t.Errorf("Expected complete record after reload, got %+v", rec)
		}
	})
}
