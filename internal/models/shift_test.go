package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testShift() ShiftConfig {
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local)
	return ShiftConfig{
		AnnualSalary:        decimal.NewFromInt(47000),
		Currency:            "USD",
		DaysActivelyWorking: 235,
		Start:               TimeOfDay{Hour: 9}.On(day),
		End:                 TimeOfDay{Hour: 17}.On(day),
	}
}

func TestDailyWage(t *testing.T) {
	cfg := testShift()
	if got := cfg.DailyWage(); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("DailyWage() = %s, want 200", got)
	}

	cfg.DaysActivelyWorking = 0
	if got := cfg.DailyWage(); !got.IsZero() {
		t.Errorf("DailyWage() with no working days = %s, want 0", got)
	}
}

func TestWithDaysActivelyWorkingCopies(t *testing.T) {
	cfg := testShift()
	updated := cfg.WithDaysActivelyWorking(94)

	if cfg.DaysActivelyWorking != 235 {
		t.Errorf("original mutated: %d", cfg.DaysActivelyWorking)
	}
	if !updated.DailyWage().Equal(decimal.NewFromInt(500)) {
		t.Errorf("updated DailyWage() = %s, want 500", updated.DailyWage())
	}
}

func TestTimeOfDayString(t *testing.T) {
	tests := []struct {
		tod  TimeOfDay
		want string
	}{
		{TimeOfDay{Hour: 0, Minute: 0}, "12:00 AM"},
		{TimeOfDay{Hour: 9, Minute: 5}, "9:05 AM"},
		{TimeOfDay{Hour: 12, Minute: 0}, "12:00 PM"},
		{TimeOfDay{Hour: 23, Minute: 59}, "11:59 PM"},
	}
	for _, tt := range tests {
		if got := tt.tod.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.tod, got, tt.want)
		}
	}
}

func TestTimeOfDayOn(t *testing.T) {
	ref := time.Date(2026, time.July, 14, 22, 41, 13, 500, time.Local)
	got := TimeOfDay{Hour: 13, Minute: 5}.On(ref)
	want := time.Date(2026, time.July, 14, 13, 5, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestTickerRecordComplete(t *testing.T) {
	rec := RecordFor(testShift(), true, "session-1")
	if !rec.Complete() {
		t.Fatal("record built from a valid shift should be complete")
	}
	if got := rec.ShiftConfig(); !got.Start.Equal(testShift().Start) || got.Currency != "USD" {
		t.Errorf("ShiftConfig() = %+v", got)
	}

	var empty TickerRecord
	if empty.Complete() {
		t.Error("zero record should not be complete")
	}

	rec.Currency = ""
	if rec.Complete() {
		t.Error("record without currency should not be complete")
	}
}

func TestSettingsDerived(t *testing.T) {
	s := DefaultSettings()
	if got := s.DaysActivelyWorking(); got != 235 {
		t.Errorf("DaysActivelyWorking() = %d, want 235", got)
	}
	if got := s.Cooldown(); got != 10*time.Minute {
		t.Errorf("Cooldown() = %v, want 10m", got)
	}
}
