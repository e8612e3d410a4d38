package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/models"
)

const selectTicker = `
	SELECT annual_salary, currency, days_actively_working, start_time, end_time, active, session_id, updated_at
	FROM ticker_state WHERE id = 1`

func (s *Store) GetTickerRecord() (models.TickerRecord, error) {
	if s.db == nil {
		return models.TickerRecord{}, fmt.Errorf("storage not loaded")
	}

	var rec models.TickerRecord
	var salary, start, end, updated string
	var active int
	err := s.db.QueryRow(selectTicker).Scan(
		&salary, &rec.Currency, &rec.DaysActivelyWorking, &start, &end, &active, &rec.SessionID, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TickerRecord{}, nil
		}
		return models.TickerRecord{}, err
	}

	if salary != "" {
		if rec.AnnualSalary, err = decimal.NewFromString(salary); err != nil {
			return models.TickerRecord{}, fmt.Errorf("parsing annual_salary: %w", err)
		}
	}
	if rec.Start, err = parseTimestamp(start); err != nil {
		return models.TickerRecord{}, fmt.Errorf("parsing start_time: %w", err)
	}
	if rec.End, err = parseTimestamp(end); err != nil {
		return models.TickerRecord{}, fmt.Errorf("parsing end_time: %w", err)
	}
	if rec.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return models.TickerRecord{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	rec.Active = active == 1

	return rec, nil
}

func (s *Store) SaveShift(cfg models.ShiftConfig, active bool, sessionID string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO ticker_state
			(id, annual_salary, currency, days_actively_working, start_time, end_time, active, session_id, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.AnnualSalary.String(),
		cfg.Currency,
		cfg.DaysActivelyWorking,
		formatTimestamp(cfg.Start),
		formatTimestamp(cfg.End),
		boolToInt(active),
		sessionID,
		formatTimestamp(time.Now()),
	)
	return err
}

func (s *Store) SetActive(active bool) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(
		"UPDATE ticker_state SET active = ?, updated_at = ? WHERE id = 1",
		boolToInt(active), formatTimestamp(time.Now()),
	)
	return err
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
