package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/paytick/internal/models"
)

func (s *Store) GetTickerRecord() (models.TickerRecord, error) {
	if s.db == nil {
		return models.TickerRecord{}, fmt.Errorf("storage not loaded")
	}

	var rec models.TickerRecord
	var salary string
	var start, end, updated sql.NullTime
	err := s.db.QueryRow(`
		SELECT annual_salary, currency, days_actively_working, start_time, end_time, active, session_id, updated_at
		FROM ticker_state WHERE id = 1`,
	).Scan(&salary, &rec.Currency, &rec.DaysActivelyWorking, &start, &end, &rec.Active, &rec.SessionID, &updated)
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
	rec.Start = localTime(start)
	rec.End = localTime(end)
	rec.UpdatedAt = localTime(updated)

	return rec, nil
}

func (s *Store) SaveShift(cfg models.ShiftConfig, active bool, sessionID string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO ticker_state
			(id, annual_salary, currency, days_actively_working, start_time, end_time, active, session_id, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			annual_salary = EXCLUDED.annual_salary,
			currency = EXCLUDED.currency,
			days_actively_working = EXCLUDED.days_actively_working,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			active = EXCLUDED.active,
			session_id = EXCLUDED.session_id,
			updated_at = EXCLUDED.updated_at`,
		cfg.AnnualSalary.String(),
		cfg.Currency,
		cfg.DaysActivelyWorking,
		cfg.Start,
		cfg.End,
		active,
		sessionID,
		time.Now(),
	)
	return err
}

func (s *Store) SetActive(active bool) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec("UPDATE ticker_state SET active = $1, updated_at = $2 WHERE id = 1", active, time.Now())
	return err
}

func localTime(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.Local()
}
