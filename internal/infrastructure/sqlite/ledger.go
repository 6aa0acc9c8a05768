// Package sqlite implements the append-only intake ledger on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/go-med-reminder/internal/domain"
)

// timeLayout is the created_at storage format; SQLite's DATE() understands it.
const timeLayout = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS intake_log (
	id             TEXT PRIMARY KEY,
	medication     TEXT NOT NULL,
	scheduled_time TEXT NOT NULL,
	actual_time    TEXT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'taken',
	created_at     TEXT NOT NULL
)`

// Ledger records confirmed intakes. Rows are inserted once and never
// updated or deleted.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (or creates) the intake database at path.
func OpenLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open intake database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init intake database: %w", err)
	}
	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error { return l.db.Close() }

// WasTakenToday reports whether a confirmed intake exists for the
// (medication, scheduled time) pair on day's date.
func (l *Ledger) WasTakenToday(ctx context.Context, medication, scheduledTime string, day time.Time) (bool, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM intake_log
		WHERE medication = ? AND scheduled_time = ? AND DATE(created_at) = ? AND status = ?`,
		medication, scheduledTime, day.Format("2006-01-02"), domain.IntakeStatusTaken,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query intake log: %w", err)
	}
	return count > 0, nil
}

// Append writes one intake record.
func (l *Ledger) Append(ctx context.Context, rec *domain.IntakeRecord) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO intake_log (id, medication, scheduled_time, actual_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Medication, rec.ScheduledTime, rec.ActualTime, rec.Status, rec.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("append intake record: %w", err)
	}
	return nil
}

// History returns the records created within the last days days, newest
// first.
func (l *Ledger) History(ctx context.Context, days int, now time.Time) ([]domain.IntakeRecord, error) {
	cutoff := now.AddDate(0, 0, -days)
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, medication, scheduled_time, actual_time, status, created_at
		FROM intake_log
		WHERE created_at >= ?
		ORDER BY created_at DESC`,
		cutoff.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("query intake history: %w", err)
	}
	defer rows.Close()

	records := []domain.IntakeRecord{}
	for rows.Next() {
		var rec domain.IntakeRecord
		var created string
		if err := rows.Scan(&rec.ID, &rec.Medication, &rec.ScheduledTime, &rec.ActualTime, &rec.Status, &created); err != nil {
			return nil, fmt.Errorf("scan intake record: %w", err)
		}
		rec.CreatedAt, err = time.ParseInLocation(timeLayout, created, now.Location())
		if err != nil {
			return nil, fmt.Errorf("parse intake timestamp: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
