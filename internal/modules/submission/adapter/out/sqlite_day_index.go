package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"enough/internal/modules/submission/domain"
	submissionout "enough/internal/modules/submission/port/out"
	"enough/internal/platform/calendar"

	_ "modernc.org/sqlite"
)

// SQLiteDayIndex mirrors per-day counts for fast stats. It never stores
// completion text, so an encrypted profile leaks nothing through it.
type SQLiteDayIndex struct {
	db *sql.DB
}

func NewSQLiteDayIndex(dbPath string) (*SQLiteDayIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteDayIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

var _ submissionout.DayIndex = (*SQLiteDayIndex)(nil)

func (s *SQLiteDayIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS practice_days (
  exercise TEXT NOT NULL,
  day_date TEXT NOT NULL,
  week INTEGER NOT NULL,
  day INTEGER NOT NULL,
  stems INTEGER NOT NULL,
  completions INTEGER NOT NULL,
  duration_seconds INTEGER NOT NULL,
  PRIMARY KEY (exercise, day_date)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create practice_days table: %w", err)
	}
	return nil
}

func (s *SQLiteDayIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteDayIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM practice_days`); err != nil {
		return fmt.Errorf("reset practice days: %w", err)
	}
	return nil
}

func (s *SQLiteDayIndex) Upsert(ctx context.Context, day domain.DaySummary) error {
	const stmt = `
INSERT INTO practice_days (exercise, day_date, week, day, stems, completions, duration_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(exercise, day_date) DO UPDATE SET
  week=excluded.week,
  day=excluded.day,
  stems=excluded.stems,
  completions=excluded.completions,
  duration_seconds=excluded.duration_seconds;
`
	_, err := s.db.ExecContext(ctx, stmt,
		day.Exercise,
		day.Date.String(),
		day.Week,
		day.Day,
		day.Stems,
		day.Completions,
		day.DurationSeconds,
	)
	if err != nil {
		return fmt.Errorf("upsert practice day: %w", err)
	}
	return nil
}

func (s *SQLiteDayIndex) Days(ctx context.Context, exercise string) ([]domain.DaySummary, error) {
	const query = `
SELECT exercise, day_date, week, day, stems, completions, duration_seconds
FROM practice_days
WHERE exercise = ?
ORDER BY day_date;
`
	rows, err := s.db.QueryContext(ctx, query, exercise)
	if err != nil {
		return nil, fmt.Errorf("query practice days: %w", err)
	}
	defer rows.Close()

	out := []domain.DaySummary{}
	for rows.Next() {
		var (
			day  domain.DaySummary
			date string
		)
		if err := rows.Scan(&day.Exercise, &date, &day.Week, &day.Day, &day.Stems, &day.Completions, &day.DurationSeconds); err != nil {
			return nil, fmt.Errorf("scan practice day: %w", err)
		}
		if day.Date, err = calendar.Parse(date); err != nil {
			return nil, fmt.Errorf("practice day %q: %w", date, err)
		}
		out = append(out, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate practice days: %w", err)
	}
	return out, nil
}
