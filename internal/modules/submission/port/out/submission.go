package out

import (
	"context"

	"enough/internal/modules/submission/domain"
	"enough/internal/platform/calendar"
)

// Store keeps one self-contained file per (exercise, date). Load returns
// apperrors.ErrNotFound for a day without a file.
type Store interface {
	Load(ctx context.Context, exercise string, date calendar.Date) (domain.Record, error)
	Save(ctx context.Context, record domain.Record) (string, error)
	Path(exercise string, date calendar.Date) string
	ListDates(ctx context.Context, exercise string) ([]calendar.Date, error)
	ListExercises(ctx context.Context) ([]string, error)
}

type DayIndex interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, day domain.DaySummary) error
	Days(ctx context.Context, exercise string) ([]domain.DaySummary, error)
}
