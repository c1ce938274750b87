package out

import (
	"context"

	"enough/internal/modules/review/domain"
	submissiondomain "enough/internal/modules/submission/domain"
	"enough/internal/platform/calendar"
)

// Store keeps at most one review per (exercise, week). Load returns
// apperrors.ErrNotFound when the week has not been reviewed.
type Store interface {
	Save(ctx context.Context, record domain.Record) (string, error)
	Load(ctx context.Context, exercise string, weekStart calendar.Date) (domain.Record, error)
	Weeks(ctx context.Context, exercise string) ([]calendar.Date, error)
}

type SubmissionSource interface {
	QueryRange(ctx context.Context, exercise string, start, end calendar.Date) ([]submissiondomain.Record, error)
}

// Reflector collects the user's side of a review. Reflect is called once per
// stem in order of first appearance and must return exactly one reflection.
type Reflector interface {
	Reflect(ctx context.Context, review domain.PromptReview) (string, error)
	Insights(ctx context.Context) ([]string, error)
	Actions(ctx context.Context) ([]string, error)
}
