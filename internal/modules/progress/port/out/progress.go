package out

import (
	"context"

	"enough/internal/modules/progress/domain"
)

// Store persists the single progress record. Load returns
// apperrors.ErrNotFound when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (domain.Record, error)
	Save(ctx context.Context, record domain.Record) error
}
