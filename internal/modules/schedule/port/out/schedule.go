package out

import (
	"context"

	progressdomain "enough/internal/modules/progress/domain"
)

// ProgressGateway is the slice of the progress store the scheduler needs.
type ProgressGateway interface {
	Current(ctx context.Context) (progressdomain.Record, error)
	Advance(ctx context.Context, week, day int) (progressdomain.Record, error)
}
