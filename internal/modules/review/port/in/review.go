package in

import (
	"context"

	"enough/internal/modules/review/dto"
	"enough/internal/platform/calendar"
)

// Reflector is implemented by the presentation layer to gather the user's
// reflection on each stem and the closing insights and actions.
type Reflector interface {
	Reflect(ctx context.Context, review dto.PromptReviewOutput) (string, error)
	Insights(ctx context.Context) ([]string, error)
	Actions(ctx context.Context) ([]string, error)
}

type Usecase interface {
	RunWeekly(ctx context.Context, input dto.RunInput, reflector Reflector) (dto.ReviewOutput, error)
	Preview(ctx context.Context, input dto.RunInput) ([]dto.PromptReviewOutput, error)
	Get(ctx context.Context, exercise string, weekStart calendar.Date) (dto.ReviewOutput, error)
	Latest(ctx context.Context, exercise string) (dto.ReviewOutput, error)
	List(ctx context.Context, exercise string) ([]dto.ReviewOutput, error)
}
