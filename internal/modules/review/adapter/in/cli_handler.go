package in

import (
	"context"

	"enough/internal/modules/review/dto"
	reviewin "enough/internal/modules/review/port/in"
	"enough/internal/platform/calendar"
)

type CLIHandler struct {
	usecase reviewin.Usecase
}

func NewCLIHandler(usecase reviewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) RunWeekly(ctx context.Context, exercise string, weekStart calendar.Date, reflector reviewin.Reflector) (dto.ReviewOutput, error) {
	return h.usecase.RunWeekly(ctx, dto.RunInput{Exercise: exercise, WeekStart: weekStart}, reflector)
}

func (h CLIHandler) Preview(ctx context.Context, exercise string, weekStart calendar.Date) ([]dto.PromptReviewOutput, error) {
	return h.usecase.Preview(ctx, dto.RunInput{Exercise: exercise, WeekStart: weekStart})
}

func (h CLIHandler) Get(ctx context.Context, exercise string, weekStart calendar.Date) (dto.ReviewOutput, error) {
	return h.usecase.Get(ctx, exercise, weekStart)
}

func (h CLIHandler) Latest(ctx context.Context, exercise string) (dto.ReviewOutput, error) {
	return h.usecase.Latest(ctx, exercise)
}

func (h CLIHandler) List(ctx context.Context, exercise string) ([]dto.ReviewOutput, error) {
	return h.usecase.List(ctx, exercise)
}
