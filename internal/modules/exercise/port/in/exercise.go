package in

import (
	"context"

	"enough/internal/modules/exercise/dto"
)

type Usecase interface {
	Program(ctx context.Context) (dto.ProgramOutput, error)
	TotalWeeks(ctx context.Context) (int, error)
	ExerciseName(ctx context.Context) (string, error)
	PromptsFor(ctx context.Context, week int) ([]dto.PromptOutput, error)
	StemForDay(ctx context.Context, week, day int) (dto.StemOutput, error)
	WeekendReflection(ctx context.Context) (dto.PromptOutput, error)
	Custom(ctx context.Context, name string) (dto.CustomOutput, error)
	ListCustom(ctx context.Context) ([]dto.CustomOutput, error)
	Validate(ctx context.Context, path string) (dto.ValidateOutput, error)
}
