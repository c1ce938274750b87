package in

import (
	"context"

	"enough/internal/modules/exercise/dto"
	exercisein "enough/internal/modules/exercise/port/in"
)

type CLIHandler struct {
	usecase exercisein.Usecase
}

func NewCLIHandler(usecase exercisein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Program(ctx context.Context) (dto.ProgramOutput, error) {
	return h.usecase.Program(ctx)
}

func (h CLIHandler) StemForDay(ctx context.Context, week, day int) (dto.StemOutput, error) {
	return h.usecase.StemForDay(ctx, week, day)
}

func (h CLIHandler) PromptsFor(ctx context.Context, week int) ([]dto.PromptOutput, error) {
	return h.usecase.PromptsFor(ctx, week)
}

func (h CLIHandler) WeekendReflection(ctx context.Context) (dto.PromptOutput, error) {
	return h.usecase.WeekendReflection(ctx)
}

func (h CLIHandler) Custom(ctx context.Context, name string) (dto.CustomOutput, error) {
	return h.usecase.Custom(ctx, name)
}

func (h CLIHandler) ListCustom(ctx context.Context) ([]dto.CustomOutput, error) {
	return h.usecase.ListCustom(ctx)
}

func (h CLIHandler) Validate(ctx context.Context, path string) (dto.ValidateOutput, error) {
	return h.usecase.Validate(ctx, path)
}
