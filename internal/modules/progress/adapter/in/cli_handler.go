package in

import (
	"context"

	"enough/internal/modules/progress/dto"
	progressin "enough/internal/modules/progress/port/in"
	"enough/internal/platform/calendar"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) (dto.ProgressOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Setup(ctx context.Context, input dto.SetupInput) (dto.SetupOutput, error) {
	return h.usecase.Setup(ctx, input)
}

func (h CLIHandler) Reset(ctx context.Context) (dto.ProgressOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) RecordCompletion(ctx context.Context, date calendar.Date) (dto.ProgressOutput, error) {
	return h.usecase.RecordCompletion(ctx, date)
}
