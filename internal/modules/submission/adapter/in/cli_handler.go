package in

import (
	"context"

	"enough/internal/modules/submission/dto"
	submissionin "enough/internal/modules/submission/port/in"
)

type CLIHandler struct {
	usecase submissionin.Usecase
}

func NewCLIHandler(usecase submissionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Append(ctx context.Context, input dto.AppendInput) (dto.AppendOutput, error) {
	return h.usecase.Append(ctx, input)
}

func (h CLIHandler) History(ctx context.Context, input dto.HistoryInput) ([]dto.RecordOutput, error) {
	return h.usecase.History(ctx, input)
}

func (h CLIHandler) Stats(ctx context.Context, exercise string) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx, exercise)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) ListExercises(ctx context.Context) ([]string, error) {
	return h.usecase.ListExercises(ctx)
}
