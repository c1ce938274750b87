package in

import (
	"context"

	"enough/internal/modules/submission/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) (dto.AppendOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.RecordOutput, error)
	Stats(ctx context.Context, exercise string) (dto.StatsOutput, error)
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	ListExercises(ctx context.Context) ([]string, error)
}
