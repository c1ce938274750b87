package in

import (
	"context"

	"enough/internal/modules/progress/dto"
	"enough/internal/platform/calendar"
)

type Usecase interface {
	Status(ctx context.Context) (dto.ProgressOutput, error)
	Setup(ctx context.Context, input dto.SetupInput) (dto.SetupOutput, error)
	RecordCompletion(ctx context.Context, date calendar.Date) (dto.ProgressOutput, error)
	Reset(ctx context.Context) (dto.ProgressOutput, error)
}
