package in

import (
	"context"

	"enough/internal/modules/schedule/dto"
	"enough/internal/platform/calendar"
)

type Usecase interface {
	Today(ctx context.Context) (dto.TodayOutput, error)
	Preview(ctx context.Context, date calendar.Date) (dto.TodayOutput, error)
}
