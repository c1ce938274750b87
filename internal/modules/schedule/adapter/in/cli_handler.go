package in

import (
	"context"

	"enough/internal/modules/schedule/dto"
	schedulein "enough/internal/modules/schedule/port/in"
	"enough/internal/platform/calendar"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Today(ctx context.Context) (dto.TodayOutput, error) {
	return h.usecase.Today(ctx)
}

func (h CLIHandler) Preview(ctx context.Context, date calendar.Date) (dto.TodayOutput, error) {
	return h.usecase.Preview(ctx, date)
}
