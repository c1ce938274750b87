package usecase

import (
	"context"

	exercisein "enough/internal/modules/exercise/port/in"
	"enough/internal/modules/schedule/domain"
	"enough/internal/modules/schedule/dto"
	schedulein "enough/internal/modules/schedule/port/in"
	"enough/internal/modules/schedule/service"
	"enough/internal/platform/calendar"
)

type Interactor struct {
	svc      *service.ScheduleService
	exercise exercisein.Usecase
}

func NewInteractor(svc *service.ScheduleService, exercise exercisein.Usecase) schedulein.Usecase {
	return &Interactor{svc: svc, exercise: exercise}
}

func (i *Interactor) Today(ctx context.Context) (dto.TodayOutput, error) {
	total, err := i.exercise.TotalWeeks(ctx)
	if err != nil {
		return dto.TodayOutput{}, err
	}
	pos, err := i.svc.Today(ctx, total)
	if err != nil {
		return dto.TodayOutput{}, err
	}
	return i.describe(ctx, pos, total)
}

func (i *Interactor) Preview(ctx context.Context, date calendar.Date) (dto.TodayOutput, error) {
	total, err := i.exercise.TotalWeeks(ctx)
	if err != nil {
		return dto.TodayOutput{}, err
	}
	pos, err := i.svc.Preview(ctx, date, total)
	if err != nil {
		return dto.TodayOutput{}, err
	}
	return i.describe(ctx, pos, total)
}

func (i *Interactor) describe(ctx context.Context, pos domain.Position, total int) (dto.TodayOutput, error) {
	exercise, err := i.exercise.ExerciseName(ctx)
	if err != nil {
		return dto.TodayOutput{}, err
	}
	out := dto.TodayOutput{
		Exercise: exercise,
		Position: dto.PositionOutput{
			Date:       pos.Date,
			Week:       pos.Week,
			Day:        pos.Day,
			Mode:       string(pos.Mode),
			Elapsed:    pos.Elapsed,
			Clamped:    pos.Clamped,
			CatchUp:    pos.CatchUp,
			WeekStart:  pos.WeekStart(),
			TotalWeeks: total,
		},
	}
	switch pos.Mode {
	case domain.ModeWeekdayPractice:
		stem, err := i.exercise.StemForDay(ctx, pos.Week, pos.Day)
		if err != nil {
			return dto.TodayOutput{}, err
		}
		out.Theme = stem.Theme
		out.Stem = &stem
	case domain.ModeWeekendReflection:
		prompt, err := i.exercise.WeekendReflection(ctx)
		if err != nil {
			return dto.TodayOutput{}, err
		}
		out.Reflection = &prompt
	}
	return out, nil
}
