package usecase

import (
	"context"
	"errors"
	"fmt"

	exercisein "enough/internal/modules/exercise/port/in"
	"enough/internal/modules/progress/domain"
	"enough/internal/modules/progress/dto"
	progressin "enough/internal/modules/progress/port/in"
	"enough/internal/modules/progress/service"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
	apperrors "enough/internal/platform/errors"
)

type Interactor struct {
	svc      *service.ProgressService
	exercise exercisein.Usecase
	clock    clock.Clock
}

func NewInteractor(svc *service.ProgressService, exercise exercisein.Usecase, clock clock.Clock) progressin.Usecase {
	return &Interactor{svc: svc, exercise: exercise, clock: clock}
}

func (i *Interactor) toOutput(record domain.Record, setupRequired bool) dto.ProgressOutput {
	return dto.ProgressOutput{
		SetupRequired:     setupRequired,
		CurrentWeek:       record.CurrentWeek,
		CurrentDay:        record.CurrentDay,
		StartDate:         record.StartDate,
		LastCompleted:     record.LastCompleted,
		NewUser:           record.NewUser,
		Policy:            string(record.Policy),
		CompletedDays:     append([]calendar.Date(nil), record.CompletedDays...),
		CompletedThisWeek: record.CompletedInWeekOf(clock.Today(i.clock)),
		LastUpdated:       record.LastUpdated,
	}
}

func (i *Interactor) Status(ctx context.Context) (dto.ProgressOutput, error) {
	record, setupRequired, err := i.svc.Load(ctx)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return i.toOutput(record, setupRequired), nil
}

// Setup anchors the program. An already configured profile is only
// re-anchored with Reset; a corrupt record may likewise be replaced.
func (i *Interactor) Setup(ctx context.Context, input dto.SetupInput) (dto.SetupOutput, error) {
	_, setupRequired, err := i.svc.Load(ctx)
	if err != nil {
		if !(input.Reset && errors.Is(err, apperrors.ErrCorruptRecord)) {
			return dto.SetupOutput{}, err
		}
		setupRequired = true
	}
	if !setupRequired && !input.Reset {
		return dto.SetupOutput{}, apperrors.ErrAlreadyConfigured
	}

	today := clock.Today(i.clock)
	var (
		record domain.Record
		notice string
	)
	switch input.Mode {
	case dto.SetupFresh, "":
		record, notice, err = i.svc.StartFresh(ctx, today)
	case dto.SetupResume:
		total, terr := i.exercise.TotalWeeks(ctx)
		if terr != nil {
			return dto.SetupOutput{}, terr
		}
		record, err = i.svc.ResumeAtWeek(ctx, input.Week, today, total)
	case dto.SetupDate:
		record, notice, err = i.svc.StartOn(ctx, input.Date, today)
	default:
		return dto.SetupOutput{}, fmt.Errorf("%w: unknown setup mode %q", apperrors.ErrInvalidInput, input.Mode)
	}
	if err != nil {
		return dto.SetupOutput{}, err
	}
	return dto.SetupOutput{Progress: i.toOutput(record, false), Notice: notice}, nil
}

func (i *Interactor) RecordCompletion(ctx context.Context, date calendar.Date) (dto.ProgressOutput, error) {
	record, err := i.svc.RecordCompletion(ctx, date)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return i.toOutput(record, false), nil
}

func (i *Interactor) Reset(ctx context.Context) (dto.ProgressOutput, error) {
	record, err := i.svc.Reset(ctx)
	if err != nil {
		return dto.ProgressOutput{}, err
	}
	return i.toOutput(record, true), nil
}
