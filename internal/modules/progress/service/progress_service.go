package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"enough/internal/modules/progress/domain"
	progressout "enough/internal/modules/progress/port/out"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
	apperrors "enough/internal/platform/errors"
)

type Options struct {
	Policy          domain.Policy
	Workweek        calendar.Workweek
	WeekdaysPerWeek int
}

type ProgressService struct {
	clock  clock.Clock
	store  progressout.Store
	opts   Options
	logger hclog.Logger
}

func NewProgressService(clock clock.Clock, store progressout.Store, opts Options, logger hclog.Logger) *ProgressService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ProgressService{clock: clock, store: store, opts: opts, logger: logger}
}

// Load returns the stored record, or a default record with setupRequired
// set when no progress file exists. A malformed file is an error, never a
// silent reset.
func (s *ProgressService) Load(ctx context.Context) (domain.Record, bool, error) {
	record, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewRecord(), true, nil
		}
		return domain.Record{}, false, err
	}
	return record, !record.Configured(), nil
}

// Current returns the configured record or ErrSetupRequired.
func (s *ProgressService) Current(ctx context.Context) (domain.Record, error) {
	record, setupRequired, err := s.Load(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	if setupRequired {
		return domain.Record{}, apperrors.ErrSetupRequired
	}
	return record, nil
}

func (s *ProgressService) Save(ctx context.Context, record domain.Record) (domain.Record, error) {
	record.SchemaVersion = domain.SchemaVersion
	record.LastUpdated = s.clock.Now()
	if err := s.store.Save(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (s *ProgressService) Advance(ctx context.Context, week, day int) (domain.Record, error) {
	if week < 1 || day < 1 {
		return domain.Record{}, fmt.Errorf("%w: position %d/%d", apperrors.ErrInvalidInput, week, day)
	}
	record, err := s.Current(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	record.CurrentWeek = week
	record.CurrentDay = day
	record.NewUser = false
	return s.Save(ctx, record)
}

func (s *ProgressService) begin(anchor calendar.Date, week int) domain.Record {
	record := domain.NewRecord()
	record.StartDate = anchor
	record.CurrentWeek = week
	record.Policy = s.opts.Policy
	return record
}

// StartFresh anchors the program on today, or on the next practice day when
// today is a weekend day. The notice is non-empty when the date was rolled.
func (s *ProgressService) StartFresh(ctx context.Context, today calendar.Date) (domain.Record, string, error) {
	anchor := s.opts.Workweek.NextPracticeDay(today)
	notice := ""
	if !anchor.Equal(today) {
		notice = fmt.Sprintf("%s is not a practice day; the program starts on %s %s", today, anchor.Weekday(), anchor)
	}
	record, err := s.Save(ctx, s.begin(anchor, 1))
	if err != nil {
		return domain.Record{}, "", err
	}
	s.logger.Info("program started", "start_date", anchor.String(), "policy", string(record.Policy))
	return record, notice, nil
}

// ResumeAtWeek back-dates the start so that today falls in week n.
func (s *ProgressService) ResumeAtWeek(ctx context.Context, n int, today calendar.Date, totalWeeks int) (domain.Record, error) {
	if n < 1 || n > totalWeeks {
		return domain.Record{}, fmt.Errorf("%w: week %d is outside 1..%d", apperrors.ErrInvalidInput, n, totalWeeks)
	}
	anchor := today.AddDays(-(n - 1) * 7).Monday()
	record, err := s.Save(ctx, s.begin(anchor, n))
	if err != nil {
		return domain.Record{}, err
	}
	s.logger.Info("program resumed", "week", n, "start_date", anchor.String())
	return record, nil
}

// StartOn anchors the program on an explicit past or present date.
func (s *ProgressService) StartOn(ctx context.Context, date, today calendar.Date) (domain.Record, string, error) {
	if date.IsZero() {
		return domain.Record{}, "", fmt.Errorf("%w: start date is required", apperrors.ErrInvalidInput)
	}
	if date.After(today) {
		return domain.Record{}, "", fmt.Errorf("%w: start date %s is in the future", apperrors.ErrInvalidInput, date)
	}
	anchor := s.opts.Workweek.NextPracticeDay(date)
	notice := ""
	if !anchor.Equal(date) {
		notice = fmt.Sprintf("%s is not a practice day; the program starts on %s %s", date, anchor.Weekday(), anchor)
	}
	record, err := s.Save(ctx, s.begin(anchor, 1))
	if err != nil {
		return domain.Record{}, "", err
	}
	s.logger.Info("program start date set", "start_date", anchor.String())
	return record, notice, nil
}

// Reset discards the stored position and start date.
func (s *ProgressService) Reset(ctx context.Context) (domain.Record, error) {
	record, err := s.Save(ctx, domain.NewRecord())
	if err != nil {
		return domain.Record{}, err
	}
	s.logger.Warn("progress reset")
	return record, nil
}

func (s *ProgressService) RecordCompletion(ctx context.Context, date calendar.Date) (domain.Record, error) {
	record, err := s.Current(ctx)
	if err != nil {
		return domain.Record{}, err
	}
	if date.Before(record.StartDate) {
		return domain.Record{}, fmt.Errorf("%w: %s precedes the program start %s", apperrors.ErrInvalidInput, date, record.StartDate)
	}
	if !record.MarkCompleted(date, s.opts.WeekdaysPerWeek) {
		return record, nil
	}
	record.NewUser = false
	return s.Save(ctx, record)
}
