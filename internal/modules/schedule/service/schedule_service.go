package service

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"enough/internal/modules/schedule/domain"
	scheduleout "enough/internal/modules/schedule/port/out"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
)

type ScheduleService struct {
	clock    clock.Clock
	progress scheduleout.ProgressGateway
	rules    domain.Rules
	logger   hclog.Logger
}

func NewScheduleService(clock clock.Clock, progress scheduleout.ProgressGateway, rules domain.Rules, logger hclog.Logger) *ScheduleService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ScheduleService{clock: clock, progress: progress, rules: rules, logger: logger}
}

func (s *ScheduleService) Rules() domain.Rules {
	return s.rules
}

// Today resolves the current position and writes it back when the stored
// record has drifted from the calendar.
func (s *ScheduleService) Today(ctx context.Context, totalWeeks int) (domain.Position, error) {
	record, err := s.progress.Current(ctx)
	if err != nil {
		return domain.Position{}, err
	}
	today := clock.Today(s.clock)
	pos, err := domain.Resolve(record, today, s.rules, totalWeeks)
	if err != nil {
		return domain.Position{}, err
	}
	if pos.Clamped {
		s.logger.Warn("date precedes program start; evaluating as of start", "today", today.String(), "start_date", record.StartDate.String())
	}

	day := record.CurrentDay
	if pos.Mode == domain.ModeWeekdayPractice {
		day = pos.Day
	}
	if record.NewUser || record.CurrentWeek != pos.Week || record.CurrentDay != day {
		s.logger.Debug("correcting stored position",
			"stored_week", record.CurrentWeek, "stored_day", record.CurrentDay,
			"week", pos.Week, "day", day, "new_user", record.NewUser)
		if _, err := s.progress.Advance(ctx, pos.Week, day); err != nil {
			return domain.Position{}, err
		}
	}
	return pos, nil
}

// Preview resolves an arbitrary date without touching the stored record.
func (s *ScheduleService) Preview(ctx context.Context, date calendar.Date, totalWeeks int) (domain.Position, error) {
	record, err := s.progress.Current(ctx)
	if err != nil {
		return domain.Position{}, err
	}
	return domain.Resolve(record, date, s.rules, totalWeeks)
}
