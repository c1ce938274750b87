package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"enough/internal/modules/submission/domain"
	submissionout "enough/internal/modules/submission/port/out"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
	apperrors "enough/internal/platform/errors"
	"enough/internal/platform/id"
	"enough/internal/platform/slug"
)

type AppendRequest struct {
	Exercise    string
	Date        calendar.Date
	Week        int
	Day         int
	Stem        string
	Completions []string
	Session     domain.Session
}

type SubmissionService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  submissionout.Store
	index  submissionout.DayIndex
	logger hclog.Logger
}

func NewSubmissionService(clock clock.Clock, idGen id.Generator, store submissionout.Store, index submissionout.DayIndex, logger hclog.Logger) *SubmissionService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SubmissionService{clock: clock, idGen: idGen, store: store, index: index, logger: logger}
}

// Append merges completions into the day's record, creating it on first
// write. Earlier completions are never replaced.
func (s *SubmissionService) Append(ctx context.Context, req AppendRequest) (domain.Record, string, error) {
	exercise := slug.Sanitize(req.Exercise)
	if exercise == "" {
		return domain.Record{}, "", fmt.Errorf("%w: exercise name is required", apperrors.ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return domain.Record{}, "", fmt.Errorf("%w: date is required", apperrors.ErrInvalidInput)
	}
	stem := strings.TrimSpace(req.Stem)
	if stem == "" {
		return domain.Record{}, "", fmt.Errorf("%w: stem is required", apperrors.ErrInvalidInput)
	}
	completions := domain.CleanCompletions(req.Completions)
	if len(completions) == 0 {
		return domain.Record{}, "", fmt.Errorf("%w: at least one completion is required", apperrors.ErrInvalidInput)
	}

	record, err := s.store.Load(ctx, exercise, req.Date)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		record = domain.NewRecord(exercise, req.Date)
		record.Week = req.Week
		record.Day = req.Day
	case err != nil:
		return domain.Record{}, "", err
	}

	record.Append(stem, completions)
	session := req.Session
	if !session.IsZero() && session.ID == "" {
		session.ID = s.idGen.New()
	}
	record.MergeSession(session)

	path, err := s.store.Save(ctx, record)
	if err != nil {
		return domain.Record{}, "", err
	}
	s.logger.Debug("submission appended", "exercise", exercise, "date", req.Date.String(), "completions", len(completions))
	s.project(ctx, record)
	return record, path, nil
}

func (s *SubmissionService) project(ctx context.Context, record domain.Record) {
	if s.index == nil {
		return
	}
	if err := s.index.Upsert(ctx, record.Summary()); err != nil {
		s.logger.Warn("day index update failed; run reindex", "exercise", record.Exercise, "date", record.Date.String(), "error", err)
	}
}

// QueryRange returns the exercise's records dated within [start, end].
// Missing days are skipped; unreadable days are logged and skipped so one
// bad file cannot block a review.
func (s *SubmissionService) QueryRange(ctx context.Context, exercise string, start, end calendar.Date) ([]domain.Record, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: range end %s precedes start %s", apperrors.ErrInvalidInput, end, start)
	}
	out := []domain.Record{}
	for _, date := range calendar.Range(start, end) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := s.store.Load(ctx, exercise, date)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			s.logger.Warn("skipping unreadable submission", "exercise", exercise, "date", date.String(), "error", err)
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// Reindex rebuilds the day index from the files on disk.
func (s *SubmissionService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}
	if err := s.index.Reset(ctx); err != nil {
		return 0, err
	}
	exercises, err := s.store.ListExercises(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, exercise := range exercises {
		dates, err := s.store.ListDates(ctx, exercise)
		if err != nil {
			return count, err
		}
		for _, date := range dates {
			record, err := s.store.Load(ctx, exercise, date)
			if err != nil {
				s.logger.Warn("skipping unreadable submission", "exercise", exercise, "date", date.String(), "error", err)
				continue
			}
			if err := s.index.Upsert(ctx, record.Summary()); err != nil {
				return count, err
			}
			count++
		}
	}
	s.logger.Info("day index rebuilt", "days", count)
	return count, nil
}

func (s *SubmissionService) Stats(ctx context.Context, exercise string) (domain.Stats, error) {
	exercise = slug.Sanitize(exercise)
	var days []domain.DaySummary
	if s.index != nil {
		indexed, err := s.index.Days(ctx, exercise)
		if err != nil {
			return domain.Stats{}, err
		}
		days = indexed
	} else {
		dates, err := s.store.ListDates(ctx, exercise)
		if err != nil {
			return domain.Stats{}, err
		}
		if len(dates) > 0 {
			records, err := s.QueryRange(ctx, exercise, dates[0], dates[len(dates)-1])
			if err != nil {
				return domain.Stats{}, err
			}
			for _, r := range records {
				days = append(days, r.Summary())
			}
		}
	}
	return domain.ComputeStats(exercise, days, clock.Today(s.clock)), nil
}

func (s *SubmissionService) ListExercises(ctx context.Context) ([]string, error) {
	return s.store.ListExercises(ctx)
}
