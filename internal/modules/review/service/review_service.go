package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"enough/internal/modules/review/domain"
	reviewout "enough/internal/modules/review/port/out"
	submissiondomain "enough/internal/modules/submission/domain"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
	apperrors "enough/internal/platform/errors"
	"enough/internal/platform/id"
	"enough/internal/platform/slug"
)

type ReviewService struct {
	clock       clock.Clock
	idGen       id.Generator
	submissions reviewout.SubmissionSource
	store       reviewout.Store
	logger      hclog.Logger
}

func NewReviewService(clock clock.Clock, idGen id.Generator, submissions reviewout.SubmissionSource, store reviewout.Store, logger hclog.Logger) *ReviewService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ReviewService{clock: clock, idGen: idGen, submissions: submissions, store: store, logger: logger}
}

// Collect gathers the week's responses per stem without asking for
// reflections. The week is normalised to its Monday.
func (s *ReviewService) Collect(ctx context.Context, exercise string, weekStart calendar.Date) ([]domain.PromptReview, calendar.Date, error) {
	exercise = slug.Sanitize(exercise)
	if exercise == "" {
		return nil, calendar.Date{}, fmt.Errorf("%w: exercise name is required", apperrors.ErrInvalidInput)
	}
	if weekStart.IsZero() {
		return nil, calendar.Date{}, fmt.Errorf("%w: week start is required", apperrors.ErrInvalidInput)
	}
	monday := weekStart.Monday()
	records, err := s.submissions.QueryRange(ctx, exercise, monday, monday.AddDays(6))
	if err != nil {
		return nil, calendar.Date{}, err
	}
	if len(records) == 0 {
		return nil, monday, &domain.NoSubmissionsError{Exercise: exercise, WeekStart: monday}
	}

	groups := submissiondomain.GroupByStem(records)
	reviews := make([]domain.PromptReview, 0, len(groups))
	for _, g := range groups {
		pr := domain.PromptReview{Stem: g.Stem}
		for _, r := range g.Responses {
			pr.Responses = append(pr.Responses, domain.Response{Date: r.Date, Completions: r.Completions})
		}
		reviews = append(reviews, pr)
	}
	return reviews, monday, nil
}

// RunWeekly builds and stores the review for one exercise and week. Nothing
// is written when the week has no submissions or the reflector fails.
func (s *ReviewService) RunWeekly(ctx context.Context, exercise string, weekStart calendar.Date, reflector reviewout.Reflector) (domain.Record, string, error) {
	if reflector == nil {
		return domain.Record{}, "", fmt.Errorf("%w: reflector is required", apperrors.ErrInvalidInput)
	}
	reviews, monday, err := s.Collect(ctx, exercise, weekStart)
	if err != nil {
		return domain.Record{}, "", err
	}
	exercise = slug.Sanitize(exercise)

	for i := range reviews {
		reflection, err := reflector.Reflect(ctx, reviews[i])
		if err != nil {
			return domain.Record{}, "", err
		}
		reviews[i].Reflection = strings.TrimSpace(reflection)
	}
	insights, err := reflector.Insights(ctx)
	if err != nil {
		return domain.Record{}, "", err
	}
	actions, err := reflector.Actions(ctx)
	if err != nil {
		return domain.Record{}, "", err
	}

	record := domain.Record{
		SchemaVersion: domain.SchemaVersion,
		ID:            s.idGen.New(),
		Exercise:      exercise,
		WeekStart:     monday,
		CreatedAt:     s.clock.Now(),
		PromptReviews: reviews,
		Insights:      submissiondomain.CleanCompletions(insights),
		Actions:       submissiondomain.CleanCompletions(actions),
		Themes:        domain.ExtractThemes(reviews, domain.DefaultThemes),
	}
	previous, err := s.store.Load(ctx, exercise, monday)
	switch {
	case err == nil:
		record.ID = previous.ID
		s.logger.Info("overwriting existing review", "exercise", exercise, "week_start", monday.String())
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		s.logger.Warn("existing review unreadable; replacing it", "exercise", exercise, "week_start", monday.String(), "error", err)
	}

	path, err := s.store.Save(ctx, record)
	if err != nil {
		return domain.Record{}, "", err
	}
	return record, path, nil
}

func (s *ReviewService) Get(ctx context.Context, exercise string, weekStart calendar.Date) (domain.Record, error) {
	return s.store.Load(ctx, slug.Sanitize(exercise), weekStart.Monday())
}

// Latest returns the most recent review, or ErrNotFound.
func (s *ReviewService) Latest(ctx context.Context, exercise string) (domain.Record, error) {
	weeks, err := s.store.Weeks(ctx, slug.Sanitize(exercise))
	if err != nil {
		return domain.Record{}, err
	}
	if len(weeks) == 0 {
		return domain.Record{}, apperrors.ErrNotFound
	}
	return s.Get(ctx, exercise, weeks[len(weeks)-1])
}

// List returns every readable review, oldest first. Unreadable files are
// logged and skipped.
func (s *ReviewService) List(ctx context.Context, exercise string) ([]domain.Record, error) {
	weeks, err := s.store.Weeks(ctx, slug.Sanitize(exercise))
	if err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(weeks))
	for _, week := range weeks {
		record, err := s.Get(ctx, exercise, week)
		if err != nil {
			s.logger.Warn("skipping unreadable review", "exercise", exercise, "week_start", week.String(), "error", err)
			continue
		}
		out = append(out, record)
	}
	return out, nil
}
