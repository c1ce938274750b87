package usecase

import (
	"context"
	"strings"

	"enough/internal/modules/submission/domain"
	"enough/internal/modules/submission/dto"
	submissionin "enough/internal/modules/submission/port/in"
	"enough/internal/modules/submission/service"
)

type Interactor struct {
	svc *service.SubmissionService
}

func NewInteractor(svc *service.SubmissionService) submissionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Append(ctx context.Context, input dto.AppendInput) (dto.AppendOutput, error) {
	session := domain.Session{StartedAt: input.StartedAt, EndedAt: input.EndedAt}
	if !input.StartedAt.IsZero() && input.EndedAt.After(input.StartedAt) {
		session.DurationSeconds = int(input.EndedAt.Sub(input.StartedAt).Seconds())
	}
	record, path, err := i.svc.Append(ctx, service.AppendRequest{
		Exercise:    input.Exercise,
		Date:        input.Date,
		Week:        input.Week,
		Day:         input.Day,
		Stem:        input.Stem,
		Completions: input.Completions,
		Session:     session,
	})
	if err != nil {
		return dto.AppendOutput{}, err
	}
	return dto.AppendOutput{
		Path:           path,
		StemTotal:      len(record.Completions(strings.TrimSpace(input.Stem))),
		DayCompletions: record.CompletionCount(),
	}, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.RecordOutput, error) {
	records, err := i.svc.QueryRange(ctx, input.Exercise, input.Start, input.End)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordOutput, 0, len(records))
	for _, r := range records {
		item := dto.RecordOutput{
			Exercise:        r.Exercise,
			Date:            r.Date,
			Week:            r.Week,
			Day:             r.Day,
			DurationSeconds: r.Session.DurationSeconds,
		}
		for _, e := range r.Submissions {
			item.Entries = append(item.Entries, dto.EntryOutput{Stem: e.Stem, Completions: append([]string(nil), e.Completions...)})
		}
		out = append(out, item)
	}
	return out, nil
}

func (i *Interactor) Stats(ctx context.Context, exercise string) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx, exercise)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return dto.StatsOutput{
		Exercise:         stats.Exercise,
		TotalDays:        stats.TotalDays,
		TotalCompletions: stats.TotalCompletions,
		TotalMinutes:     stats.TotalSeconds / 60,
		CurrentStreak:    stats.CurrentStreak,
		LongestStreak:    stats.LongestStreak,
		LastPractice:     stats.LastPractice,
	}, nil
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	days, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Days: days}, nil
}

func (i *Interactor) ListExercises(ctx context.Context) ([]string, error) {
	return i.svc.ListExercises(ctx)
}
