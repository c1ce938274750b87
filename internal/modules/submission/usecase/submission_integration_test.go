package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	submissionout "enough/internal/modules/submission/adapter/out"
	"enough/internal/modules/submission/dto"
	submissionin "enough/internal/modules/submission/port/in"
	"enough/internal/modules/submission/service"
	"enough/internal/modules/submission/usecase"
	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
	"enough/internal/platform/id"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newInteractor(t *testing.T) (submissionin.Usecase, string) {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "submissions")
	index, err := submissionout.NewSQLiteDayIndex(filepath.Join(dir, ".enough", "index.db"))
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	t.Cleanup(func() { _ = index.Close() })
	clk := &fakeClock{now: time.Date(2024, 1, 4, 20, 0, 0, 0, time.UTC)}
	svc := service.NewSubmissionService(clk, id.UUID{}, submissionout.NewYAMLSubmissionStore(root, nil), index, hclog.NewNullLogger())
	return usecase.NewInteractor(svc), root
}

func TestAppendMergesSameDayInCallOrder(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t)
	ctx := context.Background()
	day := calendar.New(2024, 1, 1)
	start := time.Date(2024, 1, 1, 7, 0, 0, 0, time.UTC)

	first, err := uc.Append(ctx, dto.AppendInput{Exercise: "daily", Date: day, Stem: "p1", Completions: []string{"a", "b"}, StartedAt: start, EndedAt: start.Add(2 * time.Minute)})
	if err != nil {
		t.Fatalf("first append: %v", err)
	}
	second, err := uc.Append(ctx, dto.AppendInput{Exercise: "daily", Date: day, Stem: "p1", Completions: []string{"c", "  "}, StartedAt: start.Add(time.Hour), EndedAt: start.Add(time.Hour + time.Minute)})
	if err != nil {
		t.Fatalf("second append: %v", err)
	}
	if first.Path != second.Path || second.StemTotal != 3 {
		t.Fatalf("expected one file with three completions, got %+v then %+v", first, second)
	}

	history, err := uc.History(ctx, dto.HistoryInput{Exercise: "daily", Start: day, End: day})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || len(history[0].Entries) != 1 {
		t.Fatalf("expected a single record with one stem, got %+v", history)
	}
	got := history[0].Entries[0].Completions
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("expected [a b c], got %v", got)
	}
	if history[0].DurationSeconds != 180 {
		t.Fatalf("durations must be summed, got %d", history[0].DurationSeconds)
	}
}

func TestAppendRejectsEmptyInput(t *testing.T) {
	t.Parallel()
	uc, root := newInteractor(t)
	_, err := uc.Append(context.Background(), dto.AppendInput{Exercise: "daily", Date: calendar.New(2024, 1, 1), Stem: "p1", Completions: []string{" ", ""}})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "daily")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("rejected append must not create files")
	}
}

func TestHistorySkipsMissingAndCorruptDays(t *testing.T) {
	t.Parallel()
	uc, root := newInteractor(t)
	ctx := context.Background()
	for _, d := range []int{1, 3} {
		if _, err := uc.Append(ctx, dto.AppendInput{Exercise: "daily", Date: calendar.New(2024, 1, d), Stem: "p", Completions: []string{"x"}}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	corrupt := filepath.Join(root, "daily", "daily_20240102.yaml")
	if err := os.WriteFile(corrupt, []byte(":\n\t- nope"), 0o600); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	history, err := uc.History(ctx, dto.HistoryInput{Exercise: "daily", Start: calendar.New(2024, 1, 1), End: calendar.New(2024, 1, 7)})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected two readable days, got %d", len(history))
	}
	if other, _ := uc.History(ctx, dto.HistoryInput{Exercise: "other", Start: calendar.New(2024, 1, 1), End: calendar.New(2024, 1, 7)}); len(other) != 0 {
		t.Fatalf("queries must be scoped to the exercise")
	}
}

func TestStatsAndReindex(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t)
	ctx := context.Background()
	for _, d := range []int{2, 3, 4} {
		if _, err := uc.Append(ctx, dto.AppendInput{Exercise: "daily", Date: calendar.New(2024, 1, d), Stem: "p", Completions: []string{"x", "y"}}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	stats, err := uc.Stats(ctx, "daily")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDays != 3 || stats.TotalCompletions != 6 || stats.CurrentStreak != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	out, err := uc.Reindex(ctx)
	if err != nil {
		t.Fatalf("reindex: %v", err)
	}
	if out.Days != 3 {
		t.Fatalf("expected three indexed days, got %d", out.Days)
	}
	exercises, _ := uc.ListExercises(ctx)
	if len(exercises) != 1 || exercises[0] != "daily" {
		t.Fatalf("unexpected exercises %v", exercises)
	}
}
