package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	exerciseout "enough/internal/modules/exercise/adapter/out"
	exercisedto "enough/internal/modules/exercise/dto"
	exerciseusecase "enough/internal/modules/exercise/usecase"
	progressout "enough/internal/modules/progress/adapter/out"
	"enough/internal/modules/progress/domain"
	"enough/internal/modules/progress/dto"
	progressin "enough/internal/modules/progress/port/in"
	"enough/internal/modules/progress/service"
	"enough/internal/modules/progress/usecase"
	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func newInteractor(t *testing.T, clk *fakeClock) (progressin.Usecase, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.json")
	svc := service.NewProgressService(clk, progressout.NewJSONProgressStore(path), service.Options{
		Policy:          domain.PolicyCalendarWeek,
		Workweek:        calendar.DefaultWorkweek(),
		WeekdaysPerWeek: 5,
	}, nil)
	exercise := exerciseusecase.NewInteractor(exerciseout.NewYAMLProgramSource(""), exerciseout.NewYAMLProgramSource, exercisedto.Bounds{Min: 6, Max: 10})
	return usecase.NewInteractor(svc, exercise, clk), path
}

func TestStatusBeforeSetupRequiresSetup(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &fakeClock{now: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)})
	status, err := uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.SetupRequired || status.CurrentWeek != 1 || status.CurrentDay != 1 || !status.NewUser {
		t.Fatalf("unexpected default status: %+v", status)
	}
}

func TestFreshStartOnWeekendRollsToMonday(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &fakeClock{now: time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)})
	out, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupFresh})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !out.Progress.StartDate.Equal(calendar.New(2024, 1, 8)) {
		t.Fatalf("expected Monday start, got %s", out.Progress.StartDate)
	}
	if !strings.Contains(out.Notice, "2024-01-08") {
		t.Fatalf("expected roll-forward notice, got %q", out.Notice)
	}
	if out.Progress.Policy != string(domain.PolicyCalendarWeek) {
		t.Fatalf("policy must be fixed at setup, got %q", out.Progress.Policy)
	}
}

func TestSetupRefusesWithoutResetAndValidatesBeforeWriting(t *testing.T) {
	t.Parallel()
	uc, path := newInteractor(t, &fakeClock{now: time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)})
	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupFresh}); err != nil {
		t.Fatalf("first setup: %v", err)
	}
	before, _ := os.ReadFile(path)

	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupFresh}); !errors.Is(err, apperrors.ErrAlreadyConfigured) {
		t.Fatalf("expected already configured, got %v", err)
	}
	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupResume, Week: 99, Reset: true}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid week, got %v", err)
	}
	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupDate, Date: calendar.New(2024, 2, 1), Reset: true}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected future date rejection, got %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("rejected input must not touch the progress file")
	}

	out, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupResume, Week: 3, Reset: true})
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !out.Progress.StartDate.Equal(calendar.New(2024, 1, 1)) || out.Progress.CurrentWeek != 3 {
		t.Fatalf("resume at week 3 on 2024-01-17 must anchor on 2024-01-01, got %+v", out.Progress)
	}
}

func TestCorruptRecordIsReportedNotReset(t *testing.T) {
	t.Parallel()
	uc, path := newInteractor(t, &fakeClock{now: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)})
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := uc.Status(context.Background()); !errors.Is(err, apperrors.ErrCorruptRecord) {
		t.Fatalf("expected corrupt record, got %v", err)
	}
	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupFresh}); !errors.Is(err, apperrors.ErrCorruptRecord) {
		t.Fatalf("setup without reset must surface corruption, got %v", err)
	}
	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupFresh, Reset: true}); err != nil {
		t.Fatalf("setup with reset must replace a corrupt record: %v", err)
	}
}

func TestRecordCompletionRequiresSetup(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, &fakeClock{now: time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)})
	if _, err := uc.RecordCompletion(context.Background(), calendar.New(2024, 1, 3)); !errors.Is(err, apperrors.ErrSetupRequired) {
		t.Fatalf("expected setup required, got %v", err)
	}
	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupFresh}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	out, err := uc.RecordCompletion(context.Background(), calendar.New(2024, 1, 3))
	if err != nil {
		t.Fatalf("record completion: %v", err)
	}
	if out.CurrentDay != 2 || out.NewUser || !out.LastCompleted.Equal(calendar.New(2024, 1, 3)) {
		t.Fatalf("unexpected progress after completion: %+v", out)
	}
}

func TestCompletedThisWeekFollowsTheClock(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2024, 1, 12, 9, 0, 0, 0, time.UTC)}
	uc, _ := newInteractor(t, clk)
	if _, err := uc.Setup(context.Background(), dto.SetupInput{Mode: dto.SetupDate, Date: calendar.New(2024, 1, 8)}); err != nil {
		t.Fatalf("setup: %v", err)
	}
	for day := 8; day <= 12; day++ {
		if _, err := uc.RecordCompletion(context.Background(), calendar.New(2024, 1, day)); err != nil {
			t.Fatalf("record completion %d: %v", day, err)
		}
	}
	status, err := uc.Status(context.Background())
	if err != nil || status.CompletedThisWeek != 5 {
		t.Fatalf("friday must count the full week, got %d %v", status.CompletedThisWeek, err)
	}

	clk.now = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	status, err = uc.Status(context.Background())
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.CompletedThisWeek != 0 || len(status.CompletedDays) != 5 {
		t.Fatalf("monday must start a fresh count, got %d of %v", status.CompletedThisWeek, status.CompletedDays)
	}
}
