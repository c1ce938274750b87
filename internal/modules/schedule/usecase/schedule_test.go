package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	exerciseout "enough/internal/modules/exercise/adapter/out"
	exercisedto "enough/internal/modules/exercise/dto"
	exerciseusecase "enough/internal/modules/exercise/usecase"
	progressout "enough/internal/modules/progress/adapter/out"
	progressdomain "enough/internal/modules/progress/domain"
	progressservice "enough/internal/modules/progress/service"
	"enough/internal/modules/schedule/domain"
	schedulein "enough/internal/modules/schedule/port/in"
	"enough/internal/modules/schedule/service"
	"enough/internal/modules/schedule/usecase"
	"enough/internal/platform/calendar"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fixture struct {
	clock    *fakeClock
	progress *progressservice.ProgressService
	path     string
}

func newFixture(t *testing.T, now time.Time) fixture {
	t.Helper()
	clk := &fakeClock{now: now}
	path := filepath.Join(t.TempDir(), "progress.json")
	progress := progressservice.NewProgressService(clk, progressout.NewJSONProgressStore(path), progressservice.Options{
		Policy:          progressdomain.PolicyCalendarWeek,
		Workweek:        calendar.DefaultWorkweek(),
		WeekdaysPerWeek: 5,
	}, nil)
	return fixture{clock: clk, progress: progress, path: path}
}

func (f fixture) interactor() schedulein.Usecase {
	exercise := exerciseusecase.NewInteractor(exerciseout.NewYAMLProgramSource(""), exerciseout.NewYAMLProgramSource, exercisedto.Bounds{Min: 6, Max: 10})
	svc := service.NewScheduleService(f.clock, f.progress, domain.DefaultRules(), nil)
	return usecase.NewInteractor(svc, exercise)
}

func TestTodayCorrectsDriftAndClearsNewUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
	if _, _, err := f.progress.StartFresh(context.Background(), calendar.New(2024, 1, 1)); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.clock.now = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	out, err := f.interactor().Today(context.Background())
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if out.Position.Week != 2 || out.Position.Day != 3 || out.Stem == nil {
		t.Fatalf("expected week 2 day 3 with a stem, got %+v", out)
	}
	if out.Stem.StemIndex != 2 || out.Exercise != "six_pillars" {
		t.Fatalf("unexpected stem selection: %+v", out.Stem)
	}

	record, err := f.progress.Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if record.CurrentWeek != 2 || record.CurrentDay != 3 || record.NewUser {
		t.Fatalf("drift must be persisted, got %+v", record)
	}
}

func TestTodayWithoutDriftDoesNotWrite(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC))
	if _, _, err := f.progress.StartFresh(context.Background(), calendar.New(2024, 1, 1)); err != nil {
		t.Fatalf("start: %v", err)
	}
	uc := f.interactor()
	if _, err := uc.Today(context.Background()); err != nil {
		t.Fatalf("first today: %v", err)
	}
	first, _ := os.Stat(f.path)

	f.clock.now = f.clock.now.Add(time.Hour)
	if _, err := uc.Today(context.Background()); err != nil {
		t.Fatalf("second today: %v", err)
	}
	second, _ := os.Stat(f.path)
	if !first.ModTime().Equal(second.ModTime()) {
		t.Fatalf("resolving an unchanged position must not rewrite progress")
	}
}

func TestWeekendReflectionAndPreview(t *testing.T) {
	t.Parallel()
	f := newFixture(t, time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC))
	if _, _, err := f.progress.StartOn(context.Background(), calendar.New(2024, 1, 1), calendar.New(2024, 1, 6)); err != nil {
		t.Fatalf("start: %v", err)
	}
	uc := f.interactor()

	out, err := uc.Today(context.Background())
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if out.Position.Mode != string(domain.ModeWeekendReflection) || out.Reflection == nil {
		t.Fatalf("Saturday must offer the weekend reflection, got %+v", out)
	}
	if !out.Position.WeekStart.Equal(calendar.New(2024, 1, 1)) {
		t.Fatalf("unexpected week start %s", out.Position.WeekStart)
	}

	before, _ := f.progress.Current(context.Background())
	preview, err := uc.Preview(context.Background(), calendar.New(2024, 3, 4))
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if preview.Position.Mode != string(domain.ModeProgramComplete) {
		t.Fatalf("far future must be complete, got %+v", preview.Position)
	}
	after, _ := f.progress.Current(context.Background())
	if before.CurrentWeek != after.CurrentWeek || !before.LastUpdated.Equal(after.LastUpdated) {
		t.Fatalf("preview must not persist anything")
	}
}
