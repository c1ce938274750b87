package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	exerciseinadapter "enough/internal/modules/exercise/adapter/in"
	exerciseoutadapter "enough/internal/modules/exercise/adapter/out"
	exercisedto "enough/internal/modules/exercise/dto"
	exerciseusecase "enough/internal/modules/exercise/usecase"
	progressinadapter "enough/internal/modules/progress/adapter/in"
	progressoutadapter "enough/internal/modules/progress/adapter/out"
	progressdomain "enough/internal/modules/progress/domain"
	progressservice "enough/internal/modules/progress/service"
	progressusecase "enough/internal/modules/progress/usecase"
	reviewinadapter "enough/internal/modules/review/adapter/in"
	reviewoutadapter "enough/internal/modules/review/adapter/out"
	reviewservice "enough/internal/modules/review/service"
	reviewusecase "enough/internal/modules/review/usecase"
	scheduleinadapter "enough/internal/modules/schedule/adapter/in"
	scheduledomain "enough/internal/modules/schedule/domain"
	scheduleservice "enough/internal/modules/schedule/service"
	scheduleusecase "enough/internal/modules/schedule/usecase"
	submissioninadapter "enough/internal/modules/submission/adapter/in"
	submissionoutadapter "enough/internal/modules/submission/adapter/out"
	submissionout "enough/internal/modules/submission/port/out"
	submissionservice "enough/internal/modules/submission/service"
	submissionusecase "enough/internal/modules/submission/usecase"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
	"enough/internal/platform/config"
	"enough/internal/platform/crypt"
	"enough/internal/platform/id"
	"enough/internal/platform/logging"
	uiapp "enough/internal/ui/app"
)

type Options struct {
	Debug  bool
	Stderr io.Writer
	Clock  clock.Clock
}

type App struct {
	Config config.Config
	Logger hclog.Logger

	ExerciseCLI   exerciseinadapter.CLIHandler
	ProgressCLI   progressinadapter.CLIHandler
	ScheduleCLI   scheduleinadapter.CLIHandler
	SubmissionCLI submissioninadapter.CLIHandler
	ReviewCLI     reviewinadapter.CLIHandler

	closers []io.Closer
}

// New wires every module for one profile. The program is loaded eagerly so
// a broken program file fails here rather than midway through a session.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Debug:  opts.Debug,
		Stderr: opts.Stderr,
	})
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: logger, closers: []io.Closer{logCloser}}

	clk := opts.Clock
	if clk == nil {
		clk = clock.SystemClock{}
	}
	ids := id.UUID{}

	codec, err := newCodec(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	workweek, err := calendar.ParseWorkweek(cfg.Schedule.WeekendDays)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("schedule.weekend_days: %w", err)
	}
	policy, err := progressdomain.ParsePolicy(cfg.Schedule.Policy)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("schedule.policy: %w", err)
	}

	exerciseUC := exerciseusecase.NewInteractor(
		exerciseoutadapter.NewYAMLProgramSource(cfg.ProgramFile),
		exerciseoutadapter.NewYAMLProgramSource,
		exercisedto.Bounds{Min: cfg.Completions.Min, Max: cfg.Completions.Max},
	)
	program, err := exerciseUC.Program(ctx)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	logger.Debug("program loaded", "name", program.Name, "origin", program.Origin, "weeks", program.TotalWeeks)

	progressSvc := progressservice.NewProgressService(clk, progressoutadapter.NewJSONProgressStore(cfg.ProgressPath()), progressservice.Options{
		Policy:          policy,
		Workweek:        workweek,
		WeekdaysPerWeek: cfg.Schedule.WeekdaysPerWeek,
	}, logger.Named("progress"))
	progressUC := progressusecase.NewInteractor(progressSvc, exerciseUC, clk)

	scheduleSvc := scheduleservice.NewScheduleService(clk, progressSvc, scheduledomain.Rules{
		Policy:            policy,
		Workweek:          workweek,
		WeekdaysPerWeek:   cfg.Schedule.WeekdaysPerWeek,
		ReflectionTrigger: scheduledomain.Trigger(cfg.Schedule.ReflectionTrigger),
	}, logger.Named("schedule"))
	scheduleUC := scheduleusecase.NewInteractor(scheduleSvc, exerciseUC)

	var index submissionout.DayIndex
	_, statErr := os.Stat(cfg.IndexPath())
	freshIndex := errors.Is(statErr, fs.ErrNotExist)
	if dayIndex, err := submissionoutadapter.NewSQLiteDayIndex(cfg.IndexPath()); err != nil {
		logger.Warn("day index unavailable; stats read the files directly", "path", cfg.IndexPath(), "error", err)
	} else {
		index = dayIndex
		app.closers = append(app.closers, dayIndex)
	}
	submissionSvc := submissionservice.NewSubmissionService(clk, ids,
		submissionoutadapter.NewYAMLSubmissionStore(cfg.SubmissionsDir(), codec),
		index,
		logger.Named("submission"),
	)
	if index != nil && freshIndex {
		if days, err := submissionSvc.Reindex(ctx); err != nil {
			logger.Warn("initial reindex failed", "error", err)
		} else if days > 0 {
			logger.Info("day index built from existing records", "days", days)
		}
	}
	submissionUC := submissionusecase.NewInteractor(submissionSvc)

	reviewUC := reviewusecase.NewInteractor(reviewservice.NewReviewService(clk, ids,
		submissionSvc,
		reviewoutadapter.NewVaultReviewStore(cfg.ReviewsDir(), codec),
		logger.Named("review"),
	))

	app.ExerciseCLI = exerciseinadapter.NewCLIHandler(exerciseUC)
	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	app.ScheduleCLI = scheduleinadapter.NewCLIHandler(scheduleUC)
	app.SubmissionCLI = submissioninadapter.NewCLIHandler(submissionUC)
	app.ReviewCLI = reviewinadapter.NewCLIHandler(reviewUC)
	return app, nil
}

func newCodec(cfg config.Config) (crypt.Codec, error) {
	if !cfg.Encryption.Enabled {
		return crypt.Plain{}, nil
	}
	passphrase, err := cfg.Passphrase()
	if err != nil {
		return nil, err
	}
	return crypt.NewPassphrase(passphrase)
}

// Close releases the day index and the log file, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ScheduleCLI, app.SubmissionCLI, app.Config.Schedule.WeekdaysPerWeek)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
