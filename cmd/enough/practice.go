package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"enough/internal/bootstrap"
	exercisedto "enough/internal/modules/exercise/dto"
	progressdto "enough/internal/modules/progress/dto"
	scheduledto "enough/internal/modules/schedule/dto"
	submissiondto "enough/internal/modules/submission/dto"
	"enough/internal/platform/clock"
	apperrors "enough/internal/platform/errors"
	"enough/internal/ui/prompt"
	"enough/internal/ui/theme"
)

func newSetupCmd(g *globals) *cobra.Command {
	var (
		week  int
		date  string
		reset bool
	)
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Start the program fresh, resume at a week, or start on a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("week") && date != "" {
				return fmt.Errorf("%w: --week and --date are exclusive", apperrors.ErrInvalidInput)
			}
			start, err := parseDateFlag("date", date)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			input := progressdto.SetupInput{Mode: progressdto.SetupFresh, Reset: reset}
			switch {
			case !start.IsZero():
				input.Mode, input.Date = progressdto.SetupDate, start
			case cmd.Flags().Changed("week"):
				input.Mode, input.Week = progressdto.SetupResume, week
			default:
				status, err := app.ProgressCLI.Status(cmd.Context())
				if err != nil && !reset {
					return err
				}
				if err == nil && !status.SetupRequired && !reset {
					return apperrors.ErrAlreadyConfigured
				}
				if input, err = askSetup(cmd, app, input); err != nil {
					return err
				}
			}

			out, err := app.ProgressCLI.Setup(cmd.Context(), input)
			if err != nil {
				return err
			}
			if out.Notice != "" {
				printf(cmd, "%s\n", theme.Muted.Render(out.Notice))
			}
			printf(cmd, "program anchored on %s (week %d, policy %s)\n", out.Progress.StartDate, out.Progress.CurrentWeek, out.Progress.Policy)
			return nil
		},
	}
	cmd.Flags().IntVar(&week, "week", 0, "resume at this program week")
	cmd.Flags().StringVar(&date, "date", "", "start on this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&reset, "reset", false, "replace an existing start date")
	return cmd
}

// askSetup is the first-run question: start fresh or resume at a week.
func askSetup(cmd *cobra.Command, app *bootstrap.App, input progressdto.SetupInput) (progressdto.SetupInput, error) {
	program, err := app.ExerciseCLI.Program(cmd.Context())
	if err != nil {
		return input, err
	}
	p := newPrompter(cmd)
	defer p.Close()
	printf(cmd, "%s\n", theme.Title.Render(program.Title))
	for {
		answer, err := p.Line(cmd.Context(), fmt.Sprintf("start fresh (enter) or resume at week 1-%d: ", program.TotalWeeks))
		if err != nil {
			return input, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return input, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= program.TotalWeeks {
			input.Mode, input.Week = progressdto.SetupResume, n
			return input, nil
		}
		printf(cmd, "%s\n", theme.Error.Render("enter a week number or press enter"))
	}
}

func newTodayCmd(g *globals) *cobra.Command {
	var show, all bool
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Write today's sentence completions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			today, err := app.ScheduleCLI.Today(cmd.Context())
			if err != nil {
				return err
			}
			printPosition(cmd, today)
			if all {
				return printWeekStems(cmd, app, today.Position.Week)
			}
			if show {
				return nil
			}

			switch {
			case today.Stem != nil:
				return practise(cmd, app, g.now(), today)
			case today.Reflection != nil:
				return weeklyReview(cmd, app, newPrompter(cmd), g.now(), today.Exercise, today.Position.WeekStart)
			}
			printf(cmd, "Try `enough checkin <name>` for the morning and evening check-ins.\n")
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "show today's stem without writing")
	cmd.Flags().BoolVar(&all, "all", false, "list every stem of the current week")
	return cmd
}

func printPosition(cmd *cobra.Command, today scheduledto.TodayOutput) {
	pos := today.Position
	switch pos.Mode {
	case "program_complete":
		printf(cmd, "%s\n", theme.Good.Render(fmt.Sprintf("Program complete: all %d weeks done.", pos.TotalWeeks)))
		return
	case "weekend_reflection":
		printf(cmd, "%s  week %d of %d, weekend reflection\n", pos.Date, pos.Week, pos.TotalWeeks)
	default:
		printf(cmd, "%s  week %d of %d, day %d\n", pos.Date, pos.Week, pos.TotalWeeks, pos.Day)
	}
	if pos.Clamped {
		printf(cmd, "%s\n", theme.Muted.Render("the start date is in the future; showing the first day"))
	}
	if pos.CatchUp {
		printf(cmd, "%s\n", theme.Muted.Render("catch-up: this week's practice days are not finished"))
	}
	if today.Theme != "" {
		printf(cmd, "%s\n", theme.Muted.Render("theme: "+today.Theme))
	}
	switch {
	case today.Stem != nil:
		printf(cmd, "%s\n", theme.Hot.Render(today.Stem.Prompt.Text))
	case today.Reflection != nil:
		printf(cmd, "%s\n", theme.Hot.Render(today.Reflection.Text))
	}
}

func printWeekStems(cmd *cobra.Command, app *bootstrap.App, week int) error {
	prompts, err := app.ExerciseCLI.PromptsFor(cmd.Context(), week)
	if err != nil {
		return err
	}
	for i, p := range prompts {
		printf(cmd, "%d. %s\n", i+1, p.Text)
	}
	return nil
}

// practise collects completions for today's stem and records the day.
func practise(cmd *cobra.Command, app *bootstrap.App, clk clock.Clock, today scheduledto.TodayOutput) error {
	ctx := cmd.Context()
	status, err := app.ProgressCLI.Status(ctx)
	if err != nil {
		return err
	}
	if today.Position.Clamped || today.Position.Date.Before(status.StartDate) {
		printf(cmd, "%s\n", theme.Muted.Render(fmt.Sprintf("program starts on %s; nothing to write yet", status.StartDate)))
		return nil
	}
	if status.LastCompleted.Equal(today.Position.Date) {
		printf(cmd, "%s\n", theme.Muted.Render("already written today; new completions are added"))
	}

	stem := today.Stem.Prompt
	started := clk.Now()
	p := newPrompter(cmd)
	defer p.Close()
	completions, err := p.Completions(ctx, stem.Text, stem.MinCompletions, stem.MaxCompletions)
	if err != nil {
		return err
	}
	out, err := app.SubmissionCLI.Append(ctx, submissiondto.AppendInput{
		Exercise:    today.Exercise,
		Date:        today.Position.Date,
		Week:        today.Position.Week,
		Day:         today.Position.Day,
		Stem:        stem.Text,
		Completions: completions,
		StartedAt:   started,
		EndedAt:     clk.Now(),
	})
	if err != nil {
		return err
	}
	if _, err := app.ProgressCLI.RecordCompletion(ctx, today.Position.Date); err != nil {
		return err
	}
	printf(cmd, "%s %d completions saved to %s\n", theme.Good.Render("✓"), len(completions), out.Path)
	return nil
}

func newStatusCmd(g *globals) *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show program progress, or the position on another date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			date, err := parseDateFlag("on", on)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if !date.IsZero() {
				preview, err := app.ScheduleCLI.Preview(cmd.Context(), date)
				if err != nil {
					return err
				}
				printPosition(cmd, preview)
				return nil
			}

			status, err := app.ProgressCLI.Status(cmd.Context())
			if err != nil {
				return err
			}
			if status.SetupRequired {
				return apperrors.ErrSetupRequired
			}
			today, err := app.ScheduleCLI.Today(cmd.Context())
			if err != nil {
				return err
			}
			printPosition(cmd, today)
			printf(cmd, "started %s, policy %s\n", status.StartDate, status.Policy)
			last := "never"
			if !status.LastCompleted.IsZero() {
				last = status.LastCompleted.String()
			}
			printf(cmd, "last written %s, this week %s\n", last,
				theme.Meter(status.CompletedThisWeek, app.Config.Schedule.WeekdaysPerWeek))
			return nil
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "resolve the position for this date (YYYY-MM-DD) without saving")
	return cmd
}

func newCheckinCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <name>",
		Short: "Run a custom check-in such as morning or evening",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			custom, err := app.ExerciseCLI.Custom(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return checkin(cmd, app, g.now(), custom)
		},
	}
}

// checkin saves each stem as soon as it is answered, so an interruption
// only loses the stem in progress.
func checkin(cmd *cobra.Command, app *bootstrap.App, clk clock.Clock, custom exercisedto.CustomOutput) error {
	ctx := cmd.Context()
	printf(cmd, "%s\n", theme.Title.Render(custom.Title))
	date := clock.Today(clk)
	p := newPrompter(cmd)
	defer p.Close()
	for _, stem := range custom.Stems {
		started := clk.Now()
		completions, err := p.Completions(ctx, stem.Text, stem.MinCompletions, stem.MaxCompletions)
		if err != nil {
			return err
		}
		out, err := app.SubmissionCLI.Append(ctx, submissiondto.AppendInput{
			Exercise:    custom.Exercise,
			Date:        date,
			Stem:        stem.Text,
			Completions: completions,
			StartedAt:   started,
			EndedAt:     clk.Now(),
		})
		if err != nil {
			return err
		}
		printf(cmd, "%s saved to %s\n", theme.Good.Render("✓"), out.Path)
	}
	return nil
}

// freeWrite is the weekend fallback when a week has nothing to review.
func freeWrite(cmd *cobra.Command, app *bootstrap.App, p *prompt.Prompter, clk clock.Clock, week int) error {
	ctx := cmd.Context()
	reflection, err := app.ExerciseCLI.WeekendReflection(ctx)
	if err != nil {
		return err
	}
	started := clk.Now()
	completions, err := p.Completions(ctx, reflection.Text, reflection.MinCompletions, reflection.MaxCompletions)
	if err != nil {
		return err
	}
	out, err := app.SubmissionCLI.Append(ctx, submissiondto.AppendInput{
		Exercise:    reflectionExercise,
		Date:        clock.Today(clk),
		Week:        week,
		Stem:        reflection.Text,
		Completions: completions,
		StartedAt:   started,
		EndedAt:     clk.Now(),
	})
	if err != nil {
		return err
	}
	printf(cmd, "%s saved to %s\n", theme.Good.Render("✓"), out.Path)
	return nil
}

const reflectionExercise = "weekend_reflection"
