package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enough/internal/bootstrap"
	submissiondto "enough/internal/modules/submission/dto"
	"enough/internal/platform/clock"
	apperrors "enough/internal/platform/errors"
	"enough/internal/ui/theme"
)

func newHistoryCmd(g *globals) *cobra.Command {
	var exercise, from, to string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show written completions for a date range (default: the last 7 days)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := parseDateFlag("from", from)
			if err != nil {
				return err
			}
			end, err := parseDateFlag("to", to)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			name, err := exerciseOrProgram(cmd, app, exercise)
			if err != nil {
				return err
			}
			if end.IsZero() {
				end = clock.Today(g.now())
			}
			if start.IsZero() {
				start = end.AddDays(-6)
			}
			records, err := app.SubmissionCLI.History(cmd.Context(), submissiondto.HistoryInput{Exercise: name, Start: start, End: end})
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printf(cmd, "nothing written for %s between %s and %s\n", name, start, end)
				return nil
			}
			for _, r := range records {
				header := r.Date.String()
				if r.Week > 0 {
					header += fmt.Sprintf("  week %d day %d", r.Week, r.Day)
				}
				printf(cmd, "%s\n", theme.Title.Render(header))
				for _, e := range r.Entries {
					printf(cmd, "  %s\n", theme.Hot.Render(e.Stem))
					for _, c := range e.Completions {
						printf(cmd, "    - %s\n", c)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&exercise, "exercise", "", "exercise (default: the program)")
	cmd.Flags().StringVar(&from, "from", "", "first date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date (YYYY-MM-DD, default today)")
	return cmd
}

func newStatsCmd(g *globals) *cobra.Command {
	var exercise string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice totals and streaks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			name, err := exerciseOrProgram(cmd, app, exercise)
			if err != nil {
				return err
			}
			stats, err := app.SubmissionCLI.Stats(cmd.Context(), name)
			if err != nil {
				return err
			}
			last := "never"
			if !stats.LastPractice.IsZero() {
				last = stats.LastPractice.String()
			}
			printf(cmd, "%s\n", theme.Title.Render(stats.Exercise))
			printf(cmd, "days practised   %d\n", stats.TotalDays)
			printf(cmd, "completions      %d\n", stats.TotalCompletions)
			printf(cmd, "minutes writing  %d\n", stats.TotalMinutes)
			printf(cmd, "current streak   %d\n", stats.CurrentStreak)
			printf(cmd, "longest streak   %d\n", stats.LongestStreak)
			printf(cmd, "last practice    %s\n", last)
			return nil
		},
	}
	cmd.Flags().StringVar(&exercise, "exercise", "", "exercise (default: the program)")
	return cmd
}

func newReindexCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the day index from the submission files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.SubmissionCLI.Reindex(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd, "reindex completed: %d days\n", out.Days)
			return nil
		},
	}
}

func newExercisesCmd(g *globals) *cobra.Command {
	exercises := &cobra.Command{Use: "exercises", Short: "Inspect the program and check-ins"}

	exercises.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List program weeks, check-ins and exercises with records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return listExercises(cmd, app)
		},
	})

	exercises.AddCommand(&cobra.Command{
		Use:   "validate [program.yaml]",
		Short: "Validate a program file (default: the configured program)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			path := app.Config.ProgramFile
			if len(args) == 1 {
				path = args[0]
			}
			out, err := app.ExerciseCLI.Validate(cmd.Context(), path)
			if err != nil {
				return err
			}
			if len(out.Problems) == 0 {
				printf(cmd, "%s %s is valid\n", theme.Good.Render("✓"), out.Origin)
				return nil
			}
			for _, problem := range out.Problems {
				printf(cmd, "%s %s\n", theme.Error.Render("✗"), problem)
			}
			return fmt.Errorf("%w: %s has %d problems", apperrors.ErrConfiguration, out.Origin, len(out.Problems))
		},
	})
	return exercises
}

func listExercises(cmd *cobra.Command, app *bootstrap.App) error {
	program, err := app.ExerciseCLI.Program(cmd.Context())
	if err != nil {
		return err
	}
	printf(cmd, "%s  %s\n", theme.Title.Render(program.Title), theme.Muted.Render("("+program.Exercise+", "+program.Origin+")"))
	for _, w := range program.Weeks {
		printf(cmd, "  week %d  %s  %d stems\n", w.Number, w.Theme, len(w.Stems))
	}
	if len(program.Custom) > 0 {
		printf(cmd, "%s\n", theme.Title.Render("Check-ins"))
		for _, c := range program.Custom {
			printf(cmd, "  %-10s %s  %s\n", c.Name, c.Title, theme.Muted.Render(c.Time))
		}
	}
	stored, err := app.SubmissionCLI.ListExercises(cmd.Context())
	if err != nil {
		return err
	}
	if len(stored) > 0 {
		printf(cmd, "%s\n", theme.Title.Render("With records"))
		for _, name := range stored {
			printf(cmd, "  %s\n", name)
		}
	}
	return nil
}

func newTUICmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the read-only dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}
