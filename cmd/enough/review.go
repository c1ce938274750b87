package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"enough/internal/bootstrap"
	reviewdto "enough/internal/modules/review/dto"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
	apperrors "enough/internal/platform/errors"
	"enough/internal/ui/prompt"
	"enough/internal/ui/theme"
)

func newReviewCmd(g *globals) *cobra.Command {
	review := &cobra.Command{Use: "review", Short: "Weekly reviews"}

	var exercise, week string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Review a week's completions and write reflections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd, g)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			name, start, err := reviewTarget(cmd, app, g.now(), exercise, week)
			if err != nil {
				return err
			}
			return weeklyReview(cmd, app, newPrompter(cmd), g.now(), name, start)
		},
	}
	runCmd.Flags().StringVar(&exercise, "exercise", "", "exercise to review (default: the program)")
	runCmd.Flags().StringVar(&week, "week", "", "any date in the week to review (default: this week)")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show a stored review (default: the latest)",
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
			var out reviewdto.ReviewOutput
			if week == "" {
				out, err = app.ReviewCLI.Latest(cmd.Context(), name)
			} else {
				var start calendar.Date
				if start, err = parseDateFlag("week", week); err != nil {
					return err
				}
				out, err = app.ReviewCLI.Get(cmd.Context(), name, start)
			}
			if errors.Is(err, apperrors.ErrNotFound) {
				printf(cmd, "no review found for %s\n", name)
				return nil
			}
			if err != nil {
				return err
			}
			printReview(cmd, out)
			return nil
		},
	}
	showCmd.Flags().StringVar(&exercise, "exercise", "", "exercise (default: the program)")
	showCmd.Flags().StringVar(&week, "week", "", "any date in the reviewed week")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored reviews",
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
			reviews, err := app.ReviewCLI.List(cmd.Context(), name)
			if err != nil {
				return err
			}
			if len(reviews) == 0 {
				printf(cmd, "no reviews\n")
				return nil
			}
			for _, r := range reviews {
				printf(cmd, "%s..%s  %d stems  %d insights  %d actions\n", r.WeekStart, r.WeekEnd, len(r.PromptReviews), len(r.Insights), len(r.Actions))
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&exercise, "exercise", "", "exercise (default: the program)")

	review.AddCommand(runCmd, showCmd, listCmd)
	return review
}

func exerciseOrProgram(cmd *cobra.Command, app *bootstrap.App, exercise string) (string, error) {
	if exercise != "" {
		return exercise, nil
	}
	program, err := app.ExerciseCLI.Program(cmd.Context())
	if err != nil {
		return "", err
	}
	return program.Exercise, nil
}

func reviewTarget(cmd *cobra.Command, app *bootstrap.App, clk clock.Clock, exercise, week string) (string, calendar.Date, error) {
	name, err := exerciseOrProgram(cmd, app, exercise)
	if err != nil {
		return "", calendar.Date{}, err
	}
	start, err := parseDateFlag("week", week)
	if err != nil {
		return "", calendar.Date{}, err
	}
	if start.IsZero() {
		start = clock.Today(clk)
	}
	return name, start.Monday(), nil
}

// weeklyReview runs the review for one week. A week without submissions
// offers a free-write on the weekend reflection stem instead.
func weeklyReview(cmd *cobra.Command, app *bootstrap.App, p *prompt.Prompter, clk clock.Clock, exercise string, weekStart calendar.Date) error {
	ctx := cmd.Context()
	out, err := app.ReviewCLI.RunWeekly(ctx, exercise, weekStart, p)
	if errors.Is(err, apperrors.ErrNoSubmissions) {
		printf(cmd, "%s\n", theme.Muted.Render("nothing was written in the week of "+weekStart.String()))
		ok, cerr := p.Confirm(ctx, "free-write on the weekend reflection instead?")
		if cerr != nil || !ok {
			return cerr
		}
		week := 0
		if today, terr := app.ScheduleCLI.Preview(ctx, clock.Today(clk)); terr == nil {
			week = today.Position.Week
		}
		return freeWrite(cmd, app, p, clk, week)
	}
	if err != nil {
		return err
	}
	printf(cmd, "%s review saved to %s\n", theme.Good.Render("✓"), out.Path)
	if len(out.Themes) > 0 {
		words := make([]string, 0, len(out.Themes))
		for _, th := range out.Themes {
			words = append(words, th.Word)
		}
		printf(cmd, "%s\n", theme.Muted.Render("themes: "+strings.Join(words, ", ")))
	}
	return nil
}

func printReview(cmd *cobra.Command, out reviewdto.ReviewOutput) {
	printf(cmd, "%s\n", theme.Title.Render("Week of "+out.WeekStart.String()+" ("+out.Exercise+")"))
	for _, pr := range out.PromptReviews {
		printf(cmd, "\n%s\n", theme.Hot.Render(pr.Stem))
		for _, r := range pr.Responses {
			for _, c := range r.Completions {
				printf(cmd, "  %s  %s\n", theme.Muted.Render(r.Date.String()), c)
			}
		}
		if pr.Reflection != "" {
			printf(cmd, "  > %s\n", pr.Reflection)
		}
	}
	printList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		printf(cmd, "\n%s\n", theme.Title.Render(title))
		for _, item := range items {
			printf(cmd, "- %s\n", item)
		}
	}
	printList("Insights", out.Insights)
	printList("Actions", out.Actions)
}
