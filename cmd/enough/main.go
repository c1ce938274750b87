package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"enough/internal/bootstrap"
	"enough/internal/platform/calendar"
	"enough/internal/platform/clock"
	"enough/internal/platform/config"
	apperrors "enough/internal/platform/errors"
	"enough/internal/ui/prompt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd(nil).ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "enough: "+describe(err))
		os.Exit(1)
	}
}

// describe turns an error into the one line shown to the user. Details
// stay in the log.
func describe(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrSetupRequired):
		return "no progress yet; run `enough setup` first"
	case errors.Is(err, apperrors.ErrAlreadyConfigured):
		return "already set up; use `enough setup --reset` to start over"
	case errors.Is(err, apperrors.ErrInterrupted):
		return "interrupted; the unfinished stem was not saved"
	case errors.Is(err, apperrors.ErrCorruptRecord):
		return err.Error() + " (fix or remove the file, or run `enough setup --reset`)"
	case errors.Is(err, apperrors.ErrDecrypt):
		return err.Error() + " (check encryption settings and passphrase)"
	}
	return err.Error()
}

type globals struct {
	profile string
	debug   bool
	clock   clock.Clock
}

func newRootCmd(clk clock.Clock) *cobra.Command {
	g := &globals{clock: clk}

	root := &cobra.Command{
		Use:           "enough",
		Short:         "Sentence-completion journaling in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.profile, "profile", "", "profile directory (default $ENOUGH_HOME or ~/.config/enough)")
	root.PersistentFlags().BoolVar(&g.debug, "debug", false, "log debug output to stderr")

	root.AddCommand(newSetupCmd(g))
	root.AddCommand(newTodayCmd(g))
	root.AddCommand(newStatusCmd(g))
	root.AddCommand(newCheckinCmd(g))
	root.AddCommand(newReviewCmd(g))
	root.AddCommand(newHistoryCmd(g))
	root.AddCommand(newStatsCmd(g))
	root.AddCommand(newReindexCmd(g))
	root.AddCommand(newExercisesCmd(g))
	root.AddCommand(newTUICmd(g))
	return root
}

func loadApp(cmd *cobra.Command, g *globals) (*bootstrap.App, error) {
	dir, err := config.ResolveProfileDir(g.profile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cmd.Context(), cfg, bootstrap.Options{
		Debug:  g.debug,
		Stderr: cmd.ErrOrStderr(),
		Clock:  g.clock,
	})
}

func (g *globals) now() clock.Clock {
	if g.clock == nil {
		return clock.SystemClock{}
	}
	return g.clock
}

func newPrompter(cmd *cobra.Command) *prompt.Prompter {
	return prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
}

func parseDateFlag(name, value string) (calendar.Date, error) {
	if value == "" {
		return calendar.Date{}, nil
	}
	d, err := calendar.Parse(value)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: --%s: %v", apperrors.ErrInvalidInput, name, err)
	}
	return d, nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
