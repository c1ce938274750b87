package prompt_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"enough/internal/modules/review/dto"
	reviewin "enough/internal/modules/review/port/in"
	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
	"enough/internal/ui/prompt"
)

var _ reviewin.Reflector = (*prompt.Prompter)(nil)

func TestCompletionsRefusesEarlySubmit(t *testing.T) {
	t.Parallel()
	in := strings.NewReader("one\n\nsubmit\ntwo\nsubmit\n")
	out := &bytes.Buffer{}
	p := prompt.New(in, out)

	got, err := p.Completions(context.Background(), "I am becoming aware...", 2, 5)
	if err != nil {
		t.Fatalf("completions: %v", err)
	}
	if strings.Join(got, "|") != "one|two" {
		t.Fatalf("unexpected completions %v", got)
	}
	if !strings.Contains(out.String(), "1 to go") {
		t.Fatalf("early submit must be refused:\n%s", out.String())
	}
}

func TestCompletionsStopsAtMaximum(t *testing.T) {
	t.Parallel()
	p := prompt.New(strings.NewReader("a\nb\nc\nleftover\n"), io.Discard)

	got, err := p.Completions(context.Background(), "stem", 1, 3)
	if err != nil || len(got) != 3 {
		t.Fatalf("expected three completions, got %v %v", got, err)
	}
	next, err := p.Line(context.Background(), "")
	if err != nil || next != "leftover" {
		t.Fatalf("input past the maximum must remain unread, got %q %v", next, err)
	}
}

func TestEndOfInputInterrupts(t *testing.T) {
	t.Parallel()
	p := prompt.New(strings.NewReader("only one"), io.Discard)

	_, err := p.Completions(context.Background(), "stem", 2, 4)
	if !errors.Is(err, apperrors.ErrInterrupted) {
		t.Fatalf("expected interruption, got %v", err)
	}
	if _, err := p.Line(context.Background(), ""); !errors.Is(err, apperrors.ErrInterrupted) {
		t.Fatalf("interruption must be sticky, got %v", err)
	}
}

func TestCancelledContextInterrupts(t *testing.T) {
	t.Parallel()
	r, w := io.Pipe()
	defer w.Close()
	p := prompt.New(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Line(ctx, "> "); !errors.Is(err, apperrors.ErrInterrupted) {
		t.Fatalf("expected interruption, got %v", err)
	}
}

func TestListEndsOnEmptyLine(t *testing.T) {
	t.Parallel()
	p := prompt.New(strings.NewReader(" slow down \nwalk more\n\nignored\n"), io.Discard)

	got, err := p.List(context.Background(), "Actions")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if strings.Join(got, "|") != "slow down|walk more" {
		t.Fatalf("unexpected list %v", got)
	}
}

func TestReflectShowsResponses(t *testing.T) {
	t.Parallel()
	out := &bytes.Buffer{}
	p := prompt.New(strings.NewReader("  I keep noticing the same thing \n"), out)

	got, err := p.Reflect(context.Background(), dto.PromptReviewOutput{
		Stem:      "If I pay more attention...",
		Responses: []dto.ResponseOutput{{Date: calendar.New(2024, 1, 2), Completions: []string{"I rest"}}},
	})
	if err != nil {
		t.Fatalf("reflect: %v", err)
	}
	if got != "I keep noticing the same thing" {
		t.Fatalf("unexpected reflection %q", got)
	}
	if !strings.Contains(out.String(), "2024-01-02") || !strings.Contains(out.String(), "I rest") {
		t.Fatalf("responses not shown:\n%s", out.String())
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()
	p := prompt.New(strings.NewReader("YES\nnope\n"), io.Discard)
	first, _ := p.Confirm(context.Background(), "continue?")
	second, _ := p.Confirm(context.Background(), "continue?")
	if !first || second {
		t.Fatalf("unexpected answers %v %v", first, second)
	}
}
