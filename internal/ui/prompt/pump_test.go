package prompt

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	apperrors "enough/internal/platform/errors"
)

func waitStopped(t *testing.T, p *Prompter) {
	t.Helper()
	select {
	case <-p.stopped:
	case <-time.After(2 * time.Second):
		t.Fatalf("reader goroutine still running")
	}
}

func TestCancelReleasesReader(t *testing.T) {
	t.Parallel()
	r, w := io.Pipe()
	defer w.Close()
	p := New(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Line(ctx, ""); !errors.Is(err, apperrors.ErrInterrupted) {
		t.Fatalf("expected interruption, got %v", err)
	}
	go func() { _, _ = w.Write([]byte("late answer\n")) }()
	waitStopped(t, p)

	if _, err := p.Line(context.Background(), ""); !errors.Is(err, apperrors.ErrInterrupted) {
		t.Fatalf("a cancelled prompter must stay interrupted, got %v", err)
	}
}

func TestCloseReleasesReader(t *testing.T) {
	t.Parallel()
	r, w := io.Pipe()
	defer w.Close()
	p := New(r, io.Discard)

	go func() { _, _ = w.Write([]byte("first\nsecond\n")) }()
	if got, err := p.Line(context.Background(), ""); err != nil || got != "first" {
		t.Fatalf("unexpected first line %q %v", got, err)
	}
	p.Close()
	waitStopped(t, p)
	if _, err := p.Line(context.Background(), ""); !errors.Is(err, apperrors.ErrInterrupted) {
		t.Fatalf("a closed prompter must report interruption, got %v", err)
	}
}
