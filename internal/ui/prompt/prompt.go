// Package prompt collects free-text answers from a terminal, one line at a
// time. Every read honours the context so Ctrl-C interrupts a pending line.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"enough/internal/modules/review/dto"
	apperrors "enough/internal/platform/errors"
	"enough/internal/ui/theme"
)

// Sentinel ends a completion list early once the minimum is reached.
const Sentinel = "submit"

type line struct {
	text string
	err  error
}

type Prompter struct {
	in      io.Reader
	out     io.Writer
	lines   chan line
	done    chan struct{}
	stopped chan struct{}
	start   sync.Once
	stop    sync.Once
	err     error
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:      in,
		out:     out,
		lines:   make(chan line),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// pump reads the input on its own goroutine so a blocked read never holds
// up cancellation. It stops after the first read error or once the
// prompter is closed.
func (p *Prompter) pump() {
	defer close(p.stopped)
	r := bufio.NewReader(p.in)
	for {
		text, err := r.ReadString('\n')
		if text != "" && !p.send(line{text: strings.TrimRight(text, "\r\n")}) {
			return
		}
		if err != nil {
			p.send(line{err: err})
			return
		}
	}
}

func (p *Prompter) send(l line) bool {
	select {
	case p.lines <- l:
		return true
	case <-p.done:
		return false
	}
}

// Close releases the reading goroutine. Later reads report ErrInterrupted.
func (p *Prompter) Close() {
	p.stop.Do(func() { close(p.done) })
	if p.err == nil {
		p.err = fmt.Errorf("%w: prompter closed", apperrors.ErrInterrupted)
	}
}

func (p *Prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Line shows label and returns the next input line, untrimmed.
func (p *Prompter) Line(ctx context.Context, label string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.start.Do(func() { go p.pump() })
	if label != "" {
		p.printf("%s", label)
	}
	select {
	case <-ctx.Done():
		p.printf("\n")
		p.err = fmt.Errorf("%w: %v", apperrors.ErrInterrupted, ctx.Err())
		p.stop.Do(func() { close(p.done) })
		return "", p.err
	case l := <-p.lines:
		if l.err != nil {
			if errors.Is(l.err, io.EOF) {
				p.err = fmt.Errorf("%w: end of input", apperrors.ErrInterrupted)
			} else {
				p.err = fmt.Errorf("%w: %v", apperrors.ErrInterrupted, l.err)
			}
			p.printf("\n")
			return "", p.err
		}
		return l.text, nil
	}
}

// Completions collects between minimum and maximum answers to stem. Blank
// lines are ignored and the sentinel is refused until the minimum is met.
func (p *Prompter) Completions(ctx context.Context, stem string, minimum, maximum int) ([]string, error) {
	minimum = max(minimum, 1)
	maximum = max(maximum, minimum)
	p.printf("\n%s\n", theme.Title.Render(stem))
	p.printf("%s\n", theme.Muted.Render(fmt.Sprintf("%d to %d completions; type %q when done", minimum, maximum, Sentinel)))

	out := make([]string, 0, maximum)
	for len(out) < maximum {
		text, err := p.Line(ctx, fmt.Sprintf("%2d. ", len(out)+1))
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		switch {
		case text == "":
			continue
		case strings.EqualFold(text, Sentinel):
			if len(out) >= minimum {
				return out, nil
			}
			p.printf("%s\n", theme.Hot.Render(fmt.Sprintf("at least %d completions, %d to go", minimum, minimum-len(out))))
			continue
		}
		out = append(out, text)
	}
	return out, nil
}

// List collects items until an empty line.
func (p *Prompter) List(ctx context.Context, title string) ([]string, error) {
	p.printf("\n%s\n", theme.Title.Render(title))
	p.printf("%s\n", theme.Muted.Render("one per line; empty line to finish"))
	var out []string
	for {
		text, err := p.Line(ctx, "- ")
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return out, nil
		}
		out = append(out, text)
	}
}

// Confirm asks a yes/no question; anything but y or yes is no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	text, err := p.Line(ctx, question+" [y/N] ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Reflect shows the week's answers to one stem and asks for a single
// reflection line.
func (p *Prompter) Reflect(ctx context.Context, review dto.PromptReviewOutput) (string, error) {
	p.printf("\n%s\n", theme.Title.Render(review.Stem))
	for _, r := range review.Responses {
		p.printf("%s\n", theme.Muted.Render(r.Date.String()))
		for _, c := range r.Completions {
			p.printf("  - %s\n", c)
		}
	}
	text, err := p.Line(ctx, "reflection: ")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (p *Prompter) Insights(ctx context.Context) ([]string, error) {
	return p.List(ctx, "Insights from this week")
}

func (p *Prompter) Actions(ctx context.Context) ([]string, error) {
	return p.List(ctx, "Actions for next week")
}
