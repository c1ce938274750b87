package usecase

import (
	"context"
	"errors"
	"strings"

	"enough/internal/modules/exercise/domain"
	"enough/internal/modules/exercise/dto"
	exercisein "enough/internal/modules/exercise/port/in"
	exerciseout "enough/internal/modules/exercise/port/out"
	apperrors "enough/internal/platform/errors"
)

type Interactor struct {
	source   exerciseout.ProgramSource
	open     exerciseout.Opener
	defaults dto.Bounds

	loaded  bool
	program domain.Program
}

// NewInteractor serves prompts from source. defaults are the configured
// completion bounds; a program or prompt may tighten them.
func NewInteractor(source exerciseout.ProgramSource, open exerciseout.Opener, defaults dto.Bounds) exercisein.Usecase {
	return &Interactor{source: source, open: open, defaults: defaults}
}

func (i *Interactor) load(ctx context.Context) (domain.Program, error) {
	if i.loaded {
		return i.program, nil
	}
	program, err := i.source.Load(ctx)
	if err != nil {
		return domain.Program{}, err
	}
	i.program = program
	i.loaded = true
	return program, nil
}

func (i *Interactor) bounds(program domain.Program, prompt domain.Prompt) dto.Bounds {
	b := i.defaults
	if program.MinCompletions > 0 {
		b.Min = program.MinCompletions
	}
	if program.MaxCompletions > 0 {
		b.Max = program.MaxCompletions
	}
	if prompt.AnswersRequired > 0 {
		b.Min = prompt.AnswersRequired
	}
	if b.Max < b.Min {
		b.Max = b.Min
	}
	return b
}

func (i *Interactor) toPrompt(program domain.Program, prompt domain.Prompt) dto.PromptOutput {
	b := i.bounds(program, prompt)
	return dto.PromptOutput{
		ID:             prompt.ID,
		Text:           prompt.Text,
		Tags:           append([]string(nil), prompt.Tags...),
		MinCompletions: b.Min,
		MaxCompletions: b.Max,
	}
}

func (i *Interactor) toPrompts(program domain.Program, prompts []domain.Prompt) []dto.PromptOutput {
	out := make([]dto.PromptOutput, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, i.toPrompt(program, p))
	}
	return out
}

func (i *Interactor) toCustom(program domain.Program, c domain.CustomExercise) dto.CustomOutput {
	return dto.CustomOutput{
		Name:     c.Name,
		Exercise: c.ExerciseName(),
		Title:    c.Title,
		Time:     c.Time,
		Stems:    i.toPrompts(program, c.Stems),
	}
}

func (i *Interactor) Program(ctx context.Context) (dto.ProgramOutput, error) {
	program, err := i.load(ctx)
	if err != nil {
		return dto.ProgramOutput{}, err
	}
	out := dto.ProgramOutput{
		Name:       program.Name,
		Exercise:   program.ExerciseName(),
		Title:      program.Title,
		Origin:     i.source.Origin(),
		TotalWeeks: program.TotalWeeks(),
	}
	for _, w := range program.Weeks {
		out.Weeks = append(out.Weeks, dto.WeekOutput{Number: w.Number, Theme: w.Theme, Stems: i.toPrompts(program, w.Stems)})
	}
	for _, c := range program.Custom {
		out.Custom = append(out.Custom, i.toCustom(program, c))
	}
	return out, nil
}

func (i *Interactor) TotalWeeks(ctx context.Context) (int, error) {
	program, err := i.load(ctx)
	if err != nil {
		return 0, err
	}
	return program.TotalWeeks(), nil
}

func (i *Interactor) ExerciseName(ctx context.Context) (string, error) {
	program, err := i.load(ctx)
	if err != nil {
		return "", err
	}
	return program.ExerciseName(), nil
}

func (i *Interactor) PromptsFor(ctx context.Context, week int) ([]dto.PromptOutput, error) {
	program, err := i.load(ctx)
	if err != nil {
		return nil, err
	}
	prompts, err := program.PromptsFor(week)
	if err != nil {
		return nil, err
	}
	return i.toPrompts(program, prompts), nil
}

func (i *Interactor) StemForDay(ctx context.Context, week, day int) (dto.StemOutput, error) {
	program, err := i.load(ctx)
	if err != nil {
		return dto.StemOutput{}, err
	}
	prompt, idx, err := program.StemForDay(week, day)
	if err != nil {
		return dto.StemOutput{}, err
	}
	w, _ := program.Week(week)
	return dto.StemOutput{
		Exercise:  program.ExerciseName(),
		Week:      week,
		Day:       day,
		StemIndex: idx,
		Theme:     w.Theme,
		Prompt:    i.toPrompt(program, prompt),
	}, nil
}

func (i *Interactor) WeekendReflection(ctx context.Context) (dto.PromptOutput, error) {
	program, err := i.load(ctx)
	if err != nil {
		return dto.PromptOutput{}, err
	}
	return i.toPrompt(program, program.WeekendReflection), nil
}

func (i *Interactor) Custom(ctx context.Context, name string) (dto.CustomOutput, error) {
	program, err := i.load(ctx)
	if err != nil {
		return dto.CustomOutput{}, err
	}
	c, err := program.CustomExercise(name)
	if err != nil {
		return dto.CustomOutput{}, err
	}
	return i.toCustom(program, c), nil
}

func (i *Interactor) ListCustom(ctx context.Context) ([]dto.CustomOutput, error) {
	program, err := i.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomOutput, 0, len(program.Custom))
	for _, c := range program.Custom {
		out = append(out, i.toCustom(program, c))
	}
	return out, nil
}

// Validate checks the program at path, or the configured program when path
// is empty. Problems are returned as data; only I/O failures are errors.
func (i *Interactor) Validate(ctx context.Context, path string) (dto.ValidateOutput, error) {
	source := i.source
	if path != "" && i.open != nil {
		source = i.open(path)
	}
	out := dto.ValidateOutput{Origin: source.Origin()}
	if _, err := source.Load(ctx); err != nil {
		if !errors.Is(err, apperrors.ErrConfiguration) {
			return dto.ValidateOutput{}, err
		}
		msg := strings.TrimPrefix(err.Error(), apperrors.ErrConfiguration.Error()+": ")
		msg = strings.TrimPrefix(msg, out.Origin+": ")
		out.Problems = strings.Split(msg, "; ")
	}
	return out, nil
}
