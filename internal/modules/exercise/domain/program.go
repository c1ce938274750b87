package domain

import (
	"fmt"
	"strings"

	apperrors "enough/internal/platform/errors"
	"enough/internal/platform/slug"
)

// CustomPrefix namespaces check-in exercises so they never collide with the
// program's own submission directory.
const CustomPrefix = "custom_"

type Prompt struct {
	ID              string   `yaml:"id"`
	Text            string   `yaml:"text"`
	Tags            []string `yaml:"tags,omitempty"`
	AnswersRequired int      `yaml:"answers_required,omitempty"`
}

type Week struct {
	Number int      `yaml:"number"`
	Theme  string   `yaml:"theme"`
	Stems  []Prompt `yaml:"stems"`
}

type CustomExercise struct {
	Name  string   `yaml:"name"`
	Title string   `yaml:"title"`
	Time  string   `yaml:"time,omitempty"`
	Stems []Prompt `yaml:"stems"`
}

type Program struct {
	Name              string           `yaml:"name"`
	Title             string           `yaml:"title"`
	MinCompletions    int              `yaml:"min_completions,omitempty"`
	MaxCompletions    int              `yaml:"max_completions,omitempty"`
	WeekendReflection Prompt           `yaml:"weekend_reflection"`
	Weeks             []Week           `yaml:"weeks"`
	Custom            []CustomExercise `yaml:"custom,omitempty"`
}

func (p Program) ExerciseName() string {
	return slug.Sanitize(p.Name)
}

func (p Program) TotalWeeks() int {
	return len(p.Weeks)
}

func (p Program) Week(number int) (Week, error) {
	for _, w := range p.Weeks {
		if w.Number == number {
			return w, nil
		}
	}
	return Week{}, fmt.Errorf("%w: week %d", apperrors.ErrNotFound, number)
}

func (p Program) PromptsFor(week int) ([]Prompt, error) {
	w, err := p.Week(week)
	if err != nil {
		return nil, err
	}
	return append([]Prompt(nil), w.Stems...), nil
}

// StemForDay picks the stem practised on a 1-based practice day, cycling
// when the week has fewer stems than practice days.
func (p Program) StemForDay(week, day int) (Prompt, int, error) {
	stems, err := p.PromptsFor(week)
	if err != nil {
		return Prompt{}, 0, err
	}
	if day < 1 {
		return Prompt{}, 0, fmt.Errorf("%w: day %d", apperrors.ErrInvalidInput, day)
	}
	idx := (day - 1) % len(stems)
	return stems[idx], idx, nil
}

// CustomExercise looks a check-in up by name, with or without the custom_ prefix.
func (p Program) CustomExercise(name string) (CustomExercise, error) {
	key := strings.TrimPrefix(slug.Sanitize(name), CustomPrefix)
	for _, c := range p.Custom {
		if slug.Sanitize(c.Name) == key {
			return c, nil
		}
	}
	return CustomExercise{}, fmt.Errorf("%w: custom exercise %q", apperrors.ErrNotFound, name)
}

func (c CustomExercise) ExerciseName() string {
	return CustomPrefix + slug.Sanitize(c.Name)
}

// Validate reports every problem found rather than stopping at the first.
func (p Program) Validate() []string {
	var problems []string
	if slug.Sanitize(p.Name) == "" {
		problems = append(problems, "program name is required")
	}
	if len(p.Weeks) == 0 {
		problems = append(problems, "program must define at least one week")
	}
	if strings.TrimSpace(p.WeekendReflection.Text) == "" {
		problems = append(problems, "weekend_reflection.text is required")
	}
	if p.MinCompletions < 0 || p.MaxCompletions < 0 {
		problems = append(problems, "completion bounds must not be negative")
	}
	if p.MinCompletions > 0 && p.MaxCompletions > 0 && p.MinCompletions > p.MaxCompletions {
		problems = append(problems, fmt.Sprintf("min_completions %d exceeds max_completions %d", p.MinCompletions, p.MaxCompletions))
	}

	seen := map[string]string{}
	checkPrompt := func(where string, prompt Prompt) {
		if strings.TrimSpace(prompt.Text) == "" {
			problems = append(problems, where+": text is required")
		}
		if prompt.ID == "" {
			problems = append(problems, where+": id is required")
		} else if prev, dup := seen[prompt.ID]; dup {
			problems = append(problems, fmt.Sprintf("%s: id %q already used by %s", where, prompt.ID, prev))
		} else {
			seen[prompt.ID] = where
		}
		if prompt.AnswersRequired < 0 {
			problems = append(problems, where+": answers_required must be >= 1 when set")
		}
	}

	for i, w := range p.Weeks {
		if w.Number != i+1 {
			problems = append(problems, fmt.Sprintf("week at position %d is numbered %d, expected %d", i+1, w.Number, i+1))
		}
		if len(w.Stems) == 0 {
			problems = append(problems, fmt.Sprintf("week %d has no stems", w.Number))
		}
		for j, s := range w.Stems {
			checkPrompt(fmt.Sprintf("week %d stem %d", w.Number, j+1), s)
		}
	}

	names := map[string]bool{}
	for i, c := range p.Custom {
		key := slug.Sanitize(c.Name)
		switch {
		case key == "":
			problems = append(problems, fmt.Sprintf("custom exercise %d: name is required", i+1))
		case names[key]:
			problems = append(problems, fmt.Sprintf("custom exercise %q is defined twice", c.Name))
		}
		names[key] = true
		if len(c.Stems) == 0 {
			problems = append(problems, fmt.Sprintf("custom exercise %q has no stems", c.Name))
		}
		for j, s := range c.Stems {
			checkPrompt(fmt.Sprintf("custom %s stem %d", key, j+1), s)
		}
	}
	return problems
}
