package domain_test

import (
	"errors"
	"strings"
	"testing"

	"enough/internal/modules/exercise/domain"
	apperrors "enough/internal/platform/errors"
)

func sampleProgram() domain.Program {
	return domain.Program{
		Name:              "Six Pillars",
		WeekendReflection: domain.Prompt{ID: "weekend", Text: "If any of this is true..."},
		Weeks: []domain.Week{
			{Number: 1, Stems: []domain.Prompt{{ID: "w1a", Text: "A"}, {ID: "w1b", Text: "B"}}},
			{Number: 2, Stems: []domain.Prompt{{ID: "w2a", Text: "C"}}},
		},
		Custom: []domain.CustomExercise{{Name: "Morning", Stems: []domain.Prompt{{ID: "m1", Text: "Today I"}}}},
	}
}

func TestProgramLookups(t *testing.T) {
	t.Parallel()
	p := sampleProgram()
	if p.ExerciseName() != "six_pillars" || p.TotalWeeks() != 2 {
		t.Fatalf("unexpected identity: %q %d", p.ExerciseName(), p.TotalWeeks())
	}
	stem, idx, err := p.StemForDay(1, 3)
	if err != nil {
		t.Fatalf("stem for day: %v", err)
	}
	if stem.ID != "w1a" || idx != 0 {
		t.Fatalf("day 3 of a two-stem week must cycle to the first stem, got %s/%d", stem.ID, idx)
	}
	if _, err := p.PromptsFor(3); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found for week 3, got %v", err)
	}
	custom, err := p.CustomExercise("custom_morning")
	if err != nil {
		t.Fatalf("custom lookup: %v", err)
	}
	if custom.ExerciseName() != "custom_morning" {
		t.Fatalf("unexpected custom name %q", custom.ExerciseName())
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	t.Parallel()
	if problems := sampleProgram().Validate(); len(problems) != 0 {
		t.Fatalf("expected valid program, got %v", problems)
	}

	p := sampleProgram()
	p.Weeks[1].Number = 4
	p.Weeks[1].Stems = append(p.Weeks[1].Stems, domain.Prompt{ID: "w1a", Text: "dup"})
	p.WeekendReflection.Text = ""
	p.MinCompletions, p.MaxCompletions = 8, 6
	problems := p.Validate()
	joined := strings.Join(problems, "\n")
	for _, want := range []string{"numbered 4", "already used", "weekend_reflection", "exceeds"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q among problems:\n%s", want, joined)
		}
	}
}
