package domain_test

import (
	"errors"
	"testing"

	"enough/internal/modules/review/domain"
	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

func TestNoSubmissionsErrorMatchesSentinel(t *testing.T) {
	t.Parallel()
	var err error = &domain.NoSubmissionsError{Exercise: "daily", WeekStart: calendar.New(2024, 1, 1)}
	if !errors.Is(err, apperrors.ErrNoSubmissions) {
		t.Fatalf("typed error must match the sentinel")
	}
	var typed *domain.NoSubmissionsError
	if !errors.As(err, &typed) || typed.Exercise != "daily" {
		t.Fatalf("typed error must be recoverable with errors.As")
	}
}

func TestExtractThemesSkipsStopwordsAndShortWords(t *testing.T) {
	t.Parallel()
	reviews := []domain.PromptReview{{
		Stem: "s",
		Responses: []domain.Response{
			{Completions: []string{"the breathing and the pause", "go slow with the breathing"}},
			{Completions: []string{"Breathing, then a pause"}},
		},
	}}
	themes := domain.ExtractThemes(reviews, 0)
	if len(themes) < 2 {
		t.Fatalf("expected at least two themes, got %+v", themes)
	}
	if themes[0].Word != "breathing" || themes[0].Count != 3 {
		t.Fatalf("expected breathing x3 first, got %+v", themes[0])
	}
	if themes[1].Word != "pause" || themes[1].Count != 2 {
		t.Fatalf("expected pause x2 second, got %+v", themes[1])
	}
	for _, th := range themes {
		if th.Word == "the" || th.Word == "and" || th.Word == "go" {
			t.Fatalf("stopword or short word leaked into themes: %+v", themes)
		}
	}
	if limited := domain.ExtractThemes(reviews, 1); len(limited) != 1 {
		t.Fatalf("limit must cap the result, got %d", len(limited))
	}
}
