package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/orsinium-labs/stopwords"
)

const (
	minThemeRunes = 3
	DefaultThemes = 10
)

var english = stopwords.MustGet("en")

// ExtractThemes returns the most frequent meaningful words across the
// week's completions, most frequent first and alphabetical on ties.
func ExtractThemes(reviews []PromptReview, limit int) []Theme {
	counts := map[string]int{}
	for _, pr := range reviews {
		for _, resp := range pr.Responses {
			for _, completion := range resp.Completions {
				for _, word := range tokenize(completion) {
					counts[word]++
				}
			}
		}
	}

	themes := make([]Theme, 0, len(counts))
	for word, n := range counts {
		themes = append(themes, Theme{Word: word, Count: n})
	}
	sort.Slice(themes, func(i, j int) bool {
		if themes[i].Count != themes[j].Count {
			return themes[i].Count > themes[j].Count
		}
		return themes[i].Word < themes[j].Word
	})
	if limit > 0 && len(themes) > limit {
		themes = themes[:limit]
	}
	return themes
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if utf8.RuneCountInString(f) < minThemeRunes || english.Contains(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}
