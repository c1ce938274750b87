package dto

import (
	"time"

	"enough/internal/platform/calendar"
)

type RunInput struct {
	Exercise  string
	WeekStart calendar.Date
}

type ResponseOutput struct {
	Date        calendar.Date
	Completions []string
}

type PromptReviewOutput struct {
	Stem       string
	Responses  []ResponseOutput
	Reflection string
}

type ThemeOutput struct {
	Word  string
	Count int
}

type ReviewOutput struct {
	ID            string
	Exercise      string
	WeekStart     calendar.Date
	WeekEnd       calendar.Date
	CreatedAt     time.Time
	Path          string
	PromptReviews []PromptReviewOutput
	Insights      []string
	Actions       []string
	Themes        []ThemeOutput
}
