package domain

import (
	"fmt"
	"time"

	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

const SchemaVersion = 1

type Response struct {
	Date        calendar.Date
	Completions []string
}

type PromptReview struct {
	Stem       string `validate:"required"`
	Responses  []Response
	Reflection string
}

type Theme struct {
	Word  string
	Count int
}

// Record is the single review of one exercise for the week starting on
// WeekStart (always a Monday).
type Record struct {
	SchemaVersion int           `validate:"gte=1"`
	ID            string        `validate:"required,uuid"`
	Exercise      string        `validate:"required"`
	WeekStart     calendar.Date `validate:"required"`
	CreatedAt     time.Time
	PromptReviews []PromptReview `validate:"min=1,dive"`
	Insights      []string
	Actions       []string
	Themes        []Theme
}

func (r Record) WeekEnd() calendar.Date {
	return r.WeekStart.AddDays(6)
}

// NoSubmissionsError reports a week with nothing to review. It matches
// apperrors.ErrNoSubmissions under errors.Is.
type NoSubmissionsError struct {
	Exercise  string
	WeekStart calendar.Date
}

func (e *NoSubmissionsError) Error() string {
	return fmt.Sprintf("no submissions for %s in the week of %s", e.Exercise, e.WeekStart)
}

func (e *NoSubmissionsError) Is(target error) bool {
	return target == apperrors.ErrNoSubmissions
}
