package domain

import (
	"fmt"
	"time"

	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

const SchemaVersion = 1

type Policy string

const (
	PolicyCalendarWeek Policy = "calendar_week"
	PolicyBusinessDay  Policy = "business_day"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyCalendarWeek, PolicyBusinessDay:
		return Policy(s), nil
	}
	return "", fmt.Errorf("%w: unknown policy %q", apperrors.ErrInvalidInput, s)
}

// Record is the single per-profile scheduling state. CurrentDay is the
// 1-based practice day within CurrentWeek.
type Record struct {
	SchemaVersion int             `json:"schema_version" validate:"gte=1"`
	CurrentWeek   int             `json:"current_week" validate:"gte=1"`
	CurrentDay    int             `json:"current_day" validate:"gte=1,lte=7"`
	StartDate     calendar.Date   `json:"start_date"`
	LastCompleted calendar.Date   `json:"last_completed"`
	NewUser       bool            `json:"new_user"`
	Policy        Policy          `json:"policy,omitempty" validate:"omitempty,oneof=calendar_week business_day"`
	CompletedDays []calendar.Date `json:"completed_days,omitempty"`
	LastUpdated   time.Time       `json:"last_updated"`
}

func NewRecord() Record {
	return Record{
		SchemaVersion: SchemaVersion,
		CurrentWeek:   1,
		CurrentDay:    1,
		NewUser:       true,
	}
}

func (r Record) Configured() bool {
	return !r.StartDate.IsZero()
}

// Check enforces the cross-field rules tags cannot express.
func (r Record) Check() error {
	if r.Configured() && r.Policy == "" {
		return fmt.Errorf("%w: policy is required once start_date is set", apperrors.ErrInvalidInput)
	}
	if !r.LastCompleted.IsZero() && r.Configured() && r.LastCompleted.Before(r.StartDate) {
		return fmt.Errorf("%w: last_completed %s precedes start_date %s", apperrors.ErrInvalidInput, r.LastCompleted, r.StartDate)
	}
	return nil
}

// CompletedInWeekOf counts completed practice days sharing d's calendar week.
func (r Record) CompletedInWeekOf(d calendar.Date) int {
	monday := d.Monday()
	n := 0
	for _, c := range r.CompletedDays {
		if c.Monday().Equal(monday) {
			n++
		}
	}
	return n
}

// MarkCompleted records a finished practice day and moves the position one
// practice day forward, wrapping into the next week after the last one.
// Completing the same date twice is a no-op.
func (r *Record) MarkCompleted(d calendar.Date, weekdaysPerWeek int) bool {
	monday := d.Monday()
	kept := r.CompletedDays[:0:0]
	for _, c := range r.CompletedDays {
		if c.Equal(d) {
			return false
		}
		if c.Monday().Equal(monday) {
			kept = append(kept, c)
		}
	}
	r.CompletedDays = append(kept, d)
	if r.LastCompleted.IsZero() || d.After(r.LastCompleted) {
		r.LastCompleted = d
	}
	if r.CurrentDay >= weekdaysPerWeek {
		r.CurrentWeek++
		r.CurrentDay = 1
	} else {
		r.CurrentDay++
	}
	return true
}
