package domain

import (
	"strings"
	"time"

	"enough/internal/platform/calendar"
)

const SchemaVersion = 1

// Session is the time spent writing a day's record. Repeated sittings on the
// same day are folded into one session.
type Session struct {
	ID              string `validate:"omitempty,uuid"`
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int `validate:"gte=0"`
}

func (s Session) IsZero() bool {
	return s.StartedAt.IsZero() && s.EndedAt.IsZero() && s.DurationSeconds == 0
}

type Entry struct {
	Stem        string   `validate:"required"`
	Completions []string `validate:"min=1,dive,required"`
}

// Record holds one exercise's completions for one calendar day. Submissions
// keeps stems in the order they were first written.
type Record struct {
	SchemaVersion int           `validate:"gte=1"`
	Exercise      string        `validate:"required"`
	Date          calendar.Date `validate:"required"`
	Week          int           `validate:"gte=0"`
	Day           int           `validate:"gte=0,lte=7"`
	Session       Session
	Submissions   []Entry `validate:"dive"`
}

func NewRecord(exercise string, date calendar.Date) Record {
	return Record{SchemaVersion: SchemaVersion, Exercise: exercise, Date: date}
}

// CleanCompletions drops blank answers and trims surrounding whitespace.
func CleanCompletions(completions []string) []string {
	out := make([]string, 0, len(completions))
	for _, c := range completions {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Append extends the stem's completion list, keeping earlier answers.
func (r *Record) Append(stem string, completions []string) {
	for i := range r.Submissions {
		if r.Submissions[i].Stem == stem {
			r.Submissions[i].Completions = append(r.Submissions[i].Completions, completions...)
			return
		}
	}
	r.Submissions = append(r.Submissions, Entry{Stem: stem, Completions: append([]string(nil), completions...)})
}

// MergeSession keeps the earliest start and the latest end and sums the
// time spent.
func (r *Record) MergeSession(s Session) {
	if s.IsZero() {
		return
	}
	if r.Session.IsZero() {
		r.Session = s
		return
	}
	if !s.StartedAt.IsZero() && (r.Session.StartedAt.IsZero() || s.StartedAt.Before(r.Session.StartedAt)) {
		r.Session.StartedAt = s.StartedAt
	}
	if s.EndedAt.After(r.Session.EndedAt) {
		r.Session.EndedAt = s.EndedAt
	}
	r.Session.DurationSeconds += s.DurationSeconds
	if r.Session.ID == "" {
		r.Session.ID = s.ID
	}
}

func (r Record) Completions(stem string) []string {
	for _, e := range r.Submissions {
		if e.Stem == stem {
			return e.Completions
		}
	}
	return nil
}

func (r Record) CompletionCount() int {
	n := 0
	for _, e := range r.Submissions {
		n += len(e.Completions)
	}
	return n
}

func (r Record) Summary() DaySummary {
	return DaySummary{
		Exercise:        r.Exercise,
		Date:            r.Date,
		Week:            r.Week,
		Day:             r.Day,
		Stems:           len(r.Submissions),
		Completions:     r.CompletionCount(),
		DurationSeconds: r.Session.DurationSeconds,
	}
}

// DaySummary is the text-free projection of a record kept in the index.
type DaySummary struct {
	Exercise        string
	Date            calendar.Date
	Week            int
	Day             int
	Stems           int
	Completions     int
	DurationSeconds int
}
