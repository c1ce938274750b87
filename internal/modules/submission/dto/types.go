package dto

import (
	"time"

	"enough/internal/platform/calendar"
)

type AppendInput struct {
	Exercise    string
	Date        calendar.Date
	Week        int
	Day         int
	Stem        string
	Completions []string
	StartedAt   time.Time
	EndedAt     time.Time
}

type AppendOutput struct {
	Path           string
	StemTotal      int
	DayCompletions int
}

type HistoryInput struct {
	Exercise string
	Start    calendar.Date
	End      calendar.Date
}

type EntryOutput struct {
	Stem        string
	Completions []string
}

type RecordOutput struct {
	Exercise        string
	Date            calendar.Date
	Week            int
	Day             int
	DurationSeconds int
	Entries         []EntryOutput
}

type StatsOutput struct {
	Exercise         string
	TotalDays        int
	TotalCompletions int
	TotalMinutes     int
	CurrentStreak    int
	LongestStreak    int
	LastPractice     calendar.Date
}

type ReindexOutput struct {
	Days int
}
