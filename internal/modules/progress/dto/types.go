package dto

import (
	"time"

	"enough/internal/platform/calendar"
)

type SetupMode string

const (
	SetupFresh  SetupMode = "fresh"
	SetupResume SetupMode = "resume"
	SetupDate   SetupMode = "date"
)

type SetupInput struct {
	Mode  SetupMode
	Week  int
	Date  calendar.Date
	Reset bool
}

type ProgressOutput struct {
	SetupRequired     bool
	CurrentWeek       int
	CurrentDay        int
	StartDate         calendar.Date
	LastCompleted     calendar.Date
	NewUser           bool
	Policy            string
	CompletedDays     []calendar.Date
	CompletedThisWeek int
	LastUpdated       time.Time
}

type SetupOutput struct {
	Progress ProgressOutput
	Notice   string
}
