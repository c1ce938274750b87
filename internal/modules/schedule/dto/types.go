package dto

import (
	exercisedto "enough/internal/modules/exercise/dto"
	"enough/internal/platform/calendar"
)

type PositionOutput struct {
	Date       calendar.Date
	Week       int
	Day        int
	Mode       string
	Elapsed    int
	Clamped    bool
	CatchUp    bool
	WeekStart  calendar.Date
	TotalWeeks int
}

// TodayOutput pairs a position with what to practise there. Stem is set on
// practice days and Reflection on reflection days.
type TodayOutput struct {
	Position   PositionOutput
	Exercise   string
	Theme      string
	Stem       *exercisedto.StemOutput
	Reflection *exercisedto.PromptOutput
}
