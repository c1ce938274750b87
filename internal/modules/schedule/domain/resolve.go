package domain

import (
	"fmt"

	progressdomain "enough/internal/modules/progress/domain"
	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

type Mode string

const (
	ModeWeekdayPractice   Mode = "weekday_practice"
	ModeWeekendReflection Mode = "weekend_reflection"
	ModeProgramComplete   Mode = "program_complete"
)

type Trigger string

const (
	// TriggerWeekend makes every weekend day a reflection day.
	TriggerWeekend Trigger = "weekend"
	// TriggerCompletedWeekdays reflects only once the week's practice days
	// are all done; an unfinished weekend becomes a catch-up day.
	TriggerCompletedWeekdays Trigger = "completed_weekdays"
)

type Rules struct {
	Policy            progressdomain.Policy
	Workweek          calendar.Workweek
	WeekdaysPerWeek   int
	ReflectionTrigger Trigger
}

func DefaultRules() Rules {
	return Rules{
		Policy:            progressdomain.PolicyCalendarWeek,
		Workweek:          calendar.DefaultWorkweek(),
		WeekdaysPerWeek:   5,
		ReflectionTrigger: TriggerWeekend,
	}
}

// Position is where the user stands on a given date. Day is zero on
// reflection and completion days.
type Position struct {
	Date    calendar.Date
	Week    int
	Day     int
	Mode    Mode
	Elapsed int
	Clamped bool
	CatchUp bool
}

// WeekStart is the Monday anchoring the review for this position.
func (p Position) WeekStart() calendar.Date {
	return p.Date.Monday()
}

// Resolve maps a progress record and a date to a program position. It is
// pure: no I/O and no clock. A date before the start is evaluated as of the
// start date and reported with Clamped set.
func Resolve(record progressdomain.Record, today calendar.Date, rules Rules, totalWeeks int) (Position, error) {
	if !record.Configured() {
		return Position{}, apperrors.ErrSetupRequired
	}
	if rules.WeekdaysPerWeek < 1 {
		return Position{}, fmt.Errorf("%w: weekdays per week must be positive", apperrors.ErrConfiguration)
	}
	start := record.StartDate
	pos := Position{Date: today}
	if today.Before(start) {
		today = start
		pos.Clamped = true
	}
	pos.Elapsed = today.DaysSince(start)

	policy := record.Policy
	if policy == "" {
		policy = rules.Policy
	}
	weekend := rules.Workweek.IsWeekend(today)

	switch policy {
	case progressdomain.PolicyBusinessDay:
		b := rules.Workweek.PracticeDaysBetween(start, today)
		if weekend {
			pos.Week = max(b-1, 0)/rules.WeekdaysPerWeek + 1
		} else {
			pos.Week = b/rules.WeekdaysPerWeek + 1
			pos.Day = b%rules.WeekdaysPerWeek + 1
		}
	default:
		pos.Week = pos.Elapsed/7 + 1
		if !weekend {
			blockStart := start.AddDays((pos.Week - 1) * 7)
			pos.Day = min(rules.Workweek.PracticeDaysBetween(blockStart, today.AddDays(1)), rules.WeekdaysPerWeek)
			pos.Day = max(pos.Day, 1)
		}
	}

	if pos.Week > totalWeeks {
		pos.Mode = ModeProgramComplete
		pos.Day = 0
		return pos, nil
	}
	if !weekend {
		pos.Mode = ModeWeekdayPractice
		return pos, nil
	}

	if rules.ReflectionTrigger == TriggerCompletedWeekdays {
		done := record.CompletedInWeekOf(today)
		if done < rules.WeekdaysPerWeek {
			pos.Mode = ModeWeekdayPractice
			pos.Day = done + 1
			pos.CatchUp = true
			return pos, nil
		}
	}
	pos.Mode = ModeWeekendReflection
	return pos, nil
}
