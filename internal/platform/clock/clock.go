package clock

import (
	"time"

	"enough/internal/platform/calendar"
)

// Clock abstracts time to keep services deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall time; journal days follow the user's calendar.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func Today(c Clock) calendar.Date {
	return calendar.FromTime(c.Now())
}
