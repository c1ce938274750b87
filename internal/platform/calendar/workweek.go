package calendar

import "time"

// Workweek splits the seven weekdays into practice days and weekend days.
type Workweek struct {
	weekend [7]bool
}

func NewWorkweek(weekend ...time.Weekday) Workweek {
	w := Workweek{}
	for _, wd := range weekend {
		w.weekend[wd] = true
	}
	return w
}

// DefaultWorkweek has Saturday and Sunday off.
func DefaultWorkweek() Workweek {
	return NewWorkweek(time.Saturday, time.Sunday)
}

// ParseWorkweek builds a Workweek from weekday names.
func ParseWorkweek(names []string) (Workweek, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		wd, err := ParseWeekday(name)
		if err != nil {
			return Workweek{}, err
		}
		days = append(days, wd)
	}
	return NewWorkweek(days...), nil
}

func (w Workweek) IsWeekend(d Date) bool {
	return w.weekend[d.Weekday()]
}

func (w Workweek) IsPracticeDay(d Date) bool {
	return !w.IsWeekend(d)
}

func (w Workweek) PracticeDaysPerWeek() int {
	n := 0
	for _, off := range w.weekend {
		if !off {
			n++
		}
	}
	return n
}

// NextPracticeDay returns d itself when it is a practice day, otherwise the
// first practice day after it.
func (w Workweek) NextPracticeDay(d Date) Date {
	if w.PracticeDaysPerWeek() == 0 {
		return d
	}
	for w.IsWeekend(d) {
		d = d.AddDays(1)
	}
	return d
}

// PracticeDaysBetween counts practice days in [start, end).
func (w Workweek) PracticeDaysBetween(start, end Date) int {
	span := end.DaysSince(start)
	if span <= 0 {
		return 0
	}
	count := (span / 7) * w.PracticeDaysPerWeek()
	for d := start.AddDays(span - span%7); d.Before(end); d = d.AddDays(1) {
		if w.IsPracticeDay(d) {
			count++
		}
	}
	return count
}
