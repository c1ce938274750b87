package domain_test

import (
	"errors"
	"testing"

	progressdomain "enough/internal/modules/progress/domain"
	"enough/internal/modules/schedule/domain"
	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

func configured(start calendar.Date, policy progressdomain.Policy) progressdomain.Record {
	r := progressdomain.NewRecord()
	r.StartDate = start
	r.Policy = policy
	return r
}

func TestResolveCalendarWeekExample(t *testing.T) {
	t.Parallel()
	record := configured(calendar.New(2024, 1, 1), progressdomain.PolicyCalendarWeek)
	pos, err := domain.Resolve(record, calendar.New(2024, 1, 10), domain.DefaultRules(), 6)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pos.Week != 2 || pos.Day != 3 || pos.Mode != domain.ModeWeekdayPractice || pos.Elapsed != 9 {
		t.Fatalf("expected week 2 day 3 practice after 9 days, got %+v", pos)
	}
}

func TestResolveWeekendAndCompletion(t *testing.T) {
	t.Parallel()
	record := configured(calendar.New(2024, 1, 1), progressdomain.PolicyCalendarWeek)
	rules := domain.DefaultRules()

	pos, _ := domain.Resolve(record, calendar.New(2024, 1, 13), rules, 6)
	if pos.Mode != domain.ModeWeekendReflection || pos.Week != 2 {
		t.Fatalf("Saturday of week 2 must be a reflection day, got %+v", pos)
	}
	if !pos.WeekStart().Equal(calendar.New(2024, 1, 8)) {
		t.Fatalf("reflection must anchor on Monday 2024-01-08, got %s", pos.WeekStart())
	}

	pos, _ = domain.Resolve(record, calendar.New(2024, 2, 12), rules, 6)
	if pos.Mode != domain.ModeProgramComplete || pos.Week != 7 {
		t.Fatalf("week 7 of a six-week program must be complete, got %+v", pos)
	}
}

func TestResolveRequiresSetupAndClampsPastDates(t *testing.T) {
	t.Parallel()
	if _, err := domain.Resolve(progressdomain.NewRecord(), calendar.New(2024, 1, 1), domain.DefaultRules(), 6); !errors.Is(err, apperrors.ErrSetupRequired) {
		t.Fatalf("expected setup required, got %v", err)
	}
	record := configured(calendar.New(2024, 1, 10), progressdomain.PolicyCalendarWeek)
	pos, err := domain.Resolve(record, calendar.New(2024, 1, 2), domain.DefaultRules(), 6)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !pos.Clamped || pos.Week != 1 || pos.Day != 1 || pos.Elapsed != 0 {
		t.Fatalf("date before start must clamp to the start, got %+v", pos)
	}
}

func TestResolveBusinessDayPolicy(t *testing.T) {
	t.Parallel()
	// Wednesday start: the business-day week spans Wed..Tue.
	record := configured(calendar.New(2024, 1, 3), progressdomain.PolicyBusinessDay)
	rules := domain.DefaultRules()

	cases := []struct {
		today calendar.Date
		week  int
		day   int
		mode  domain.Mode
	}{
		{calendar.New(2024, 1, 3), 1, 1, domain.ModeWeekdayPractice},
		{calendar.New(2024, 1, 5), 1, 3, domain.ModeWeekdayPractice},
		{calendar.New(2024, 1, 6), 1, 0, domain.ModeWeekendReflection},
		{calendar.New(2024, 1, 9), 1, 5, domain.ModeWeekdayPractice},
		{calendar.New(2024, 1, 10), 2, 1, domain.ModeWeekdayPractice},
	}
	for _, tc := range cases {
		pos, err := domain.Resolve(record, tc.today, rules, 6)
		if err != nil {
			t.Fatalf("resolve %s: %v", tc.today, err)
		}
		if pos.Week != tc.week || pos.Day != tc.day || pos.Mode != tc.mode {
			t.Fatalf("%s: expected %d/%d %s, got %+v", tc.today, tc.week, tc.day, tc.mode, pos)
		}
	}
}

func TestResolveWeekIsMonotonic(t *testing.T) {
	t.Parallel()
	for _, policy := range []progressdomain.Policy{progressdomain.PolicyCalendarWeek, progressdomain.PolicyBusinessDay} {
		for offset := 0; offset < 7; offset++ {
			start := calendar.New(2024, 1, 1).AddDays(offset)
			record := configured(start, policy)
			prev := 0
			for day := 0; day < 120; day++ {
				pos, err := domain.Resolve(record, start.AddDays(day), domain.DefaultRules(), 52)
				if err != nil {
					t.Fatalf("resolve: %v", err)
				}
				if pos.Week < 1 || pos.Week < prev {
					t.Fatalf("%s from %s: week went from %d to %d on day %d", policy, start, prev, pos.Week, day)
				}
				prev = pos.Week
			}
		}
	}
}

func TestResolveCompletedWeekdaysTrigger(t *testing.T) {
	t.Parallel()
	rules := domain.DefaultRules()
	rules.ReflectionTrigger = domain.TriggerCompletedWeekdays
	record := configured(calendar.New(2024, 1, 1), progressdomain.PolicyCalendarWeek)
	for d := 1; d <= 4; d++ {
		record.MarkCompleted(calendar.New(2024, 1, d), 5)
	}

	saturday := calendar.New(2024, 1, 6)
	pos, _ := domain.Resolve(record, saturday, rules, 6)
	if pos.Mode != domain.ModeWeekdayPractice || !pos.CatchUp || pos.Day != 5 {
		t.Fatalf("four of five days done must give a catch-up day 5, got %+v", pos)
	}

	record.MarkCompleted(calendar.New(2024, 1, 5), 5)
	pos, _ = domain.Resolve(record, saturday, rules, 6)
	if pos.Mode != domain.ModeWeekendReflection {
		t.Fatalf("a completed week must reflect, got %+v", pos)
	}
}
