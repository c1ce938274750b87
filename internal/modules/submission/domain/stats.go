package domain

import (
	"sort"

	"enough/internal/platform/calendar"
)

type Stats struct {
	Exercise         string
	TotalDays        int
	TotalCompletions int
	TotalSeconds     int
	CurrentStreak    int
	LongestStreak    int
	LastPractice     calendar.Date
}

// ComputeStats folds day summaries into totals and streaks. A streak is a run
// of consecutive calendar days with a record; the current streak counts only
// if its last day is today or yesterday.
func ComputeStats(exercise string, days []DaySummary, today calendar.Date) Stats {
	stats := Stats{Exercise: exercise}
	if len(days) == 0 {
		return stats
	}
	sorted := append([]DaySummary(nil), days...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	run := 0
	var prev calendar.Date
	for _, d := range sorted {
		stats.TotalDays++
		stats.TotalCompletions += d.Completions
		stats.TotalSeconds += d.DurationSeconds
		if !prev.IsZero() && d.Date.DaysSince(prev) == 1 {
			run++
		} else {
			run = 1
		}
		stats.LongestStreak = max(stats.LongestStreak, run)
		prev = d.Date
	}
	stats.LastPractice = prev
	if gap := today.DaysSince(prev); gap == 0 || gap == 1 {
		stats.CurrentStreak = run
	}
	return stats
}
