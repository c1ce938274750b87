package domain

import (
	"sort"

	"enough/internal/platform/calendar"
)

type Response struct {
	Date        calendar.Date
	Completions []string
}

type StemGroup struct {
	Stem      string
	Responses []Response
}

// GroupByStem flattens records into per-stem response lists. Records are
// visited in date order (stable for equal dates), so stems appear in order
// of first use and responses are chronological.
func GroupByStem(records []Record) []StemGroup {
	ordered := append([]Record(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	index := map[string]int{}
	groups := []StemGroup{}
	for _, record := range ordered {
		for _, entry := range record.Submissions {
			pos, ok := index[entry.Stem]
			if !ok {
				pos = len(groups)
				index[entry.Stem] = pos
				groups = append(groups, StemGroup{Stem: entry.Stem})
			}
			groups[pos].Responses = append(groups[pos].Responses, Response{
				Date:        record.Date,
				Completions: append([]string(nil), entry.Completions...),
			})
		}
	}
	return groups
}
