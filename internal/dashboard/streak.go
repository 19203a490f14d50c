package dashboard

import (
	"fmt"
	"sort"
	"time"
)

// CalculateStreak counts consecutive calendar days (in loc) with at least one
// record, anchored at the most recent day and stopping at the first gap.
// Records without an event time are ignored.
func CalculateStreak(records []Progress, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	days := map[time.Time]struct{}{}
	for _, p := range records {
		if p.HasAt {
			days[civilDay(p.At, loc)] = struct{}{}
		}
	}
	if len(days) == 0 {
		return 0
	}
	ordered := make([]time.Time, 0, len(days))
	for d := range days {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].After(ordered[j]) })

	streak := 1
	anchor := ordered[0]
	for _, d := range ordered[1:] {
		if anchor.AddDate(0, 0, -1).Equal(d) {
			streak++
			anchor = d
			continue
		}
		break
	}
	return streak
}

// civilDay maps an instant to its calendar date in loc, expressed as UTC
// midnight so day arithmetic is free of DST shifts.
func civilDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfDay is local midnight of the day containing now.
func StartOfDay(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func FormatStreak(days int) string {
	if days < 0 {
		days = 0
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
