package dashboard

import (
	"fmt"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// FormatRelative renders ts relative to now for activity feeds. Unparseable
// input yields "Recently"; anything 30 days or older is shown as a date.
func FormatRelative(ts any, now time.Time) string {
	t, ok := ParseTime(ts, now.Location())
	if !ok {
		return "Recently"
	}
	elapsed := now.Sub(t)
	if elapsed < time.Minute {
		return "Just now"
	}
	if elapsed < time.Hour {
		return plural(int(elapsed/time.Minute), "min")
	}
	if elapsed < day {
		return plural(int(elapsed/time.Hour), "hour")
	}
	days := int(elapsed / day)
	switch {
	case days == 1:
		return "Yesterday"
	case days < 7:
		return plural(days, "day")
	case days < 30:
		return plural(days/7, "week")
	}
	return t.In(now.Location()).Format("Jan 2, 2006")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
