package dashboard

import (
	"testing"
	"time"
)

func progressOnDays(today time.Time, offsets ...int) []Progress {
	out := make([]Progress, 0, len(offsets))
	for _, off := range offsets {
		out = append(out, Progress{At: today.AddDate(0, 0, off), HasAt: true})
	}
	return out
}

func TestCalculateStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		recs []Progress
		want int
	}{
		{"empty", nil, 0},
		{"run before gap", progressOnDays(today, 0, -1, -2, -4), 3},
		{"no consecutive days", progressOnDays(today, 0, -2), 1},
		{"duplicates on one day", progressOnDays(today, 0, 0, 0), 1},
		{"anchored at most recent day", progressOnDays(today, -5, -6, -9), 2},
		{"unordered input", progressOnDays(today, -2, 0, -1), 3},
		{"untimed ignored", append(progressOnDays(today, 0), Progress{}), 1},
	}
	for _, tc := range cases {
		if got := CalculateStreak(tc.recs, time.UTC); got != tc.want {
			t.Fatalf("%s: want=%d got=%d", tc.name, tc.want, got)
		}
	}
}

func TestCalculateStreakUsesLocationCalendarDays(t *testing.T) {
	tz := time.FixedZone("UTC-5", -5*3600)
	// Both instants fall on March 9 in UTC-5.
	recs := []Progress{
		{At: time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC), HasAt: true},
		{At: time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC), HasAt: true},
	}
	if got := CalculateStreak(recs, time.UTC); got != 2 {
		t.Fatalf("UTC: want=2 got=%d", got)
	}
	if got := CalculateStreak(recs, tz); got != 1 {
		t.Fatalf("UTC-5: want=1 got=%d", got)
	}
}

func TestFormatStreak(t *testing.T) {
	for n, want := range map[int]string{0: "0 days", 1: "1 day", 2: "2 days", -3: "0 days"} {
		if got := FormatStreak(n); got != want {
			t.Fatalf("FormatStreak(%d): want=%q got=%q", n, want, got)
		}
	}
}
