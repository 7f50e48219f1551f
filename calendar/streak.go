package calendar

import "time"

// Streaks are the derived streak metrics of a ledger.
type Streaks struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// ComputeStreaks derives both streaks from dates relative to today.
func ComputeStreaks(dates DateSet, today time.Time) Streaks {
	return Streaks{
		CurrentStreak: CurrentStreak(dates, today),
		LongestStreak: LongestStreak(dates),
	}
}

// CurrentStreak counts consecutive checked-in days ending today. Zero if today is missing.
func CurrentStreak(dates DateSet, today time.Time) int {
	n := 0
	for d := dayOf(today); dates.Has(FormatDate(d)); d = d.AddDate(0, 0, -1) {
		n++
	}
	return n
}

// LongestStreak is the longest run of calendar-consecutive dates. Unparsable entries are skipped.
func LongestStreak(dates DateSet) int {
	var (
		longest, run int
		prev         time.Time
	)
	for _, s := range dates.Sorted() {
		d, err := ParseDate(s)
		if err != nil {
			continue
		}
		if run > 0 && d.Equal(prev.AddDate(0, 0, 1)) {
			run++
		} else {
			run = 1
		}
		prev = d
		if run > longest {
			longest = run
		}
	}
	return longest
}
