package calendar

import "time"

// DaysPerWeek is the height of a heatmap column.
const DaysPerWeek = 7

// Cell is one day of the heatmap.
type Cell struct {
	Date      string `json:"date"`
	CheckedIn bool   `json:"checkedIn"`
}

// Week is a Sunday-first run of at most seven cells.
type Week []Cell

// Grid is the trailing-year heatmap in calendar order.
type Grid []Week

// GridStart returns the Sunday on or before the same date one year before today.
func GridStart(today time.Time) time.Time {
	start := dayOf(today).AddDate(-1, 0, 0)
	return start.AddDate(0, 0, -int(start.Weekday()))
}

// BuildGrid lays out every day from GridStart(today) through today, flagging the days in dates.
func BuildGrid(dates DateSet, today time.Time) Grid {
	end := dayOf(today)
	start := GridStart(today)

	var (
		grid Grid
		week Week
	)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := FormatDate(d)
		week = append(week, Cell{Date: key, CheckedIn: dates.Has(key)})
		if len(week) == DaysPerWeek {
			grid = append(grid, week)
			week = nil
		}
	}
	if len(week) > 0 {
		grid = append(grid, week)
	}
	return grid
}

// Days flattens the grid back into calendar order.
func (g Grid) Days() []Cell {
	out := make([]Cell, 0, len(g)*DaysPerWeek)
	for _, w := range g {
		out = append(out, w...)
	}
	return out
}

// CheckedInCount counts the flagged cells.
func (g Grid) CheckedInCount() int {
	n := 0
	for _, w := range g {
		for _, c := range w {
			if c.CheckedIn {
				n++
			}
		}
	}
	return n
}
