package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestGridStart(t *testing.T) {
	tests := []struct {
		name  string
		today string
		want  string
	}{
		{name: "midweek", today: "2024-01-03", want: "2023-01-01"},
		{name: "saturday", today: "2024-01-06", want: "2023-01-01"},
		{name: "year ago is sunday", today: "2024-01-01", want: "2023-01-01"},
		{name: "leap day rolls into march", today: "2024-02-29", want: "2023-02-26"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GridStart(mustDay(t, tt.today))
			assert.Equal(t, tt.want, FormatDate(got))
			assert.Equal(t, time.Sunday, got.Weekday())
		})
	}
}

func TestBuildGridCompleteness(t *testing.T) {
	tests := []struct {
		name         string
		today        string
		wantDays     int
		wantWeeks    int
		wantLastWeek int
	}{
		{name: "partial last week", today: "2024-01-03", wantDays: 368, wantWeeks: 53, wantLastWeek: 4},
		{name: "full last week", today: "2024-01-06", wantDays: 371, wantWeeks: 53, wantLastWeek: 7},
		{name: "today is sunday", today: "2024-01-07", wantDays: 372, wantWeeks: 54, wantLastWeek: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := mustDay(t, tt.today)
			grid := BuildGrid(nil, today)

			require.Len(t, grid, tt.wantWeeks)
			assert.Len(t, grid[len(grid)-1], tt.wantLastWeek)
			for i, w := range grid[:len(grid)-1] {
				assert.Len(t, w, DaysPerWeek, "week %d", i)
			}

			days := grid.Days()
			assert.Len(t, days, tt.wantDays)
			assert.Equal(t, FormatDate(GridStart(today)), days[0].Date)
			assert.Equal(t, tt.today, days[len(days)-1].Date)

			for i := 1; i < len(days); i++ {
				prev := mustDay(t, days[i-1].Date)
				assert.Equal(t, FormatDate(prev.AddDate(0, 0, 1)), days[i].Date)
			}
			for _, w := range grid {
				assert.Equal(t, time.Sunday, mustDay(t, w[0].Date).Weekday())
			}
		})
	}
}

func TestBuildGridFlags(t *testing.T) {
	dates := NewDateSet("2024-01-01", "2024-01-03", "2019-05-05", "not-a-date")
	grid := BuildGrid(dates, mustDay(t, "2024-01-03"))

	for _, c := range grid.Days() {
		assert.Equal(t, dates.Has(c.Date), c.CheckedIn, c.Date)
	}
	assert.Equal(t, 2, grid.CheckedInCount())
}

func TestBuildGridEmpty(t *testing.T) {
	grid := BuildGrid(NewDateSet(), mustDay(t, "2024-06-15"))

	assert.NotEmpty(t, grid)
	assert.Zero(t, grid.CheckedInCount())
}

func TestBuildGridUsesLocalCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 2024-01-02 20:00 UTC is already 2024-01-03 in UTC+9.
	today := time.Date(2024, 1, 2, 20, 0, 0, 0, time.UTC).In(loc)

	days := BuildGrid(nil, today).Days()
	assert.Equal(t, "2024-01-03", days[len(days)-1].Date)
}

func TestBuildGridAcrossDSTChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	today := time.Date(2024, 3, 20, 23, 30, 0, 0, loc)

	days := BuildGrid(nil, today).Days()
	seen := map[string]bool{}
	for _, c := range days {
		assert.False(t, seen[c.Date], "duplicate %s", c.Date)
		seen[c.Date] = true
	}
	assert.True(t, seen["2024-03-10"])
	assert.True(t, seen["2023-11-05"])
}
