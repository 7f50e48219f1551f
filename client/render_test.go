package client

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/dailycheckin/calendar"
)

func TestRenderPlain(t *testing.T) {
	today := trackerToday.Now()
	dates := calendar.NewDateSet("2024-01-02", "2024-01-03")
	s := Snapshot{
		Grid:              calendar.BuildGrid(dates, today),
		Streaks:           calendar.ComputeStreaks(dates, today),
		HasCheckedInToday: true,
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, RenderOptions{}))
	out := buf.String()

	assert.Contains(t, out, "Check-In Tracker")
	assert.Contains(t, out, "Current streak: 2 days  Longest streak: 2 days")
	assert.Contains(t, out, "[Already Checked In Today]")
	assert.NotContains(t, out, "\x1b[")
	assert.Equal(t, 2, strings.Count(out, "■"))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	grid := lines[len(lines)-calendar.DaysPerWeek:]
	assert.True(t, strings.HasPrefix(grid[1], "Mon "))
	assert.True(t, strings.HasPrefix(grid[3], "Wed "))
	assert.True(t, strings.HasPrefix(grid[5], "Fri "))
	assert.True(t, strings.HasPrefix(grid[0], "    "))
}

func TestRenderColorAndError(t *testing.T) {
	s := Snapshot{Grid: calendar.BuildGrid(nil, trackerToday.Now()), Error: MsgLoadFailed}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, s, RenderOptions{Color: true}))
	out := buf.String()

	assert.Contains(t, out, ansiError+MsgLoadFailed+ansiReset)
	assert.Contains(t, out, "Current streak: 0 days")
	assert.Contains(t, out, "[Check In]")
	assert.NotContains(t, out, ansiChecked)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
