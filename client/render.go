package client

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/cppla/dailycheckin/calendar"
)

var dayLabels = [calendar.DaysPerWeek]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

const (
	ansiChecked   = "\x1b[32m"
	ansiUnchecked = "\x1b[90m"
	ansiError     = "\x1b[31m"
	ansiReset     = "\x1b[0m"
)

// RenderOptions controls heatmap output.
type RenderOptions struct {
	Color bool
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ButtonLabel is the label of the check-in action for the snapshot's state.
func ButtonLabel(s Snapshot) string {
	switch {
	case s.HasCheckedInToday:
		return "Already Checked In Today"
	case s.Loading:
		return "Checking in..."
	default:
		return "Check In"
	}
}

// Render writes the tracker view: title, error, streaks, action label and the heatmap with one
// column per week and one row per weekday.
func Render(w io.Writer, s Snapshot, opts RenderOptions) error {
	var b strings.Builder

	b.WriteString("Check-In Tracker\n")
	if s.Error != "" {
		b.WriteString(paint(opts, ansiError, s.Error))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Current streak: %s  Longest streak: %s\n",
		days(s.Streaks.CurrentStreak), days(s.Streaks.LongestStreak))
	fmt.Fprintf(&b, "[%s]\n\n", ButtonLabel(s))

	for row := 0; row < calendar.DaysPerWeek; row++ {
		label := ""
		if row%2 == 1 {
			label = dayLabels[row]
		}
		fmt.Fprintf(&b, "%-4s", label)
		for _, week := range s.Grid {
			if row >= len(week) {
				b.WriteString("  ")
				continue
			}
			b.WriteString(cell(opts, week[row]))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func cell(opts RenderOptions, c calendar.Cell) string {
	if !opts.Color {
		if c.CheckedIn {
			return "■"
		}
		return "·"
	}
	if c.CheckedIn {
		return paint(opts, ansiChecked, "■")
	}
	return paint(opts, ansiUnchecked, "■")
}

func paint(opts RenderOptions, code, s string) string {
	if !opts.Color {
		return s
	}
	return code + s + ansiReset
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
