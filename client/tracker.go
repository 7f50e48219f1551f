package client

import (
	"context"
	"errors"
	"sync"

	"github.com/cppla/dailycheckin/calendar"
	"github.com/cppla/dailycheckin/utils"
)

const (
	MsgLoadFailed    = "Failed to load check-in data."
	MsgCheckInFailed = "Check-in failed. Please try again."
)

var (
	// ErrAlreadyCheckedIn is returned when today is already in the ledger.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrBusy is returned while another request is in flight.
	ErrBusy = errors.New("request in flight")
)

// API is the transport the tracker drives.
type API interface {
	GetCheckIns(ctx context.Context, userID string) ([]string, error)
	PostCheckIn(ctx context.Context, userID string) ([]string, error)
}

// Tracker holds one user's check-in view state: the fetched dates, the in-flight flag
// and the last error message.
type Tracker struct {
	api    API
	userID string
	clock  calendar.Clock

	mu      sync.Mutex
	dates   calendar.DateSet
	loading bool
	errMsg  string
}

// NewTracker creates a tracker for userID.
func NewTracker(api API, userID string, clock calendar.Clock) *Tracker {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &Tracker{api: api, userID: userID, clock: clock, dates: calendar.NewDateSet()}
}

// Snapshot is a consistent view of the tracker for rendering.
type Snapshot struct {
	Dates             []string
	Grid              calendar.Grid
	Streaks           calendar.Streaks
	HasCheckedInToday bool
	Loading           bool
	Error             string
}

// CanCheckIn mirrors the check-in button: disabled while loading or once today is recorded.
func (s Snapshot) CanCheckIn() bool {
	return !s.Loading && !s.HasCheckedInToday
}

// Load fetches the user's dates.
func (t *Tracker) Load(ctx context.Context) error {
	if t.userID == "" {
		return nil
	}
	if !t.begin() {
		return ErrBusy
	}
	defer t.end()

	dates, err := t.api.GetCheckIns(ctx, t.userID)
	if err != nil {
		utils.Sugar.Errorw("Error fetching check-in data", "user_id", t.userID, "err", err)
		t.setError(MsgLoadFailed)
		return err
	}
	t.setDates(dates)
	return nil
}

// CheckIn records today, then re-reads the ledger from the server.
func (t *Tracker) CheckIn(ctx context.Context) error {
	if t.userID == "" {
		return nil
	}
	if t.Snapshot().HasCheckedInToday {
		return ErrAlreadyCheckedIn
	}
	if !t.begin() {
		return ErrBusy
	}
	defer t.end()

	if _, err := t.api.PostCheckIn(ctx, t.userID); err != nil {
		utils.Sugar.Errorw("Failed to check in", "user_id", t.userID, "err", err)
		t.setError(MsgCheckInFailed)
		return err
	}
	dates, err := t.api.GetCheckIns(ctx, t.userID)
	if err != nil {
		utils.Sugar.Errorw("Failed to check in", "user_id", t.userID, "err", err)
		t.setError(MsgCheckInFailed)
		return err
	}
	t.setDates(dates)
	return nil
}

// Snapshot derives the grid and streaks from the current dates and today's date.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	dates := t.dates
	s := Snapshot{Dates: dates.Sorted(), Loading: t.loading, Error: t.errMsg}
	t.mu.Unlock()

	now := t.clock.Now()
	s.Grid = calendar.BuildGrid(dates, now)
	s.Streaks = calendar.ComputeStreaks(dates, now)
	s.HasCheckedInToday = dates.Has(calendar.FormatDate(now))
	return s
}

func (t *Tracker) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loading {
		return false
	}
	t.loading = true
	return true
}

func (t *Tracker) end() {
	t.mu.Lock()
	t.loading = false
	t.mu.Unlock()
}

func (t *Tracker) setDates(dates []string) {
	t.mu.Lock()
	t.dates = calendar.NewDateSet(dates...)
	t.mu.Unlock()
}

func (t *Tracker) setError(msg string) {
	t.mu.Lock()
	t.errMsg = msg
	t.mu.Unlock()
}
