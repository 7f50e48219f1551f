package services

import (
	"context"
	"errors"
	"strings"

	"github.com/cppla/dailycheckin/calendar"
)

// MaxUserIDLength matches the width of check_ins.user_id.
const MaxUserIDLength = 128

// ErrInvalidUserID is returned for empty or oversized user ids.
var ErrInvalidUserID = errors.New("invalid user id")

// LedgerService reads and appends per-user check-in dates.
type LedgerService struct {
	store LedgerStore
	clock calendar.Clock
}

// NewLedgerService creates a service. "Today" is taken from clock.
func NewLedgerService(store LedgerStore, clock calendar.Clock) *LedgerService {
	if clock == nil {
		clock = calendar.SystemClock{}
	}
	return &LedgerService{store: store, clock: clock}
}

// Today is the current date in the service's calendar.
func (s *LedgerService) Today() string {
	return calendar.Today(s.clock)
}

// GetLedger returns the user's dates in ascending order. Unknown users get an empty list.
func (s *LedgerService) GetLedger(ctx context.Context, userID string) ([]string, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	dates, _, err := s.store.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dates.Sorted(), nil
}

// CheckIn adds today to the user's ledger if absent and returns the updated dates.
func (s *LedgerService) CheckIn(ctx context.Context, userID string) ([]string, error) {
	userID, err := normalizeUserID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Add(ctx, userID, s.Today()); err != nil {
		return nil, err
	}
	dates, _, err := s.store.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dates.Sorted(), nil
}

func normalizeUserID(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || len(userID) > MaxUserIDLength {
		return "", ErrInvalidUserID
	}
	return userID, nil
}
