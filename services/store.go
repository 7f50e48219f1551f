package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/dailycheckin/calendar"
	"github.com/cppla/dailycheckin/models"
)

// LedgerStore persists each user's set of check-in dates.
type LedgerStore interface {
	// Find returns the user's dates and whether a ledger exists.
	Find(ctx context.Context, userID string) (calendar.DateSet, bool, error)
	// Add records date for the user, creating the ledger if needed. Adding an existing date is a no-op.
	Add(ctx context.Context, userID, date string) error
}

// GormStore keeps one check_ins row per user and date.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store backed by db.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Find(ctx context.Context, userID string) (calendar.DateSet, bool, error) {
	var dates []string
	if err := s.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Where("user_id = ?", userID).
		Pluck("date", &dates).Error; err != nil {
		return nil, false, fmt.Errorf("find check-ins for %q: %w", userID, err)
	}
	return calendar.NewDateSet(dates...), len(dates) > 0, nil
}

func (s *GormStore) Add(ctx context.Context, userID, date string) error {
	// Atomic insert-if-absent so concurrent check-ins for the same day converge to one row
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&models.CheckIn{UserID: userID, Date: date}).Error
	if err != nil {
		return fmt.Errorf("add check-in %s for %q: %w", date, userID, err)
	}
	return nil
}
