package models

import "time"

// CheckIn stores one day a user checked in. The (user_id, date) pair is unique, which keeps
// repeated check-ins on the same day idempotent.
type CheckIn struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:128;not null;index:idx_checkin_user_date,unique" json:"user_id"`
	Date      string    `gorm:"type:char(10);not null;index:idx_checkin_user_date,unique" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the table name across drivers.
func (CheckIn) TableName() string {
	return "check_ins"
}
