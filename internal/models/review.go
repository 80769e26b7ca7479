package models

import "time"

// Review is created at most once per completed booking, by the requester.
// The unique index on BookingID is the hard backstop for that rule.
type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookingID   uint      `gorm:"uniqueIndex;not null" json:"booking_id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	CompanionID uint      `gorm:"not null;index:idx_reviews_companion_created" json:"companion_id"`
	Rating      int       `gorm:"not null" json:"rating"` // 1..5
	Comment     string    `gorm:"size:500" json:"comment,omitempty"`
	Tags        string    `gorm:"type:text" json:"tags,omitempty"` // JSON array, e.g. ["punctual","friendly"]
	CreatedAt   time.Time `gorm:"index:idx_reviews_companion_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
