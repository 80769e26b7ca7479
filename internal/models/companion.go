package models

import (
	"encoding/json"
	"time"
)

// RateTable maps an activity label to an hourly override rate.
type RateTable map[string]float64

// Companion is a user's bookable configuration. Rating and booking counters
// are maintained by the review and booking services, not by profile CRUD.
type Companion struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ActivityCategories string    `gorm:"type:text" json:"activity_categories"` // JSON array
	AvailabilityDays   string    `gorm:"type:text" json:"availability_days"`   // JSON array
	AvailabilitySlots  string    `gorm:"type:text" json:"availability_slots"`  // JSON [{start,end}]
	Timezone           string    `gorm:"size:64" json:"timezone"`
	HourlyRate         float64   `gorm:"not null" json:"hourly_rate"`
	ActivityRates      string    `gorm:"type:text" json:"activity_rates"` // JSON RateTable
	Currency           string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	Verified           bool      `gorm:"not null;default:false" json:"verified"`
	VerifiedAt         *time.Time `json:"verified_at,omitempty"`
	RatingAverage      float64   `gorm:"not null;default:0" json:"rating_average"`
	RatingCount        int64     `gorm:"not null;default:0" json:"rating_count"`
	TotalBookings      int64     `gorm:"not null;default:0" json:"total_bookings"`
	CompletedBookings  int64     `gorm:"not null;default:0" json:"completed_bookings"`
	CancelledBookings  int64     `gorm:"not null;default:0" json:"cancelled_bookings"`
	IsAvailable        bool      `gorm:"not null;default:true" json:"is_available"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// RateFor resolves the hourly rate for an activity: per-activity override if
// present, flat hourly rate otherwise.
func (c *Companion) RateFor(activity string) float64 {
	if c.ActivityRates != "" {
		var rates RateTable
		if err := json.Unmarshal([]byte(c.ActivityRates), &rates); err == nil {
			if r, ok := rates[activity]; ok {
				return r
			}
		}
	}
	return c.HourlyRate
}
