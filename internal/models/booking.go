package models

import "time"

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusRejected  BookingStatus = "rejected"
)

// Legal transitions of the booking state machine. Completed, cancelled and
// rejected are terminal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from → to is a legal status move.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s.
func IsTerminal(s BookingStatus) bool {
	return len(transitions[s]) == 0
}

type CancelledBy string

const (
	CancelledByUser      CancelledBy = "user"
	CancelledByCompanion CancelledBy = "companion"
	CancelledByAdmin     CancelledBy = "admin"
)

// Booking is a reserved time block between a requester and a companion.
// The pricing snapshot is frozen at creation; later rate changes on the
// companion never touch it. Start/end are zero-padded local "HH:MM" strings,
// so lexicographic order matches chronological order.
type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"not null;index:idx_bookings_user_status" json:"user_id"`
	CompanionID uint          `gorm:"not null;index:idx_bookings_companion_status" json:"companion_id"`
	Activity    string        `gorm:"size:100;not null" json:"activity"`
	Date        time.Time     `gorm:"type:date;not null;index" json:"date"`
	StartTime   string        `gorm:"size:5;not null" json:"start_time"`
	EndTime     string        `gorm:"size:5;not null" json:"end_time"`
	Duration    float64       `gorm:"not null" json:"duration"` // hours, >= 0.5
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index:idx_bookings_user_status,priority:2;index:idx_bookings_companion_status,priority:2" json:"status"`

	// location (optional)
	LocationAddress string   `gorm:"size:255" json:"location_address,omitempty"`
	LocationCity    string   `gorm:"size:100" json:"location_city,omitempty"`
	LocationLat     *float64 `json:"location_lat,omitempty"`
	LocationLng     *float64 `json:"location_lng,omitempty"`

	// pricing snapshot
	PriceRate     float64 `gorm:"not null" json:"price_rate"`
	PriceTotal    float64 `gorm:"not null" json:"price_total"`
	PriceCurrency string  `gorm:"size:3;not null" json:"price_currency"`

	// payment sub-record
	PaymentMethod        PaymentMethod `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	PaymentStatus        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	PaymentTransactionID string        `gorm:"size:128" json:"payment_transaction_id,omitempty"`
	PaidAt               *time.Time    `json:"paid_at,omitempty"`

	// check-in / check-out
	CheckInAt   *time.Time `json:"check_in_at,omitempty"`
	CheckInLat  *float64   `json:"check_in_lat,omitempty"`
	CheckInLng  *float64   `json:"check_in_lng,omitempty"`
	CheckOutAt  *time.Time `json:"check_out_at,omitempty"`
	CheckOutLat *float64   `json:"check_out_lat,omitempty"`
	CheckOutLng *float64   `json:"check_out_lng,omitempty"`

	// cancellation record
	CancelReason string      `gorm:"size:255" json:"cancel_reason,omitempty"`
	CancelledBy  CancelledBy `gorm:"type:varchar(20)" json:"cancelled_by,omitempty"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty"`
	RefundAmount *float64    `json:"refund_amount,omitempty"`

	SpecialRequests string    `gorm:"type:text" json:"special_requests,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Companion *Companion `gorm:"foreignKey:CompanionID" json:"companion,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Overlaps reports whether the window [start, end) collides with this
// booking's window: either endpoint of the new window falls inside the
// existing one, or the new window swallows it whole. Windows wrapping past
// midnight are not supported.
func (b *Booking) Overlaps(start, end string) bool {
	return (b.StartTime <= start && start < b.EndTime) ||
		(b.StartTime <= end && end <= b.EndTime) ||
		(start <= b.StartTime && b.EndTime <= end)
}
