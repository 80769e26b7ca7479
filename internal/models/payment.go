package models

import "time"

type PaymentMethod string

const (
	MethodWallet    PaymentMethod = "wallet"
	MethodCard      PaymentMethod = "card"
	MethodProcessor PaymentMethod = "processor"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type PaymentType string

const (
	PaymentTypeBooking PaymentType = "booking"
	PaymentTypeTopup   PaymentType = "wallet_topup"
)

// Payment is an append-only audit entry. Rows are never updated after
// creation; failed settlements still leave one behind.
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	BookingID     *uint         `gorm:"index" json:"booking_id,omitempty"` // nil for top-ups
	Type          PaymentType   `gorm:"type:varchar(20);not null" json:"type"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Currency      string        `gorm:"size:3;not null" json:"currency"`
	Method        PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Status        PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	TransactionID string        `gorm:"size:128;index" json:"transaction_id"`
	ChargeRef     string        `gorm:"size:128" json:"charge_ref,omitempty"` // processor-issued reference
	Metadata      string        `gorm:"type:text" json:"metadata,omitempty"`  // free-form JSON
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	Booking *Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}
