package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleCompanion Role = "companion"
	RoleAdmin     Role = "admin"
)

// User carries the in-app wallet inline. Balance mutations must go through
// a FOR UPDATE lock on this row, never a read-modify-write.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role           Role      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	WalletBalance  float64   `gorm:"not null;default:0" json:"wallet_balance"`
	WalletCurrency string    `gorm:"size:3;not null;default:'USD'" json:"wallet_currency"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
