package models

import "time"

// Wallet is credited at registration and never debited; payments are
// recorded against bookings, not against the balance.
type Wallet struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID     uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	BalancePHP float64 `gorm:"default:0" json:"balance_php"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
