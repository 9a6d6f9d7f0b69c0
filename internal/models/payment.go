package models

import "time"

// Payment rows are append-only.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint    `gorm:"index" json:"booking_id"`
	AmountPHP float64 `json:"amount_php"`
	Method    string  `gorm:"size:20" json:"method"`
	Status    string  `gorm:"size:20;default:'paid'" json:"status"`

	// Reference returned by the card gateway, empty for cash.
	GatewayRef string `gorm:"size:100" json:"gateway_ref"`

	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}
