package models

import "time"

// Service is static reference data seeded at startup.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string  `gorm:"size:100;not null" json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	PricePHP        float64 `json:"price_php"`
	Description     string  `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
