package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name            string `gorm:"size:100;not null" json:"name"`
	PhotoURL        string `gorm:"size:255" json:"photo_url"`
	YearsExperience int    `json:"years_experience"`
	Status          string `gorm:"size:20;default:'available'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
