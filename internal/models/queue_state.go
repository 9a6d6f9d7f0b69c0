package models

import "time"

// QueueState is the per-barber counter row. The row is locked FOR UPDATE
// during allocation, so it doubles as the per-barber mutex; the stored
// value itself is advisory and resynced on every allocation.
type QueueState struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"uniqueIndex;not null" json:"barber_id"`

	CurrentServing  int `gorm:"default:0" json:"current_serving"`
	LastQueueNumber int `gorm:"default:0" json:"last_queue_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
