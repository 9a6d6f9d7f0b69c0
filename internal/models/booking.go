package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Only the first selected service is persisted; the total still
	// covers every selected service.
	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	BookingType string `gorm:"size:20;not null" json:"booking_type"`
	QueueNumber int    `json:"queue_number"`

	AppointmentDatetime *time.Time `gorm:"index" json:"appointment_datetime"`

	Status        string  `gorm:"size:20;default:'pending'" json:"status"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `gorm:"size:20" json:"payment_method"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
