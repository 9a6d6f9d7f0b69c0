package dto

import "time"

// BookingListDTO is a booking row joined with its barber and service
// names, as returned by the "my bookings" and dashboard listings.
type BookingListDTO struct {
	ID                  uint       `json:"id"`
	BookingType         string     `json:"booking_type"`
	QueueNumber         int        `json:"queue_number"`
	AppointmentDatetime *time.Time `json:"appointment_datetime"`
	Status              string     `json:"status"`
	TotalPrice          float64    `json:"total_price"`
	PaymentMethod       string     `json:"payment_method"`
	CreatedAt           time.Time  `json:"created_at"`
	CompletedAt         *time.Time `json:"completed_at"`

	BarberName   string `json:"barber_name"`
	ServiceName  string `json:"service_name"`
	CustomerName string `json:"customer_name,omitempty"`
}

// QueueEntryDTO is one position in a barber's live walk-in queue.
type QueueEntryDTO struct {
	BookingID    uint      `json:"booking_id"`
	QueueNumber  int       `json:"queue_number"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// BarberWithQueueDTO augments a barber with its live active-booking
// count.
type BarberWithQueueDTO struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	PhotoURL        string    `json:"photo_url"`
	YearsExperience int       `json:"years_experience"`
	Status          string    `json:"status"`
	QueueCount      int       `json:"queue_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
