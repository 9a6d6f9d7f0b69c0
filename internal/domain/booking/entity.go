package booking

import "github.com/crowncut-ph/crowncut-api/internal/models"

// WalkInTicket is what a customer gets back when joining the queue.
type WalkInTicket struct {
	Booking     *models.Booking `json:"booking"`
	QueueNumber int             `json:"queueNumber"`
	PeopleAhead int             `json:"peopleAhead"`
}
