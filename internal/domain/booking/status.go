package booking

import "github.com/crowncut-ph/crowncut-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusWaiting   Status = "waiting"
	StatusServing   Status = "serving"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

type Type string

const (
	TypeWalkIn      Type = "walk_in"
	TypeAppointment Type = "appointment"
)

// ActiveStatuses are the states that occupy a queue position or a slot.
func ActiveStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusWaiting),
		string(StatusServing),
	}
}

func IsActive(current Status) bool {
	switch current {
	case StatusPending, StatusWaiting, StatusServing:
		return true
	}
	return false
}

// ===============================
// Barber Status
// ===============================

const (
	BarberAvailable = "available"
	BarberBusy      = "busy"
	BarberOnBreak   = "on_break"
	BarberOffDuty   = "off_duty"
)

func ValidBarberStatus(s string) bool {
	switch s {
	case BarberAvailable, BarberBusy, BarberOnBreak, BarberOffDuty:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

func CanComplete(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if !IsActive(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanEdit restricts user edits to bookings not yet being served.
func CanEdit(current Status) error {
	if current != StatusPending && current != StatusWaiting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus: walk-ins enter the queue immediately, appointments
// wait for their slot.
func InitialStatus(t Type) Status {
	if t == TypeWalkIn {
		return StatusWaiting
	}
	return StatusPending
}
