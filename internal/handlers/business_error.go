package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/crowncut-ph/crowncut-api/internal/httperr"
)

var businessMessages = map[string]string{
	"barber_not_found":  "Barber not found.",
	"booking_not_found": "Booking not found.",
	"barber_off_duty":   "Barber is off duty.",
	"slot_taken":        "This time slot is already booked. Please select another time.",
	"invalid_datetime":  "Invalid datetime.",
	"invalid_state":     "Booking is not in a state that allows this.",
	"not_owner":         "Not your booking.",
}

// writeBusiness maps a usecase error to the HTTP envelope; anything
// that is not a business error becomes a generic 500.
func writeBusiness(c *gin.Context, err error, fallbackCode string) {
	code := httperr.BusinessCode(err)

	msg, known := businessMessages[code]
	if !known {
		msg = "Something went wrong."
	}

	switch code {
	case "barber_not_found", "booking_not_found":
		httperr.NotFound(c, code, msg)
	case "not_owner":
		httperr.Forbidden(c, code, msg)
	case "":
		httperr.Internal(c, fallbackCode, "Something went wrong.")
	default:
		httperr.BadRequest(c, code, msg)
	}
}
