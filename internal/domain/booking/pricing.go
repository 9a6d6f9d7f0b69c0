package booking

import "github.com/crowncut-ph/crowncut-api/internal/models"

// Walk-ins with no services selected fall back to a basic haircut.
const (
	DefaultServiceID       = 1
	DefaultPricePHP        = 200
	DefaultDurationMinutes = 30
)

// Pricing flattens the selected services into the persisted shape:
// the first service's id, the summed price and the summed duration.
func Pricing(services []models.Service) (serviceID uint, totalPrice float64, totalMinutes int) {
	for _, s := range services {
		totalPrice += s.PricePHP
		totalMinutes += s.DurationMinutes
	}

	if len(services) == 0 {
		return DefaultServiceID, DefaultPricePHP, DefaultDurationMinutes
	}
	if totalPrice == 0 {
		totalPrice = DefaultPricePHP
	}
	if totalMinutes == 0 {
		totalMinutes = DefaultDurationMinutes
	}

	return services[0].ID, totalPrice, totalMinutes
}
