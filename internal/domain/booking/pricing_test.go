package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crowncut-ph/crowncut-api/internal/models"
)

func TestPricing_DefaultsWhenNoServices(t *testing.T) {
	serviceID, price, minutes := Pricing(nil)

	assert.Equal(t, uint(DefaultServiceID), serviceID)
	assert.Equal(t, float64(DefaultPricePHP), price)
	assert.Equal(t, DefaultDurationMinutes, minutes)
}

func TestPricing_SumsSelectedServices(t *testing.T) {
	services := []models.Service{
		{ID: 2, PricePHP: 150, DurationMinutes: 30},
		{ID: 4, PricePHP: 300, DurationMinutes: 45},
	}

	serviceID, price, minutes := Pricing(services)

	assert.Equal(t, uint(2), serviceID)
	assert.Equal(t, 450.0, price)
	assert.Equal(t, 75, minutes)
}

func TestPricing_ZeroPricedServiceFallsBack(t *testing.T) {
	services := []models.Service{{ID: 7, PricePHP: 0, DurationMinutes: 0}}

	serviceID, price, minutes := Pricing(services)

	assert.Equal(t, uint(7), serviceID)
	assert.Equal(t, float64(DefaultPricePHP), price)
	assert.Equal(t, DefaultDurationMinutes, minutes)
}
