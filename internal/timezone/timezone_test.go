package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestLocation_NeverNil(t *testing.T) {
	for _, tz := range []string{"", "Not/AZone", DefaultTimezone, "UTC"} {
		assert.NotNil(t, Location(tz), "tz %q", tz)
	}
}

func TestDayBounds(t *testing.T) {
	loc := Location(DefaultTimezone)
	at := time.Date(2025, 6, 2, 15, 42, 7, 0, loc)

	start, end := DayBounds(at)

	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, loc), end)
}
