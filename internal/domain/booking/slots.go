package booking

import "time"

// Appointments are booked into fixed half-hour slots between 09:00 and
// 17:00, with 17:00 itself being the last bookable slot.
const (
	SlotOpenHour   = 9
	SlotCloseHour  = 17
	SlotInterval   = 30 * time.Minute
	SlotTimeLayout = "2006-01-02T15:04:05"
	SlotDateLayout = "2006-01-02"
)

// DaySlots enumerates every slot of a calendar date, in order.
func DaySlots(date time.Time) []time.Time {
	first := time.Date(date.Year(), date.Month(), date.Day(), SlotOpenHour, 0, 0, 0, date.Location())
	last := time.Date(date.Year(), date.Month(), date.Day(), SlotCloseHour, 0, 0, 0, date.Location())

	var slots []time.Time
	for cur := first; !cur.After(last); cur = cur.Add(SlotInterval) {
		slots = append(slots, cur)
	}
	return slots
}

// AvailableSlots returns the formatted slots of a date not held by any
// active booking. Slot matching is by exact datetime; duration-aware
// overlap is out of scope.
func AvailableSlots(date time.Time, taken []time.Time) []string {
	// Key by instant, not by time.Time: rows read back from the
	// database carry whatever Location the driver attached, and map
	// equality on time.Time compares the Location pointer too.
	occupied := make(map[int64]struct{}, len(taken))
	for _, t := range taken {
		occupied[t.Truncate(time.Minute).Unix()] = struct{}{}
	}

	out := make([]string, 0, 17)
	for _, slot := range DaySlots(date) {
		if _, ok := occupied[slot.Unix()]; ok {
			continue
		}
		out = append(out, slot.Format(SlotTimeLayout))
	}
	return out
}
