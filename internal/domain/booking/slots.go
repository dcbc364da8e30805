package booking

// Slot generation policy. The windows are a fixed business rule, not
// configuration: long services get four enumerated full-day starts, everything
// else is stepped through a morning and an evening window.
const (
	fullDayThresholdMin = 6 * 60
	midDayThresholdMin  = 4 * 60
)

var fullDayStarts = []int{8 * 60, 9 * 60, 10 * 60, 11 * 60}

type window struct {
	open  int
	close int
}

var (
	midWindows = []window{
		{open: 8 * 60, close: 13 * 60},  // 08:00-13:00
		{open: 16 * 60, close: 21 * 60}, // 16:00-21:00
	}
	shortWindows = []window{
		{open: 8 * 60, close: 12 * 60},  // 08:00-12:00
		{open: 17 * 60, close: 21 * 60}, // 17:00-21:00
	}
)

// GenerateSlots returns every slot the business is willing to sell for a
// service of the given duration, in morning-then-evening order with ascending
// start times. The result is independent of existing bookings and fully
// deterministic.
func GenerateSlots(durationMin int) []TimeSlot {
	if durationMin <= 0 || durationMin%30 != 0 {
		return nil
	}

	if durationMin >= fullDayThresholdMin {
		slots := make([]TimeSlot, 0, len(fullDayStarts))
		for _, start := range fullDayStarts {
			slots = append(slots, TimeSlot{startMin: start, endMin: start + durationMin})
		}
		return slots
	}

	windows := shortWindows
	if durationMin > midDayThresholdMin {
		windows = midWindows
	}

	var slots []TimeSlot
	for _, w := range windows {
		for start := w.open; start+durationMin <= w.close; start += durationMin {
			slots = append(slots, TimeSlot{startMin: start, endMin: start + durationMin})
		}
	}
	return slots
}
