package booking

import (
	"github.com/google/uuid"
)

// Interval is the footprint of an existing booking on a date, reduced to what
// conflict detection needs.
type Interval struct {
	BookingID uuid.UUID
	Slot      TimeSlot
}

// FindConflict tests a candidate slot against the active intervals of a date
// and returns the first conflicting one. The exclude id skips a booking's own
// prior interval when re-checking during an update; pass uuid.Nil otherwise.
func FindConflict(active []Interval, candidate TimeSlot, exclude uuid.UUID) (Interval, bool) {
	for _, iv := range active {
		if exclude != uuid.Nil && iv.BookingID == exclude {
			continue
		}
		if candidate.Overlaps(iv.Slot) {
			return iv, true
		}
	}
	return Interval{}, false
}

// FilterAvailable drops the candidates that overlap any active interval,
// preserving candidate order.
func FilterAvailable(candidates []TimeSlot, active []Interval) []TimeSlot {
	available := make([]TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		if _, conflict := FindConflict(active, slot, uuid.Nil); !conflict {
			available = append(available, slot)
		}
	}
	return available
}

// StockExceeded is the fixed-inventory variant of the availability rule: a
// request is rejected once the running total of active units plus the
// requested units would pass the ceiling.
func StockExceeded(activeUnits, requestedUnits, ceiling int) bool {
	return activeUnits+requestedUnits > ceiling
}
