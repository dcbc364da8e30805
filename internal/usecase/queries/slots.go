package queries

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/pkg/errs"
)

// IntervalReader supplies the active slot footprints of a date.
type IntervalReader interface {
	ActiveIntervalsByDate(ctx context.Context, date time.Time) ([]booking.Interval, error)
}

type SlotQueries interface {
	ListAvailable(ctx context.Context, date time.Time, durationMin int) ([]SlotView, error)
}

type slotQueriesImpl struct {
	intervals IntervalReader
}

func NewSlotQueries(intervals IntervalReader) SlotQueries {
	return &slotQueriesImpl{intervals: intervals}
}

// ListAvailable generates the policy slots for the duration and drops the
// ones that collide with active bookings on the date. Output order is the
// generator's order, so repeated calls with an unchanged store are identical.
func (q *slotQueriesImpl) ListAvailable(ctx context.Context, date time.Time, durationMin int) ([]SlotView, error) {
	candidates := booking.GenerateSlots(durationMin)
	if len(candidates) == 0 {
		return []SlotView{}, nil
	}

	active, err := q.intervals.ActiveIntervalsByDate(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	available := booking.FilterAvailable(candidates, active)
	views := make([]SlotView, len(available))
	for i, slot := range available {
		views[i] = SlotView{
			StartTime: slot.Start().String(),
			EndTime:   slot.End().String(),
			Display:   slot.Display(),
		}
	}
	return views, nil
}
