package commands

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/catalog"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// AvailabilityChecker answers whether a candidate slot can be taken.
// Interval-exclusive services are checked against overlapping active slots;
// fixed-inventory services against the remaining unit ceiling. exclude skips
// one booking id so reschedules do not collide with themselves.
type AvailabilityChecker interface {
	Check(ctx context.Context, svc *catalog.Service, date time.Time, slot booking.TimeSlot, people int, exclude uuid.UUID) error
}

type availabilityChecker struct {
	repo BookingRepository
}

func NewAvailabilityChecker(repo BookingRepository) AvailabilityChecker {
	return &availabilityChecker{repo: repo}
}

func (c *availabilityChecker) Check(ctx context.Context, svc *catalog.Service, date time.Time, slot booking.TimeSlot, people int, exclude uuid.UUID) error {
	if svc.IsStockConstrained() {
		return c.checkStock(ctx, svc, people, exclude)
	}
	return c.checkInterval(ctx, date, slot, exclude)
}

func (c *availabilityChecker) checkInterval(ctx context.Context, date time.Time, slot booking.TimeSlot, exclude uuid.UUID) error {
	intervals, err := c.repo.ActiveIntervalsByDate(ctx, date)
	if err != nil {
		if infra.IsKind(err, infra.KindDBFailure) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return err
	}
	if hit, ok := booking.FindConflict(intervals, slot, exclude); ok {
		return &SlotConflictError{ConflictingID: hit.BookingID, Slot: hit.Slot.Display()}
	}
	return nil
}

func (c *availabilityChecker) checkStock(ctx context.Context, svc *catalog.Service, people int, exclude uuid.UUID) error {
	units, err := c.repo.ActiveUnitsByService(ctx, svc.ID(), exclude)
	if err != nil {
		if infra.IsKind(err, infra.KindDBFailure) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return err
	}
	if booking.StockExceeded(units, people, int(*svc.StockCeiling())) {
		return errs.Mark(errs.New("requested units exceed service ceiling"), ErrStockExhausted)
	}
	return nil
}
