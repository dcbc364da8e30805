package commands

import (
	"fmt"

	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound         = errs.New("service not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrSlotConflict            = errs.New("slot conflicts with an existing booking")
	ErrStockExhausted          = errs.New("service capacity exhausted for this slot")
	ErrInvalidBookingState     = errs.New("operation not allowed in current booking state")
	ErrDomainValidation        = errs.New("validation failed")
	ErrPaymentGatewayFailed    = errs.New("payment gateway request failed")
	ErrPaymentRecordMissing    = errs.New("no booking matches the verified payment")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// SlotConflictError carries the identity of the booking that blocks the
// requested slot. It matches ErrSlotConflict via errors.Is.
type SlotConflictError struct {
	ConflictingID uuid.UUID
	Slot          string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %s conflicts with booking %s", e.Slot, e.ConflictingID)
}

func (e *SlotConflictError) Unwrap() error { return ErrSlotConflict }
