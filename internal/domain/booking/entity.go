package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPeopleCount = errors.New("number of people must be positive")
	ErrDateInPast         = errors.New("booking date cannot be in the past")
	ErrInvalidTransition  = errors.New("invalid booking state transition")
	ErrMissingPaymentRef  = errors.New("paid booking requires a payment reference")
)

// Booking is the aggregate root of the scheduler. All mutation goes through
// the transition methods so the state machine stays closed.
type Booking struct {
	id         uuid.UUID
	serviceID  uuid.UUID
	date       time.Time // calendar date, midnight UTC
	slot       TimeSlot
	people     int
	contact    Contact
	membership MembershipCategory
	quote      Quote
	state      State
	paymentRef *string
	paidRef    *string
	paidAt     *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking creates a pending, unpaid booking. Availability must already
// have been checked by the caller; the store enforces it again on write.
func NewBooking(
	serviceID uuid.UUID,
	date time.Time,
	slot TimeSlot,
	people int,
	contact Contact,
	membership MembershipCategory,
	quote Quote,
	now time.Time,
) (*Booking, error) {
	if people <= 0 {
		return nil, ErrInvalidPeopleCount
	}
	day := date.Truncate(24 * time.Hour)
	if day.Before(now.Truncate(24 * time.Hour)) {
		return nil, ErrDateInPast
	}

	return &Booking{
		id:         uuid.New(),
		serviceID:  serviceID,
		date:       day,
		slot:       slot,
		people:     people,
		contact:    contact,
		membership: membership,
		quote:      quote,
		state:      StatePendingUnpaid,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a booking from its persisted record.
func Reconstruct(
	id, serviceID uuid.UUID,
	date time.Time,
	slot TimeSlot,
	people int,
	contact Contact,
	membership MembershipCategory,
	quote Quote,
	state State,
	paymentRef, paidRef *string,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		serviceID:  serviceID,
		date:       date,
		slot:       slot,
		people:     people,
		contact:    contact,
		membership: membership,
		quote:      quote,
		state:      state,
		paymentRef: paymentRef,
		paidRef:    paidRef,
		paidAt:     paidAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID                  { return b.id }
func (b *Booking) ServiceID() uuid.UUID           { return b.serviceID }
func (b *Booking) Date() time.Time                { return b.date }
func (b *Booking) Slot() TimeSlot                 { return b.slot }
func (b *Booking) People() int                    { return b.people }
func (b *Booking) Contact() Contact               { return b.contact }
func (b *Booking) Membership() MembershipCategory { return b.membership }
func (b *Booking) Quote() Quote                   { return b.quote }
func (b *Booking) State() State                   { return b.state }
func (b *Booking) PaymentRef() *string            { return b.paymentRef }
func (b *Booking) PaidRef() *string               { return b.paidRef }
func (b *Booking) PaidAt() *time.Time             { return b.paidAt }
func (b *Booking) CreatedAt() time.Time           { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time           { return b.updatedAt }

func (b *Booking) IsActive() bool { return b.state.IsActive() }
func (b *Booking) IsPaid() bool   { return b.state.PaymentStatus() == "paid" }

func (b *Booking) transition(next State, now time.Time) error {
	if !b.state.canTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.state = next
	b.updatedAt = now
	return nil
}

// ApproveWithPayment confirms an unpaid booking and records the gateway
// session reference. The caller must have created the session first so a
// gateway failure never leaves a half-confirmed record.
func (b *Booking) ApproveWithPayment(sessionRef string, now time.Time) error {
	if sessionRef == "" {
		return ErrMissingPaymentRef
	}
	if b.state != StatePendingUnpaid {
		return ErrInvalidTransition
	}
	if err := b.transition(StateConfirmedAwaitingPayment, now); err != nil {
		return err
	}
	b.paymentRef = &sessionRef
	return nil
}

// ApprovePrepaid confirms a booking that was already paid through the
// embedded form. No gateway call is involved.
func (b *Booking) ApprovePrepaid(now time.Time) error {
	if b.state != StatePendingPaid {
		return ErrInvalidTransition
	}
	return b.transition(StateConfirmedPaid, now)
}

// AttachPaymentIntent stores the embedded intent reference on a still-unpaid
// pending booking so a later verification can find it.
func (b *Booking) AttachPaymentIntent(intentRef string, now time.Time) error {
	if intentRef == "" {
		return ErrMissingPaymentRef
	}
	if b.state != StatePendingUnpaid {
		return ErrInvalidTransition
	}
	b.paymentRef = &intentRef
	b.updatedAt = now
	return nil
}

// MarkPaid records a verified payment, whichever side of approval it lands on.
// The canonical settlement reference is stored alongside the original gateway
// handle, never over it: a replayed verification still arrives with the
// session or intent id the booking was filed under.
func (b *Booking) MarkPaid(canonicalRef string, now time.Time) error {
	if canonicalRef == "" {
		return ErrMissingPaymentRef
	}
	var next State
	switch b.state {
	case StatePendingUnpaid:
		next = StatePendingPaid
	case StateConfirmedAwaitingPayment:
		next = StateConfirmedPaid
	default:
		return ErrInvalidTransition
	}
	if err := b.transition(next, now); err != nil {
		return err
	}
	b.paidRef = &canonicalRef
	if b.paymentRef == nil {
		b.paymentRef = &canonicalRef
	}
	b.paidAt = &now
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StateCompleted, now)
}

func (b *Booking) Cancel(now time.Time) error {
	return b.transition(StateCancelled, now)
}

// Reschedule moves the booking to a new date/slot. Availability against the
// new interval is the caller's responsibility (excluding this booking's own
// prior interval).
func (b *Booking) Reschedule(date time.Time, slot TimeSlot, now time.Time) error {
	if !b.state.IsActive() || b.state == StateCompleted {
		return ErrInvalidTransition
	}
	b.date = date.Truncate(24 * time.Hour)
	b.slot = slot
	b.updatedAt = now
	return nil
}

// ChangeContactPhone replaces the contact phone in place. Email and name are
// fixed for the life of the booking.
func (b *Booking) ChangeContactPhone(phone string, now time.Time) {
	b.contact = Contact{
		email: b.contact.email,
		name:  b.contact.name,
		phone: strings.TrimSpace(phone),
	}
	b.updatedAt = now
}

// ChangeParty updates the attendee count with a re-computed quote. The quote
// must have been priced with the membership captured on this booking.
func (b *Booking) ChangeParty(people int, quote Quote, now time.Time) error {
	if people <= 0 {
		return ErrInvalidPeopleCount
	}
	if !b.state.IsActive() || b.state == StateCompleted {
		return ErrInvalidTransition
	}
	b.people = people
	b.quote = quote
	b.updatedAt = now
	return nil
}
