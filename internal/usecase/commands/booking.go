package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/catalog"
	reqdto "facility-booking/internal/handler/dto/request"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/metrics"
	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/pkg/patch"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

const notifyTimeout = 5 * time.Second

type VerifyPaymentResult struct {
	Completed bool
	Booking   *queries.BookingView
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, memberGroups []string) (*queries.BookingView, error)
	Approve(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	CreateEmbeddedIntent(ctx context.Context, id uuid.UUID) (*PaymentIntent, error)
	VerifyPayment(ctx context.Context, reference string) (*VerifyPaymentResult, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateBookingRequest) (*queries.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	repo           BookingRepository
	catalog        ServiceCatalog
	checker        AvailabilityChecker
	gateway        PaymentGateway
	notifier       Notifier
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	adminAddress   string
}

func NewBookingUseCase(
	repo BookingRepository,
	serviceCatalog ServiceCatalog,
	checker AvailabilityChecker,
	gateway PaymentGateway,
	notifier Notifier,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	adminAddress string,
) BookingCommands {
	return &bookingUseCaseImpl{
		repo:           repo,
		catalog:        serviceCatalog,
		checker:        checker,
		gateway:        gateway,
		notifier:       notifier,
		bookingQueries: bookingQueries,
		clock:          clk,
		adminAddress:   adminAddress,
	}
}

func (u *bookingUseCaseImpl) Create(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	memberGroups []string,
) (*queries.BookingView, error) {
	date, err := req.DateValue()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	startMin, durationMin, err := req.SlotMinutes()
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	slot, err := booking.NewTimeSlot(startMin, durationMin)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	contact, err := booking.NewContact(req.Contact.Email, req.Contact.Name, req.Contact.Phone)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	svc, err := u.findService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	if err := u.checker.Check(ctx, svc, date, slot, req.NumberOfPeople, uuid.Nil); err != nil {
		return nil, u.markAvailabilityFailure(err)
	}

	membership := booking.EffectiveMembership(req.Membership(), memberGroups)
	quote, err := u.priceQuote(ctx, svc.BasePrice(), req.NumberOfPeople, membership)
	if err != nil {
		return nil, err
	}

	entity, err := booking.NewBooking(
		svc.ID(), date, slot, req.NumberOfPeople, contact, membership, quote, u.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	// The store re-checks overlap under its exclusion constraint, so losing a
	// race after the in-memory check surfaces here as a conflict.
	if err := u.repo.Create(ctx, entity, !svc.IsStockConstrained()); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			metrics.IncSlotConflict()
			return nil, errs.Mark(err, ErrSlotConflict)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	metrics.IncBookingCreated()

	view, err := u.bookingQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	go u.notify(contact.Email(), TemplateBookingReceived, map[string]any{
		"booking_id": entity.ID().String(),
		"service":    svc.Name(),
		"date":       view.Date,
		"slot":       view.SlotDisplay,
		"total":      quote.Total.Cents(),
	})
	go u.notify(u.adminAddress, TemplateBookingNeedsApproval, map[string]any{
		"booking_id": entity.ID().String(),
		"service":    svc.Name(),
		"contact":    contact.Email(),
	})

	return view, nil
}

// Approve confirms a pending booking. For an unpaid booking the gateway
// checkout session is created first; only once the session exists does the
// booking move to confirmed-awaiting-payment, so a gateway outage leaves it
// pending and retriable. An already-paid booking confirms without any gateway
// call.
func (u *bookingUseCaseImpl) Approve(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	entity, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	switch entity.State() {
	case booking.StatePendingPaid:
		if err := entity.ApprovePrepaid(u.clock.Now()); err != nil {
			return nil, errs.Mark(err, ErrInvalidBookingState)
		}
		if err := u.persist(ctx, entity); err != nil {
			return nil, err
		}
		go u.notify(entity.Contact().Email(), TemplateAlreadyPaid, map[string]any{
			"booking_id": entity.ID().String(),
		})

	case booking.StatePendingUnpaid:
		session, err := u.gateway.CreateCheckoutSession(ctx, entity.Quote().Total.Cents(), entity.ID(), map[string]string{
			"contact_email": entity.Contact().Email(),
		})
		if err != nil {
			return nil, errs.Mark(err, ErrPaymentGatewayFailed)
		}
		if err := entity.ApproveWithPayment(session.SessionID, u.clock.Now()); err != nil {
			return nil, errs.Mark(err, ErrInvalidBookingState)
		}
		if err := u.persist(ctx, entity); err != nil {
			return nil, err
		}
		go u.notify(entity.Contact().Email(), TemplatePaymentLink, map[string]any{
			"booking_id":  entity.ID().String(),
			"payment_url": session.RedirectURL,
			"total":       entity.Quote().Total.Cents(),
		})

	default:
		return nil, ErrInvalidBookingState
	}

	metrics.IncBookingApproved()
	return u.bookingQueries.GetByID(ctx, entity.ID())
}

// CreateEmbeddedIntent opens an in-form payment for a booking that is still
// pending approval, so the requester can pay before a manager looks at it.
func (u *bookingUseCaseImpl) CreateEmbeddedIntent(ctx context.Context, id uuid.UUID) (*PaymentIntent, error) {
	entity, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.State() != booking.StatePendingUnpaid {
		return nil, ErrInvalidBookingState
	}

	intent, err := u.gateway.CreateEmbeddedIntent(ctx, entity.Quote().Total.Cents(), entity.ID(), map[string]string{
		"contact_email": entity.Contact().Email(),
	})
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGatewayFailed)
	}

	if err := entity.AttachPaymentIntent(intent.IntentID, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingState)
	}
	if err := u.persist(ctx, entity); err != nil {
		return nil, err
	}
	return intent, nil
}

// VerifyPayment settles a gateway reference against the stored booking. An
// unpaid gateway result is a normal outcome, not an error; a paid result with
// no matching booking is a hard inconsistency.
func (u *bookingUseCaseImpl) VerifyPayment(ctx context.Context, reference string) (*VerifyPaymentResult, error) {
	result, err := u.gateway.VerifySession(ctx, reference)
	if err != nil {
		return nil, errs.Mark(err, ErrPaymentGatewayFailed)
	}
	if !result.Paid {
		return &VerifyPaymentResult{Completed: false}, nil
	}

	entity, err := u.repo.FindByPaymentRef(ctx, reference)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrPaymentRecordMissing)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if entity.IsPaid() {
		// Replayed verification of an already-settled payment.
		view, err := u.bookingQueries.GetByID(ctx, entity.ID())
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return &VerifyPaymentResult{Completed: true, Booking: view}, nil
	}

	if err := entity.MarkPaid(result.Reference, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingState)
	}
	if err := u.persist(ctx, entity); err != nil {
		return nil, err
	}
	metrics.IncPaymentVerified()

	go u.notify(entity.Contact().Email(), TemplatePaymentConfirmed, map[string]any{
		"booking_id": entity.ID().String(),
		"total":      entity.Quote().Total.Cents(),
	})

	view, err := u.bookingQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &VerifyPaymentResult{Completed: true, Booking: view}, nil
}

// Update applies partial changes. Slot and party-size changes are re-checked
// for availability excluding the booking itself; a party-size change re-prices
// against the membership captured at creation, never the requester's current
// one.
func (u *bookingUseCaseImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	req reqdto.UpdateBookingRequest,
) (*queries.BookingView, error) {
	entity, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	newPeople := entity.People()
	if req.NumberOfPeople != nil {
		newPeople = *req.NumberOfPeople
	}

	switch {
	case req.TouchesSlot():
		if err := u.applySlotChange(ctx, entity, req, newPeople); err != nil {
			return nil, err
		}
	case newPeople != entity.People():
		// A larger party consumes more units on a fixed-inventory service, so
		// the ceiling is re-checked even though the slot is unchanged.
		svc, err := u.findService(ctx, entity.ServiceID())
		if err != nil {
			return nil, err
		}
		if err := u.checker.Check(ctx, svc, entity.Date(), entity.Slot(), newPeople, entity.ID()); err != nil {
			return nil, u.markAvailabilityFailure(err)
		}
	}

	if newPeople != entity.People() {
		quote, err := u.priceQuote(ctx, entity.Quote().ServiceAmount, newPeople, entity.Membership())
		if err != nil {
			return nil, err
		}
		if err := entity.ChangeParty(newPeople, quote, u.clock.Now()); err != nil {
			return nil, errs.Mark(err, ErrInvalidBookingState)
		}
	}

	if req.ContactPhone != nil {
		entity.ChangeContactPhone(*req.ContactPhone, u.clock.Now())
	}

	if err := u.persist(ctx, entity); err != nil {
		return nil, err
	}
	return u.bookingQueries.GetByID(ctx, entity.ID())
}

func (u *bookingUseCaseImpl) applySlotChange(
	ctx context.Context,
	entity *booking.Booking,
	req reqdto.UpdateBookingRequest,
	people int,
) error {
	datePtr, err := req.DateValue()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	startPtr, err := req.StartMinutes()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	durPtr, err := req.DurationMinutes()
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	date := patch.Coalesce(datePtr, entity.Date())
	start := patch.Coalesce(startPtr, entity.Slot().StartMinutes())
	duration := patch.Coalesce(durPtr, entity.Slot().DurationMinutes())

	slot, err := booking.NewTimeSlot(start, duration)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	svc, err := u.findService(ctx, entity.ServiceID())
	if err != nil {
		return err
	}
	if err := u.checker.Check(ctx, svc, date, slot, people, entity.ID()); err != nil {
		return u.markAvailabilityFailure(err)
	}

	if err := entity.Reschedule(date, slot, u.clock.Now()); err != nil {
		return errs.Mark(err, ErrInvalidBookingState)
	}
	return nil
}

func (u *bookingUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *bookingUseCaseImpl) Complete(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return u.transitionTerminal(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.Complete(now)
	})
}

func (u *bookingUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	return u.transitionTerminal(ctx, id, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(now)
	})
}

func (u *bookingUseCaseImpl) transitionTerminal(
	ctx context.Context,
	id uuid.UUID,
	move func(*booking.Booking, time.Time) error,
) (*queries.BookingView, error) {
	entity, err := u.findBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := move(entity, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidBookingState)
	}
	if err := u.persist(ctx, entity); err != nil {
		return nil, err
	}
	return u.bookingQueries.GetByID(ctx, entity.ID())
}

func (u *bookingUseCaseImpl) findService(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	svc, err := u.catalog.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return svc, nil
}

func (u *bookingUseCaseImpl) findBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	entity, err := u.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (u *bookingUseCaseImpl) persist(ctx context.Context, entity *booking.Booking) error {
	if err := u.repo.Update(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		if infra.IsKind(err, infra.KindConflict) {
			metrics.IncSlotConflict()
			return errs.Mark(err, ErrSlotConflict)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *bookingUseCaseImpl) priceQuote(
	ctx context.Context,
	serviceAmount booking.Money,
	people int,
	membership booking.MembershipCategory,
) (booking.Quote, error) {
	var fee booking.Money
	if booking.CleaningFeeRequired(people) {
		var err error
		fee, err = u.catalog.FlatFeeByTag(ctx, catalog.FeeTagCleaning)
		if err != nil {
			return booking.Quote{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return booking.ComputeQuote(serviceAmount, people, membership, fee), nil
}

func (u *bookingUseCaseImpl) markAvailabilityFailure(err error) error {
	if errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrStockExhausted) {
		metrics.IncSlotConflict()
	}
	return err
}

// notify delivers a message off the request path. Failures are logged and
// counted, never returned to the caller.
func (u *bookingUseCaseImpl) notify(recipient, template string, data map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := u.notifier.Notify(ctx, recipient, template, data); err != nil {
		metrics.IncNotifyFailure()
		slog.Warn("notification send failed",
			"recipient", recipient,
			"template", template,
			"error", err.Error(),
		)
	}
}
