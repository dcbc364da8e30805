package commands

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/catalog"

	"github.com/google/uuid"
)

// BookingRepository is the write side of the booking store. slotExclusive
// marks rows that participate in the overlap exclusion constraint;
// fixed-inventory bookings opt out.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking, slotExclusive bool) error
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByPaymentRef(ctx context.Context, ref string) (*booking.Booking, error)
	ActiveIntervalsByDate(ctx context.Context, date time.Time) ([]booking.Interval, error)
	ActiveUnitsByService(ctx context.Context, serviceID uuid.UUID, exclude uuid.UUID) (int, error)
}

// ServiceCatalog resolves base prices and flat fee items.
type ServiceCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
	FlatFeeByTag(ctx context.Context, tag string) (booking.Money, error)
}

// Gateway result shapes. References use the gateway's own ids (checkout
// session or payment intent); VerifySession accepts either.
type CheckoutSession struct {
	SessionID   string
	RedirectURL string
}

type PaymentIntent struct {
	IntentID     string
	ClientSecret string
}

type PaymentResult struct {
	Paid      bool
	Reference string
}

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, amountCents int64, bookingID uuid.UUID, metadata map[string]string) (*CheckoutSession, error)
	CreateEmbeddedIntent(ctx context.Context, amountCents int64, bookingID uuid.UUID, metadata map[string]string) (*PaymentIntent, error)
	VerifySession(ctx context.Context, reference string) (*PaymentResult, error)
}

// Notifier delivers a templated message. Sends are best-effort: the lifecycle
// logs failures and never propagates them.
type Notifier interface {
	Notify(ctx context.Context, recipient, template string, data map[string]any) error
}

// Notification templates used by the lifecycle.
const (
	TemplateBookingReceived      = "booking_received"
	TemplateBookingNeedsApproval = "booking_needs_approval"
	TemplatePaymentLink          = "booking_payment_link"
	TemplateAlreadyPaid          = "booking_already_paid"
	TemplatePaymentConfirmed     = "booking_payment_confirmed"
)
