//go:build unit || e2e

package builder

import (
	"time"

	dombooking "facility-booking/internal/domain/booking"
	"facility-booking/internal/domain/catalog"
	reqdto "facility-booking/internal/handler/dto/request"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID             uuid.UUID
	ServiceID      uuid.UUID
	ServiceName    string
	BasePriceCents int64
	StockCeiling   *int32
	Date           time.Time
	StartMin       int
	DurationMin    int
	People         int
	ContactEmail   string
	ContactName    string
	ContactPhone   string
	Membership     dombooking.MembershipCategory
	State          dombooking.State
	CleaningFee    int64
	Now            time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:             uuid.New(),
		ServiceID:      uuid.New(),
		ServiceName:    "Main Hall",
		BasePriceCents: 50000,
		Date:           time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		StartMin:       8 * 60,
		DurationMin:    6 * 60,
		People:         10,
		ContactEmail:   "booker@example.com",
		ContactName:    "Jordan Reid",
		ContactPhone:   "0400000000",
		Membership:     dombooking.MembershipGeneral,
		State:          dombooking.StatePendingUnpaid,
		CleaningFee:    8000,
		Now:            now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildService() *catalog.Service {
	svc, err := catalog.NewService(b.ServiceID, b.ServiceName, dombooking.MustMoney(b.BasePriceCents), b.StockCeiling)
	if err != nil {
		panic(err)
	}
	return svc
}

func (b *BookingBuilder) BuildSlot() dombooking.TimeSlot {
	slot, err := dombooking.NewTimeSlot(b.StartMin, b.DurationMin)
	if err != nil {
		panic(err)
	}
	return slot
}

func (b *BookingBuilder) BuildQuote() dombooking.Quote {
	return dombooking.ComputeQuote(
		dombooking.MustMoney(b.BasePriceCents),
		b.People,
		b.Membership,
		dombooking.MustMoney(b.CleaningFee),
	)
}

// BuildDomain reconstructs an aggregate in the builder's state, as if it had
// been loaded from the store.
func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	contact, err := dombooking.NewContact(b.ContactEmail, b.ContactName, b.ContactPhone)
	if err != nil {
		panic(err)
	}
	return dombooking.Reconstruct(
		b.ID, b.ServiceID, b.Date, b.BuildSlot(), b.People, contact,
		b.Membership, b.BuildQuote(), b.State, nil, nil, nil, b.Now, b.Now,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ServiceID:      b.ServiceID,
		Date:           b.Date.Format("2006-01-02"),
		StartTime:      dombooking.ClockTime(b.StartMin).String(),
		DurationHours:  float64(b.DurationMin) / 60.0,
		NumberOfPeople: b.People,
		Contact: reqdto.ContactPayload{
			Email: b.ContactEmail,
			Name:  b.ContactName,
			Phone: b.ContactPhone,
		},
		MembershipCategory: b.Membership.String(),
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	slot := b.BuildSlot()
	quote := b.BuildQuote()
	return &queries.BookingView{
		ID:                 b.ID,
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		Date:               b.Date.Format("2006-01-02"),
		StartTime:          slot.Start().String(),
		EndTime:            slot.End().String(),
		SlotDisplay:        slot.Display(),
		DurationHours:      slot.DurationHours(),
		NumberOfPeople:     b.People,
		ContactEmail:       b.ContactEmail,
		ContactName:        b.ContactName,
		ContactPhone:       b.ContactPhone,
		MembershipCategory: b.Membership.String(),
		ServiceAmountCents: quote.ServiceAmount.Cents(),
		DiscountCents:      quote.Discount.Cents(),
		CleaningFeeApplied: quote.CleaningFeeApplied,
		CleaningFeeCents:   quote.CleaningFee.Cents(),
		TotalCents:         quote.Total.Cents(),
		Status:             b.State.Status(),
		PaymentStatus:      b.State.PaymentStatus(),
		CreatedAt:          b.Now,
		UpdatedAt:          b.Now,
	}
}
