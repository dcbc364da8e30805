package queries

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrQueryFailed     = errs.New("query failed")
)

// BookingReadStore is the durable read side implemented by infra.
type BookingReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByContact(ctx context.Context, email string) ([]*BookingListItem, error)
	FindByDate(ctx context.Context, date time.Time) ([]*BookingListItem, error)
	CountByState(ctx context.Context) (map[string]int64, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByContact(ctx context.Context, email string) ([]*BookingListItem, error)
	ListByDate(ctx context.Context, date time.Time) ([]*BookingListItem, error)
	Stats(ctx context.Context) (*StatsView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByContact(ctx context.Context, email string) ([]*BookingListItem, error) {
	items, err := q.store.FindByContact(ctx, email)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return items, nil
}

func (q *bookingQueriesImpl) ListByDate(ctx context.Context, date time.Time) ([]*BookingListItem, error) {
	items, err := q.store.FindByDate(ctx, date)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return items, nil
}

// Stats folds the tagged states into the externally visible status and
// paymentStatus groupings.
func (q *bookingQueriesImpl) Stats(ctx context.Context) (*StatsView, error) {
	counts, err := q.store.CountByState(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	stats := &StatsView{
		ByStatus:        map[string]int64{},
		ByPaymentStatus: map[string]int64{},
	}
	for state, n := range counts {
		stats.Total += n
		stats.ByStatus[booking.State(state).Status()] += n
		stats.ByPaymentStatus[booking.State(state).PaymentStatus()] += n
	}
	return stats, nil
}
