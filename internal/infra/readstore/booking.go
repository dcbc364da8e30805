package readstore

import (
	"context"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/pgconv"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingReadStore serves denormalized booking views for the API surface.
type BookingReadStore struct {
	db db.Querier
}

func NewBookingReadStore(q db.Querier) *BookingReadStore {
	return &BookingReadStore{db: q}
}

const viewColumns = `
	b.id, b.service_id, s.name, b.booking_date, b.start_min, b.end_min,
	b.people, b.contact_email, b.contact_name, b.contact_phone, b.membership,
	b.service_amount_cents, b.discount_cents, b.cleaning_fee_applied,
	b.cleaning_fee_cents, b.total_cents, b.state,
	b.payment_ref, b.paid_at, b.created_at, b.updated_at`

func (r *BookingReadStore) FindViewByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT` + viewColumns + `
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.id = $1`

	view, err := scanView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByContact(ctx context.Context, email string) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT` + viewColumns + `
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.contact_email = $1
		ORDER BY b.booking_date DESC, b.start_min DESC`

	return r.list(ctx, query, email)
}

func (r *BookingReadStore) FindByDate(ctx context.Context, date time.Time) ([]*queries.BookingListItem, error) {
	const query = `
		SELECT` + viewColumns + `
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE b.booking_date = $1
		ORDER BY b.start_min`

	return r.list(ctx, query, date.Truncate(24*time.Hour))
}

func (r *BookingReadStore) CountByState(ctx context.Context) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT state, COUNT(*) FROM bookings GROUP BY state`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings", err)
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var (
			state string
			n     int64
		)
		if err := rows.Scan(&state, &n); err != nil {
			return nil, infra.WrapRepoErr("failed to scan count", err)
		}
		counts[state] = n
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read counts", err)
	}
	return counts, nil
}

func (r *BookingReadStore) list(ctx context.Context, query string, arg any) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	items := []*queries.BookingListItem{}
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &queries.BookingListItem{
			ID:             view.ID,
			ServiceName:    view.ServiceName,
			Date:           view.Date,
			SlotDisplay:    view.SlotDisplay,
			NumberOfPeople: view.NumberOfPeople,
			TotalCents:     view.TotalCents,
			Status:         view.Status,
			PaymentStatus:  view.PaymentStatus,
			CreatedAt:      view.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	return items, nil
}

func scanView(row interface{ Scan(dest ...any) error }) (*queries.BookingView, error) {
	var (
		v                 queries.BookingView
		date              time.Time
		startMin, endMin  int
		membership, state string
		paymentRef        pgtype.Text
		paidAt            pgtype.Timestamptz
	)

	err := row.Scan(
		&v.ID, &v.ServiceID, &v.ServiceName, &date, &startMin, &endMin,
		&v.NumberOfPeople, &v.ContactEmail, &v.ContactName, &v.ContactPhone, &membership,
		&v.ServiceAmountCents, &v.DiscountCents, &v.CleaningFeeApplied,
		&v.CleaningFeeCents, &v.TotalCents, &state,
		&paymentRef, &paidAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.PaymentRef = pgconv.StringPtrFromPgtype(paymentRef)
	v.PaidAt = pgconv.TimePtrFromPgtype(paidAt)

	slot := booking.ReconstructTimeSlot(startMin, endMin)
	v.Date = date.Format("2006-01-02")
	v.StartTime = slot.Start().String()
	v.EndTime = slot.End().String()
	v.SlotDisplay = slot.Display()
	v.DurationHours = slot.DurationHours()
	v.MembershipCategory = membership
	v.Status = booking.State(state).Status()
	v.PaymentStatus = booking.State(state).PaymentStatus()
	return &v, nil
}
