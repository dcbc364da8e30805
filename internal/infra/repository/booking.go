package repository

import (
	"context"
	"errors"
	"time"

	"facility-booking/internal/domain/booking"
	"facility-booking/internal/infra"
	"facility-booking/internal/infra/db"
	"facility-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// Postgres error codes that signal the slot exclusion constraint fired.
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

type BookingRepository struct {
	db db.Querier
}

func NewBookingRepository(q db.Querier) *BookingRepository {
	return &BookingRepository{db: q}
}

const bookingColumns = `
	id, service_id, booking_date, start_min, end_min, people,
	contact_email, contact_name, contact_phone, membership,
	service_amount_cents, discount_cents, cleaning_fee_applied,
	cleaning_fee_cents, total_cents, state, slot_exclusive,
	payment_ref, paid_ref, paid_at, created_at, updated_at`

// Create inserts the booking. The bookings_no_overlap exclusion constraint
// makes the availability check authoritative: a concurrent overlapping write
// loses with a conflict error instead of producing a double-booking.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking, slotExclusive bool) error {
	const query = `
		INSERT INTO bookings (
			id, service_id, booking_date, start_min, end_min, people,
			contact_email, contact_name, contact_phone, membership,
			service_amount_cents, discount_cents, cleaning_fee_applied,
			cleaning_fee_cents, total_cents, state, slot_exclusive,
			payment_ref, paid_ref, paid_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)`

	q := b.Quote()
	_, err := r.db.Exec(ctx, query,
		b.ID(), b.ServiceID(), b.Date(), b.Slot().StartMinutes(), b.Slot().EndMinutes(), b.People(),
		b.Contact().Email(), b.Contact().Name(), b.Contact().Phone(), b.Membership().String(),
		q.ServiceAmount.Cents(), q.Discount.Cents(), q.CleaningFeeApplied,
		q.CleaningFee.Cents(), q.Total.Cents(), b.State().String(), slotExclusive,
		pgconv.StringPtrToPgtype(b.PaymentRef()), pgconv.StringPtrToPgtype(b.PaidRef()),
		pgconv.TimePtrToPgtype(b.PaidAt()), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		if isOverlapViolation(err) {
			return infra.WrapRepoErr("booking slot already taken", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

// Update persists the mutable attributes of the aggregate in one write; the
// state and the payment reference always travel together.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	const query = `
		UPDATE bookings SET
			booking_date = $2, start_min = $3, end_min = $4, people = $5,
			contact_phone = $6,
			service_amount_cents = $7, discount_cents = $8, cleaning_fee_applied = $9,
			cleaning_fee_cents = $10, total_cents = $11, state = $12,
			payment_ref = $13, paid_ref = $14, paid_at = $15, updated_at = $16
		WHERE id = $1`

	q := b.Quote()
	tag, err := r.db.Exec(ctx, query,
		b.ID(), b.Date(), b.Slot().StartMinutes(), b.Slot().EndMinutes(), b.People(),
		b.Contact().Phone(),
		q.ServiceAmount.Cents(), q.Discount.Cents(), q.CleaningFeeApplied,
		q.CleaningFee.Cents(), q.Total.Cents(), b.State().String(),
		pgconv.StringPtrToPgtype(b.PaymentRef()), pgconv.StringPtrToPgtype(b.PaidRef()),
		pgconv.TimePtrToPgtype(b.PaidAt()), b.UpdatedAt(),
	)
	if err != nil {
		if isOverlapViolation(err) {
			return infra.WrapRepoErr("booking slot already taken", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id = $1`, id)
	return scanBooking(row)
}

// FindByPaymentRef resolves the booking a gateway session or intent belongs
// to during payment verification. Both the original gateway handle and the
// canonical settlement reference are queryable, so a replayed verification
// carrying either one finds the row.
func (r *BookingRepository) FindByPaymentRef(ctx context.Context, ref string) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+bookingColumns+` FROM bookings WHERE payment_ref = $1 OR paid_ref = $1`, ref)
	return scanBooking(row)
}

// ActiveIntervalsByDate returns the slot footprints the availability checker
// tests candidates against. Cancelled bookings free their slot.
func (r *BookingRepository) ActiveIntervalsByDate(ctx context.Context, date time.Time) ([]booking.Interval, error) {
	const query = `
		SELECT id, start_min, end_min
		FROM bookings
		WHERE booking_date = $1 AND state <> 'cancelled' AND slot_exclusive
		ORDER BY start_min`

	rows, err := r.db.Query(ctx, query, date.Truncate(24*time.Hour))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active intervals", err)
	}
	defer rows.Close()

	var intervals []booking.Interval
	for rows.Next() {
		var (
			id       uuid.UUID
			startMin int
			endMin   int
		)
		if err := rows.Scan(&id, &startMin, &endMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interval", err)
		}
		intervals = append(intervals, booking.Interval{
			BookingID: id,
			Slot:      booking.ReconstructTimeSlot(startMin, endMin),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read intervals", err)
	}
	return intervals, nil
}

// ActiveUnitsByService sums the attendee units of active bookings for a
// fixed-inventory service. exclude skips one booking id so a resized booking
// is not counted against itself; pass uuid.Nil on create.
func (r *BookingRepository) ActiveUnitsByService(ctx context.Context, serviceID uuid.UUID, exclude uuid.UUID) (int, error) {
	const query = `
		SELECT COALESCE(SUM(people), 0)
		FROM bookings
		WHERE service_id = $1 AND state <> 'cancelled' AND id <> $2`

	var units int
	if err := r.db.QueryRow(ctx, query, serviceID, exclude).Scan(&units); err != nil {
		return 0, infra.WrapRepoErr("failed to sum active units", err)
	}
	return units, nil
}

func scanBooking(row interface{ Scan(dest ...any) error }) (*booking.Booking, error) {
	var (
		id, serviceID      uuid.UUID
		date               time.Time
		startMin, endMin   int
		people             int
		email, name, phone string
		membership         string
		serviceCents       int64
		discountCents      int64
		feeApplied         bool
		feeCents           int64
		totalCents         int64
		state              string
		slotExclusive      bool
		paymentRef         pgtype.Text
		paidRef            pgtype.Text
		paidAt             pgtype.Timestamptz
		createdAt          time.Time
		updatedAt          time.Time
	)

	err := row.Scan(
		&id, &serviceID, &date, &startMin, &endMin, &people,
		&email, &name, &phone, &membership,
		&serviceCents, &discountCents, &feeApplied,
		&feeCents, &totalCents, &state, &slotExclusive,
		&paymentRef, &paidRef, &paidAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}

	contact, err := booking.NewContact(email, name, phone)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupt contact on booking row", err)
	}

	quote := booking.Quote{
		ServiceAmount:      booking.MustMoney(serviceCents),
		Discount:           booking.MustMoney(discountCents),
		DiscountedAmount:   booking.MustMoney(serviceCents - discountCents),
		CleaningFeeApplied: feeApplied,
		CleaningFee:        booking.MustMoney(feeCents),
		Total:              booking.MustMoney(totalCents),
	}

	return booking.Reconstruct(
		id, serviceID, date,
		booking.ReconstructTimeSlot(startMin, endMin),
		people, contact,
		booking.MembershipCategory(membership),
		quote,
		booking.State(state),
		pgconv.StringPtrFromPgtype(paymentRef),
		pgconv.StringPtrFromPgtype(paidRef),
		pgconv.TimePtrFromPgtype(paidAt),
		createdAt, updatedAt,
	), nil
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation || pgErr.Code == pgExclusionViolation
	}
	return false
}
