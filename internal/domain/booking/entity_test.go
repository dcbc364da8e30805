//go:build unit

package booking_test

import (
	"testing"
	"time"

	"facility-booking/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestBooking(t *testing.T) *booking.Booking {
	t.Helper()

	slot := mustSlot(t, 8*60, 2*60)
	contact, err := booking.NewContact("jane@example.com", "Jane Doe", "0400000000")
	require.NoError(t, err)

	quote := booking.ComputeQuote(booking.MustMoney(20000), 10, booking.MembershipGeneral, booking.Money{})

	b, err := booking.NewBooking(
		uuid.New(),
		testNow.AddDate(0, 0, 7),
		slot,
		10,
		contact,
		booking.MembershipGeneral,
		quote,
		testNow,
	)
	require.NoError(t, err)
	return b
}

func TestNewBooking_StartsPendingUnpaid(t *testing.T) {
	b := newTestBooking(t)

	assert.Equal(t, booking.StatePendingUnpaid, b.State())
	assert.Equal(t, "pending", b.State().Status())
	assert.Equal(t, "unpaid", b.State().PaymentStatus())
	assert.Nil(t, b.PaymentRef())
	assert.Nil(t, b.PaidAt())
}

func TestNewBooking_Validation(t *testing.T) {
	slot := mustSlot(t, 8*60, 2*60)
	contact, err := booking.NewContact("jane@example.com", "Jane", "")
	require.NoError(t, err)
	quote := booking.Quote{}

	_, err = booking.NewBooking(uuid.New(), testNow.AddDate(0, 0, 1), slot, 0, contact, booking.MembershipNone, quote, testNow)
	assert.ErrorIs(t, err, booking.ErrInvalidPeopleCount)

	_, err = booking.NewBooking(uuid.New(), testNow.AddDate(0, 0, -1), slot, 5, contact, booking.MembershipNone, quote, testNow)
	assert.ErrorIs(t, err, booking.ErrDateInPast)
}

func TestApproveWithPayment(t *testing.T) {
	b := newTestBooking(t)

	err := b.ApproveWithPayment("cs_test_123", testNow.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, booking.StateConfirmedAwaitingPayment, b.State())
	require.NotNil(t, b.PaymentRef())
	assert.Equal(t, "cs_test_123", *b.PaymentRef())
	assert.Equal(t, "confirmed", b.State().Status())
	assert.Equal(t, "unpaid", b.State().PaymentStatus())
}

func TestApproveWithPayment_RejectsPrepaid(t *testing.T) {
	b := newTestBooking(t)
	require.NoError(t, b.AttachPaymentIntent("pi_test_1", testNow))
	require.NoError(t, b.MarkPaid("pi_test_1", testNow))

	// A prepaid booking must never go down the session-creation path.
	err := b.ApproveWithPayment("cs_should_not_exist", testNow)
	assert.ErrorIs(t, err, booking.ErrInvalidTransition)
}

func TestApprovePrepaid(t *testing.T) {
	b := newTestBooking(t)
	require.NoError(t, b.AttachPaymentIntent("pi_test_1", testNow))
	require.NoError(t, b.MarkPaid("pi_test_1", testNow))

	err := b.ApprovePrepaid(testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, booking.StateConfirmedPaid, b.State())
}

func TestMarkPaid(t *testing.T) {
	t.Run("pre-approval payment", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.MarkPaid("pi_abc", testNow))

		assert.Equal(t, booking.StatePendingPaid, b.State())
		require.NotNil(t, b.PaidAt())
		assert.Equal(t, testNow, *b.PaidAt())
		require.NotNil(t, b.PaymentRef())
		assert.Equal(t, "pi_abc", *b.PaymentRef())
	})

	t.Run("post-approval payment", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.ApproveWithPayment("cs_1", testNow))
		require.NoError(t, b.MarkPaid("pi_final", testNow.Add(time.Minute)))

		assert.Equal(t, booking.StateConfirmedPaid, b.State())
		require.NotNil(t, b.PaidRef())
		assert.Equal(t, "pi_final", *b.PaidRef())
	})

	t.Run("settlement keeps the original gateway reference", func(t *testing.T) {
		// A success-page refresh replays verification with the session id the
		// booking was filed under, so settling must not overwrite it.
		b := newTestBooking(t)
		require.NoError(t, b.ApproveWithPayment("cs_1", testNow))
		require.NoError(t, b.MarkPaid("pi_final", testNow.Add(time.Minute)))

		require.NotNil(t, b.PaymentRef())
		assert.Equal(t, "cs_1", *b.PaymentRef())
	})

	t.Run("double payment rejected", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.MarkPaid("pi_abc", testNow))
		assert.ErrorIs(t, b.MarkPaid("pi_again", testNow), booking.ErrInvalidTransition)
	})

	t.Run("empty reference rejected", func(t *testing.T) {
		b := newTestBooking(t)
		assert.ErrorIs(t, b.MarkPaid("", testNow), booking.ErrMissingPaymentRef)
	})
}

func TestCompleteAndCancel(t *testing.T) {
	t.Run("complete requires confirmed paid", func(t *testing.T) {
		b := newTestBooking(t)
		assert.ErrorIs(t, b.Complete(testNow), booking.ErrInvalidTransition)

		require.NoError(t, b.ApproveWithPayment("cs_1", testNow))
		assert.ErrorIs(t, b.Complete(testNow), booking.ErrInvalidTransition)

		require.NoError(t, b.MarkPaid("pi_1", testNow))
		assert.NoError(t, b.Complete(testNow))
		assert.Equal(t, booking.StateCompleted, b.State())
	})

	t.Run("cancel from pending and confirmed", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel(testNow))
		assert.Equal(t, booking.StateCancelled, b.State())
		assert.False(t, b.IsActive())
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel(testNow))
		assert.ErrorIs(t, b.Cancel(testNow), booking.ErrInvalidTransition)
		assert.ErrorIs(t, b.Complete(testNow), booking.ErrInvalidTransition)
	})
}

func TestReschedule(t *testing.T) {
	b := newTestBooking(t)
	newSlot := mustSlot(t, 10*60, 2*60)
	newDate := testNow.AddDate(0, 0, 14)

	require.NoError(t, b.Reschedule(newDate, newSlot, testNow.Add(time.Hour)))
	assert.Equal(t, newSlot, b.Slot())
	assert.Equal(t, newDate.Truncate(24*time.Hour), b.Date())

	require.NoError(t, b.Cancel(testNow))
	assert.ErrorIs(t, b.Reschedule(newDate, newSlot, testNow), booking.ErrInvalidTransition)
}

func TestChangeParty_KeepsCapturedMembership(t *testing.T) {
	b := newTestBooking(t)
	require.Equal(t, booking.MembershipGeneral, b.Membership())

	quote := booking.ComputeQuote(booking.MustMoney(20000), 25, b.Membership(), booking.MustMoney(8000))
	require.NoError(t, b.ChangeParty(25, quote, testNow.Add(time.Hour)))

	assert.Equal(t, 25, b.People())
	assert.True(t, b.Quote().CleaningFeeApplied)
	assert.Equal(t, booking.MembershipGeneral, b.Membership())
}

func TestStateProjections(t *testing.T) {
	tests := []struct {
		state         booking.State
		status        string
		paymentStatus string
		active        bool
	}{
		{booking.StatePendingUnpaid, "pending", "unpaid", true},
		{booking.StatePendingPaid, "pending", "paid", true},
		{booking.StateConfirmedAwaitingPayment, "confirmed", "unpaid", true},
		{booking.StateConfirmedPaid, "confirmed", "paid", true},
		{booking.StateCompleted, "completed", "paid", true},
		{booking.StateCancelled, "cancelled", "unpaid", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.True(t, tt.state.IsValid())
			assert.Equal(t, tt.status, tt.state.Status())
			assert.Equal(t, tt.paymentStatus, tt.state.PaymentStatus())
			assert.Equal(t, tt.active, tt.state.IsActive())
		})
	}
}
