//go:build unit

package booking_test

import (
	"testing"

	"facility-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestComputeQuote_LifeMemberWithCleaningFee(t *testing.T) {
	// service 500.00, 25 people, life member, cleaning fee 80.00
	q := booking.ComputeQuote(booking.MustMoney(50000), 25, booking.MembershipLife, booking.MustMoney(8000))

	assert.Equal(t, int64(5000), q.Discount.Cents())
	assert.Equal(t, int64(45000), q.DiscountedAmount.Cents())
	assert.True(t, q.CleaningFeeApplied)
	assert.Equal(t, int64(8000), q.CleaningFee.Cents())
	assert.Equal(t, int64(53000), q.Total.Cents())
}

func TestComputeQuote_GeneralMemberNoFee(t *testing.T) {
	// service 200.00, 10 people, general member
	q := booking.ComputeQuote(booking.MustMoney(20000), 10, booking.MembershipGeneral, booking.MustMoney(8000))

	assert.True(t, q.Discount.IsZero())
	assert.Equal(t, int64(20000), q.DiscountedAmount.Cents())
	assert.False(t, q.CleaningFeeApplied)
	assert.True(t, q.CleaningFee.IsZero())
	assert.Equal(t, int64(20000), q.Total.Cents())
}

func TestComputeQuote_FeeThresholdBoundary(t *testing.T) {
	// Exactly 21 people: no fee. 22: fee applies.
	at := booking.ComputeQuote(booking.MustMoney(10000), 21, booking.MembershipNone, booking.MustMoney(8000))
	assert.False(t, at.CleaningFeeApplied)

	over := booking.ComputeQuote(booking.MustMoney(10000), 22, booking.MembershipNone, booking.MustMoney(8000))
	assert.True(t, over.CleaningFeeApplied)
	assert.Equal(t, int64(18000), over.Total.Cents())
}

func TestComputeQuote_DiscountNeverAppliesToCleaningFee(t *testing.T) {
	q := booking.ComputeQuote(booking.MustMoney(50000), 30, booking.MembershipLife, booking.MustMoney(8000))

	// 10% off the service amount only; the fee is added at full value.
	assert.Equal(t, int64(45000+8000), q.Total.Cents())
}

func TestComputeQuote_PartsAlwaysSumToTotal(t *testing.T) {
	// Odd cent amounts must not leak rounding drift between parts.
	q := booking.ComputeQuote(booking.MustMoney(33333), 5, booking.MembershipLife, booking.Money{})

	assert.Equal(t, q.ServiceAmount.Cents(), q.DiscountedAmount.Cents()+q.Discount.Cents())
	assert.Equal(t, q.DiscountedAmount.Cents(), q.Total.Cents())
}

func TestEffectiveMembership(t *testing.T) {
	tests := []struct {
		name     string
		declared booking.MembershipCategory
		groups   []string
		want     booking.MembershipCategory
	}{
		{"declared life", booking.MembershipLife, nil, booking.MembershipLife},
		{"life via AnmcLifeMembers group", booking.MembershipGeneral, []string{"AnmcLifeMembers"}, booking.MembershipLife},
		{"life via LifeMembers group", booking.MembershipNone, []string{"Committee", "LifeMembers"}, booking.MembershipLife},
		{"general stays general", booking.MembershipGeneral, []string{"Committee"}, booking.MembershipGeneral},
		{"unknown category falls back to none", booking.MembershipCategory("gold"), nil, booking.MembershipNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.EffectiveMembership(tt.declared, tt.groups))
		})
	}
}
