//go:build unit

package booking_test

import (
	"testing"

	"facility-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotStrings(slots []booking.TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start().String() + "-" + s.End().String()
	}
	return out
}

func TestGenerateSlots_FullDay(t *testing.T) {
	slots := booking.GenerateSlots(6 * 60)

	require.Len(t, slots, 4)
	assert.Equal(t, []string{
		"08:00-14:00",
		"09:00-15:00",
		"10:00-16:00",
		"11:00-17:00",
	}, slotStrings(slots))
}

func TestGenerateSlots_FullDay_LongerThanSixHours(t *testing.T) {
	slots := booking.GenerateSlots(8 * 60)

	require.Len(t, slots, 4)
	assert.Equal(t, "08:00-16:00", slotStrings(slots)[0])
	assert.Equal(t, "11:00-19:00", slotStrings(slots)[3])
}

func TestGenerateSlots_ShortService(t *testing.T) {
	slots := booking.GenerateSlots(2 * 60)

	assert.Equal(t, []string{
		"08:00-10:00",
		"10:00-12:00",
		"17:00-19:00",
		"19:00-21:00",
	}, slotStrings(slots))
}

func TestGenerateSlots_ShortService_NoSlotPastWindowClose(t *testing.T) {
	// A 3h service fits once per window; a second morning slot starting at
	// 11:00 would run past the 12:00 close and must not be emitted.
	slots := booking.GenerateSlots(3 * 60)

	assert.Equal(t, []string{
		"08:00-11:00",
		"17:00-20:00",
	}, slotStrings(slots))
}

func TestGenerateSlots_MidService(t *testing.T) {
	// 4h30m uses the 08:00-13:00 / 16:00-21:00 windows, one slot each.
	slots := booking.GenerateSlots(4*60 + 30)

	assert.Equal(t, []string{
		"08:00-12:30",
		"16:00-20:30",
	}, slotStrings(slots))
}

func TestGenerateSlots_BoundaryDurations(t *testing.T) {
	// Exactly 4h belongs to the short windows and steps cleanly.
	slots := booking.GenerateSlots(4 * 60)
	assert.Equal(t, []string{"08:00-12:00", "17:00-21:00"}, slotStrings(slots))

	// Exactly 6h is full-day, not windowed.
	slots = booking.GenerateSlots(6 * 60)
	require.Len(t, slots, 4)
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	first := booking.GenerateSlots(90)
	second := booking.GenerateSlots(90)
	assert.Equal(t, first, second)
}

func TestGenerateSlots_InvalidDuration(t *testing.T) {
	assert.Nil(t, booking.GenerateSlots(0))
	assert.Nil(t, booking.GenerateSlots(-60))
	assert.Nil(t, booking.GenerateSlots(45)) // not a half-hour multiple
}

func TestTimeSlotDisplay(t *testing.T) {
	slot, err := booking.NewTimeSlot(8*60, 6*60)
	require.NoError(t, err)
	assert.Equal(t, "8:00 AM - 2:00 PM", slot.Display())

	evening, err := booking.NewTimeSlot(19*60, 2*60)
	require.NoError(t, err)
	assert.Equal(t, "7:00 PM - 9:00 PM", evening.Display())
}

func TestDurationFromHours(t *testing.T) {
	min, err := booking.DurationFromHours(2.5)
	require.NoError(t, err)
	assert.Equal(t, 150, min)

	_, err = booking.DurationFromHours(0)
	assert.ErrorIs(t, err, booking.ErrInvalidDuration)

	_, err = booking.DurationFromHours(1.25)
	assert.ErrorIs(t, err, booking.ErrInvalidDuration)
}
