package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidSlot     = errors.New("invalid time slot")
	ErrInvalidDuration = errors.New("duration must be a positive multiple of 30 minutes")
	ErrNegativeMoney   = errors.New("money cannot be negative")
	ErrInvalidContact  = errors.New("contact requires email and name")
)

// TimeSlot is a half-open [start, end) interval expressed in minutes from
// midnight on some calendar date. All overlap math happens in minutes so no
// floating point is involved.
type TimeSlot struct {
	startMin int
	endMin   int
}

func NewTimeSlot(startMin, durationMin int) (TimeSlot, error) {
	if startMin < 0 || startMin >= minutesPerDay {
		return TimeSlot{}, ErrInvalidSlot
	}
	if durationMin <= 0 || durationMin%30 != 0 {
		return TimeSlot{}, ErrInvalidDuration
	}
	end := startMin + durationMin
	if end > minutesPerDay {
		return TimeSlot{}, ErrInvalidSlot
	}
	return TimeSlot{startMin: startMin, endMin: end}, nil
}

// ReconstructTimeSlot rebuilds a slot from persisted values without
// re-validating; the store is trusted.
func ReconstructTimeSlot(startMin, endMin int) TimeSlot {
	return TimeSlot{startMin: startMin, endMin: endMin}
}

func (ts TimeSlot) StartMinutes() int    { return ts.startMin }
func (ts TimeSlot) EndMinutes() int      { return ts.endMin }
func (ts TimeSlot) DurationMinutes() int { return ts.endMin - ts.startMin }

func (ts TimeSlot) DurationHours() float64 {
	return float64(ts.DurationMinutes()) / 60.0
}

// Overlaps uses half-open semantics: a slot ending exactly when another
// starts does not overlap it.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.startMin < other.endMin && ts.endMin > other.startMin
}

func (ts TimeSlot) Start() ClockTime { return ClockTime(ts.startMin) }
func (ts TimeSlot) End() ClockTime   { return ClockTime(ts.endMin) }

// Display renders the slot on a 12-hour clock, e.g. "8:00 AM - 2:00 PM".
func (ts TimeSlot) Display() string {
	return ts.Start().Display() + " - " + ts.End().Display()
}

// ClockTime is a time of day in minutes from midnight.
type ClockTime int

func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c ClockTime) Display() string {
	h := int(c) / 60
	m := int(c) % 60
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// DurationFromHours converts an hour figure (multiples of 0.5) to whole
// minutes. Anything that does not land on a half-hour boundary is rejected.
func DurationFromHours(hours float64) (int, error) {
	halfHours := hours * 2
	if halfHours <= 0 || halfHours != float64(int(halfHours)) {
		return 0, ErrInvalidDuration
	}
	return int(halfHours) * 30, nil
}

// Money is an amount in integer minor units (cents).
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeMoney
	}
	return Money{cents: cents}, nil
}

func MustMoney(cents int64) Money {
	m, err := NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return m.cents }
func (m Money) IsZero() bool { return m.cents == 0 }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// ApplyPercentDiscount returns the discounted amount and the discount taken.
// Integer math; the discounted amount is computed first so the two parts
// always sum back to the original.
func (m Money) ApplyPercentDiscount(percent int64) (discounted, discount Money) {
	if percent <= 0 {
		return m, Money{}
	}
	if percent >= 100 {
		return Money{}, m
	}
	d := Money{cents: m.cents * (100 - percent) / 100}
	return d, Money{cents: m.cents - d.cents}
}

// Contact identifies the requester of a booking.
type Contact struct {
	email string
	name  string
	phone string
}

func NewContact(email, name, phone string) (Contact, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return Contact{}, ErrInvalidContact
	}
	return Contact{email: email, name: name, phone: strings.TrimSpace(phone)}, nil
}

func (c Contact) Email() string { return c.email }
func (c Contact) Name() string  { return c.name }
func (c Contact) Phone() string { return c.phone }
