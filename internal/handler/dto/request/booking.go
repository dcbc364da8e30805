package request

import (
	"strings"
	"time"

	"facility-booking/internal/domain/booking"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ContactPayload struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone,omitempty"`
}

type CreateBookingRequest struct {
	ServiceID          uuid.UUID      `json:"service_id" binding:"required"`
	Date               string         `json:"date" binding:"required"`
	StartTime          string         `json:"start_time" binding:"required"`
	DurationHours      float64        `json:"duration_hours" binding:"required,gt=0"`
	NumberOfPeople     int            `json:"number_of_people" binding:"required,gt=0"`
	Contact            ContactPayload `json:"contact" binding:"required"`
	MembershipCategory string         `json:"membership_category,omitempty"`
}

// DateValue parses the calendar date. The zone is discarded; dates are stored
// as plain days.
func (r CreateBookingRequest) DateValue() (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(r.Date))
}

// SlotMinutes converts the wall-clock start and the hour figure into the
// minute-based slot used by the domain.
func (r CreateBookingRequest) SlotMinutes() (startMin, durationMin int, err error) {
	start, err := booking.ParseClockTime(r.StartTime)
	if err != nil {
		return 0, 0, err
	}
	durationMin, err = booking.DurationFromHours(r.DurationHours)
	if err != nil {
		return 0, 0, err
	}
	return int(start), durationMin, nil
}

func (r CreateBookingRequest) Membership() booking.MembershipCategory {
	c := booking.MembershipCategory(strings.ToLower(strings.TrimSpace(r.MembershipCategory)))
	if c == "" {
		return booking.MembershipNone
	}
	return c
}

type UpdateBookingRequest struct {
	Date           *string  `json:"date,omitempty"`
	StartTime      *string  `json:"start_time,omitempty"`
	DurationHours  *float64 `json:"duration_hours,omitempty"`
	NumberOfPeople *int     `json:"number_of_people,omitempty" binding:"omitempty,gt=0"`
	ContactPhone   *string  `json:"contact_phone,omitempty"`
}

func (r UpdateBookingRequest) TouchesSlot() bool {
	return r.Date != nil || r.StartTime != nil || r.DurationHours != nil
}

func (r UpdateBookingRequest) DateValue() (*time.Time, error) {
	if r.Date == nil {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, strings.TrimSpace(*r.Date))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r UpdateBookingRequest) StartMinutes() (*int, error) {
	if r.StartTime == nil {
		return nil, nil
	}
	start, err := booking.ParseClockTime(*r.StartTime)
	if err != nil {
		return nil, err
	}
	v := int(start)
	return &v, nil
}

func (r UpdateBookingRequest) DurationMinutes() (*int, error) {
	if r.DurationHours == nil {
		return nil, nil
	}
	d, err := booking.DurationFromHours(*r.DurationHours)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
