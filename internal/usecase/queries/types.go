package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	ServiceID          uuid.UUID  `json:"service_id"`
	ServiceName        string     `json:"service_name"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	SlotDisplay        string     `json:"slot_display"`
	DurationHours      float64    `json:"duration_hours"`
	NumberOfPeople     int        `json:"number_of_people"`
	ContactEmail       string     `json:"contact_email"`
	ContactName        string     `json:"contact_name"`
	ContactPhone       string     `json:"contact_phone,omitempty"`
	MembershipCategory string     `json:"membership_category"`
	ServiceAmountCents int64      `json:"service_amount_cents"`
	DiscountCents      int64      `json:"discount_cents"`
	CleaningFeeApplied bool       `json:"cleaning_fee_applied"`
	CleaningFeeCents   int64      `json:"cleaning_fee_cents"`
	TotalCents         int64      `json:"total_cents"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"payment_status"`
	PaymentRef         *string    `json:"payment_ref,omitempty"`
	PaidAt             *time.Time `json:"paid_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID             uuid.UUID `json:"id"`
	ServiceName    string    `json:"service_name"`
	Date           string    `json:"date"`
	SlotDisplay    string    `json:"slot_display"`
	NumberOfPeople int       `json:"number_of_people"`
	TotalCents     int64     `json:"total_cents"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"payment_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type SlotView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Display   string `json:"display"`
}

type StatsView struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"by_status"`
	ByPaymentStatus map[string]int64 `json:"by_payment_status"`
}
