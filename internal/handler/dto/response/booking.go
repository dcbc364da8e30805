package response

import (
	"time"

	"facility-booking/internal/usecase/commands"
	"facility-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ServiceID          uuid.UUID  `json:"serviceId"`
	ServiceName        string     `json:"serviceName"`
	Date               string     `json:"date"`
	StartTime          string     `json:"startTime"`
	EndTime            string     `json:"endTime"`
	Slot               string     `json:"slot"`
	DurationHours      float64    `json:"durationHours"`
	NumberOfPeople     int        `json:"numberOfPeople"`
	ContactEmail       string     `json:"contactEmail"`
	ContactName        string     `json:"contactName"`
	ContactPhone       string     `json:"contactPhone,omitempty"`
	MembershipCategory string     `json:"membershipCategory"`
	ServiceAmountCents int64      `json:"serviceAmountCents"`
	DiscountCents      int64      `json:"discountCents"`
	CleaningFeeApplied bool       `json:"cleaningFeeApplied"`
	CleaningFeeCents   int64      `json:"cleaningFeeCents"`
	TotalCents         int64      `json:"totalCents"`
	Status             string     `json:"status"`
	PaymentStatus      string     `json:"paymentStatus"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID             uuid.UUID `json:"id"`
	ServiceName    string    `json:"serviceName"`
	Date           string    `json:"date"`
	Slot           string    `json:"slot"`
	NumberOfPeople int       `json:"numberOfPeople"`
	TotalCents     int64     `json:"totalCents"`
	Status         string    `json:"status"`
	PaymentStatus  string    `json:"paymentStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}

type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Display   string `json:"display"`
}

type PaymentIntentResponse struct {
	IntentID     string `json:"intentId"`
	ClientSecret string `json:"clientSecret"`
}

type VerifyPaymentResponse struct {
	Completed bool             `json:"completed"`
	Booking   *BookingResponse `json:"booking,omitempty"`
}

type StatsResponse struct {
	Total           int64            `json:"total"`
	ByStatus        map[string]int64 `json:"byStatus"`
	ByPaymentStatus map[string]int64 `json:"byPaymentStatus"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                 rm.ID,
		ServiceID:          rm.ServiceID,
		ServiceName:        rm.ServiceName,
		Date:               rm.Date,
		StartTime:          rm.StartTime,
		EndTime:            rm.EndTime,
		Slot:               rm.SlotDisplay,
		DurationHours:      rm.DurationHours,
		NumberOfPeople:     rm.NumberOfPeople,
		ContactEmail:       rm.ContactEmail,
		ContactName:        rm.ContactName,
		ContactPhone:       rm.ContactPhone,
		MembershipCategory: rm.MembershipCategory,
		ServiceAmountCents: rm.ServiceAmountCents,
		DiscountCents:      rm.DiscountCents,
		CleaningFeeApplied: rm.CleaningFeeApplied,
		CleaningFeeCents:   rm.CleaningFeeCents,
		TotalCents:         rm.TotalCents,
		Status:             rm.Status,
		PaymentStatus:      rm.PaymentStatus,
		PaidAt:             rm.PaidAt,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:             rm.ID,
		ServiceName:    rm.ServiceName,
		Date:           rm.Date,
		Slot:           rm.SlotDisplay,
		NumberOfPeople: rm.NumberOfPeople,
		TotalCents:     rm.TotalCents,
		Status:         rm.Status,
		PaymentStatus:  rm.PaymentStatus,
		CreatedAt:      rm.CreatedAt,
	}
}

func FromSlotView(v queries.SlotView) SlotResponse {
	return SlotResponse{
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		Display:   v.Display,
	}
}

func FromPaymentIntent(pi *commands.PaymentIntent) *PaymentIntentResponse {
	return &PaymentIntentResponse{
		IntentID:     pi.IntentID,
		ClientSecret: pi.ClientSecret,
	}
}

func FromVerifyPaymentResult(r *commands.VerifyPaymentResult) *VerifyPaymentResponse {
	resp := &VerifyPaymentResponse{Completed: r.Completed}
	if r.Booking != nil {
		resp.Booking = FromBookingView(r.Booking)
	}
	return resp
}

func FromStatsView(v *queries.StatsView) *StatsResponse {
	return &StatsResponse{
		Total:           v.Total,
		ByStatus:        v.ByStatus,
		ByPaymentStatus: v.ByPaymentStatus,
	}
}
