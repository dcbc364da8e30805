package api

import (
	"errors"
	"net/http"

	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	bookingCommands commands.BookingCommands
}

func NewPaymentHandler(bookingCommands commands.BookingCommands) *PaymentHandler {
	return &PaymentHandler{bookingCommands: bookingCommands}
}

// @Summary Create embedded payment intent
// @Description Open an in-form payment for a booking that is still pending approval
// @Tags payments
// @Produce json
// @Param id path string true "Booking ID"
// @Success 201 {object} resdto.PaymentIntentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings/{id}/payment-intent [post]
func (h *PaymentHandler) CreateEmbeddedIntent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	intent, err := h.bookingCommands.CreateEmbeddedIntent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPaymentIntent(intent))
}

// @Summary Verify payment
// @Description Check a gateway reference and settle the booking it belongs to
// @Tags payments
// @Produce json
// @Param reference query string true "Gateway session or intent reference"
// @Success 200 {object} resdto.VerifyPaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /payments/verify [get]
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "reference is required",
		})
		return
	}

	result, err := h.bookingCommands.VerifyPayment(c.Request.Context(), reference)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromVerifyPaymentResult(result))
}

func (h *PaymentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Booking not found",
		})
	case errors.Is(err, commands.ErrInvalidBookingState):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Operation not allowed in current booking state",
		})
	case errors.Is(err, commands.ErrPaymentRecordMissing):
		// A verified payment with no matching booking means the stores have
		// diverged; surface it loudly rather than pretending success.
		c.JSON(http.StatusConflict, gin.H{
			"error": "Payment verified but no matching booking exists",
		})
	case errors.Is(err, commands.ErrPaymentGatewayFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Payment provider is unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
