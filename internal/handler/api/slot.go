package api

import (
	"net/http"
	"strconv"
	"time"

	"facility-booking/internal/domain/booking"
	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	slotQueries queries.SlotQueries
}

func NewSlotHandler(slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{slotQueries: slotQueries}
}

// @Summary List available slots
// @Description List the policy slots for a date and duration, minus booked ones
// @Tags slots
// @Produce json
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Param duration_hours query number true "Duration in hours, multiples of 0.5"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Router /slots [get]
func (h *SlotHandler) ListAvailableSlots(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	hours, err := strconv.ParseFloat(c.Query("duration_hours"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid duration_hours",
		})
		return
	}
	durationMin, err := booking.DurationFromHours(hours)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "duration_hours must be a positive multiple of 0.5",
		})
		return
	}

	views, err := h.slotQueries.ListAvailable(c.Request.Context(), date, durationMin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]resdto.SlotResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromSlotView(v)
	}
	c.JSON(http.StatusOK, response)
}
