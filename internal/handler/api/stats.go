package api

import (
	"net/http"

	resdto "facility-booking/internal/handler/dto/response"
	"facility-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	bookingQueries queries.BookingQueries
}

func NewStatsHandler(bookingQueries queries.BookingQueries) *StatsHandler {
	return &StatsHandler{bookingQueries: bookingQueries}
}

// @Summary Booking stats
// @Description Booking counts grouped by status and payment status
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.StatsResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /stats/bookings [get]
func (h *StatsHandler) GetBookingStats(c *gin.Context) {
	stats, err := h.bookingQueries.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatsView(stats))
}
