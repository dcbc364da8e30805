package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "facility_booking",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facility_booking",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted into the pending state.",
		},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facility_booking",
			Name:      "slot_conflicts_total",
			Help:      "Booking attempts rejected for slot or stock conflicts.",
		},
	)

	bookingsApproved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facility_booking",
			Name:      "bookings_approved_total",
			Help:      "Bookings moved into a confirmed state.",
		},
	)

	paymentsVerified = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facility_booking",
			Name:      "payments_verified_total",
			Help:      "Gateway payments verified and recorded.",
		},
	)

	notifyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "facility_booking",
			Name:      "notification_failures_total",
			Help:      "Notification publishes that failed and were dropped.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			bookingsCreated,
			slotConflicts,
			bookingsApproved,
			paymentsVerified,
			notifyFailures,
		)
	})
}

// Handler serves the scrape endpoint for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func IncHTTP(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

func IncBookingCreated()  { bookingsCreated.Inc() }
func IncSlotConflict()    { slotConflicts.Inc() }
func IncBookingApproved() { bookingsApproved.Inc() }
func IncPaymentVerified() { paymentsVerified.Inc() }
func IncNotifyFailure()   { notifyFailures.Inc() }
