package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bartender_booking",
			Name:      "bookings_created_total",
			Help:      "Bookings created.",
		},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bartender_booking",
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions by target status.",
		},
		[]string{"to"},
	)

	emailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bartender_booking",
			Name:      "emails_sent_total",
			Help:      "Outbound notification emails by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingTransitions, emailsSent)
	})
}

// IncBookingCreated increments the created-bookings counter.
func IncBookingCreated() { bookingsCreated.Inc() }

// IncTransition increments the transition counter for a target status.
func IncTransition(to string) { bookingTransitions.WithLabelValues(to).Inc() }

// IncEmail increments the email counter with result "ok" or "error".
func IncEmail(result string) { emailsSent.WithLabelValues(result).Inc() }
