package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Booking outcomes recorded under the "result" label.
const (
	ResultBooked     = "booked"
	ResultSeatTaken  = "seat_taken"
	ResultSoldOut    = "sold_out"
	ResultRejected   = "rejected"
	ResultStorageErr = "storage_error"
)

var (
	BookingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transitbook_bookings_total",
		Help: "Booking attempts by result",
	}, []string{"result"})

	BookingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transitbook_booking_duration_seconds",
		Help:    "Time taken by the booking transaction",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
	})

	TicketsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "transitbook_tickets_cancelled_total",
		Help: "Tickets cancelled by passengers or admins",
	})
)
