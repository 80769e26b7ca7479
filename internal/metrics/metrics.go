package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	BookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Number of bookings created",
		},
	)

	BookingsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_completed_total",
			Help: "Number of bookings completed via check-out",
		},
	)

	PaymentsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_settled_total",
			Help: "Number of settlement attempts by method and outcome",
		},
		[]string{"method", "status"},
	)

	SettlementDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name: "settlement_duration_seconds",
			Help: "Time taken to settle a payment",
		},
	)
)

func Register() {
	prometheus.MustRegister(BookingsCreated, BookingsCompleted, PaymentsSettled, SettlementDuration)
}
