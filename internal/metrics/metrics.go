package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	OrderTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Applied order status transitions by target status",
		},
		[]string{"target"},
	)

	OrderTransitionConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_transition_conflicts_total",
			Help: "Transitions lost to a concurrent writer",
		},
	)

	ReviewsSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_submitted_total",
			Help: "Reviews accepted and persisted",
		},
	)

	AggregateRecomputesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rating_aggregate_recomputes_total",
			Help: "Full artist rating recomputations",
		},
	)
)

func Register() {
	prometheus.MustRegister(OrderTransitionsTotal)
	prometheus.MustRegister(OrderTransitionConflictsTotal)
	prometheus.MustRegister(ReviewsSubmittedTotal)
	prometheus.MustRegister(AggregateRecomputesTotal)
}
