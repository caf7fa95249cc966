package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RatingMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "product_rating_mutations_total",
		Help: "Rating upserts and deletions processed, by operation and outcome.",
	}, []string{"operation", "outcome"})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "user_login_attempts_total",
		Help: "Login attempts, by outcome.",
	}, []string{"outcome"})
)
