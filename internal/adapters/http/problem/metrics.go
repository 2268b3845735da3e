package problem

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// responsesMetric counts problem responses by status and title.
func responsesMetric(reg prometheus.Registerer) *prometheus.CounterVec {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "posts_gateway",
		Name:      "problem_responses_total",
		Help:      "Number of error responses rendered as problem details.",
	}, []string{"status", "title"})

	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		// Registration failed for another reason; count without exporting
		return counter
	}

	return counter
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
