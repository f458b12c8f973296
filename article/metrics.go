package article

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolve outcomes, used as the "outcome" metric label.
const (
	OutcomeLoaded    = "loaded"
	OutcomeNotFound  = "not_found"
	OutcomeMalformed = "malformed"
	OutcomeTransport = "transport"
	OutcomeCanceled  = "canceled"
)

var (
	resolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "articlepage",
			Name:      "resolve_total",
			Help:      "Article resolutions by outcome.",
		},
		[]string{"outcome"},
	)

	resolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "articlepage",
			Name:      "resolve_duration_seconds",
			Help:      "Time spent querying the content source for one article.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

// Outcome classifies a Resolve error into a metric label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeLoaded
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEmptySlug):
		return OutcomeNotFound
	case errors.Is(err, ErrMalformedEntry):
		return OutcomeMalformed
	default:
		return OutcomeTransport
	}
}

func recordResolve(start time.Time, err error) {
	resolveDuration.Observe(time.Since(start).Seconds())
	resolveTotal.WithLabelValues(Outcome(err)).Inc()
}
