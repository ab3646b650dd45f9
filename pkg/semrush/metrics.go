package semrush

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semrush_requests_total",
			Help: "Total number of report requests by outcome.",
		},
		[]string{"report", "outcome"}, // outcome: success, empty, error, cached
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "semrush_request_duration_seconds",
			Help:    "Duration of upstream report requests including retries.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"report"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "semrush_cache_lookups_total",
			Help: "Response cache lookups by result.",
		},
		[]string{"result"}, // hit, miss, error
	)
)
