package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helloserve_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "helloserve_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// number of greetings served from the root endpoint
	GreetingCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "helloserve_greetings_total",
			Help: "Total greeting responses served",
		},
	)

	// liveness/readiness probe hits, labelled by probe kind
	ProbeCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helloserve_probe_checks_total",
			Help: "Total health probe checks received",
		},
		[]string{"probe"},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		GreetingCount,
		ProbeCount,
	)
}
