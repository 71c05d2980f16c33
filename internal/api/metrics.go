package api

import (
	"net/http"
	"time"

	"github.com/patrickwarner/helloserve/internal/middleware"

	"go.uber.org/zap"
)

// AppMetrics is the application metrics document served at /metrics. It is a
// pod-local snapshot: the counter and uptime reset whenever the pod restarts.
type AppMetrics struct {
	App           string  `json:"app"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	RequestCount  int64   `json:"request_count"`
	Timestamp     string  `json:"timestamp"`
	Status        string  `json:"status"`
}

// MetricsHandler serves GET /metrics. Read-only apart from logging; the
// Prometheus exposition format lives at /prometheus.
func (s *Server) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "metrics"
	const method = "GET"

	logger := middleware.LoggerFromRequest(r, s.Logger)
	logger.Info("metrics_request",
		zap.String("endpoint", "/metrics"),
	)

	writeJSON(w, AppMetrics{
		App:           s.Config.ServiceName,
		Version:       s.Config.AppVersion,
		UptimeSeconds: s.Requests.UptimeSeconds(),
		RequestCount:  s.Requests.Value(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Status:        statusRunning,
	})

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
