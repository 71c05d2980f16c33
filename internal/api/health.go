package api

import (
	"net/http"
	"time"

	"github.com/patrickwarner/helloserve/internal/middleware"

	"go.uber.org/zap"
)

// setNoCache marks a probe response as uncacheable so the orchestrator never
// observes a stale health status through an intermediary cache.
func setNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}

// HealthHandler serves the liveness probe. It answers 200 unconditionally: a
// failing liveness probe makes the orchestrator restart the pod, and this
// process has no failure mode short of being unable to answer at all.
// Does not touch the request counter.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "health"
	const method = "GET"

	logger := middleware.LoggerFromRequest(r, s.Logger)
	logger.Info("health_check",
		zap.String("endpoint", "/health"),
		zap.String("status", "healthy"),
	)

	setNoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))

	s.Metrics.IncrementProbeChecks("liveness")
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}

// ReadyHandler serves the readiness probe. Unlike liveness, a failing
// readiness probe only pauses traffic routing without restarting the pod.
// This service declares no downstream dependencies, so readiness always
// succeeds; a deployment that grows dependencies would verify them here and
// answer non-200 while they are unavailable.
func (s *Server) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "ready"
	const method = "GET"

	logger := middleware.LoggerFromRequest(r, s.Logger)
	logger.Info("readiness_check",
		zap.String("endpoint", "/ready"),
		zap.String("status", "ready"),
	)

	setNoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ready"}`))

	s.Metrics.IncrementProbeChecks("readiness")
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
