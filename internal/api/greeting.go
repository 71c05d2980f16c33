package api

import (
	"net/http"
	"time"

	"github.com/patrickwarner/helloserve/internal/middleware"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// GreetingResponse is the body returned by the root endpoint.
type GreetingResponse struct {
	Message string `json:"message"`
}

// GreetingHandler serves GET /. It increments the request counter and returns
// the configured greeting. The counter mutation is the only state change any
// route performs.
func (s *Server) GreetingHandler(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "GreetingHandler",
		trace.WithAttributes(
			attribute.String("http.method", "GET"),
			attribute.String("http.route", "/"),
		))
	defer span.End()

	// Get trace-aware logger from middleware
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "root"
	const method = "GET"

	count := s.Requests.Inc()
	span.SetAttributes(attribute.Int64("request_count", count))

	logger.Info("request",
		zap.String("endpoint", "/"),
		zap.String("method", r.Method),
		zap.String("remote_addr", r.RemoteAddr),
		zap.Int64("request_count", count),
	)

	writeJSON(w, GreetingResponse{Message: s.Config.Greeting})

	s.Metrics.IncrementGreetings()
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
}
