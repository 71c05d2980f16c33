package api

import (
	"encoding/json"
	"net/http"

	"github.com/patrickwarner/helloserve/internal/config"
	"github.com/patrickwarner/helloserve/internal/middleware"
	"github.com/patrickwarner/helloserve/internal/observability"
	"github.com/patrickwarner/helloserve/internal/stats"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("helloserve/api")

const statusRunning = "running"

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger   *zap.Logger
	Metrics  observability.MetricsRegistry
	Config   config.Config
	Requests *stats.RequestCounter
}

// NewServer constructs a Server. A nil counter gets a fresh one so callers
// that do not care about uptime bookkeeping can pass nil.
func NewServer(logger *zap.Logger, metrics observability.MetricsRegistry, cfg config.Config, counter *stats.RequestCounter) *Server {
	if counter == nil {
		counter = stats.NewRequestCounter()
	}
	return &Server{
		Logger:   logger,
		Metrics:  metrics,
		Config:   cfg,
		Requests: counter,
	}
}

// NewRouter builds the route table. Undefined routes fall through to mux's
// default 404 handler.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.Use(mux.MiddlewareFunc(middleware.WithRequestID()))
	r.Use(mux.MiddlewareFunc(middleware.WithTraceLogger(s.Logger)))

	r.HandleFunc("/", s.GreetingHandler).Methods("GET")
	r.HandleFunc("/health", s.HealthHandler).Methods("GET")
	r.HandleFunc("/ready", s.ReadyHandler).Methods("GET")
	r.HandleFunc("/metrics", s.MetricsHandler).Methods("GET")

	// Prometheus exposition endpoint. /metrics is taken by the JSON
	// application metrics document, so the scrape target lives here.
	r.Handle("/prometheus", promhttp.Handler()).Methods("GET")

	return r
}

// helper function to write JSON response
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
