package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickwarner/helloserve/internal/config"
	"github.com/patrickwarner/helloserve/internal/observability"
	"github.com/patrickwarner/helloserve/internal/stats"

	"go.uber.org/zap"
)

const testGreeting = "Hello from Go on Kubernetes (Minikube)!"

func newTestServer() *Server {
	return NewServer(
		zap.NewNop(),
		observability.NewNoOpRegistry(),
		config.Config{
			ServiceName: "helloserve",
			AppVersion:  "1.0.0",
			Greeting:    testGreeting,
		},
		stats.NewRequestCounter(),
	)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// ===== Root endpoint =====

func TestHomeReturns200(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHomeResponseContent(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/")

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
	var body GreetingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Message != testGreeting {
		t.Fatalf("expected greeting %q, got %q", testGreeting, body.Message)
	}
}

func TestResponseLatency(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	start := time.Now()
	rec := get(t, r, "/")
	elapsed := time.Since(start)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("root endpoint took %v, expected under 200ms", elapsed)
	}
}

func TestInvalidRouteReturns404(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/nonexistent")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// ===== Health endpoint (liveness probe) =====

func TestHealthEndpointReturns200(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthEndpointContent(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/health")

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("expected status healthy, got %q", body["status"])
	}
}

func TestHealthEndpointPerformance(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	start := time.Now()
	rec := get(t, r, "/health")
	elapsed := time.Since(start)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("health probe took %v, expected under 200ms", elapsed)
	}
}

func TestHealthEndpointCacheControl(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/health")

	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache, no-store, must-revalidate" {
		t.Fatalf("unexpected Cache-Control %q", cc)
	}
}

func TestHealthEndpointHeaders(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/health")

	want := map[string]string{
		"Content-Type":  "application/json",
		"Cache-Control": "no-cache, no-store, must-revalidate",
		"Pragma":        "no-cache",
		"Expires":       "0",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Fatalf("header %s: expected %q, got %q", header, value, got)
		}
	}
}

func TestHealthEndpointHTTPMethods(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/health", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s /health: expected 405, got %d", method, rec.Code)
		}
	}
}

func TestHealthEndpointConsistency(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	first := get(t, r, "/health")
	for i := 0; i < 4; i++ {
		rec := get(t, r, "/health")
		if rec.Code != first.Code {
			t.Fatalf("call %d: status changed from %d to %d", i+2, first.Code, rec.Code)
		}
		if rec.Body.String() != first.Body.String() {
			t.Fatalf("call %d: body changed from %q to %q", i+2, first.Body.String(), rec.Body.String())
		}
	}
}

func TestHealthEndpointNoSideEffects(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	before := srv.Requests.Value()
	for i := 0; i < 3; i++ {
		get(t, r, "/health")
	}
	if after := srv.Requests.Value(); after != before {
		t.Fatalf("health probe mutated request counter: %d -> %d", before, after)
	}
}

func TestHealthVsRootEndpointIndependence(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	get(t, r, "/")
	if got := srv.Requests.Value(); got != 1 {
		t.Fatalf("expected counter 1 after root request, got %d", got)
	}

	rec := get(t, r, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := srv.Requests.Value(); got != 1 {
		t.Fatalf("health probe changed counter to %d", got)
	}
}

// ===== Ready endpoint (readiness probe) =====

func TestReadyEndpointReturns200(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/ready")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadyEndpointContent(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/ready")

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ready" {
		t.Fatalf("expected status ready, got %q", body["status"])
	}
}

func TestReadyEndpointPerformance(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	start := time.Now()
	rec := get(t, r, "/ready")
	elapsed := time.Since(start)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("readiness probe took %v, expected under 200ms", elapsed)
	}
}

func TestReadyEndpointCacheControl(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/ready")

	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache, no-store, must-revalidate" {
		t.Fatalf("unexpected Cache-Control %q", cc)
	}
}

func TestReadyEndpointCacheControlDetailed(t *testing.T) {
	srv := newTestServer()
	rec := get(t, NewRouter(srv), "/ready")

	if pragma := rec.Header().Get("Pragma"); pragma != "no-cache" {
		t.Fatalf("expected Pragma no-cache, got %q", pragma)
	}
	if expires := rec.Header().Get("Expires"); expires != "0" {
		t.Fatalf("expected Expires 0, got %q", expires)
	}
	cc := rec.Header().Get("Cache-Control")
	for _, directive := range []string{"no-cache", "no-store", "must-revalidate"} {
		if !headerContainsDirective(cc, directive) {
			t.Fatalf("Cache-Control %q missing directive %q", cc, directive)
		}
	}
}

func TestReadyEndpointHTTPMethods(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/ready", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s /ready: expected 405, got %d", method, rec.Code)
		}
	}
}

func TestReadyEndpointConsistency(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	first := get(t, r, "/ready")
	for i := 0; i < 4; i++ {
		rec := get(t, r, "/ready")
		if rec.Code != first.Code {
			t.Fatalf("call %d: status changed from %d to %d", i+2, first.Code, rec.Code)
		}
		if rec.Body.String() != first.Body.String() {
			t.Fatalf("call %d: body changed from %q to %q", i+2, first.Body.String(), rec.Body.String())
		}
	}
}

func TestReadyEndpointNoSideEffects(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	before := srv.Requests.Value()
	for i := 0; i < 3; i++ {
		get(t, r, "/ready")
	}
	if after := srv.Requests.Value(); after != before {
		t.Fatalf("readiness probe mutated request counter: %d -> %d", before, after)
	}
}

func TestReadyVsHealthIndependence(t *testing.T) {
	srv := newTestServer()
	r := NewRouter(srv)

	health := get(t, r, "/health")
	ready := get(t, r, "/ready")

	if health.Code != http.StatusOK || ready.Code != http.StatusOK {
		t.Fatalf("expected both probes to answer 200, got %d and %d", health.Code, ready.Code)
	}
	if health.Body.String() == ready.Body.String() {
		t.Fatalf("liveness and readiness payloads must differ, both were %q", health.Body.String())
	}
}

// headerContainsDirective reports whether a comma-separated header value
// contains the given directive.
func headerContainsDirective(header, directive string) bool {
	start := 0
	for i := 0; i <= len(header); i++ {
		if i == len(header) || header[i] == ',' {
			token := header[start:i]
			for len(token) > 0 && token[0] == ' ' {
				token = token[1:]
			}
			for len(token) > 0 && token[len(token)-1] == ' ' {
				token = token[:len(token)-1]
			}
			if token == directive {
				return true
			}
			start = i + 1
		}
	}
	return false
}
