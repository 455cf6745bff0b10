package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/garnizeh/crewtrack/api"
	"github.com/garnizeh/crewtrack/pkg/repository/mock"
)

func newMockHandler(t *testing.T, m *mock.Repo) http.Handler {
	t.Helper()
	h, err := api.NewRouter(testConfig(), "v1.2.3", "2024-01-01T00:00:00Z", api.Repos{Jobs: m, Workers: m, Stats: m, Health: m})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return h
}

func TestVersionHandler(t *testing.T) {
	h := newMockHandler(t, mock.New())

	var body map[string]string
	expect(t, do(t, h, http.MethodGet, "/version", ""), http.StatusOK, &body)
	if body["version"] != "v1.2.3" || body["buildTime"] != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected version body: %v", body)
	}
}

func TestHealthHandler(t *testing.T) {
	m := mock.New()
	h := newMockHandler(t, m)

	var body map[string]string
	expect(t, do(t, h, http.MethodGet, "/health", ""), http.StatusOK, &body)
	if body["status"] != "ok" || body["service"] != "crewtrack" {
		t.Fatalf("unexpected health body: %v", body)
	}

	m.Err = errors.New("db gone")
	expect(t, do(t, h, http.MethodGet, "/health", ""), http.StatusServiceUnavailable, &body)
	if body["status"] != "unavailable" {
		t.Fatalf("unexpected health body: %v", body)
	}
}

func TestHealthHandler_RealDB(t *testing.T) {
	h := setupHandler(t)
	expect(t, do(t, h, http.MethodGet, "/health", ""), http.StatusOK, nil)
}

func TestRouting(t *testing.T) {
	h := newMockHandler(t, mock.New())

	expectError(t, do(t, h, http.MethodGet, "/nope", ""), http.StatusNotFound, "Not found")
	expectError(t, do(t, h, http.MethodPut, "/jobs", ""), http.StatusMethodNotAllowed, "Method not allowed")
	expectError(t, do(t, h, http.MethodGet, "/jobs/1", ""), http.StatusMethodNotAllowed, "Method not allowed")

	// preflight is answered before routing
	w := do(t, h, http.MethodOptions, "/jobs/1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}

	// every response carries a request id, including router errors
	if w := do(t, h, http.MethodGet, "/nope", ""); w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID on 404")
	}
}

func TestInternalErrorsAreHidden(t *testing.T) {
	m := mock.New()
	h := newMockHandler(t, m)
	m.Err = errors.New("disk I/O error: secret path /var/lib/x")

	requests := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/jobs"},
		{method: http.MethodPost, path: "/jobs", body: `{"name":"A","customer":"C"}`},
		{method: http.MethodDelete, path: "/jobs/1"},
		{method: http.MethodGet, path: "/jobs/1/workers"},
		{method: http.MethodGet, path: "/workers"},
		{method: http.MethodPost, path: "/workers", body: `{"name":"W","role":"R"}`},
		{method: http.MethodPost, path: "/workers/bulk", body: `[{"name":"W","role":"R"}]`},
		{method: http.MethodGet, path: "/stats"},
	}
	for _, rq := range requests {
		t.Run(rq.method+" "+rq.path, func(t *testing.T) {
			expectError(t, do(t, h, rq.method, rq.path, rq.body), http.StatusInternalServerError, "Internal server error")
		})
	}
}

func TestValidationHappensBeforeStore(t *testing.T) {
	m := mock.New()
	h := newMockHandler(t, m)

	expectError(t, do(t, h, http.MethodPost, "/jobs", `{"name":"A","customer":"C","status":"Bogus"}`), http.StatusBadRequest, "Invalid status")
	expectError(t, do(t, h, http.MethodPost, "/workers/bulk", `[{"name":"a","role":"r"},{"name":"b"}]`), http.StatusBadRequest, "")

	if m.Calls["CreateJob"] != 0 || m.Calls["CreateWorkers"] != 0 {
		t.Fatalf("store must not be reached for invalid input: %v", m.Calls)
	}
}

func TestRateLimitedRouter(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitRPS = 1
	m := mock.New()
	h, err := api.NewRouter(cfg, "v", "b", api.Repos{Jobs: m, Workers: m, Stats: m, Health: m})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	expect(t, do(t, h, http.MethodPost, "/jobs", `{"name":"A","customer":"C"}`), http.StatusCreated, nil)
	expectError(t, do(t, h, http.MethodPost, "/jobs", `{"name":"B","customer":"C"}`), http.StatusTooManyRequests, "Too many requests")
	expect(t, do(t, h, http.MethodGet, "/jobs", ""), http.StatusOK, nil)
}
