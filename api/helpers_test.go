package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garnizeh/crewtrack/api"
	dbfs "github.com/garnizeh/crewtrack/db"
	"github.com/garnizeh/crewtrack/internal/config"
	"github.com/garnizeh/crewtrack/internal/db"
)

func testConfig() *config.Config {
	return &config.Config{
		Addr:            ":0",
		DatabasePath:    ":memory:",
		LogLevel:        "info",
		CORSOrigins:     []string{"*"},
		DefaultPageSize: config.DefaultPageSize,
	}
}

// setupHandler returns the full handler over a fresh migrated in-memory database.
func setupHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()

	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h, err := api.SetupRoutes(testConfig(), "test", "now", d)
	if err != nil {
		t.Fatalf("SetupRoutes: %v", err)
	}
	return h
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// expect asserts the status code and decodes the body into out when non-nil.
func expect(t *testing.T, w *httptest.ResponseRecorder, status int, out any) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
	if out == nil {
		return
	}
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	expect(t, w, status, &body)
	if msg != "" && body.Error != msg {
		t.Fatalf("expected error %q, got %q", msg, body.Error)
	}
	if body.Error == "" {
		t.Fatalf("expected non-empty error message")
	}
}

type jobJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Customer    string  `json:"customer"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Status      *string `json:"status"`
	WorkerCount int64   `json:"workerCount"`
}

type workerJSON struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	JobID *int64 `json:"jobId"`
}

type paginationJSON struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
	Total   int64 `json:"total"`
	Pages   int64 `json:"pages"`
}

type jobsJSON struct {
	Jobs       []jobJSON       `json:"jobs"`
	Pagination *paginationJSON `json:"pagination"`
}

type workersJSON struct {
	Workers    []workerJSON    `json:"workers"`
	Pagination *paginationJSON `json:"pagination"`
}

func createJob(t *testing.T, h http.Handler, body string) jobJSON {
	t.Helper()
	var j jobJSON
	expect(t, do(t, h, http.MethodPost, "/jobs", body), http.StatusCreated, &j)
	return j
}

func listJobs(t *testing.T, h http.Handler, qs string) jobsJSON {
	t.Helper()
	var out jobsJSON
	expect(t, do(t, h, http.MethodGet, "/jobs"+qs, ""), http.StatusOK, &out)
	return out
}
