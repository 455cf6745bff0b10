package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/garnizeh/crewtrack/internal/config"
	"github.com/garnizeh/crewtrack/internal/db"
	"github.com/garnizeh/crewtrack/internal/repository/sqlite"
	"github.com/garnizeh/crewtrack/internal/validation"
	"github.com/garnizeh/crewtrack/pkg/repository"
)

// Repos bundles the stores the handlers depend on.
type Repos struct {
	Jobs    repository.JobRepo
	Workers repository.WorkerRepo
	Stats   repository.StatsRepo
	Health  repository.HealthChecker
}

// SetupRoutes wires the handlers to a SQLite-backed repository.
func SetupRoutes(cfg *config.Config, version, buildTime string, d *db.DB) (http.Handler, error) {
	repo := sqlite.New(d, logger)
	return NewRouter(cfg, version, buildTime, Repos{Jobs: repo, Workers: repo, Stats: repo, Health: repo})
}

// NewRouter builds the HTTP handler. Request id, logging, recovery and CORS
// wrap the router itself so that 404 and 405 responses pass through them too.
func NewRouter(cfg *config.Config, version, buildTime string, repos Repos) (http.Handler, error) {
	v, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.Use(RateLimit(cfg.RateLimitRPS))

	systemHandler := NewSystemHandler(repos.Health)
	jobsHandler := NewJobsHandler(repos.Jobs, repos.Workers, v)
	workersHandler := NewWorkersHandler(repos.Workers, v, cfg.DefaultPageSize)
	statsHandler := NewStatsHandler(repos.Stats)

	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	r.HandleFunc("/jobs", jobsHandler.CreateJob).Methods("POST")
	r.HandleFunc("/jobs", jobsHandler.ListJobs).Methods("GET")
	r.HandleFunc("/jobs/{id:[0-9]+}", jobsHandler.DeleteJob).Methods("DELETE")
	r.HandleFunc("/jobs/{id:[0-9]+}/workers", jobsHandler.ListJobWorkers).Methods("GET")

	r.HandleFunc("/workers", workersHandler.CreateWorker).Methods("POST")
	r.HandleFunc("/workers", workersHandler.ListWorkers).Methods("GET")
	r.HandleFunc("/workers/bulk", workersHandler.BulkCreateWorkers).Methods("POST")

	r.HandleFunc("/stats", statsHandler.Stats).Methods("GET")

	var h http.Handler = r
	h = CORSMiddleware(cfg.CORSOrigins)(h)
	h = RecoveryMiddleware(h)
	h = LoggingMiddleware(h)
	h = RequestIDMiddleware(h)

	return h, nil
}
