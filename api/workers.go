package api

import (
	"encoding/json"
	"net/http"

	"github.com/garnizeh/crewtrack/internal/models"
	"github.com/garnizeh/crewtrack/internal/query"
	"github.com/garnizeh/crewtrack/internal/validation"
	"github.com/garnizeh/crewtrack/pkg/repository"
)

type WorkersHandler struct {
	workerRepo   repository.WorkerRepo
	validator    *validation.Validator
	defaultLimit int
}

func NewWorkersHandler(wr repository.WorkerRepo, v *validation.Validator, defaultLimit int) *WorkersHandler {
	return &WorkersHandler{workerRepo: wr, validator: v, defaultLimit: defaultLimit}
}

type listWorkersResponse struct {
	Workers    []models.Worker  `json:"workers"`
	Pagination query.Pagination `json:"pagination"`
}

func (h *WorkersHandler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if err := h.validator.Validate(r.Context(), validation.Worker, body); err != nil {
		respondError(w, r, err, "")
		return
	}

	var in models.WorkerInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, r, err, "")
		return
	}

	worker, err := h.workerRepo.CreateWorker(r.Context(), in.Worker())
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	writeJSON(w, worker, http.StatusCreated)
}

// BulkCreateWorkers accepts a JSON array of workers. Either every entry is
// stored or none is.
func (h *WorkersHandler) BulkCreateWorkers(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	items, err := h.validator.ValidateEach(r.Context(), validation.Worker, body)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	workers := make([]*models.Worker, 0, len(items))
	for _, item := range items {
		var in models.WorkerInput
		if err := json.Unmarshal(item, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "Name and role are required for all workers")
			return
		}
		workers = append(workers, in.Worker())
	}

	created, err := h.workerRepo.CreateWorkers(r.Context(), workers)
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *WorkersHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, p, err := h.workerRepo.ListWorkers(r.Context(), query.ParseWorkerQuery(r.URL.Query(), h.defaultLimit))
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	writeJSON(w, listWorkersResponse{Workers: workers, Pagination: p}, http.StatusOK)
}
