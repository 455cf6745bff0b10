package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/crewtrack/internal/models"
	"github.com/garnizeh/crewtrack/internal/query"
	"github.com/garnizeh/crewtrack/internal/validation"
	"github.com/garnizeh/crewtrack/pkg/repository"
)

const msgJobNotFound = "Job not found"

type JobsHandler struct {
	jobRepo    repository.JobRepo
	workerRepo repository.WorkerRepo
	validator  *validation.Validator
}

func NewJobsHandler(jr repository.JobRepo, wr repository.WorkerRepo, v *validation.Validator) *JobsHandler {
	return &JobsHandler{jobRepo: jr, workerRepo: wr, validator: v}
}

type listJobsResponse struct {
	Jobs       []models.Job      `json:"jobs"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
}

func (h *JobsHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		respondError(w, r, err, "")
		return
	}
	if err := h.validator.Validate(r.Context(), validation.Job, body); err != nil {
		respondError(w, r, err, "")
		return
	}

	var in models.JobInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := in.Validate(); err != nil {
		respondError(w, r, err, "")
		return
	}

	job, err := h.jobRepo.CreateJob(r.Context(), in.Job())
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	writeJSON(w, job, http.StatusCreated)
}

func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, p, err := h.jobRepo.ListJobs(r.Context(), query.ParseJobQuery(r.URL.Query()))
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	writeJSON(w, listJobsResponse{Jobs: jobs, Pagination: p}, http.StatusOK)
}

func (h *JobsHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgJobNotFound)
		return
	}

	if err := h.jobRepo.DeleteJob(r.Context(), id); err != nil {
		respondError(w, r, err, msgJobNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListJobWorkers returns the workers assigned to one job as a bare array.
func (h *JobsHandler) ListJobWorkers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusNotFound, msgJobNotFound)
		return
	}

	workers, err := h.workerRepo.ListWorkersByJob(r.Context(), id)
	if err != nil {
		respondError(w, r, err, msgJobNotFound)
		return
	}

	writeJSON(w, workers, http.StatusOK)
}

// pathID reads the {id} route variable. The route only admits digits, so a
// failure here means the value overflows int64.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
