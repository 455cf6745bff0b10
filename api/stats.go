package api

import (
	"net/http"

	"github.com/garnizeh/crewtrack/pkg/repository"
)

type StatsHandler struct {
	statsRepo repository.StatsRepo
}

func NewStatsHandler(sr repository.StatsRepo) *StatsHandler {
	return &StatsHandler{statsRepo: sr}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.statsRepo.Stats(r.Context())
	if err != nil {
		respondError(w, r, err, "")
		return
	}

	writeJSON(w, st, http.StatusOK)
}
