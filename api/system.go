package api

import (
	"log/slog"
	"net/http"

	"github.com/garnizeh/crewtrack/pkg/repository"
)

type SystemHandler struct {
	health repository.HealthChecker
}

func NewSystemHandler(hc repository.HealthChecker) *SystemHandler {
	return &SystemHandler{health: hc}
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		logger.Warn("health check failed", slog.Any("err", err))
		writeJSON(w, healthResponse{Status: "unavailable", Service: "crewtrack"}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, healthResponse{Status: "ok", Service: "crewtrack"}, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"version": version, "buildTime": buildTime}, http.StatusOK)
	}
}
