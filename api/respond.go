package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/garnizeh/crewtrack/internal/models"
)

// maxBodyBytes caps request bodies read by readBody.
const maxBodyBytes = 1 << 20

const msgInternal = "Internal server error"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, errorResponse{Error: msg}, status)
}

// respondError is the single place where errors become HTTP statuses:
// validation errors are 400 with their message, ErrNotFound is 404 and
// anything else is logged and reported as a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	default:
		logger.Error("request failed",
			slog.Any("err", err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", RequestID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// readBody reads at most maxBodyBytes from the request.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return nil, models.NewValidationError("Request body too large")
		}
		return nil, models.NewValidationError("Invalid request body")
	}

	return b, nil
}
