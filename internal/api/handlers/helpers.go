package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps domain rejections to client errors and hides everything else.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, r, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrVenueNotFound):
		writeError(w, r, http.StatusNotFound, "venue booking not found")
	case errors.Is(err, domain.ErrUnknownCity):
		writeError(w, r, http.StatusBadRequest, "unknown city")
	case errors.Is(err, domain.ErrNotStarted):
		writeError(w, r, http.StatusConflict, "tour has not been started")
	case errors.Is(err, domain.ErrCityInRoute):
		writeError(w, r, http.StatusConflict, "city is already in the route")
	case errors.Is(err, domain.ErrCityNotInRoute):
		writeError(w, r, http.StatusConflict, "city is not in the route")
	case errors.Is(err, domain.ErrSessionBusy):
		writeError(w, r, http.StatusConflict, "session is busy, retry the request")
	default:
		zap.L().Error(op+" failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
