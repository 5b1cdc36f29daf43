package handlers

import (
	"net/http"
	"tour-planner-service/internal/ports"

	"go.uber.org/zap"
)

// HealthHandler provides a minimal liveness check that also confirms the city
// catalog is reachable.
type HealthHandler struct {
	Cities ports.CityRepository
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cities, err := h.Cities.ListCities(r.Context())
	if err != nil {
		zap.L().Warn("health: catalog unavailable", zap.Error(err))
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]any{"status": "degraded"})
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "cities": len(cities)})
}
