package handlers

import (
	"net/http"
	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/ports"
)

// CityHandler exposes the read-only city catalog.
type CityHandler struct {
	Cities       ports.CityRepository
	DefaultStart string
}

func (h *CityHandler) List(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Cities.ListCities(r.Context())
	if err != nil {
		writeServiceError(w, r, "list cities", err)
		return
	}

	res := dto.ListCitiesResponse{
		DefaultStart: h.DefaultStart,
		Cities:       toCityResponses(cities),
	}
	writeJSON(w, r, http.StatusOK, res)
}
