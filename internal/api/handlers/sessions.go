package handlers

import (
	"net/http"
	"strings"
	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/locale"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"

	"github.com/go-playground/validator/v10"
)

// SessionHandler exposes the route accumulator of one planning session.
// Every mutating endpoint answers with the refreshed tour view.
type SessionHandler struct {
	Planner  *services.TourPlanner
	Exporter ports.ItineraryExporter
	Validate *validator.Validate
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := h.Planner.CreateSession(r.Context())
	if err != nil {
		writeServiceError(w, r, "create session", err)
		return
	}

	w.Header().Set("Location", "/sessions/"+id)
	writeJSON(w, r, http.StatusCreated, dto.CreateSessionResponse{SessionID: id})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tour, err := h.Planner.Tour(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get session", err)
		return
	}
	h.writeTour(w, r, http.StatusOK, id, tour)
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Planner.EndSession(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, "delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.CityRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, h.Validate, &req) {
		return
	}

	id := r.PathValue("id")
	tour, err := h.Planner.Start(r.Context(), id, req.City)
	if err != nil {
		writeServiceError(w, r, "start tour", err)
		return
	}
	h.writeTour(w, r, http.StatusOK, id, tour)
}

func (h *SessionHandler) AddStop(w http.ResponseWriter, r *http.Request) {
	var req dto.CityRequest
	if !decodeJSON(w, r, &req) || !validateRequest(w, r, h.Validate, &req) {
		return
	}

	id := r.PathValue("id")
	tour, err := h.Planner.AddNext(r.Context(), id, req.City)
	if err != nil {
		writeServiceError(w, r, "add stop", err)
		return
	}
	h.writeTour(w, r, http.StatusOK, id, tour)
}

func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tour, err := h.Planner.Reset(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "reset tour", err)
		return
	}
	h.writeTour(w, r, http.StatusOK, id, tour)
}

func (h *SessionHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Planner.Candidates(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "list candidates", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListCandidatesResponse{Candidates: toCityResponses(cities)})
}

func (h *SessionHandler) AddVenue(w http.ResponseWriter, r *http.Request) {
	var req dto.VenueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.MapLink = strings.TrimSpace(req.MapLink)
	if !validateRequest(w, r, h.Validate, &req) {
		return
	}

	id := r.PathValue("id")
	tour, booking, err := h.Planner.AddVenue(r.Context(), id, req.City, services.VenueInput{
		Name:    req.Name,
		Seats:   req.Seats,
		MapLink: req.MapLink,
	})
	if err != nil {
		writeServiceError(w, r, "add venue", err)
		return
	}

	view, err := h.buildView(r, id, tour)
	if err != nil {
		writeServiceError(w, r, "add venue", err)
		return
	}
	writeJSON(w, r, http.StatusCreated, dto.AddVenueResponse{Venue: toVenueResponse(booking), Tour: view})
}

// RemoveVenue expects the owning city as the "city" query parameter.
func (h *SessionHandler) RemoveVenue(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if strings.TrimSpace(city) == "" {
		writeError(w, r, http.StatusBadRequest, "city query parameter is required")
		return
	}

	id := r.PathValue("id")
	tour, err := h.Planner.RemoveVenue(r.Context(), id, city, r.PathValue("venueID"))
	if err != nil {
		writeServiceError(w, r, "remove venue", err)
		return
	}
	h.writeTour(w, r, http.StatusOK, id, tour)
}

func (h *SessionHandler) Map(w http.ResponseWriter, r *http.Request) {
	it, err := h.Planner.Itinerary(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "map view", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toMapView(it))
}

func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	it, err := h.Planner.Itinerary(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "export itinerary", err)
		return
	}

	doc, filename, err := h.Exporter.Export(r.Context(), it)
	if err != nil {
		writeServiceError(w, r, "export itinerary", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (h *SessionHandler) writeTour(w http.ResponseWriter, r *http.Request, status int, id string, tour *domain.Tour) {
	view, err := h.buildView(r, id, tour)
	if err != nil {
		writeServiceError(w, r, "render tour", err)
		return
	}
	writeJSON(w, r, status, view)
}

func (h *SessionHandler) buildView(r *http.Request, id string, tour *domain.Tour) (dto.TourView, error) {
	ctx := r.Context()

	it, err := services.BuildItinerary(ctx, h.Planner.Cities, tour)
	if err != nil {
		return dto.TourView{}, err
	}
	candidates, err := services.CandidatesFor(ctx, h.Planner.Cities, tour)
	if err != nil {
		return dto.TourView{}, err
	}

	return toTourView(id, it, candidates, locale.For(r.URL.Query().Get("lang"))), nil
}
