package api

import (
	"net/http"
	"tour-planner-service/internal/api/handlers"
	"tour-planner-service/internal/ports"
	"tour-planner-service/internal/services"
)

type RouterDeps struct {
	Planner        *services.TourPlanner
	Exporter       ports.ItineraryExporter
	DefaultStart   string
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Cities: deps.Planner.Cities}
	cityHandler := &handlers.CityHandler{
		Cities:       deps.Planner.Cities,
		DefaultStart: deps.DefaultStart,
	}
	sessionHandler := &handlers.SessionHandler{
		Planner:  deps.Planner,
		Exporter: deps.Exporter,
		Validate: handlers.NewValidator(),
	}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("GET /cities", cityHandler.List)

	mux.HandleFunc("POST /sessions", sessionHandler.Create)
	mux.HandleFunc("GET /sessions/{id}", sessionHandler.Get)
	mux.HandleFunc("DELETE /sessions/{id}", sessionHandler.Delete)
	mux.HandleFunc("POST /sessions/{id}/start", sessionHandler.Start)
	mux.HandleFunc("POST /sessions/{id}/stops", sessionHandler.AddStop)
	mux.HandleFunc("GET /sessions/{id}/candidates", sessionHandler.Candidates)
	mux.HandleFunc("POST /sessions/{id}/reset", sessionHandler.Reset)
	mux.HandleFunc("POST /sessions/{id}/venues", sessionHandler.AddVenue)
	mux.HandleFunc("DELETE /sessions/{id}/venues/{venueID}", sessionHandler.RemoveVenue)
	mux.HandleFunc("GET /sessions/{id}/map", sessionHandler.Map)
	mux.HandleFunc("GET /sessions/{id}/itinerary.pdf", sessionHandler.Export)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(deps.AllowedOrigins, mux)))
}
