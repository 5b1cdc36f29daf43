package handlers

import (
	"fmt"
	"tour-planner-service/internal/api/dto"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/locale"
)

// Shown before a start city is chosen.
var defaultMapCenter = domain.Coordinates{Lat: 19.75, Lon: 75.71}

const defaultMapZoom = 7

func toCityResponses(cities []domain.City) []dto.CityResponse {
	out := make([]dto.CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, dto.CityResponse{Name: c.Name, Lat: c.Coords.Lat, Lon: c.Coords.Lon})
	}
	return out
}

func toVenueResponse(v domain.VenueBooking) dto.VenueResponse {
	return dto.VenueResponse{ID: v.ID, Name: v.Name, Seats: v.Seats, MapLink: v.MapLink}
}

func toTourView(sessionID string, it domain.Itinerary, candidates []domain.City, labels locale.Labels) dto.TourView {
	view := dto.TourView{
		SessionID:          sessionID,
		Started:            len(it.Stops) > 0,
		Stops:              make([]dto.StopResponse, 0, len(it.Stops)),
		TotalDistanceKm:    it.TotalDistanceKm,
		TotalDurationHours: it.TotalDurationHours,
		Candidates:         make([]string, 0, len(candidates)),
		Labels:             labels,
	}

	for i, s := range it.Stops {
		stop := dto.StopResponse{
			Order:    i + 1,
			City:     s.City.Name,
			Lat:      s.City.Coords.Lat,
			Lon:      s.City.Coords.Lon,
			Date:     s.Date.Format("2006-01-02"),
			DateText: labels.FormatDate(s.Date),
			Venues:   make([]dto.VenueResponse, 0, len(s.Venues)),
		}
		if s.Leg != nil {
			stop.Leg = &dto.LegResponse{DistanceKm: s.Leg.DistanceKm, DurationHours: s.Leg.DurationHours}
		}
		for _, v := range s.Venues {
			stop.Venues = append(stop.Venues, toVenueResponse(v))
		}
		view.Stops = append(view.Stops, stop)
	}

	for _, c := range candidates {
		view.Candidates = append(view.Candidates, c.Name)
	}
	return view
}

// toMapView builds a GeoJSON path through the stops plus one numbered marker each.
func toMapView(it domain.Itinerary) dto.MapView {
	center := defaultMapCenter
	if len(it.Stops) > 0 {
		center = it.Stops[0].City.Coords
	}

	features := make([]dto.Feature, 0, len(it.Stops)+1)
	if len(it.Stops) > 1 {
		path := make([][]float64, 0, len(it.Stops))
		for _, s := range it.Stops {
			path = append(path, s.City.Coords.CoordsToList())
		}
		features = append(features, dto.Feature{
			Type:     "Feature",
			Geometry: dto.Geometry{Type: "LineString", Coordinates: path},
			Properties: map[string]any{
				"kind":                 "route",
				"total_distance_km":    it.TotalDistanceKm,
				"total_duration_hours": it.TotalDurationHours,
			},
		})
	}

	for i, s := range it.Stops {
		props := map[string]any{
			"kind":   "stop",
			"order":  i + 1,
			"city":   s.City.Name,
			"date":   s.Date.Format("2006-01-02"),
			"label":  fmt.Sprintf("%d. %s", i+1, s.City.Name),
			"venues": len(s.Venues),
		}
		if s.Leg != nil {
			props["distance_km"] = s.Leg.DistanceKm
			props["duration_hours"] = s.Leg.DurationHours
		}
		features = append(features, dto.Feature{
			Type:       "Feature",
			Geometry:   dto.Geometry{Type: "Point", Coordinates: s.City.Coords.CoordsToList()},
			Properties: props,
		})
	}

	return dto.MapView{
		Center:  [2]float64{center.Lat, center.Lon},
		Zoom:    defaultMapZoom,
		GeoJSON: dto.FeatureCollection{Type: "FeatureCollection", Features: features},
	}
}
