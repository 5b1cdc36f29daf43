package dto

import "tour-planner-service/internal/locale"

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type CityRequest struct {
	City string `json:"city" validate:"required,max=100"`
}

type VenueRequest struct {
	City    string `json:"city" validate:"required,max=100"`
	Name    string `json:"name" validate:"required,max=200"`
	Seats   int    `json:"seats" validate:"gte=0,lte=1000000"`
	MapLink string `json:"map_link" validate:"omitempty,url,max=2048"`
}

type VenueResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Seats   int    `json:"seats"`
	MapLink string `json:"map_link,omitempty"`
}

type LegResponse struct {
	DistanceKm    int     `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
}

type StopResponse struct {
	Order    int             `json:"order"`
	City     string          `json:"city"`
	Lat      float64         `json:"lat"`
	Lon      float64         `json:"lon"`
	Date     string          `json:"date"`
	DateText string          `json:"date_text"`
	Leg      *LegResponse    `json:"leg,omitempty"`
	Venues   []VenueResponse `json:"venues"`
}

// TourView is the table renderer's view of one session.
type TourView struct {
	SessionID          string         `json:"session_id"`
	Started            bool           `json:"started"`
	Stops              []StopResponse `json:"stops"`
	TotalDistanceKm    int            `json:"total_distance_km"`
	TotalDurationHours float64        `json:"total_duration_hours"`
	Candidates         []string       `json:"candidates"`
	Labels             locale.Labels  `json:"labels"`
}

type AddVenueResponse struct {
	Venue VenueResponse `json:"venue"`
	Tour  TourView      `json:"tour"`
}

type ListCandidatesResponse struct {
	Candidates []CityResponse `json:"candidates"`
}
