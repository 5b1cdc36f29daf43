package domain

import (
	"math"
	"time"
)

// Leg is the travel segment between two consecutive cities of a route.
// It is derived once when the second city is appended and never edited.
type Leg struct {
	DistanceKm    int     `json:"distance_km"`
	DurationHours float64 `json:"duration_hours"`
}

// Duration converts the fractional hour estimate to a time.Duration.
func (l Leg) Duration() time.Duration {
	return time.Duration(math.Round(l.DurationHours * float64(time.Hour)))
}

// Represents a single stop of an itinerary.
// The first stop has no Leg; every later stop carries the leg from its predecessor.
type Stop struct {
	City   City
	Date   time.Time
	Leg    *Leg
	Venues []VenueBooking
}

// Itinerary is the read model handed to the map, table and document renderers.
// Totals are derived from the legs when the itinerary is built.
type Itinerary struct {
	Stops              []Stop
	TotalDistanceKm    int
	TotalDurationHours float64
}

// DateOf returns the calendar date of t's wall clock as midnight UTC.
// Scheduled dates are kept in this form so that day arithmetic never sees a
// DST shift and survives a JSON round trip unchanged.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddHours moves a calendar date forward by d of clock time and returns the
// calendar date reached.
func AddHours(date time.Time, d time.Duration) time.Time {
	return DateOf(DateOf(date).Add(d))
}

// RoundHours rounds a fractional hour value to one decimal place.
func RoundHours(h float64) float64 {
	return math.Round(h*10) / 10
}
