package domain

import (
	"fmt"
	"slices"
	"time"
)

// Tour is the per-session route accumulator.
//
// Route is insertion-ordered and never holds the same city twice. Every city
// after the first has a Leg from its predecessor (recorded in both directions)
// and a scheduled date. Totals are never stored; they are summed from Legs.
type Tour struct {
	Route  []string                  `json:"route"`
	Dates  map[string]time.Time      `json:"dates"`
	Legs   map[string]map[string]Leg `json:"legs"`
	Venues map[string][]VenueBooking `json:"venues"`
}

func NewTour() *Tour {
	return &Tour{
		Route:  []string{},
		Dates:  map[string]time.Time{},
		Legs:   map[string]map[string]Leg{},
		Venues: map[string][]VenueBooking{},
	}
}

// Started reports whether a start city has been chosen.
func (t *Tour) Started() bool { return len(t.Route) > 0 }

func (t *Tour) Contains(city string) bool { return slices.Contains(t.Route, city) }

// Last returns the most recently appended city.
func (t *Tour) Last() (string, bool) {
	if len(t.Route) == 0 {
		return "", false
	}
	return t.Route[len(t.Route)-1], true
}

// Start makes city the first stop, scheduled on the date of today.
//
// Starting from a city that is already in the route is a no-op and reports false.
// Starting over from a different city discards the previous route and its derived
// legs and dates; venue bookings are per city and survive.
func (t *Tour) Start(city string, today time.Time) bool {
	if t.Contains(city) {
		return false
	}

	t.Route = []string{city}
	t.Dates = map[string]time.Time{city: DateOf(today)}
	t.Legs = map[string]map[string]Leg{}
	return true
}

// Append adds city after the current last stop using the precomputed leg.
// The city is scheduled on the calendar date reached by leaving the previous
// stop's date at midnight and travelling for the leg's duration.
func (t *Tour) Append(city string, leg Leg) error {
	prev, ok := t.Last()
	if !ok {
		return fmt.Errorf("append %q: %w", city, ErrNotStarted)
	}
	if t.Contains(city) {
		return fmt.Errorf("append %q: %w", city, ErrCityInRoute)
	}
	if leg.DistanceKm < 0 || leg.DurationHours < 0 {
		return fmt.Errorf("append %q: %w", city, ErrNegativeLeg)
	}

	t.Route = append(t.Route, city)
	t.setLeg(prev, city, leg)
	t.setLeg(city, prev, leg)

	t.Dates[city] = AddHours(t.Dates[prev], leg.Duration())
	return nil
}

func (t *Tour) setLeg(from, to string, leg Leg) {
	if t.Legs[from] == nil {
		t.Legs[from] = map[string]Leg{}
	}
	t.Legs[from][to] = leg
}

// Leg returns the cached leg between two cities in either direction.
func (t *Tour) Leg(from, to string) (Leg, bool) {
	leg, ok := t.Legs[from][to]
	return leg, ok
}

// Reset returns the tour to the state of a freshly created session.
func (t *Tour) Reset() {
	*t = *NewTour()
}

// TotalDistanceKm sums the legs along consecutive route pairs.
func (t *Tour) TotalDistanceKm() int {
	total := 0
	for i := 1; i < len(t.Route); i++ {
		leg, _ := t.Leg(t.Route[i-1], t.Route[i])
		total += leg.DistanceKm
	}
	return total
}

// TotalDurationHours sums the legs along consecutive route pairs.
func (t *Tour) TotalDurationHours() float64 {
	total := 0.0
	for i := 1; i < len(t.Route); i++ {
		leg, _ := t.Leg(t.Route[i-1], t.Route[i])
		total += leg.DurationHours
	}
	return RoundHours(total)
}

// AddVenue records a booking for a city that is part of the route.
func (t *Tour) AddVenue(city string, v VenueBooking) error {
	if !t.Contains(city) {
		return fmt.Errorf("add venue for %q: %w", city, ErrCityNotInRoute)
	}
	t.Venues[city] = append(t.Venues[city], v)
	return nil
}

// RemoveVenue deletes the booking with the given id from a city.
func (t *Tour) RemoveVenue(city, id string) error {
	venues := t.Venues[city]
	i := slices.IndexFunc(venues, func(v VenueBooking) bool { return v.ID == id })
	if i < 0 {
		return fmt.Errorf("remove venue %q from %q: %w", id, city, ErrVenueNotFound)
	}

	venues = slices.Delete(venues, i, i+1)
	if len(venues) == 0 {
		delete(t.Venues, city)
		return nil
	}
	t.Venues[city] = venues
	return nil
}

// Clone returns a deep copy so callers can read a snapshot without sharing maps.
func (t *Tour) Clone() *Tour {
	out := &Tour{
		Route:  slices.Clone(t.Route),
		Dates:  make(map[string]time.Time, len(t.Dates)),
		Legs:   make(map[string]map[string]Leg, len(t.Legs)),
		Venues: make(map[string][]VenueBooking, len(t.Venues)),
	}
	if out.Route == nil {
		out.Route = []string{}
	}
	for k, v := range t.Dates {
		out.Dates[k] = v
	}
	for from, row := range t.Legs {
		cp := make(map[string]Leg, len(row))
		for to, leg := range row {
			cp[to] = leg
		}
		out.Legs[from] = cp
	}
	for k, v := range t.Venues {
		out.Venues[k] = slices.Clone(v)
	}
	return out
}
