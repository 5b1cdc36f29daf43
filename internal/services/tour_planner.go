package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
	"tour-planner-service/internal/ports"

	"github.com/google/uuid"
)

// TourPlanner drives the route accumulator of each planning session.
//
// Every mutating call resolves its inputs against the city catalog, applies the
// change to the session's Tour through the store and returns the updated
// snapshot, which callers render directly.
type TourPlanner struct {
	Cities   ports.CityRepository
	Provider ports.DistanceProvider
	Sessions ports.SessionStore
	Now      func() time.Time
}

func NewTourPlanner(
	cities ports.CityRepository,
	provider ports.DistanceProvider,
	sessions ports.SessionStore,
	now func() time.Time,
) (*TourPlanner, error) {
	if cities == nil || provider == nil || sessions == nil {
		return nil, errors.New("new tour planner: cities, provider and sessions must be non-nil")
	}
	if now == nil {
		now = time.Now
	}

	return &TourPlanner{Cities: cities, Provider: provider, Sessions: sessions, Now: now}, nil
}

type VenueInput struct {
	Name    string
	Seats   int
	MapLink string
}

func (p *TourPlanner) CreateSession(ctx context.Context) (_ string, err error) {
	defer obs.Time(ctx, "tour.CreateSession")(&err)

	id, err := p.Sessions.Create(ctx)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

func (p *TourPlanner) EndSession(ctx context.Context, sessionID string) error {
	if err := p.Sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

func (p *TourPlanner) Tour(ctx context.Context, sessionID string) (*domain.Tour, error) {
	tour, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get tour: %w", err)
	}
	return tour, nil
}

// Start begins the route at city, scheduled today. Starting from a city that is
// already in the route leaves the tour unchanged.
func (p *TourPlanner) Start(ctx context.Context, sessionID, city string) (_ *domain.Tour, err error) {
	defer obs.Time(ctx, "tour.Start")(&err)

	c, err := p.Cities.GetCity(ctx, normalize(city))
	if err != nil {
		return nil, fmt.Errorf("start tour: %w", err)
	}

	today := p.Now()
	tour, err := p.Sessions.Update(ctx, sessionID, func(t *domain.Tour) error {
		t.Start(c.Name, today)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("start tour at %q: %w", c.Name, err)
	}

	return tour, nil
}

// maxAddAttempts bounds how often AddNext recomputes a leg when the route
// moved on between reading it and writing the new stop.
const maxAddAttempts = 3

var errRouteChanged = errors.New("route changed while the leg was computed")

// AddNext appends city after the last stop. The leg from the previous stop is
// estimated by the distance provider and cached on the tour in both directions.
//
// Catalog lookups and the distance estimate happen outside the session update,
// which only re-checks that the previous stop is still the last one.
func (p *TourPlanner) AddNext(ctx context.Context, sessionID, city string) (_ *domain.Tour, err error) {
	defer obs.Time(ctx, "tour.AddNext")(&err)

	next, err := p.Cities.GetCity(ctx, normalize(city))
	if err != nil {
		return nil, fmt.Errorf("add next city: %w", err)
	}

	for attempt := 1; attempt <= maxAddAttempts; attempt++ {
		tour, err := p.addNextOnce(ctx, sessionID, next)
		if errors.Is(err, errRouteChanged) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("add next city %q: %w", next.Name, err)
		}
		return tour, nil
	}

	return nil, fmt.Errorf("add next city %q: %w", next.Name, domain.ErrSessionBusy)
}

func (p *TourPlanner) addNextOnce(ctx context.Context, sessionID string, next domain.City) (*domain.Tour, error) {
	current, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	prevName, ok := current.Last()
	if !ok {
		return nil, domain.ErrNotStarted
	}
	if current.Contains(next.Name) {
		return nil, domain.ErrCityInRoute
	}

	prev, err := p.Cities.GetCity(ctx, prevName)
	if err != nil {
		return nil, fmt.Errorf("resolve previous stop: %w", err)
	}

	leg, err := p.Provider.GetDistance(ctx, prev, next)
	if err != nil {
		return nil, fmt.Errorf("get distance %q -> %q: %w", prev.Name, next.Name, err)
	}

	return p.Sessions.Update(ctx, sessionID, func(t *domain.Tour) error {
		if last, ok := t.Last(); !ok || last != prevName {
			return errRouteChanged
		}
		return t.Append(next.Name, leg)
	})
}

// Reset returns the session to a fresh, empty tour.
func (p *TourPlanner) Reset(ctx context.Context, sessionID string) (_ *domain.Tour, err error) {
	defer obs.Time(ctx, "tour.Reset")(&err)

	tour, err := p.Sessions.Update(ctx, sessionID, func(t *domain.Tour) error {
		t.Reset()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reset tour: %w", err)
	}
	return tour, nil
}

// Candidates lists catalog cities that can still be appended, ordered by name.
func (p *TourPlanner) Candidates(ctx context.Context, sessionID string) ([]domain.City, error) {
	tour, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return CandidatesFor(ctx, p.Cities, tour)
}

// CandidatesFor lists the catalog cities not yet in tour's route.
func CandidatesFor(ctx context.Context, cities ports.CityRepository, tour *domain.Tour) ([]domain.City, error) {
	all, err := cities.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	out := make([]domain.City, 0, len(all))
	for _, c := range all {
		if !tour.Contains(c.Name) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b domain.City) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// AddVenue stores a booking verbatim for a city on the route.
func (p *TourPlanner) AddVenue(
	ctx context.Context,
	sessionID string,
	city string,
	in VenueInput,
) (_ *domain.Tour, _ domain.VenueBooking, err error) {
	defer obs.Time(ctx, "tour.AddVenue")(&err)

	booking := domain.VenueBooking{
		ID:      uuid.NewString(),
		Name:    in.Name,
		Seats:   in.Seats,
		MapLink: in.MapLink,
	}

	name := normalize(city)
	tour, err := p.Sessions.Update(ctx, sessionID, func(t *domain.Tour) error {
		return t.AddVenue(name, booking)
	})
	if err != nil {
		return nil, domain.VenueBooking{}, fmt.Errorf("add venue: %w", err)
	}
	return tour, booking, nil
}

func (p *TourPlanner) RemoveVenue(ctx context.Context, sessionID, city, venueID string) (_ *domain.Tour, err error) {
	defer obs.Time(ctx, "tour.RemoveVenue")(&err)

	name := normalize(city)
	tour, err := p.Sessions.Update(ctx, sessionID, func(t *domain.Tour) error {
		return t.RemoveVenue(name, venueID)
	})
	if err != nil {
		return nil, fmt.Errorf("remove venue: %w", err)
	}
	return tour, nil
}

// Itinerary resolves the session's route to coordinates for the renderers.
func (p *TourPlanner) Itinerary(ctx context.Context, sessionID string) (domain.Itinerary, error) {
	tour, err := p.Sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("build itinerary: %w", err)
	}
	return BuildItinerary(ctx, p.Cities, tour)
}

// BuildItinerary turns a tour snapshot into ordered stops with totals derived
// from the cached legs.
func BuildItinerary(ctx context.Context, cities ports.CityRepository, tour *domain.Tour) (domain.Itinerary, error) {
	stops := make([]domain.Stop, 0, len(tour.Route))

	for i, name := range tour.Route {
		c, err := cities.GetCity(ctx, name)
		if err != nil {
			return domain.Itinerary{}, fmt.Errorf("build itinerary: stop %d: %w", i+1, err)
		}

		stop := domain.Stop{
			City:   c,
			Date:   tour.Dates[name],
			Venues: slices.Clone(tour.Venues[name]),
		}
		if i > 0 {
			if leg, ok := tour.Leg(tour.Route[i-1], name); ok {
				stop.Leg = &leg
			}
		}
		stops = append(stops, stop)
	}

	return domain.Itinerary{
		Stops:              stops,
		TotalDistanceKm:    tour.TotalDistanceKm(),
		TotalDurationHours: tour.TotalDurationHours(),
	}, nil
}

// normalize collapses whitespace so catalog lookups match user input.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DefaultStartCity returns preferred when the catalog has it and otherwise
// falls back to the first catalog city.
func DefaultStartCity(ctx context.Context, cities ports.CityRepository, preferred string) (string, error) {
	c, err := cities.GetCity(ctx, normalize(preferred))
	if err == nil {
		return c.Name, nil
	}
	if !errors.Is(err, domain.ErrUnknownCity) {
		return "", fmt.Errorf("default start city: %w", err)
	}

	all, err := cities.ListCities(ctx)
	if err != nil {
		return "", fmt.Errorf("default start city: %w", err)
	}
	if len(all) == 0 {
		return "", fmt.Errorf("default start city: %w", domain.ErrUnknownCity)
	}
	return all[0].Name, nil
}
