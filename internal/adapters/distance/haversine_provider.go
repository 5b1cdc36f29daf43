package distance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"tour-planner-service/internal/domain"
)

const (
	// Mean Earth radius used for great-circle distances.
	EarthRadiusKm = 6371.0

	// Placeholder average travel speed; overridable through configuration.
	DefaultAverageSpeedKmh = 50.0
)

// HaversineKm returns the great-circle distance between two coordinates.
func HaversineKm(a, b domain.Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// HaversineProvider implements DistanceProvider with straight-line distances
// and a fixed average speed. It does no I/O and is safe for concurrent use.
type HaversineProvider struct {
	speedKmh float64
}

func NewHaversineProvider(speedKmh float64) (*HaversineProvider, error) {
	if speedKmh <= 0 || math.IsNaN(speedKmh) || math.IsInf(speedKmh, 0) {
		return nil, fmt.Errorf("haversine provider: speed must be a positive number, got %v", speedKmh)
	}
	return &HaversineProvider{speedKmh: speedKmh}, nil
}

func (p *HaversineProvider) SpeedKmh() float64 { return p.speedKmh }

// Distance is rounded to whole kilometres and duration (km / speed) to a tenth of an hour.
func (p *HaversineProvider) GetDistance(
	ctx context.Context,
	origin domain.City,
	destination domain.City,
) (domain.Leg, error) {
	if err := ctx.Err(); err != nil {
		return domain.Leg{}, err
	}

	if !origin.Coords.Valid() || !destination.Coords.Valid() {
		return domain.Leg{}, errors.New("get haversine distance: coordinates out of range")
	}

	km := int(math.Round(HaversineKm(origin.Coords, destination.Coords)))
	hours := domain.RoundHours(float64(km) / p.speedKmh)

	return domain.Leg{DistanceKm: km, DurationHours: hours}, nil
}
