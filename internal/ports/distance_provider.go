package ports

import (
	"context"
	"tour-planner-service/internal/domain"
)

// Contract for estimating the travel leg between two cities.
type DistanceProvider interface {
	// Return travel distance and estimated duration between two cities.
	GetDistance(ctx context.Context, origin domain.City, destination domain.City) (domain.Leg, error)
}
