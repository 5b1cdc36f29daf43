package ports

import (
	"context"
	"tour-planner-service/internal/domain"
)

// Port: a boundary for reading the static city catalog.
type CityRepository interface {
	// Retrieve every known city ordered by name.
	ListCities(ctx context.Context) ([]domain.City, error)
	// Retrieve one city; wraps domain.ErrUnknownCity when absent.
	GetCity(ctx context.Context, name string) (domain.City, error)
}
