package repositories

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"tour-planner-service/internal/domain"
)

// In-memory implementation of the CityRepository port over a fixed catalog.
type StaticCityRepository struct {
	cities []domain.City
	byName map[string]domain.City
}

func NewStaticCityRepository(cities []domain.City) (*StaticCityRepository, error) {
	byName := make(map[string]domain.City, len(cities))
	for _, c := range cities {
		if _, ok := byName[c.Name]; ok {
			return nil, fmt.Errorf("static city repository: duplicate city %q", c.Name)
		}
		byName[c.Name] = c
	}

	sorted := slices.Clone(cities)
	slices.SortFunc(sorted, func(a, b domain.City) int { return strings.Compare(a.Name, b.Name) })

	return &StaticCityRepository{cities: sorted, byName: byName}, nil
}

func (s *StaticCityRepository) ListCities(ctx context.Context) ([]domain.City, error) {
	return slices.Clone(s.cities), nil
}

func (s *StaticCityRepository) GetCity(ctx context.Context, name string) (domain.City, error) {
	c, ok := s.byName[name]
	if !ok {
		return domain.City{}, fmt.Errorf("get city %q: %w", name, domain.ErrUnknownCity)
	}
	return c, nil
}
