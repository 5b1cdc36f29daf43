package repositories

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"tour-planner-service/internal/domain"
)

//go:embed seeds/cities.json
var defaultCitySeed []byte

type CitySeed struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
}

// LoadCitySeeds reads the catalog from jsonPath, or the embedded Maharashtra
// catalog when jsonPath is empty.
func LoadCitySeeds(jsonPath string) ([]domain.City, error) {
	if strings.TrimSpace(jsonPath) == "" {
		return ParseCitySeeds(defaultCitySeed)
	}

	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load city seeds: read %q: %w", jsonPath, err)
	}
	return ParseCitySeeds(bytes)
}

// ParseCitySeeds decodes and validates catalog data. A city without a usable
// coordinate is a defect in the reference data and fails the whole catalog.
func ParseCitySeeds(data []byte) ([]domain.City, error) {
	var seeds []CitySeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse city seeds: parse json: %w", err)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("parse city seeds: catalog is empty")
	}

	seen := make(map[string]struct{}, len(seeds))
	cities := make([]domain.City, 0, len(seeds))
	for i, s := range seeds {
		name := strings.Join(strings.Fields(s.Name), " ")
		if name == "" {
			return nil, fmt.Errorf("parse city seeds: item at index %d: name cannot be empty", i)
		}
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("parse city seeds: duplicate city %q", name)
		}
		seen[name] = struct{}{}

		if s.Lat == nil || s.Lon == nil {
			return nil, fmt.Errorf("parse city seeds: city %q is missing a coordinate", name)
		}
		coords := domain.Coordinates{Lat: *s.Lat, Lon: *s.Lon}
		if !coords.Valid() {
			return nil, fmt.Errorf("parse city seeds: city %q has out-of-range coordinate (%v, %v)", name, coords.Lat, coords.Lon)
		}

		cities = append(cities, domain.City{Name: name, Coords: coords})
	}

	return cities, nil
}
