package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"
)

// Postgres-backed implementation of the CityRepository port.
type PostgresCityRepository struct{ DB *sql.DB }

func NewPostgresCityRepository(db *sql.DB) *PostgresCityRepository {
	return &PostgresCityRepository{DB: db}
}

// Return all cities stored in the catalog table.
func (s *PostgresCityRepository) ListCities(ctx context.Context) (_ []domain.City, err error) {
	defer obs.Time(ctx, "cities.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres city repository: DB is nil")
	}

	query := `
	SELECT
		name,
		lat,
		lon
	FROM cities
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list cities: query cities table: %w", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0, 32)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.Name, &c.Coords.Lat, &c.Coords.Lon); err != nil {
			return nil, fmt.Errorf("list cities: scan row: %w", err)
		}
		cities = append(cities, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cities: row iteration: %w", err)
	}

	return cities, nil
}

// Return a single city by name.
func (s *PostgresCityRepository) GetCity(ctx context.Context, name string) (domain.City, error) {
	if s.DB == nil {
		return domain.City{}, errors.New("postgres city repository: DB is nil")
	}

	c := domain.City{Name: name}
	err := s.DB.QueryRowContext(ctx, `SELECT lat, lon FROM cities WHERE name = $1;`, name).
		Scan(&c.Coords.Lat, &c.Coords.Lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.City{}, fmt.Errorf("get city %q: %w", name, domain.ErrUnknownCity)
	}
	if err != nil {
		return domain.City{}, fmt.Errorf("get city %q: query cities table: %w", name, err)
	}

	return c, nil
}
