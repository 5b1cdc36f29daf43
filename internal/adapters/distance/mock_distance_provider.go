package distance

import (
	"context"
	"fmt"
	"tour-planner-service/internal/domain"
)

type MockPair struct {
	From, To string
	Km       int
	Hours    float64
}

// MockDistanceProvider answers from a fixed table keyed by city name.
type MockDistanceProvider struct {
	m     map[string]domain.Leg
	Calls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]domain.Leg, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = domain.Leg{DistanceKm: p.Km, DurationHours: p.Hours}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, origin, destination domain.City) (domain.Leg, error) {
	p.Calls++
	r, ok := p.m[origin.Name+"|"+destination.Name]
	if !ok {
		return domain.Leg{}, fmt.Errorf("missing pair %q -> %q", origin.Name, destination.Name)
	}

	return r, nil
}
