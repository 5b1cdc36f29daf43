package ports

import (
	"context"
	"tour-planner-service/internal/domain"
)

// SessionStore owns one Tour per planning session.
//
// Update applies fn to the stored tour and persists the result only when fn
// returns nil, so a rejected mutation leaves the session untouched.
// Implementations serialize updates of the same session.
type SessionStore interface {
	Create(ctx context.Context) (string, error)
	Get(ctx context.Context, id string) (*domain.Tour, error)
	Update(ctx context.Context, id string, fn func(*domain.Tour) error) (*domain.Tour, error)
	Delete(ctx context.Context, id string) error
}
