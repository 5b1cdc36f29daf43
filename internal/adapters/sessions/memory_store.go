package sessions

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"tour-planner-service/internal/domain"

	"github.com/google/uuid"
)

// memoryEntry guards one tour with its own lock, so a slow update on one
// session never holds up another. expiresAt belongs to the store lock.
type memoryEntry struct {
	mu        sync.Mutex
	tour      *domain.Tour
	expiresAt time.Time
	removed   atomic.Bool
}

// MemorySessionStore keeps tours in process memory. Entries expire after the
// idle TTL; every successful read or update extends it.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemorySessionStore) Create(ctx context.Context) (string, error) {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	s.entries[id] = &memoryEntry{tour: domain.NewTour(), expiresAt: s.now().Add(s.ttl)}
	return id, nil
}

func (s *MemorySessionStore) Get(ctx context.Context, id string) (*domain.Tour, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed.Load() {
		return nil, notFound(id)
	}
	return e.tour.Clone(), nil
}

// Update runs fn on a copy and swaps it in only when fn succeeds. Updates of
// one session are serialized by the entry lock; the store lock is not held
// while fn runs.
func (s *MemorySessionStore) Update(ctx context.Context, id string, fn func(*domain.Tour) error) (*domain.Tour, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed.Load() {
		return nil, notFound(id)
	}

	next := e.tour.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	e.tour = next
	return next.Clone(), nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.lookupLocked(id)
	if err != nil {
		return err
	}
	s.removeLocked(id, e)
	return nil
}

func (s *MemorySessionStore) lookup(id string) (*memoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lookupLocked(id)
}

func (s *MemorySessionStore) lookupLocked(id string) (*memoryEntry, error) {
	e, ok := s.entries[id]
	if !ok {
		return nil, notFound(id)
	}

	now := s.now()
	if now.After(e.expiresAt) {
		s.removeLocked(id, e)
		return nil, notFound(id)
	}
	e.expiresAt = now.Add(s.ttl)
	return e, nil
}

func (s *MemorySessionStore) removeLocked(id string, e *memoryEntry) {
	e.removed.Store(true)
	delete(s.entries, id)
}

func (s *MemorySessionStore) sweepLocked() {
	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			s.removeLocked(id, e)
		}
	}
}

func notFound(id string) error {
	return fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
}
