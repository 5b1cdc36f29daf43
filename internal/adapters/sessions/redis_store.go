package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
	"tour-planner-service/internal/domain"
	"tour-planner-service/internal/platform/obs"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix         = "tour:session:"
	maxUpdateAttempts = 5
	retryBaseDelay    = 5 * time.Millisecond
)

// RedisSessionStore keeps each tour as a JSON document with an idle TTL.
// Updates run inside WATCH/MULTI so concurrent writers on one session retry
// instead of overwriting each other.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string { return keyPrefix + id }

func (s *RedisSessionStore) Create(ctx context.Context) (_ string, err error) {
	defer obs.Time(ctx, "sessions.redis.Create")(&err)

	id := uuid.NewString()
	b, err := json.Marshal(domain.NewTour())
	if err != nil {
		return "", fmt.Errorf("create session: encode tour: %w", err)
	}

	ok, err := s.client.SetNX(ctx, sessionKey(id), b, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("create session: set %q: %w", id, err)
	}
	if !ok {
		return "", fmt.Errorf("create session: id collision for %q", id)
	}

	return id, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (_ *domain.Tour, err error) {
	defer obs.Time(ctx, "sessions.redis.Get")(&err)

	b, err := s.client.GetEx(ctx, sessionKey(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session %q: %w", id, err)
	}

	return decodeTour(id, b)
}

func (s *RedisSessionStore) Update(
	ctx context.Context,
	id string,
	fn func(*domain.Tour) error,
) (_ *domain.Tour, err error) {
	defer obs.Time(ctx, "sessions.redis.Update")(&err)

	key := sessionKey(id)
	var updated *domain.Tour

	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
		}
		if err != nil {
			return fmt.Errorf("read session %q: %w", id, err)
		}

		tour, err := decodeTour(id, b)
		if err != nil {
			return err
		}
		if err := fn(tour); err != nil {
			return err
		}

		out, err := json.Marshal(tour)
		if err != nil {
			return fmt.Errorf("encode session %q: %w", id, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}

		updated = tour
		return nil
	}

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			if err := backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}

	return nil, fmt.Errorf("update session %q: %d conflicting writes: %w", id, maxUpdateAttempts, domain.ErrSessionBusy)
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("session %q: %w", id, domain.ErrSessionNotFound)
	}
	return nil
}

// backoff waits a little longer after each lost WATCH race, with jitter so that
// competing writers spread out.
func backoff(ctx context.Context, attempt int) error {
	d := time.Duration(attempt) * retryBaseDelay
	d += time.Duration(rand.Int64N(int64(retryBaseDelay)))

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func decodeTour(id string, b []byte) (*domain.Tour, error) {
	tour := domain.NewTour()
	if err := json.Unmarshal(b, tour); err != nil {
		return nil, fmt.Errorf("decode session %q: %w", id, err)
	}
	return tour, nil
}
