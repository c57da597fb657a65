// Package redis stores the lineup session blob under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"lineupplanner/internal/domain"
)

// Client is the subset of *goredis.Client the store needs.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

type stateRepository struct {
	client Client
	key    string
}

// NewStateRepository returns a StateStore backed by the given Redis key. The key never expires.
func NewStateRepository(client Client, key string) domain.StateStore {
	return &stateRepository{client: client, key: key}
}

func (r *stateRepository) Load(ctx context.Context) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return payload, nil
}

func (r *stateRepository) Save(ctx context.Context, payload []byte) error {
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
