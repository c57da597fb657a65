// Package memory keeps the lineup session blob in process memory. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"lineupplanner/internal/domain"
)

type stateRepository struct {
	mu      sync.RWMutex
	payload []byte
}

func NewStateRepository() domain.StateStore {
	return &stateRepository{}
}

func (r *stateRepository) Load(ctx context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.payload == nil {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), r.payload...), nil
}

func (r *stateRepository) Save(ctx context.Context, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payload = append([]byte{}, payload...)
	return nil
}
