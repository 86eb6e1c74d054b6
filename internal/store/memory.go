package store

import (
	"context"
	"sync"

	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/ranking"
)

// MemoryStore keeps the state in process memory. Loads and saves copy the
// state so callers never share it with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	state *ranking.State
	lock  chan struct{}
}

// NewMemoryStore returns an empty store. A non-nil initial state is copied.
func NewMemoryStore(initial *ranking.State) *MemoryStore {
	s := &MemoryStore{
		lock: make(chan struct{}, 1),
	}
	if initial != nil {
		s.state = initial.Clone()
	}
	return s
}

// Name implements Store.
func (s *MemoryStore) Name() string { return "memory" }

// Location implements Store.
func (s *MemoryStore) Location() string { return "memory" }

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context) (*ranking.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, ErrNotFound
	}
	return s.state.Clone(), nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, state *ranking.State) error {
	if state == nil {
		return errors.NewValidationError("state", nil, "cannot save a nil state")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state.Clone()
	return nil
}

// Lock implements Locker.
func (s *MemoryStore) Lock(ctx context.Context) (func(), error) {
	select {
	case s.lock <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-s.lock }) }, nil
	case <-ctx.Done():
		return nil, errors.NewTimeoutError("lock", "", "memory store is locked: "+ctx.Err().Error())
	}
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Locker = (*MemoryStore)(nil)
)
