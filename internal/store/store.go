// Package store persists ranking state between runs.
//
// A Store loads and saves one ranking.State at one location: a file path
// for FileStore, a key for RedisStore, or process memory for MemoryStore.
// Stores that can be shared between processes also implement Locker so
// callers can serialize their read-mutate-write cycles.
package store

import (
	"context"
	"fmt"

	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/ranking"
)

// ErrNotFound is returned by Load when no state has been saved yet.
var ErrNotFound = fmt.Errorf("state %w", errors.ErrNotFound)

// Store loads and saves a single ranking state.
type Store interface {
	// Name returns the backend name ("file", "redis" or "memory").
	Name() string
	// Location returns where the state lives (a path or a key).
	Location() string
	// Load returns the saved state or ErrNotFound.
	Load(ctx context.Context) (*ranking.State, error)
	// Save replaces the saved state.
	Save(ctx context.Context, state *ranking.State) error
	// Close releases any connection held by the store.
	Close() error
}

// Locker is implemented by stores that support exclusive access.
type Locker interface {
	// Lock blocks until the lock is held or ctx is done. The returned
	// function releases the lock.
	Lock(ctx context.Context) (unlock func(), err error)
}

// LoadOrDefault loads the saved state, or returns an empty state if none
// has been saved.
func LoadOrDefault(ctx context.Context, s Store) (*ranking.State, error) {
	state, err := s.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		return ranking.New(nil), nil
	}
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Exists reports whether s holds a saved state.
func Exists(ctx context.Context, s Store) (bool, error) {
	_, err := s.Load(ctx)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Lock takes the store's lock if it has one. Stores without a lock return a
// no-op unlock function.
func Lock(ctx context.Context, s Store) (func(), error) {
	if l, ok := s.(Locker); ok {
		return l.Lock(ctx)
	}
	return func() {}, nil
}
