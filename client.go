// Package humansort ranks a list of items by asking a person to pick
// favourites from small batches, over and over.
//
// A Client ties the ranking engine (pkg/ranking) to a state store
// (internal/store). Every mutation runs as one locked read-mutate-write
// cycle against the store, so several processes can share the same state
// file or Redis key. Event hooks report what changed after each save.
//
// Example usage:
//
//	hs, err := humansort.New(humansort.WithStore(store.NewFileStore("movies.txt.humansort")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer hs.Close()
//
//	hs.OnJudged(func(j humansort.Judgment) {
//	    log.Printf("%s beat %v", j.Winner, j.Losers)
//	})
//
//	batch, err := hs.Next(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := hs.Judge(ctx, batch); err != nil {
//	    log.Fatal(err)
//	}
package humansort

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/logging"
	"github.com/agentstation/humansort/pkg/ranking"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Reader provides copy-on-read access to the state.
type Reader interface {
	// State returns a copy of the saved state.
	State(ctx context.Context) (*ranking.State, error)

	// Next selects the next batch to judge.
	Next(ctx context.Context) ([]string, error)

	// Ranked returns a traversal of the items in rank order.
	Ranked(ctx context.Context) (*ranking.Ranked, error)
}

// Mutator changes the state. Each call returns a copy of the saved result.
type Mutator interface {
	// Update applies fn to a copy of the state under the store lock and
	// saves the result. Nothing is saved if fn returns an error.
	Update(ctx context.Context, fn func(*ranking.State) error) (*ranking.State, error)

	// Create saves a new state built from names.
	Create(ctx context.Context, names []string, opts ...CreateOption) (*ranking.State, error)

	// Merge reconciles the state with an updated list of names.
	Merge(ctx context.Context, names []string) (*ranking.State, error)

	// Judge applies a judgment; ordered[0] beat the rest.
	Judge(ctx context.Context, ordered []string) (*ranking.State, error)

	// Add adds an item.
	Add(ctx context.Context, value string) (*ranking.State, error)

	// Rename renames an item.
	Rename(ctx context.Context, from, to string) (*ranking.State, error)

	// Remove removes an item.
	Remove(ctx context.Context, value string) (*ranking.State, error)

	// SetBatchSize changes the batch size.
	SetBatchSize(ctx context.Context, n int) (*ranking.State, error)
}

// Client manages a persisted ranking state with event hooks.
type Client interface {
	Reader
	Mutator
	Hooks

	// Store returns the backing store.
	Store() store.Store

	// Close releases the backing store.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	// mu serializes cycles within this process; the store lock covers
	// other processes.
	mu sync.Mutex

	srcMu sync.Mutex

	hooks *hooks
}

// New creates a new Client with the given options.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	c := &client{
		options: o,
		hooks:   newHooks(),
	}

	c.logger().Debug().
		Str("store", o.store.Name()).
		Str("state", o.store.Location()).
		Msg("Client created")

	return c, nil
}

func (c *client) logger() *zerolog.Logger {
	return c.options.logger
}

// Store implements Client.
func (c *client) Store() store.Store {
	return c.options.store
}

// Close implements Client.
func (c *client) Close() error {
	return c.options.store.Close()
}

// OnItemAdded implements Hooks.
func (c *client) OnItemAdded(fn ItemAddedHook) { c.hooks.OnItemAdded(fn) }

// OnItemRemoved implements Hooks.
func (c *client) OnItemRemoved(fn ItemRemovedHook) { c.hooks.OnItemRemoved(fn) }

// OnItemRenamed implements Hooks.
func (c *client) OnItemRenamed(fn ItemRenamedHook) { c.hooks.OnItemRenamed(fn) }

// OnJudged implements Hooks.
func (c *client) OnJudged(fn JudgedHook) { c.hooks.OnJudged(fn) }

// OnStateSaved implements Hooks.
func (c *client) OnStateSaved(fn StateSavedHook) { c.hooks.OnStateSaved(fn) }

// State implements Reader.
func (c *client) State(ctx context.Context) (*ranking.State, error) {
	return c.options.store.Load(ctx)
}

// Next implements Reader.
func (c *client) Next(ctx context.Context) ([]string, error) {
	state, err := c.options.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	c.srcMu.Lock()
	defer c.srcMu.Unlock()
	return state.SelectBatch(c.options.source)
}

// Ranked implements Reader.
func (c *client) Ranked(ctx context.Context) (*ranking.Ranked, error) {
	state, err := c.options.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Drain(), nil
}

// cycle runs one locked load-mutate-save cycle. load controls how a missing
// state is treated. It returns the states before and after fn.
func (c *client) cycle(ctx context.Context, op string, load loadFunc, fn func(*ranking.State) error) (before, after *ranking.State, err error) {
	s := c.options.store
	log := c.logger().With().
		Str("operation", op).
		Str("store", s.Name()).
		Str("state", s.Location()).
		Logger()

	c.mu.Lock()
	defer c.mu.Unlock()

	lockCtx, cancel := context.WithTimeout(ctx, constants.LockTimeout)
	defer cancel()
	unlock, err := store.Lock(lockCtx, s)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	before, err = load(ctx, s)
	if err != nil {
		return nil, nil, err
	}

	after = before.Clone()
	if err := fn(after); err != nil {
		log.Debug().Err(err).Msg("Operation rejected")
		return nil, nil, err
	}

	if err := s.Save(logging.WithOperation(ctx, op), after); err != nil {
		log.Error().Err(err).Msg("Failed to save state")
		return nil, nil, err
	}

	log.Debug().Int("items", after.Len()).Msg("State saved")
	return before, after, nil
}

type loadFunc func(context.Context, store.Store) (*ranking.State, error)

func loadExisting(ctx context.Context, s store.Store) (*ranking.State, error) {
	return s.Load(ctx)
}

// Update implements Mutator.
func (c *client) Update(ctx context.Context, fn func(*ranking.State) error) (*ranking.State, error) {
	before, after, err := c.cycle(ctx, "update", loadExisting, fn)
	if err != nil {
		return nil, err
	}
	c.hooks.triggerMembership(before, after)
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}

// Create implements Mutator.
func (c *client) Create(ctx context.Context, names []string, opts ...CreateOption) (*ranking.State, error) {
	co := &createOptions{batchSize: constants.DefaultBatchSize}
	for _, opt := range opts {
		opt(co)
	}

	load := func(ctx context.Context, s store.Store) (*ranking.State, error) {
		existing, err := s.Load(ctx)
		switch {
		case errors.Is(err, store.ErrNotFound):
			return ranking.New(nil), nil
		case err != nil && !co.overwrite:
			return nil, err
		case err == nil && !co.overwrite:
			return nil, &errors.AlreadyExistsError{Resource: "state", ID: s.Location()}
		case err == nil:
			return existing, nil
		default:
			// Unreadable state being overwritten.
			return ranking.New(nil), nil
		}
	}

	before, after, err := c.cycle(ctx, "create", load, func(state *ranking.State) error {
		fresh := ranking.New(names)
		if err := fresh.SetBatchSize(co.batchSize); err != nil {
			return err
		}
		*state = *fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.hooks.triggerMembership(before, after)
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}

// Merge implements Mutator.
func (c *client) Merge(ctx context.Context, names []string) (*ranking.State, error) {
	before, after, err := c.cycle(ctx, "merge", store.LoadOrDefault, func(state *ranking.State) error {
		state.Merge(names)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger().Info().
		Int("before", before.Len()).
		Int("after", after.Len()).
		Msg("Merged item list")

	c.hooks.triggerMembership(before, after)
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}

// Judge implements Mutator.
func (c *client) Judge(ctx context.Context, ordered []string) (*ranking.State, error) {
	_, after, err := c.cycle(ctx, "judge", loadExisting, func(state *ranking.State) error {
		return state.Judge(ordered)
	})
	if err != nil {
		return nil, err
	}

	c.hooks.triggerJudged(Judgment{
		Winner: ordered[0],
		Losers: append([]string(nil), ordered[1:]...),
		Items:  after.Items(),
	})
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}

// Add implements Mutator.
func (c *client) Add(ctx context.Context, value string) (*ranking.State, error) {
	before, after, err := c.cycle(ctx, "add", store.LoadOrDefault, func(state *ranking.State) error {
		return state.Add(value)
	})
	if err != nil {
		return nil, err
	}
	c.hooks.triggerMembership(before, after)
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}

// Rename implements Mutator.
func (c *client) Rename(ctx context.Context, from, to string) (*ranking.State, error) {
	_, after, err := c.cycle(ctx, "rename", loadExisting, func(state *ranking.State) error {
		return state.Rename(from, to)
	})
	if err != nil {
		return nil, err
	}
	if from != to {
		c.hooks.triggerRenamed(from, to)
	}
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}

// Remove implements Mutator.
func (c *client) Remove(ctx context.Context, value string) (*ranking.State, error) {
	before, after, err := c.cycle(ctx, "remove", loadExisting, func(state *ranking.State) error {
		return state.Remove(value)
	})
	if err != nil {
		return nil, err
	}
	c.hooks.triggerMembership(before, after)
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}

// SetBatchSize implements Mutator.
func (c *client) SetBatchSize(ctx context.Context, n int) (*ranking.State, error) {
	_, after, err := c.cycle(ctx, "set_batch_size", loadExisting, func(state *ranking.State) error {
		return state.SetBatchSize(n)
	})
	if err != nil {
		return nil, err
	}
	c.hooks.triggerSaved(after)
	return after.Clone(), nil
}
