package humansort

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/errors"
	"github.com/agentstation/humansort/pkg/logging"
	"github.com/agentstation/humansort/pkg/ranking"
)

// options holds the configuration for a client.
type options struct {
	store  store.Store
	logger *zerolog.Logger
	source ranking.Source
}

func defaults() *options {
	return &options{
		logger: logging.Default(),
		source: ranking.DefaultSource,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.store == nil {
		o.store = store.NewMemoryStore(nil)
	}
	return o, nil
}

// Option is a function that configures a Client.
type Option func(*options) error

// WithStore sets where the state is loaded from and saved to. Without it
// the client keeps its state in memory.
func WithStore(s store.Store) Option {
	return func(o *options) error {
		if s == nil {
			return errors.NewValidationError("store", nil, "store cannot be nil")
		}
		o.store = s
		return nil
	}
}

// WithLogger sets the client's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithSource sets the randomness used to pick batches. Sources that are not
// safe for concurrent use are guarded by the client.
func WithSource(src ranking.Source) Option {
	return func(o *options) error {
		if src == nil {
			return errors.NewValidationError("source", nil, "source cannot be nil")
		}
		o.source = src
		return nil
	}
}

// createOptions configures Create.
type createOptions struct {
	overwrite bool
	batchSize int
}

// CreateOption configures Create.
type CreateOption func(*createOptions)

// WithOverwrite allows Create to replace an existing state.
func WithOverwrite(overwrite bool) CreateOption {
	return func(o *createOptions) {
		o.overwrite = overwrite
	}
}

// WithBatchSize sets the batch size of the created state.
func WithBatchSize(n int) CreateOption {
	return func(o *createOptions) {
		o.batchSize = n
	}
}
