// Package app provides the application context and dependency management
// for the humansort CLI. It centralizes configuration, logging and the way
// commands open ranking state.
package app

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/appcontext"
	"github.com/agentstation/humansort/internal/server"
	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
)

var _ appcontext.Interface = (*App)(nil)

// App represents the humansort application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and the default config file
// search path; options can replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the --format value.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether -q was given.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Client opens the configured store at location and wraps it in a client.
func (a *App) Client(ctx context.Context, location string) (humansort.Client, error) {
	s, err := store.Open(ctx, store.Config{
		Backend:  a.config.Store,
		Location: location,
		Redis:    a.config.Redis,
	})
	if err != nil {
		return nil, errors.WrapResource("open", "store", location, err)
	}

	client, err := humansort.New(
		humansort.WithStore(s),
		humansort.WithLogger(a.logger),
	)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return client, nil
}

// StateLocation derives the state file of a list file. With the redis
// backend the same string is used as the key.
func (a *App) StateLocation(listFile string) string {
	return listFile + constants.StateFileExtension
}

// ServerConfig returns the API server configuration.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	s := a.config.Server
	if s.Host != "" {
		cfg.Host = s.Host
	}
	if s.Port != 0 {
		cfg.Port = s.Port
	}
	cfg.CORSEnabled = s.CORS || len(s.CORSOrigins) > 0
	cfg.CORSOrigins = s.CORSOrigins
	cfg.Token = s.Token
	if s.CacheTTL > 0 {
		cfg.CacheTTL = s.CacheTTL
	}
	return cfg
}

// Shutdown performs graceful shutdown of the application. Commands close
// the clients they open themselves.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}
