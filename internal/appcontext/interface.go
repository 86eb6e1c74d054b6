// Package appcontext defines what commands need from the application, so
// command packages depend on an interface rather than on the App itself.
package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/server"
)

// Interface defines the application context that commands need.
// The App in cmd/humansort/app implements it; tests use Mock.
type Interface interface {
	// Client opens a client for the state at location. With the file
	// backend location is a path; with the redis backend it is a key.
	// The caller closes the client.
	Client(ctx context.Context, location string) (humansort.Client, error)

	// StateLocation derives the default state location for a list file.
	StateLocation(listFile string) string

	// ServerConfig returns the API server configuration.
	ServerConfig() server.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the requested output format (table, json, yaml,
	// plain) or "" to detect it from the terminal.
	OutputFormat() string

	// Quiet reports whether status messages are suppressed.
	Quiet() bool

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
