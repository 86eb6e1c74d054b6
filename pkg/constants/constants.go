// Package constants provides shared constants used throughout the humansort codebase.
// This includes ranking bounds, timeouts, file permissions, and other configuration
// values that should be consistent across the engine and its shells.
package constants

import "time"

// Ranking constants define the bounds of the ranking engine
const (
	// MinBatchSize is the smallest batch that can express a winner and a loser
	MinBatchSize = 2

	// MaxBatchSize keeps every batch position selectable with a single keystroke
	MaxBatchSize = 9

	// DefaultBatchSize is the batch size of a newly created state
	DefaultBatchSize = 5

	// InitialRating is the rating given to every new item
	InitialRating = 0.0

	// RatingBase is the base of the logistic expected-score curve
	RatingBase = 10.0

	// MaxSelectionAttempts bounds the redraws spent on a single batch slot
	MaxSelectionAttempts = 64
)

// Output constants control how rankings are displayed
const (
	// DefaultOutputLimit is the number of items shown by default in ranked views
	DefaultOutputLimit = 10
)

// File constants define on-disk naming conventions
const (
	// StateFileExtension is appended to a list file name to derive its state file
	StateFileExtension = ".humansort"

	// LockFileSuffix is appended to a state file path to form its lock file
	LockFileSuffix = ".lock"

	// ConfigFileName is the config file name searched in $HOME and the working directory
	ConfigFileName = ".humansort"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "HUMANSORT"

	// DefaultRedisKey is the key used for state when no key is given
	DefaultRedisKey = "humansort:state"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Timeout constants define various timeout durations used in the application
const (
	// LockTimeout is how long a command waits for exclusive access to a state
	LockTimeout = 10 * time.Second

	// LockPollInterval is the delay between attempts to acquire a state lock
	LockPollInterval = 25 * time.Millisecond

	// LockTTL is how long a Redis lock survives if its holder dies
	LockTTL = 30 * time.Second

	// ShutdownTimeout is the grace period for stopping the HTTP server
	ShutdownTimeout = 5 * time.Second

	// ReadHeaderTimeout bounds how long the server waits for request headers
	ReadHeaderTimeout = 10 * time.Second
)

// Server constants
const (
	// DefaultServerHost is the default listen address for the API server
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default listen port for the API server
	DefaultServerPort = 8080

	// APIPathPrefix prefixes every API route
	APIPathPrefix = "/api/v1"

	// ChannelBufferSize is the default buffer size for event channels
	ChannelBufferSize = 256

	// MaxRequestBodySize limits JSON request bodies in bytes
	MaxRequestBodySize = 64 * 1024
)
