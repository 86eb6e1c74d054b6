package server

import (
	"time"

	"github.com/agentstation/humansort/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	// PathPrefix prefixes every API route.
	PathPrefix string

	// CORS settings. An empty origin list allows any origin.
	CORSEnabled bool
	CORSOrigins []string

	// Token, when set, is required as a bearer token on mutating requests.
	Token string

	// CacheTTL bounds how long a ranking response is served from cache.
	// Saves made by this server flush the cache immediately; the TTL covers
	// writes by other processes sharing the store.
	CacheTTL time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:        constants.DefaultServerHost,
		Port:        constants.DefaultServerPort,
		PathPrefix:  constants.APIPathPrefix,
		CacheTTL:    5 * time.Second,
		ReadTimeout: 10 * time.Second,
		// Streams hold the connection open; per-write deadlines are set by
		// the WebSocket pump instead.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}
}
