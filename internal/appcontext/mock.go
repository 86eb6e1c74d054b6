package appcontext

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/humansort"
	"github.com/agentstation/humansort/internal/server"
	"github.com/agentstation/humansort/internal/store"
	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/logging"
)

var _ Interface = (*Mock)(nil)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
//	mock := &appcontext.Mock{
//	    ClientFunc: func(context.Context, string) (humansort.Client, error) {
//	        return humansort.New()
//	    },
//	}
//	cmd := output.NewCommand(mock)
type Mock struct {
	ClientFunc        func(ctx context.Context, location string) (humansort.Client, error)
	ServerConfigFunc  func() server.Config
	LoggerFunc        func() *zerolog.Logger
	OutputFormatValue string
	QuietValue        bool
	VersionValue      string
}

// Client returns a client using the mock function or an in-memory client.
func (m *Mock) Client(ctx context.Context, location string) (humansort.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(ctx, location)
	}
	return humansort.New(humansort.WithLogger(m.Logger()))
}

// StateLocation appends the state file extension.
func (m *Mock) StateLocation(listFile string) string {
	return listFile + constants.StateFileExtension
}

// ServerConfig returns the mock config or server.DefaultConfig.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns OutputFormatValue.
func (m *Mock) OutputFormat() string {
	return m.OutputFormatValue
}

// Quiet returns QuietValue.
func (m *Mock) Quiet() bool {
	return m.QuietValue
}

// NoColor always returns true so test output is stable.
func (m *Mock) NoColor() bool {
	return true
}

// Version returns VersionValue or "dev".
func (m *Mock) Version() string {
	if m.VersionValue != "" {
		return m.VersionValue
	}
	return "dev"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }

// FileClient opens a client on a file store at location. Set it as
// ClientFunc to run commands against real state files.
func FileClient(_ context.Context, location string) (humansort.Client, error) {
	return humansort.New(
		humansort.WithStore(store.NewFileStore(location)),
		humansort.WithLogger(logging.NewNopLogger()),
	)
}
