package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentstation/humansort/pkg/logging"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	app, err := New("1.0.0", "abc123", "2024-01-01", "test",
		WithConfig(&Config{Store: "file", LogOutput: "discard"}),
		WithLogger(logging.NewNopLogger()),
	)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// execute runs the root command with captured output.
func execute(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if got := app.StateLocation("movies.txt"); got != "movies.txt.humansort" {
		t.Errorf("StateLocation() = %s, want movies.txt.humansort", got)
	}
}

func TestApp_ServerConfig(t *testing.T) {
	app := newTestApp(t)
	app.config.Server = ServerConfig{Port: 9999, CORSOrigins: []string{"https://a.example"}, Token: "t"}

	cfg := app.ServerConfig()
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.Host != "localhost" {
		t.Errorf("Host = %q, want localhost", cfg.Host)
	}
	if !cfg.CORSEnabled {
		t.Error("CORSEnabled should follow a non-empty origin list")
	}
	if cfg.Token != "t" {
		t.Errorf("Token = %q, want t", cfg.Token)
	}
}

func TestApp_ClientUnknownStore(t *testing.T) {
	app := newTestApp(t)
	app.config.Store = "etcd"

	if _, err := app.Client(context.Background(), "x"); err == nil {
		t.Error("Client() with an unknown store should fail")
	}
}

func TestExecute_StartSortOutput(t *testing.T) {
	app := newTestApp(t)
	list := filepath.Join(t.TempDir(), "drinks.txt")
	if err := os.WriteFile(list, []byte("tea\ncoffee\njuice\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	state := list + ".humansort"

	if _, _, err := execute(t, app, "start", list, "--batch-size", "3"); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	// Three separate judgments that all put juice first.
	root := app.createRootCommand()
	root.SetIn(strings.NewReader("3\n3\n3\n"))
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"sort", state, "--rounds", "3"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("sort failed: %v", err)
	}

	stdout, _, err := execute(t, app, "-o", "plain", "output", state, "--limit", "1")
	if err != nil {
		t.Fatalf("output failed: %v", err)
	}
	if stdout == "" {
		t.Fatal("output printed nothing")
	}
}

func TestExecute_InvalidFormat(t *testing.T) {
	app := newTestApp(t)

	_, _, err := execute(t, app, "-o", "xml", "version")
	if err == nil {
		t.Error("an unknown --format should fail")
	}
}

func TestExecute_FlagsOverrideConfig(t *testing.T) {
	app := newTestApp(t)

	if _, _, err := execute(t, app, "--store", "memory", "--redis-addr", "r:6379", "-q", "version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if app.config.Store != "memory" {
		t.Errorf("Store = %q, want memory", app.config.Store)
	}
	if app.config.Redis.Addr != "r:6379" {
		t.Errorf("Redis.Addr = %q, want r:6379", app.config.Redis.Addr)
	}
	if !app.Quiet() {
		t.Error("Quiet() should follow -q")
	}
}
