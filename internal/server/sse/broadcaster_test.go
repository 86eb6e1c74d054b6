package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/humansort/internal/server/events"
)

func newTestBroadcaster(t *testing.T) (*Broadcaster, context.CancelFunc) {
	t.Helper()
	logger := zerolog.Nop()
	b := NewBroadcaster(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)
	t.Cleanup(cancel)
	return b, cancel
}

func waitForClients(t *testing.T, b *Broadcaster, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != n && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := b.ClientCount(); got != n {
		t.Fatalf("ClientCount() = %d, want %d", got, n)
	}
}

// readEvent reads one SSE frame and returns its field lines.
func readEvent(t *testing.T, r *bufio.Reader) map[string]string {
	t.Helper()
	fields := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return fields
		}
		key, value, _ := strings.Cut(line, ": ")
		fields[key] = value
	}
}

func TestBroadcaster_Stream(t *testing.T) {
	b, _ := newTestBroadcaster(t)
	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	r := bufio.NewReader(resp.Body)
	hello := readEvent(t, r)
	if hello["event"] != string(events.ClientConnected) {
		t.Errorf("first event = %v", hello)
	}

	waitForClients(t, b, 1)
	_ = b.Send(events.Event{ID: 3, Type: events.JudgmentApplied, Data: map[string]string{"winner": "A"}})

	got := readEvent(t, r)
	if got["id"] != "3" || got["event"] != string(events.JudgmentApplied) {
		t.Errorf("event = %v", got)
	}
	if !strings.Contains(got["data"], `"winner":"A"`) {
		t.Errorf("data = %s", got["data"])
	}
}

func TestBroadcaster_ClientDisconnect(t *testing.T) {
	b, _ := newTestBroadcaster(t)
	srv := httptest.NewServer(b)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = readEvent(t, bufio.NewReader(resp.Body))
	waitForClients(t, b, 1)

	cancel()
	resp.Body.Close()
	waitForClients(t, b, 0)
}

func TestBroadcaster_ShutdownEndsStreams(t *testing.T) {
	b, cancel := newTestBroadcaster(t)
	srv := httptest.NewServer(b)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	r := bufio.NewReader(resp.Body)
	_ = readEvent(t, r)
	waitForClients(t, b, 1)

	cancel()
	waitForClients(t, b, 0)

	// Stopped broadcasters refuse new streams.
	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status after shutdown = %d", rec.Code)
	}
}
