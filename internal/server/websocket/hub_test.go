package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/humansort/internal/server/events"
)

func newTestHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	logger := zerolog.Nop()
	hub := NewHub(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func receive(t *testing.T, c *Client) (events.Event, bool) {
	t.Helper()
	select {
	case e, ok := <-c.send:
		return e, ok
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return events.Event{}, false
	}
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub, _ := newTestHub(t)
	client := NewClient("c1", hub, nil)

	hub.Register(client)
	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() = %d, want 1", got)
	}

	hub.Unregister(client)
	hub.Unregister(client)
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0", got)
	}
	if _, ok := receive(t, client); ok {
		t.Error("send queue still open after unregister")
	}
}

func TestHub_SendReachesEveryClient(t *testing.T) {
	hub, _ := newTestHub(t)
	a := NewClient("a", hub, nil)
	b := NewClient("b", hub, nil)
	hub.Register(a)
	hub.Register(b)

	if err := hub.Send(events.Event{ID: 7, Type: events.ItemAdded}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	for _, c := range []*Client{a, b} {
		e, ok := receive(t, c)
		if !ok || e.ID != 7 || e.Type != events.ItemAdded {
			t.Errorf("client %s got %+v (open=%v)", c.ID(), e, ok)
		}
	}
}

func TestHub_GreetComesFirst(t *testing.T) {
	hub, _ := newTestHub(t)
	c := NewClient("c", hub, nil)
	c.Greet(events.Event{Type: events.ClientConnected})
	hub.Register(c)
	_ = hub.Send(events.Event{Type: events.JudgmentApplied})

	first, _ := receive(t, c)
	second, _ := receive(t, c)
	if first.Type != events.ClientConnected || second.Type != events.JudgmentApplied {
		t.Errorf("order = %s, %s", first.Type, second.Type)
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	hub, _ := newTestHub(t)
	c := NewClient("slow", hub, nil)
	hub.Register(c)

	deadline := time.Now().Add(2 * time.Second)
	for i := 0; hub.ClientCount() != 0 && time.Now().Before(deadline); i++ {
		_ = hub.Send(events.Event{ID: uint64(i + 1)})
		if i%64 == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("slow client still registered, ClientCount() = %d", got)
	}
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub, cancel := newTestHub(t)
	c := NewClient("c", hub, nil)
	hub.Register(c)

	cancel()
	if _, ok := receive(t, c); ok {
		t.Error("client queue open after shutdown")
	}

	late := NewClient("late", hub, nil)
	hub.Register(late)
	if _, ok := receive(t, late); ok {
		t.Error("client registered after shutdown was not closed")
	}
}

func TestHub_EndToEnd(t *testing.T) {
	hub, _ := newTestHub(t)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("e2e", hub, conn)
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	_ = hub.Send(events.Event{ID: 1, Type: events.ItemRenamed, Data: map[string]string{"from": "a", "to": "b"}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got events.Event
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if got.Type != events.ItemRenamed || got.ID != 1 {
		t.Errorf("got %+v", got)
	}
}
