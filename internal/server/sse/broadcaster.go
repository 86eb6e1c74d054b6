// Package sse streams ranking events to clients as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/humansort/internal/server/events"
	"github.com/agentstation/humansort/pkg/constants"
)

var _ events.Subscriber = (*Broadcaster)(nil)

// Broadcaster manages Server-Sent Events connections.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan events.Event]struct{}
	stopped bool
	events  chan events.Event
	logger  *zerolog.Logger
}

// NewBroadcaster creates a new SSE broadcaster.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan events.Event]struct{}),
		events:  make(chan events.Event, constants.ChannelBufferSize),
		logger:  logger,
	}
}

// Run fans events out to connected streams until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for client := range b.clients {
				close(client)
			}
			clear(b.clients)
			b.stopped = true
			b.mu.Unlock()
			b.logger.Info().Msg("SSE broadcaster shut down")
			return

		case event := <-b.events:
			b.mu.RLock()
			for client := range b.clients {
				select {
				case client <- event:
				default:
					b.logger.Warn().Str("event_type", string(event.Type)).Msg("SSE client buffer full, event skipped")
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Send implements events.Subscriber.
func (b *Broadcaster) Send(event events.Event) error {
	select {
	case b.events <- event:
	default:
		b.logger.Warn().Str("event_type", string(event.Type)).Msg("SSE broadcast channel full, event dropped")
	}
	return nil
}

// Close implements events.Subscriber. The broadcaster stops with its Run
// context.
func (b *Broadcaster) Close() error {
	return nil
}

// ClientCount returns the number of connected SSE clients.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) add() (chan events.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return nil, false
	}
	client := make(chan events.Event, constants.ChannelBufferSize)
	b.clients[client] = struct{}{}
	b.logger.Info().Int("total_clients", len(b.clients)).Msg("SSE client connected")
	return client, true
}

func (b *Broadcaster) remove(client chan events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; ok {
		delete(b.clients, client)
		close(client)
		b.logger.Info().Int("total_clients", len(b.clients)).Msg("SSE client disconnected")
	}
}

// ServeHTTP streams events until the client goes away or the broadcaster
// stops.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	client, ok := b.add()
	if !ok {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}
	defer b.remove(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	b.write(w, flusher, events.Event{
		Type:      events.ClientConnected,
		Timestamp: time.Now().UTC(),
		Data:      map[string]any{"transport": "sse"},
	})

	for {
		select {
		case event, ok := <-client:
			if !ok {
				return
			}
			b.write(w, flusher, event)

		case <-r.Context().Done():
			return
		}
	}
}

// write emits one event in text/event-stream framing.
func (b *Broadcaster) write(w http.ResponseWriter, flusher http.Flusher, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}

	if event.ID != 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", event.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
	flusher.Flush()
}
