// Package events fans ranking state changes out to realtime transports.
//
// The server connects the client hooks to a Broker, and each transport
// (the WebSocket hub, the SSE broadcaster) registers as a Subscriber. Every
// published event gets a sequence number so clients can notice gaps.
package events

import "time"

// Type names a state change.
type Type string

// Event types.
const (
	// Item membership events (from client hooks).
	ItemAdded   Type = "item.added"
	ItemRemoved Type = "item.removed"
	ItemRenamed Type = "item.renamed"

	// JudgmentApplied follows every successful judgment.
	JudgmentApplied Type = "judgment.applied"

	// BatchSizeChanged follows a batch size update.
	BatchSizeChanged Type = "batch_size.changed"

	// ViewChanged follows a front-end view switch.
	ViewChanged Type = "view.changed"

	// ClientConnected is sent to a transport client when it connects.
	ClientConnected Type = "client.connected"
)

// Event is one state change.
type Event struct {
	ID        uint64    `json:"id"`
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Subscriber consumes events. Send must not block.
type Subscriber interface {
	Send(Event) error
	Close() error
}
