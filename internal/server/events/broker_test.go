package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	closed bool
}

func (r *recorder) Send(event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *recorder) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func startBroker(t *testing.T) (*Broker, context.CancelFunc) {
	t.Helper()
	logger := zerolog.Nop()
	b := NewBroker(&logger)
	ctx, cancel := context.WithCancel(context.Background())
	go b.Run(ctx)
	t.Cleanup(cancel)
	return b, cancel
}

func TestBroker_SubscribeBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		b.Subscribe(&recorder{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Subscribe blocked without a running broker")
	}

	if got := b.SubscriberCount(); got != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", got)
	}
}

func TestBroker_DeliversInOrder(t *testing.T) {
	b, _ := startBroker(t)
	first, second := &recorder{}, &recorder{}
	b.Subscribe(first)
	b.Subscribe(second)

	b.Publish(ItemAdded, map[string]any{"value": "A"})
	b.Publish(JudgmentApplied, map[string]any{"winner": "A"})
	b.Publish(ItemRemoved, map[string]any{"value": "A"})

	for _, r := range []*recorder{first, second} {
		waitFor(t, func() bool { return len(r.snapshot()) == 3 })
		got := r.snapshot()
		want := []Type{ItemAdded, JudgmentApplied, ItemRemoved}
		for i, e := range got {
			if e.Type != want[i] {
				t.Errorf("event %d type = %s, want %s", i, e.Type, want[i])
			}
			if e.ID != uint64(i+1) {
				t.Errorf("event %d id = %d, want %d", i, e.ID, i+1)
			}
			if e.Timestamp.IsZero() {
				t.Errorf("event %d has no timestamp", i)
			}
		}
	}
}

func TestBroker_Unsubscribe(t *testing.T) {
	b, _ := startBroker(t)
	r := &recorder{}
	b.Subscribe(r)
	b.Unsubscribe(r)

	if !r.isClosed() {
		t.Error("unsubscribed subscriber was not closed")
	}
	if got := b.SubscriberCount(); got != 0 {
		t.Errorf("SubscriberCount() = %d, want 0", got)
	}

	b.Publish(ItemAdded, nil)
	time.Sleep(20 * time.Millisecond)
	if n := len(r.snapshot()); n != 0 {
		t.Errorf("unsubscribed subscriber received %d events", n)
	}
}

func TestBroker_ShutdownClosesSubscribers(t *testing.T) {
	b, cancel := startBroker(t)
	r := &recorder{}
	b.Subscribe(r)

	cancel()
	waitFor(t, r.isClosed)
	waitFor(t, func() bool { return b.SubscriberCount() == 0 })
}

func TestBroker_PublishNeverBlocks(t *testing.T) {
	logger := zerolog.Nop()
	b := NewBroker(&logger)

	done := make(chan struct{})
	go func() {
		for range cap(b.events) + 10 {
			b.Publish(ItemAdded, nil)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}
