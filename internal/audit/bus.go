package audit

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Bus fans audit events out to subscribers in memory. Slow subscribers drop
// events rather than stall publishers.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string]chan Event)}
}

func (b *Bus) Record(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			slog.Warn("audit subscriber full, dropping event", "action", e.Action)
		}
	}
}

// Subscribe registers a buffered listener. The returned cancel function
// closes the channel and removes the subscription.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan Event, 100)
	b.subscribers[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			close(sub)
			delete(b.subscribers, id)
		}
	}

	return ch, cancel
}

// LogSink drains a subscription into the structured log until the channel
// closes. Run it on its own goroutine.
func LogSink(events <-chan Event) {
	for e := range events {
		slog.Info("audit",
			"action", string(e.Action),
			"subject", e.Subject,
			"detail", e.Detail,
			"at", e.Timestamp,
		)
	}
}

// Discard satisfies Recorder for callers that do not wire a bus, tests mostly.
type Discard struct{}

func (Discard) Record(Event) {}
