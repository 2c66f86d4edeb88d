// Package broadcast keeps every connected observer in sync with the store by
// pushing full snapshots.
package broadcast

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

var ErrHubClosed = errors.New("hub closed")

// Observer receives snapshots. Send must not block for long; an observer that
// cannot keep up should return an error and will be dropped.
type Observer interface {
	ID() string
	Send(snap models.Snapshot) error
	Close() error
}

// SnapshotSource produces the current state.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
}

// Hub is the set of connected observers. It is an ordinary value: create one
// per server and Close it on shutdown.
type Hub struct {
	source SnapshotSource

	mu        sync.RWMutex
	observers map[string]Observer
	closed    bool

	// serializes compute+push so a newer snapshot is never followed by an
	// older one on the same observer.
	pushMu sync.Mutex
}

func NewHub(source SnapshotSource) *Hub {
	return &Hub{
		source:    source,
		observers: make(map[string]Observer),
	}
}

// Register adds the observer and sends it the current snapshot.
func (h *Hub) Register(ctx context.Context, o Observer) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrHubClosed
	}
	h.observers[o.ID()] = o
	h.mu.Unlock()

	if err := h.Pull(ctx, o); err != nil {
		h.Unregister(o.ID())
		return err
	}
	return nil
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	o, ok := h.observers[id]
	delete(h.observers, id)
	h.mu.Unlock()

	if ok {
		o.Close()
	}
}

// Pull sends a fresh snapshot to a single observer.
func (h *Hub) Pull(ctx context.Context, o Observer) error {
	h.pushMu.Lock()
	defer h.pushMu.Unlock()

	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		return err
	}
	return o.Send(snap)
}

// Broadcast recomputes the snapshot and pushes it to every observer connected
// at the time of the push. Observers that fail are dropped; the rest still
// receive it.
func (h *Hub) Broadcast(ctx context.Context) error {
	h.pushMu.Lock()
	defer h.pushMu.Unlock()

	snap, err := h.source.Snapshot(ctx)
	if err != nil {
		return err
	}

	for _, o := range h.members() {
		if err := o.Send(snap); err != nil {
			log.Printf("dropping observer %s: %v", o.ID(), err)
			h.Unregister(o.ID())
		}
	}
	return nil
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.observers)
}

// Close disconnects every observer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	observers := h.observers
	h.observers = make(map[string]Observer)
	h.mu.Unlock()

	for _, o := range observers {
		o.Close()
	}
}

func (h *Hub) members() []Observer {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Observer, 0, len(h.observers))
	for _, o := range h.observers {
		out = append(out, o)
	}
	return out
}
