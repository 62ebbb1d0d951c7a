// Package live maintains in-memory derived views of the catalog that are
// recomputed after every committed write. Views follow a replay-last
// contract: a new subscriber immediately receives the current value, then
// every subsequent one.
package live

import (
	"sync"

	"github.com/shelfkeeper/shelfkeeper-server/internal/id"
)

// View is a hot observable holding the latest value of a derived query.
type View[T any] struct {
	mu       sync.RWMutex
	current  T
	hasValue bool
	subs     map[string]chan T
}

// NewView creates an empty view with no current value.
func NewView[T any]() *View[T] {
	return &View[T]{subs: make(map[string]chan T)}
}

// Get returns the current value and whether one has been set.
func (v *View[T]) Get() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current, v.hasValue
}

// Set stores a new value and fans it out to all subscribers.
// Slow subscribers have the update dropped rather than blocking the writer;
// they catch up on the next one.
func (v *View[T]) Set(value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = value
	v.hasValue = true

	for _, ch := range v.subs {
		select {
		case ch <- value:
		default:
		}
	}
}

// Subscribe registers a new subscriber and returns its ID and channel.
// If the view holds a value, it is replayed on the channel before any
// later update.
func (v *View[T]) Subscribe() (string, <-chan T) {
	subID := id.MustGenerate("sub")
	ch := make(chan T, 16)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.hasValue {
		ch <- v.current
	}
	v.subs[subID] = ch

	return subID, ch
}

// Unsubscribe removes a subscriber and closes its channel.
// Unknown IDs are ignored.
func (v *View[T]) Unsubscribe(subID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch, ok := v.subs[subID]
	if !ok {
		return
	}
	delete(v.subs, subID)
	close(ch)
}

// SubscriberCount returns the number of active subscribers.
func (v *View[T]) SubscriberCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}
