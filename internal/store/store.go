// Package store defines the persistence contract shared by storage backends
// and their consumers: sentinel errors and the change-event seam used to keep
// reactive views and SSE clients in sync with writes.
package store

import (
	"errors"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
)

// Sentinel errors returned by storage operations.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")
)

// EventType identifies the kind of change a store broadcast describes.
type EventType string

const (
	// EventBookCreated is emitted after a book row is inserted.
	EventBookCreated EventType = "book.created"
	// EventBookUpdated is emitted after a book row is updated.
	EventBookUpdated EventType = "book.updated"
	// EventBookDeleted is emitted after a book row is deleted.
	EventBookDeleted EventType = "book.deleted"
	// EventLocationCreated is emitted when path resolution creates a new node.
	EventLocationCreated EventType = "location.created"
)

// Event describes a single committed write. Book is set for book events,
// Location for location events; BookID is always set for book deletions.
type Event struct {
	Type     EventType
	Book     *domain.Book
	Location *domain.Location
	BookID   int64
}

// EventEmitter receives change events after each committed write.
// The store broadcasts through this seam so it does not depend on the
// SSE or live-view implementations.
type EventEmitter interface {
	Emit(event Event)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ Event) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}

// MultiEmitter fans an event out to several emitters in order.
type MultiEmitter []EventEmitter

// Emit implements EventEmitter.
func (m MultiEmitter) Emit(event Event) {
	for _, e := range m {
		e.Emit(event)
	}
}
