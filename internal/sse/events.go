// Package sse implements Server-Sent Events for real-time catalog updates.
package sse

import (
	"time"

	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
)

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventBookCreated represents a book creation event.
	EventBookCreated EventType = "book.created"
	// EventBookUpdated represents a book update event.
	EventBookUpdated EventType = "book.updated"
	// EventBookDeleted represents a book deletion event.
	EventBookDeleted EventType = "book.deleted"

	// EventLocationCreated represents a new node appearing in the location tree.
	EventLocationCreated EventType = "location.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
}

// NewHeartbeatEvent creates a keepalive event.
func NewHeartbeatEvent() Event {
	return Event{
		Type:      EventHeartbeat,
		Timestamp: time.Now(),
		Data:      map[string]string{"status": "alive"},
	}
}

// fromStoreEvent converts a committed write into its wire representation.
func fromStoreEvent(e store.Event) Event {
	out := Event{
		Type:      EventType(e.Type),
		Timestamp: time.Now(),
	}

	switch e.Type {
	case store.EventBookCreated, store.EventBookUpdated:
		out.Data = e.Book
	case store.EventBookDeleted:
		out.Data = map[string]int64{"id": e.BookID}
	case store.EventLocationCreated:
		out.Data = e.Location
	}

	return out
}
