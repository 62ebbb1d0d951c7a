// Package domain holds the core catalog types shared across the server.
package domain

// Location is a named node in the physical location tree.
// Nodes form a forest: ParentID zero means the node is a root (a room);
// otherwise exactly one parent exists. Nodes are created lazily the first
// time a path segment is seen and are shared by every book whose path passes
// through them, so a location outlives any single book.
type Location struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	// ParentID is zero for roots, mirroring NULL in the database.
	ParentID int64 `json:"parent_id,omitempty"`
}

// IsRoot reports whether the location is a room (no parent).
func (l *Location) IsRoot() bool {
	return l.ParentID == 0
}

// Persisted reports whether the location exists in storage.
// GetOrCreateRoot returns a transient sentinel with a zero ID when asked for
// a blank room name; that sentinel is never written.
func (l *Location) Persisted() bool {
	return l.ID != 0
}
