package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationIsRoot(t *testing.T) {
	root := &Location{ID: 1, Name: "Office"}
	assert.True(t, root.IsRoot())

	child := &Location{ID: 2, Name: "Black shelf", ParentID: 1}
	assert.False(t, child.IsRoot())
}

func TestLocationPersisted(t *testing.T) {
	assert.True(t, (&Location{ID: 7, Name: "Office"}).Persisted())

	// The blank-name sentinel has no ID and is never written.
	assert.False(t, (&Location{}).Persisted())
}
