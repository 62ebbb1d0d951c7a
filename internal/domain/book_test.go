package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadingStatusValid(t *testing.T) {
	assert.True(t, StatusNotRead.Valid())
	assert.True(t, StatusReading.Valid())
	assert.True(t, StatusRead.Valid())

	assert.False(t, ReadingStatus("").Valid())
	assert.False(t, ReadingStatus("skimmed").Valid())
	assert.False(t, ReadingStatus("Read").Valid())
}

func TestBookLevels(t *testing.T) {
	b := &Book{
		LocationLevel1: "Office",
		LocationLevel3: "Top row",
	}

	levels := b.Levels()
	assert.Equal(t, [5]string{"Office", "", "Top row", "", ""}, levels)
}
