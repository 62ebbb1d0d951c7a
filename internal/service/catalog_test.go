package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/errors"
)

func testBook(title string) *domain.Book {
	return &domain.Book{
		Title:          title,
		Authors:        "Frank Herbert",
		Language:       "en",
		LocationLevel1: "Office",
	}
}

func TestAddBookResolvesLocation(t *testing.T) {
	catalog, locations, s := newTestServices(t)
	ctx := context.Background()

	b := testBook("Dune")
	b.LocationLevel2 = "Black shelf"
	b.LocationLevel3 = "Top row"

	id, err := catalog.AddBook(ctx, b)
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := catalog.GetBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNotRead, got.ReadingStatus)
	require.NotZero(t, got.LocationID)

	leaf, err := s.GetLocationByID(ctx, got.LocationID)
	require.NoError(t, err)
	assert.Equal(t, "Top row", leaf.Name)

	// A second book on the same path reuses the nodes.
	b2 := testBook("Dune Messiah")
	b2.LocationLevel2 = "Black shelf"
	b2.LocationLevel3 = "Top row"
	_, err = catalog.AddBook(ctx, b2)
	require.NoError(t, err)
	assert.Equal(t, got.LocationID, b2.LocationID)

	roots, err := locations.ListRoots(ctx)
	require.NoError(t, err)
	assert.Len(t, roots, 1)
}

func TestAddBookValidation(t *testing.T) {
	catalog, _, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*domain.Book)
	}{
		{"blank title", func(b *domain.Book) { b.Title = "   " }},
		{"blank authors", func(b *domain.Book) { b.Authors = "" }},
		{"blank language", func(b *domain.Book) { b.Language = "  " }},
		{"blank room", func(b *domain.Book) { b.LocationLevel1 = "\t" }},
		{"title too long", func(b *domain.Book) { b.Title = strings.Repeat("x", 256) }},
		{"bad status", func(b *domain.Book) { b.ReadingStatus = "skimmed" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBook("Dune")
			tt.mutate(b)
			_, err := catalog.AddBook(ctx, b)
			assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
		})
	}

	// Nothing was persisted by the failed attempts.
	books, err := catalog.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestAddBookNormalizesFields(t *testing.T) {
	catalog, _, _ := newTestServices(t)
	ctx := context.Background()

	b := &domain.Book{
		Title:          "  Dune  ",
		Authors:        " Frank Herbert ",
		Language:       " en ",
		LocationLevel1: " Office ",
		LocationLevel2: "   ",
	}
	id, err := catalog.AddBook(ctx, b)
	require.NoError(t, err)

	got, err := catalog.GetBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Authors)
	assert.Equal(t, "en", got.Language)
	assert.Equal(t, "Office", got.LocationLevel1)
	assert.Empty(t, got.LocationLevel2)
}

func TestUpdateBookReResolvesPath(t *testing.T) {
	catalog, _, s := newTestServices(t)
	ctx := context.Background()

	b := testBook("Dune")
	b.LocationLevel2 = "Black shelf"
	id, err := catalog.AddBook(ctx, b)
	require.NoError(t, err)
	originalLeaf := b.LocationID

	// Moving the book to another shelf in the same room must change the
	// leaf but keep the root.
	b.LocationLevel2 = "White shelf"
	require.NoError(t, catalog.UpdateBook(ctx, b))
	assert.NotEqual(t, originalLeaf, b.LocationID)

	got, err := catalog.GetBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, b.LocationID, got.LocationID)

	newLeaf, err := s.GetLocationByID(ctx, got.LocationID)
	require.NoError(t, err)
	assert.Equal(t, "White shelf", newLeaf.Name)

	oldLeaf, err := s.GetLocationByID(ctx, originalLeaf)
	require.NoError(t, err)
	assert.Equal(t, oldLeaf.ParentID, newLeaf.ParentID)
}

func TestUpdateMissingBookIsNoop(t *testing.T) {
	catalog, _, _ := newTestServices(t)

	b := testBook("Ghost")
	b.ID = 9999
	assert.NoError(t, catalog.UpdateBook(context.Background(), b))
}

func TestDeleteBookKeepsLocations(t *testing.T) {
	catalog, _, s := newTestServices(t)
	ctx := context.Background()

	first := testBook("Dune")
	first.LocationLevel2 = "Black shelf"
	firstID, err := catalog.AddBook(ctx, first)
	require.NoError(t, err)

	second := testBook("Dune Messiah")
	second.LocationLevel2 = "Black shelf"
	secondID, err := catalog.AddBook(ctx, second)
	require.NoError(t, err)
	require.Equal(t, first.LocationID, second.LocationID)

	require.NoError(t, catalog.DeleteBook(ctx, firstID))

	// The shared leaf survives and the second book still resolves.
	leaf, err := s.GetLocationByID(ctx, second.LocationID)
	require.NoError(t, err)
	assert.Equal(t, "Black shelf", leaf.Name)

	got, err := catalog.GetBook(ctx, secondID)
	require.NoError(t, err)
	assert.Equal(t, leaf.ID, got.LocationID)

	// Deleting again is a no-op.
	assert.NoError(t, catalog.DeleteBook(ctx, firstID))
}

func TestGetBookNotFound(t *testing.T) {
	catalog, _, _ := newTestServices(t)

	_, err := catalog.GetBook(context.Background(), 42)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSearchBooks(t *testing.T) {
	catalog, _, _ := newTestServices(t)
	ctx := context.Background()

	for _, title := range []string{"Dune", "Foundation"} {
		_, err := catalog.AddBook(ctx, testBook(title))
		require.NoError(t, err)
	}

	got, err := catalog.SearchBooks(ctx, "dUnE")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)
}

func TestStats(t *testing.T) {
	catalog, _, _ := newTestServices(t)
	ctx := context.Background()

	dune := testBook("Dune")
	dune.ReadingStatus = domain.StatusRead
	_, err := catalog.AddBook(ctx, dune)
	require.NoError(t, err)

	master := testBook("Мастер и Маргарита")
	master.Authors = "Михаил Булгаков"
	master.Language = "ru"
	master.LocationLevel1 = "Bedroom"
	_, err = catalog.AddBook(ctx, master)
	require.NoError(t, err)

	stats, err := catalog.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBooks)
	assert.Len(t, stats.ByLanguage, 2)
	assert.Len(t, stats.ByRoom, 2)
	assert.Len(t, stats.ByStatus, 2)
}
