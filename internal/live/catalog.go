package live

import (
	"context"
	"log/slog"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
)

// Reader is the subset of the store the catalog derives its views from.
type Reader interface {
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	ListLanguages(ctx context.Context) ([]string, error)
	ListRooms(ctx context.Context) ([]string, error)
}

// Catalog holds the live derived views of the library: all books, distinct
// languages and distinct rooms. It implements store.EventEmitter so every
// committed write triggers a recompute. When a recompute fails, the views
// keep their last-known-good value; readers are never handed a partial
// result.
type Catalog struct {
	reader Reader
	logger *slog.Logger

	books     *View[[]*domain.Book]
	languages *View[[]string]
	rooms     *View[[]string]
}

// NewCatalog creates a catalog over the given reader and performs the
// initial load. A failed initial load is not fatal; the views simply start
// empty and fill in on the first successful recompute.
func NewCatalog(ctx context.Context, reader Reader, logger *slog.Logger) *Catalog {
	c := &Catalog{
		reader:    reader,
		logger:    logger,
		books:     NewView[[]*domain.Book](),
		languages: NewView[[]string](),
		rooms:     NewView[[]string](),
	}
	c.Refresh(ctx)
	return c
}

// Refresh recomputes every view from the store. Each view is updated
// independently so one failing query does not hold back the others.
func (c *Catalog) Refresh(ctx context.Context) {
	if books, err := c.reader.ListBooks(ctx); err != nil {
		c.logger.Error("live catalog: refresh books failed, keeping previous value",
			slog.String("error", err.Error()))
	} else {
		c.books.Set(books)
	}

	if languages, err := c.reader.ListLanguages(ctx); err != nil {
		c.logger.Error("live catalog: refresh languages failed, keeping previous value",
			slog.String("error", err.Error()))
	} else {
		c.languages.Set(languages)
	}

	if rooms, err := c.reader.ListRooms(ctx); err != nil {
		c.logger.Error("live catalog: refresh rooms failed, keeping previous value",
			slog.String("error", err.Error()))
	} else {
		c.rooms.Set(rooms)
	}
}

// Emit implements store.EventEmitter. Every committed write recomputes the
// views so subscribers always observe the post-write state.
func (c *Catalog) Emit(_ store.Event) {
	c.Refresh(context.Background())
}

// Books returns the current book list and whether a load has succeeded yet.
func (c *Catalog) Books() ([]*domain.Book, bool) {
	return c.books.Get()
}

// Languages returns the current distinct language codes.
func (c *Catalog) Languages() ([]string, bool) {
	return c.languages.Get()
}

// Rooms returns the current distinct room names.
func (c *Catalog) Rooms() ([]string, bool) {
	return c.rooms.Get()
}

// SubscribeBooks subscribes to the full book list.
func (c *Catalog) SubscribeBooks() (string, <-chan []*domain.Book) {
	return c.books.Subscribe()
}

// SubscribeBooksByLanguage subscribes to the book list filtered by language.
// An empty language observes all books.
func (c *Catalog) SubscribeBooksByLanguage(language string) (string, <-chan []*domain.Book) {
	return c.subscribeMapped(func(books []*domain.Book) []*domain.Book {
		return FilterByLanguage(books, language)
	})
}

// SubscribeSearch subscribes to the book list filtered by a search query.
// An empty query observes all books.
func (c *Catalog) SubscribeSearch(query string) (string, <-chan []*domain.Book) {
	return c.subscribeMapped(func(books []*domain.Book) []*domain.Book {
		return FilterBySearch(books, query)
	})
}

// SubscribeLanguages subscribes to the distinct language list.
func (c *Catalog) SubscribeLanguages() (string, <-chan []string) {
	return c.languages.Subscribe()
}

// SubscribeRooms subscribes to the distinct room list.
func (c *Catalog) SubscribeRooms() (string, <-chan []string) {
	return c.rooms.Subscribe()
}

// Unsubscribe cancels a book-list subscription by ID. Language and room
// subscriptions are cancelled on their views directly.
func (c *Catalog) Unsubscribe(subID string) {
	c.books.Unsubscribe(subID)
}

// UnsubscribeLanguages cancels a language-list subscription by ID.
func (c *Catalog) UnsubscribeLanguages(subID string) {
	c.languages.Unsubscribe(subID)
}

// UnsubscribeRooms cancels a room-list subscription by ID.
func (c *Catalog) UnsubscribeRooms(subID string) {
	c.rooms.Unsubscribe(subID)
}

// subscribeMapped subscribes to the books view through a mapping function.
// The returned channel closes when the subscription is cancelled.
func (c *Catalog) subscribeMapped(f func([]*domain.Book) []*domain.Book) (string, <-chan []*domain.Book) {
	subID, in := c.books.Subscribe()
	out := make(chan []*domain.Book, 16)

	go func() {
		defer close(out)
		for books := range in {
			select {
			case out <- f(books):
			default:
			}
		}
	}()

	return subID, out
}
