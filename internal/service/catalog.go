package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/errors"
	"github.com/shelfkeeper/shelfkeeper-server/internal/normalize"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store/sqlite"
	"github.com/shelfkeeper/shelfkeeper-server/internal/validation"
)

// CatalogService orchestrates the book lifecycle. Every write passes
// through location path resolution so a book's location_id can never drift
// from its flat level fields.
type CatalogService struct {
	store     *sqlite.Store
	locations *LocationService
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *sqlite.Store, locations *LocationService, validator *validation.Validator, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:     store,
		locations: locations,
		validator: validator,
		logger:    logger,
	}
}

// bookInput mirrors the writable book fields for validation. Limits follow
// the catalog entry form.
type bookInput struct {
	Title          string `json:"title" validate:"required,max=255"`
	Authors        string `json:"authors" validate:"required,max=255"`
	Language       string `json:"language" validate:"required,max=100"`
	Genre          string `json:"genre" validate:"max=100"`
	LocationLevel1 string `json:"location_level1" validate:"required,max=100"`
	LocationLevel2 string `json:"location_level2" validate:"max=100"`
	LocationLevel3 string `json:"location_level3" validate:"max=100"`
	LocationLevel4 string `json:"location_level4" validate:"max=100"`
	LocationLevel5 string `json:"location_level5" validate:"max=100"`
	ReadingStatus  string `json:"reading_status" validate:"omitempty,oneof=not_read reading read"`
}

// normalizeAndValidate trims the book's text fields in place, defaults the
// reading status and validates the result.
func (s *CatalogService) normalizeAndValidate(b *domain.Book) error {
	b.Title = normalize.Level(b.Title)
	b.Authors = normalize.Level(b.Authors)
	b.Language = normalize.Level(b.Language)
	b.Genre = normalize.Level(b.Genre)

	levels := normalize.Levels(
		b.LocationLevel1, b.LocationLevel2, b.LocationLevel3, b.LocationLevel4, b.LocationLevel5)
	b.LocationLevel1 = levels[0]
	b.LocationLevel2 = levels[1]
	b.LocationLevel3 = levels[2]
	b.LocationLevel4 = levels[3]
	b.LocationLevel5 = levels[4]

	if b.ReadingStatus == "" {
		b.ReadingStatus = domain.StatusNotRead
	}

	return s.validator.Validate(bookInput{
		Title:          b.Title,
		Authors:        b.Authors,
		Language:       b.Language,
		Genre:          b.Genre,
		LocationLevel1: b.LocationLevel1,
		LocationLevel2: b.LocationLevel2,
		LocationLevel3: b.LocationLevel3,
		LocationLevel4: b.LocationLevel4,
		LocationLevel5: b.LocationLevel5,
		ReadingStatus:  string(b.ReadingStatus),
	})
}

// resolveLocation resolves the book's flat levels into the tree and stamps
// the leaf onto the book.
func (s *CatalogService) resolveLocation(ctx context.Context, b *domain.Book) error {
	leaf, err := s.locations.ResolvePath(ctx, b.Levels())
	if err != nil {
		return err
	}
	b.LocationID = leaf.ID
	return nil
}

// AddBook validates and persists a new book and returns its assigned ID.
// New books start as not read unless a status is supplied.
func (s *CatalogService) AddBook(ctx context.Context, b *domain.Book) (int64, error) {
	if err := s.normalizeAndValidate(b); err != nil {
		return 0, err
	}
	if err := s.resolveLocation(ctx, b); err != nil {
		return 0, err
	}

	if err := s.store.CreateBook(ctx, b); err != nil {
		return 0, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book added",
		slog.Int64("id", b.ID),
		slog.String("title", b.Title),
		slog.Int64("location_id", b.LocationID))
	return b.ID, nil
}

// UpdateBook validates and persists changes to an existing book. The
// location path is re-resolved from the flat fields on every update, even
// when they look unchanged; this is what keeps location_id and the flat
// fields in agreement. Updating a missing book is not an error.
func (s *CatalogService) UpdateBook(ctx context.Context, b *domain.Book) error {
	if err := s.normalizeAndValidate(b); err != nil {
		return err
	}
	if err := s.resolveLocation(ctx, b); err != nil {
		return err
	}

	err := s.store.UpdateBook(ctx, b)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("update for missing book ignored", slog.Int64("id", b.ID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}

	s.logger.Info("book updated",
		slog.Int64("id", b.ID),
		slog.Int64("location_id", b.LocationID))
	return nil
}

// DeleteBook removes a book by ID. Location nodes are never deleted; other
// books may reference them. Deleting a missing book is not an error.
func (s *CatalogService) DeleteBook(ctx context.Context, id int64) error {
	err := s.store.DeleteBook(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Warn("delete for missing book ignored", slog.Int64("id", id))
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	s.logger.Info("book deleted", slog.Int64("id", id))
	return nil
}

// GetBook retrieves a single book by ID.
func (s *CatalogService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	b, err := s.store.GetBook(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("book %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// ListBooks returns all books sorted by title.
func (s *CatalogService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx)
}

// SearchBooks returns the books matching a case-insensitive substring query
// over title and authors.
func (s *CatalogService) SearchBooks(ctx context.Context, query string) ([]*domain.Book, error) {
	return s.store.SearchBooks(ctx, query)
}

// ListBooksByLanguage returns the books with the given language code,
// matched exactly as stored.
func (s *CatalogService) ListBooksByLanguage(ctx context.Context, language string) ([]*domain.Book, error) {
	return s.store.ListBooksByLanguage(ctx, language)
}

// ListLanguages returns the distinct language codes in use.
func (s *CatalogService) ListLanguages(ctx context.Context) ([]string, error) {
	return s.store.ListLanguages(ctx)
}

// Stats summarizes the catalog for the stats endpoint.
func (s *CatalogService) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	total, err := s.store.CountBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	byLanguage, err := s.store.CountByLanguage(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by language: %w", err)
	}
	byRoom, err := s.store.CountByRoom(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by room: %w", err)
	}
	byStatus, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}

	return &domain.CatalogStats{
		TotalBooks: total,
		ByLanguage: byLanguage,
		ByRoom:     byRoom,
		ByStatus:   byStatus,
	}, nil
}
