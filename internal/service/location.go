// Package service provides the business logic layer for the shelfkeeper
// catalog: book lifecycle, location path resolution and suggestion queries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/errors"
	"github.com/shelfkeeper/shelfkeeper-server/internal/normalize"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store/sqlite"
)

// LocationService orchestrates the location tree: path resolution,
// browsing and suggestions.
type LocationService struct {
	store    *sqlite.Store
	logger   *slog.Logger
	collator *collate.Collator
}

// NewLocationService creates a new location service.
func NewLocationService(store *sqlite.Store, logger *slog.Logger) *LocationService {
	return &LocationService{
		store:  store,
		logger: logger,
		// Language-neutral Unicode collation for user-facing name lists.
		// Byte order would put all Cyrillic names after every Latin one.
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
}

// ResolvePath walks the location tree left to right along the non-blank
// levels, creating missing nodes, and returns the deepest resolved node.
//
// Blank levels are skipped entirely: if level 2 is blank but level 3 is
// given, level 3 becomes a direct child of the root. Gaps collapse instead
// of erroring. Level 1 is mandatory; a blank level 1 is a caller error.
func (s *LocationService) ResolvePath(ctx context.Context, levels [5]string) (*domain.Location, error) {
	levels = normalize.Levels(levels[0], levels[1], levels[2], levels[3], levels[4])
	if levels[0] == "" {
		return nil, errors.Validation("location level 1 (room) is required")
	}

	current, err := s.store.GetOrCreateRoot(ctx, levels[0])
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", levels[0], err)
	}

	for _, level := range levels[1:] {
		if level == "" {
			continue
		}
		current, err = s.store.GetOrCreateChild(ctx, current.ID, level)
		if err != nil {
			return nil, fmt.Errorf("resolve level %q: %w", level, err)
		}
	}

	return current, nil
}

// LookupPath walks the same levels as ResolvePath but read-only: no nodes
// are created. It returns the deepest node that exists, or store.ErrNotFound
// if any non-blank level along the walk is missing from the tree.
func (s *LocationService) LookupPath(ctx context.Context, levels [5]string) (*domain.Location, error) {
	levels = normalize.Levels(levels[0], levels[1], levels[2], levels[3], levels[4])
	if levels[0] == "" {
		return nil, errors.Validation("location level 1 (room) is required")
	}

	current, err := s.store.FindRootLocation(ctx, levels[0])
	if err != nil {
		return nil, err
	}

	for _, level := range levels[1:] {
		if level == "" {
			continue
		}
		current, err = s.store.FindChildLocation(ctx, current.ID, level)
		if err != nil {
			return nil, err
		}
	}

	return current, nil
}

// ListRoots returns all root locations sorted by name.
func (s *LocationService) ListRoots(ctx context.Context) ([]*domain.Location, error) {
	roots, err := s.store.ListRootLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roots: %w", err)
	}
	s.sortLocations(roots)
	return roots, nil
}

// ListChildren returns the children of the given location sorted by name.
// Returns a NOT_FOUND error if the location does not exist.
func (s *LocationService) ListChildren(ctx context.Context, locationID int64) ([]*domain.Location, error) {
	if _, err := s.store.GetLocationByID(ctx, locationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("location %d not found", locationID)
		}
		return nil, fmt.Errorf("get location: %w", err)
	}

	children, err := s.store.ListChildLocations(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	s.sortLocations(children)
	return children, nil
}

// RoomSuggestions returns the distinct rooms used by books, case-preserved,
// sorted for display.
func (s *LocationService) RoomSuggestions(ctx context.Context) ([]string, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	s.collator.SortStrings(rooms)
	return rooms, nil
}

// Level2Suggestions returns the distinct second-level names used inside a
// room, sorted for display. The full set is returned; display capping is
// the consumer's concern.
func (s *LocationService) Level2Suggestions(ctx context.Context, room string) ([]string, error) {
	shelves, err := s.store.ListLevel2ForRoom(ctx, normalize.Level(room))
	if err != nil {
		return nil, fmt.Errorf("list level 2 for room: %w", err)
	}
	s.collator.SortStrings(shelves)
	return shelves, nil
}

// LanguageSuggestions returns the reference languages ordered most relevant
// first: languages already used in the catalog come first, in reference
// order, followed by the remaining reference entries. Used codes are matched
// against the reference table case-insensitively.
func (s *LocationService) LanguageSuggestions(ctx context.Context) ([]domain.Language, error) {
	used, err := s.store.ListLanguages(ctx)
	if err != nil {
		return nil, fmt.Errorf("list used languages: %w", err)
	}

	usedSet := make(map[string]bool, len(used))
	for _, code := range used {
		usedSet[strings.ToLower(normalize.LanguageCode(code))] = true
	}

	suggestions := make([]domain.Language, 0, len(domain.Languages))
	for _, lang := range domain.Languages {
		if usedSet[strings.ToLower(lang.Code)] {
			suggestions = append(suggestions, lang)
		}
	}
	for _, lang := range domain.Languages {
		if !usedSet[strings.ToLower(lang.Code)] {
			suggestions = append(suggestions, lang)
		}
	}

	return suggestions, nil
}

// sortLocations orders nodes by name using the service collator.
func (s *LocationService) sortLocations(locations []*domain.Location) {
	s.collator.Sort(locationsByName(locations))
}

// locationsByName adapts a location slice to collate.Sort.
type locationsByName []*domain.Location

func (l locationsByName) Len() int           { return len(l) }
func (l locationsByName) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l locationsByName) Bytes(i int) []byte { return []byte(l[i].Name) }
