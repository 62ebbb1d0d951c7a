package sqlite

import (
	"context"
	"database/sql"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/normalize"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
)

// locationColumns is the ordered list of columns selected in location queries.
// Must match the scan order in scanLocation.
const locationColumns = `id, name, parent_id`

// scanLocation scans a sql.Row (or sql.Rows via its Scan method) into a domain.Location.
func scanLocation(scanner interface{ Scan(dest ...any) error }) (*domain.Location, error) {
	var l domain.Location
	var parentID sql.NullInt64

	err := scanner.Scan(&l.ID, &l.Name, &parentID)
	if err != nil {
		return nil, err
	}

	l.ParentID = int64OrZero(parentID)
	return &l, nil
}

// GetLocationByID retrieves a location node by ID.
// Returns store.ErrNotFound if the node does not exist.
func (s *Store) GetLocationByID(ctx context.Context, id int64) (*domain.Location, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = ?`, id)

	l, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// FindRootLocation retrieves the root node with the given name without
// creating it. Matching is case-insensitive.
// Returns store.ErrNotFound if no such root exists.
func (s *Store) FindRootLocation(ctx context.Context, name string) (*domain.Location, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations
		WHERE name = ? COLLATE NOCASE AND parent_id IS NULL`, normalize.Level(name))

	l, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// FindChildLocation retrieves the child of parentID with the given name
// without creating it. Matching is case-insensitive. A zero parentID means
// the node is a root (SQL NULL), matched with IS NULL semantics.
// Returns store.ErrNotFound if no such child exists.
func (s *Store) FindChildLocation(ctx context.Context, parentID int64, name string) (*domain.Location, error) {
	if parentID == 0 {
		return s.FindRootLocation(ctx, name)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations
		WHERE name = ? COLLATE NOCASE AND parent_id = ?`, normalize.Level(name), parentID)

	l, err := scanLocation(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetOrCreateRoot retrieves the root node with the given name or creates it.
// Name matching is case-insensitive; the first-seen casing is kept. A blank
// name (after trimming) yields a transient sentinel node that is never
// persisted, so callers can treat "no location" uniformly as a node.
func (s *Store) GetOrCreateRoot(ctx context.Context, name string) (*domain.Location, error) {
	name = normalize.Level(name)
	if name == "" {
		return &domain.Location{}, nil
	}

	s.locMu.Lock()
	defer s.locMu.Unlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations
		WHERE name = ? COLLATE NOCASE AND parent_id IS NULL`, name)

	l, err := scanLocation(row)
	if err == nil {
		return l, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	return s.insertLocation(ctx, name, 0)
}

// GetOrCreateChild retrieves the child of parentID with the given name or
// creates it. Name matching is case-insensitive within the parent. A zero
// parentID denotes a root: the row stores NULL, so the lookup must go
// through the IS NULL path or repeated calls would mint duplicates.
func (s *Store) GetOrCreateChild(ctx context.Context, parentID int64, name string) (*domain.Location, error) {
	if parentID == 0 {
		return s.GetOrCreateRoot(ctx, name)
	}

	name = normalize.Level(name)
	if name == "" {
		return &domain.Location{}, nil
	}

	s.locMu.Lock()
	defer s.locMu.Unlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM locations
		WHERE name = ? COLLATE NOCASE AND parent_id = ?`, name, parentID)

	l, err := scanLocation(row)
	if err == nil {
		return l, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	return s.insertLocation(ctx, name, parentID)
}

// insertLocation inserts a new node and emits a location.created event.
// Callers must hold locMu.
func (s *Store) insertLocation(ctx context.Context, name string, parentID int64) (*domain.Location, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO locations (name, parent_id) VALUES (?, ?)`,
		name, nullInt64(parentID))
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	l := &domain.Location{ID: id, Name: name, ParentID: parentID}
	s.emitter.Emit(store.Event{Type: store.EventLocationCreated, Location: l})
	return l, nil
}

// ListRootLocations returns all root nodes sorted by name.
func (s *Store) ListRootLocations(ctx context.Context) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations
		WHERE parent_id IS NULL ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLocations(rows)
}

// ListChildLocations returns the children of parentID sorted by name.
func (s *Store) ListChildLocations(ctx context.Context, parentID int64) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations
		WHERE parent_id = ? ORDER BY name ASC`, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLocations(rows)
}

func collectLocations(rows *sql.Rows) ([]*domain.Location, error) {
	var locations []*domain.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return locations, nil
}
