package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema migrations, applied in order inside a transaction each. The current
// version is tracked with PRAGMA user_version, so every step runs exactly
// once per database lifetime. Steps are irreversible.
//
// Version 1 is the historical flat schema: books carry their location only
// as five denormalized level strings. Version 2 introduces the location
// tree, adds books.location_id, creates one root node per distinct
// historical room, and points each book at its room's root. Deeper levels
// are resolved lazily the next time a book is written.
var migrations = []func(tx *sql.Tx) error{
	migrateV1Books,
	migrateV2Locations,
}

// migrate brings the database up to the latest schema version.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", v+1, err)
		}

		if err := migrations[v](tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", v+1, err)
		}

		// PRAGMA does not support placeholders.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("bump user_version to %d: %w", v+1, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", v+1, err)
		}

		if s.logger != nil {
			s.logger.Info("applied schema migration", "version", v+1)
		}
	}

	return nil
}

func migrateV1Books(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			authors TEXT NOT NULL,
			language TEXT NOT NULL,
			genre TEXT,
			location_level1 TEXT NOT NULL,
			location_level2 TEXT,
			location_level3 TEXT,
			location_level4 TEXT,
			location_level5 TEXT,
			reading_status TEXT NOT NULL DEFAULT 'not_read'
		)`)
	return err
}

func migrateV2Locations(tx *sql.Tx) error {
	if _, err := tx.Exec(`
		CREATE TABLE locations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			parent_id INTEGER REFERENCES locations(id)
		)`); err != nil {
		return fmt.Errorf("create locations: %w", err)
	}

	if _, err := tx.Exec(`CREATE INDEX idx_locations_parent_id ON locations(parent_id)`); err != nil {
		return fmt.Errorf("index locations: %w", err)
	}

	if _, err := tx.Exec(`ALTER TABLE books ADD COLUMN location_id INTEGER REFERENCES locations(id)`); err != nil {
		return fmt.Errorf("add books.location_id: %w", err)
	}

	// One root per distinct historical room. The MIN(rowid) aggregate makes
	// the bare column resolve to the oldest row, preserving first-seen
	// casing when rooms differ only by case.
	if _, err := tx.Exec(`
		INSERT INTO locations (name, parent_id)
		SELECT location_level1, NULL
		FROM (
			SELECT location_level1, MIN(rowid) AS first_row
			FROM books
			WHERE TRIM(location_level1) != ''
			GROUP BY location_level1 COLLATE NOCASE
		)`); err != nil {
		return fmt.Errorf("backfill roots: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE books SET location_id = (
			SELECT id FROM locations
			WHERE locations.name = books.location_level1 COLLATE NOCASE
			  AND locations.parent_id IS NULL
		)`); err != nil {
		return fmt.Errorf("backfill books.location_id: %w", err)
	}

	return nil
}
