package sqlite

import (
	"context"
	"database/sql"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, authors, language, genre,
	location_level1, location_level2, location_level3, location_level4, location_level5,
	location_id, reading_status`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		genre      sql.NullString
		level2     sql.NullString
		level3     sql.NullString
		level4     sql.NullString
		level5     sql.NullString
		locationID sql.NullInt64
		status     string
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Authors,
		&b.Language,
		&genre,
		&b.LocationLevel1,
		&level2,
		&level3,
		&level4,
		&level5,
		&locationID,
		&status,
	)
	if err != nil {
		return nil, err
	}

	b.Genre = stringOrEmpty(genre)
	b.LocationLevel2 = stringOrEmpty(level2)
	b.LocationLevel3 = stringOrEmpty(level3)
	b.LocationLevel4 = stringOrEmpty(level4)
	b.LocationLevel5 = stringOrEmpty(level5)
	b.LocationID = int64OrZero(locationID)
	b.ReadingStatus = domain.ReadingStatus(status)

	return &b, nil
}

// CreateBook inserts a new book and fills in its assigned ID.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO books (
			title, authors, language, genre,
			location_level1, location_level2, location_level3, location_level4, location_level5,
			location_id, reading_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.Title,
		b.Authors,
		b.Language,
		nullString(b.Genre),
		b.LocationLevel1,
		nullString(b.LocationLevel2),
		nullString(b.LocationLevel3),
		nullString(b.LocationLevel4),
		nullString(b.LocationLevel5),
		nullInt64(b.LocationID),
		string(b.ReadingStatus),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id

	s.emitter.Emit(store.Event{Type: store.EventBookCreated, Book: b})
	return nil
}

// GetBook retrieves a book by ID.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook performs a full row update on an existing book.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, b *domain.Book) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE books SET
			title = ?,
			authors = ?,
			language = ?,
			genre = ?,
			location_level1 = ?,
			location_level2 = ?,
			location_level3 = ?,
			location_level4 = ?,
			location_level5 = ?,
			location_id = ?,
			reading_status = ?
		WHERE id = ?`,
		b.Title,
		b.Authors,
		b.Language,
		nullString(b.Genre),
		b.LocationLevel1,
		nullString(b.LocationLevel2),
		nullString(b.LocationLevel3),
		nullString(b.LocationLevel4),
		nullString(b.LocationLevel5),
		nullInt64(b.LocationID),
		string(b.ReadingStatus),
		b.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	s.emitter.Emit(store.Event{Type: store.EventBookUpdated, Book: b})
	return nil
}

// DeleteBook removes a book by ID.
// Returns store.ErrNotFound if the book does not exist. Location nodes the
// book pointed at are left in place; they are shared and cheap to keep.
func (s *Store) DeleteBook(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	s.emitter.Emit(store.Event{Type: store.EventBookDeleted, BookID: id})
	return nil
}

// ListBooks returns all books sorted by title.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// SearchBooks returns books whose title or authors contain the query as a
// substring, case-insensitively, sorted by title. An empty query matches
// everything. SQLite's LIKE folds case for ASCII only, so "дюна" will not
// match "Дюна" here; the in-memory search in the live package folds full
// Unicode.
func (s *Store) SearchBooks(ctx context.Context, query string) ([]*domain.Book, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books
		WHERE title LIKE ? ESCAPE '\' OR authors LIKE ? ESCAPE '\'
		ORDER BY title ASC`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// ListBooksByLanguage returns books with the given language code, sorted by
// title. Matching is exact: codes are stored as entered and the language
// filter does not fold case.
func (s *Store) ListBooksByLanguage(ctx context.Context, language string) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books
		WHERE language = ? ORDER BY title ASC`, language)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// ListLanguages returns the distinct language codes in use, sorted.
func (s *Store) ListLanguages(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT language FROM books ORDER BY language COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStrings(rows)
}

// ListRooms returns the distinct room names in use, sorted.
func (s *Store) ListRooms(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT location_level1 FROM books
		WHERE TRIM(location_level1) != ''
		ORDER BY location_level1 COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStrings(rows)
}

// ListLevel2ForRoom returns the distinct second-level names used inside the
// given room, matched case-insensitively, sorted.
func (s *Store) ListLevel2ForRoom(ctx context.Context, room string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT location_level2 FROM books
		WHERE location_level1 = ? COLLATE NOCASE
		  AND location_level2 IS NOT NULL AND TRIM(location_level2) != ''
		ORDER BY location_level2 COLLATE NOCASE ASC`, room)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStrings(rows)
}

// CountBooks returns the total number of books.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}

// CountByLanguage returns book counts grouped by language, most used first.
func (s *Store) CountByLanguage(ctx context.Context) ([]domain.KeyCount, error) {
	return s.countGrouped(ctx,
		`SELECT language, COUNT(*) AS n FROM books
		GROUP BY language COLLATE NOCASE
		ORDER BY n DESC, language COLLATE NOCASE ASC`)
}

// CountByRoom returns book counts grouped by room, most used first.
func (s *Store) CountByRoom(ctx context.Context) ([]domain.KeyCount, error) {
	return s.countGrouped(ctx,
		`SELECT location_level1, COUNT(*) AS n FROM books
		WHERE TRIM(location_level1) != ''
		GROUP BY location_level1 COLLATE NOCASE
		ORDER BY n DESC, location_level1 COLLATE NOCASE ASC`)
}

// CountByStatus returns book counts grouped by reading status.
func (s *Store) CountByStatus(ctx context.Context) ([]domain.KeyCount, error) {
	return s.countGrouped(ctx,
		`SELECT reading_status, COUNT(*) AS n FROM books
		GROUP BY reading_status ORDER BY n DESC, reading_status ASC`)
}

func (s *Store) countGrouped(ctx context.Context, query string) ([]domain.KeyCount, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.KeyCount
	for rows.Next() {
		var kc domain.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, kc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func collectBooks(rows *sql.Rows) ([]*domain.Book, error) {
	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
