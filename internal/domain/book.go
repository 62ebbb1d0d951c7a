package domain

// ReadingStatus tracks whether the owner has read a book.
type ReadingStatus string

const (
	// StatusNotRead is the default status for newly added books.
	StatusNotRead ReadingStatus = "not_read"
	// StatusReading marks a book currently being read.
	StatusReading ReadingStatus = "reading"
	// StatusRead marks a finished book.
	StatusRead ReadingStatus = "read"
)

// Valid reports whether the status is one of the known values.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusNotRead, StatusReading, StatusRead:
		return true
	}
	return false
}

// Book is a single catalog entry.
//
// A book carries its physical location twice: the five flat level strings
// (display and legacy queries) and LocationID, the resolved leaf node in the
// location tree. The repository keeps both in agreement on every write —
// LocationID always points at the leaf reached by walking the non-empty
// levels from a root named LocationLevel1.
type Book struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Authors string `json:"authors"`
	// Language is an ISO 639-1-like code, stored as entered ("EN", "ru").
	Language string `json:"language"`
	Genre    string `json:"genre,omitempty"`

	// Flat location path. Level 1 (the room) is mandatory; deeper levels are
	// optional and held as empty strings here, NULL in the database.
	LocationLevel1 string `json:"location_level1"`
	LocationLevel2 string `json:"location_level2,omitempty"`
	LocationLevel3 string `json:"location_level3,omitempty"`
	LocationLevel4 string `json:"location_level4,omitempty"`
	LocationLevel5 string `json:"location_level5,omitempty"`

	// LocationID references the resolved leaf location. Zero means unresolved
	// (possible only for rows predating the location tree migration).
	LocationID int64 `json:"location_id,omitempty"`

	ReadingStatus ReadingStatus `json:"reading_status"`
}

// Levels returns the flat path levels in order, including blanks.
func (b *Book) Levels() [5]string {
	return [5]string{
		b.LocationLevel1,
		b.LocationLevel2,
		b.LocationLevel3,
		b.LocationLevel4,
		b.LocationLevel5,
	}
}
