package live

import (
	"strings"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
)

// FilterByLanguage returns the books whose language code equals the given
// one exactly. Codes are expected canonical-cased, so no case folding is
// applied. An empty language is the identity filter.
func FilterByLanguage(books []*domain.Book, language string) []*domain.Book {
	if language == "" {
		return books
	}

	var out []*domain.Book
	for _, b := range books {
		if b.Language == language {
			out = append(out, b)
		}
	}
	return out
}

// MatchesSearch reports whether the book's title or authors contain the
// query as a case-insensitive substring. An empty query matches everything.
func MatchesSearch(b *domain.Book, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Authors), q)
}

// FilterBySearch returns the books matching the query per MatchesSearch.
func FilterBySearch(books []*domain.Book, query string) []*domain.Book {
	if query == "" {
		return books
	}

	var out []*domain.Book
	for _, b := range books {
		if MatchesSearch(b, query) {
			out = append(out, b)
		}
	}
	return out
}
