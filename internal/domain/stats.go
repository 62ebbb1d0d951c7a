package domain

// KeyCount is one row of a grouped count, such as books per language or
// books per room.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CatalogStats summarizes the catalog for the stats endpoint.
type CatalogStats struct {
	TotalBooks int        `json:"total_books"`
	ByLanguage []KeyCount `json:"by_language"`
	ByRoom     []KeyCount `json:"by_room"`
	ByStatus   []KeyCount `json:"by_status"`
}
