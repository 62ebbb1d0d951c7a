package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/shelfkeeper-server/internal/config"
	"github.com/shelfkeeper/shelfkeeper-server/internal/service"
	"github.com/shelfkeeper/shelfkeeper-server/internal/sse"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store/sqlite"
	"github.com/shelfkeeper/shelfkeeper-server/internal/validation"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	st, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	locations := service.NewLocationService(st, logger)
	catalog := service.NewCatalogService(st, locations, validation.New(), logger)

	sseManager := sse.NewManager(logger)
	sseHandler := sse.NewHandler(sseManager, logger)

	cfg := &config.Config{}
	cfg.Server.Name = "Shelfkeeper Test"

	s := NewServer(cfg, &Services{
		Catalog:   catalog,
		Locations: locations,
	}, st, sseHandler, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

func validBook(title string) map[string]any {
	return map[string]any{
		"title":           title,
		"authors":         "Frank Herbert",
		"language":        "en",
		"location_level1": "Office",
		"location_level2": "Black shelf",
	}
}

func TestAddAndGetBook(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", validBook("Dune"))
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var created BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.NotZero(t, created.LocationID)
	assert.Equal(t, "not_read", created.ReadingStatus)

	resp = ts.api.Get("/api/v1/books/1")
	require.Equal(t, http.StatusOK, resp.Code)

	var got BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, created.LocationID, got.LocationID)
}

func TestAddBookValidationError(t *testing.T) {
	ts := setupTestServer(t)

	book := validBook("Dune")
	book["title"] = "   "
	resp := ts.api.Post("/api/v1/books", book)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "VALIDATION", apiErr.Code)
}

func TestGetBookNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/books/42")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var apiErr APIError
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestListBooksWithQueryAndLanguage(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", validBook("Dune")).Code)
	ru := validBook("Мастер и Маргарита")
	ru["authors"] = "Михаил Булгаков"
	ru["language"] = "ru"
	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", ru).Code)

	var list ListBooksResponse

	resp := ts.api.Get("/api/v1/books")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Len(t, list.Books, 2)

	resp = ts.api.Get("/api/v1/books?q=dune")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Books, 1)
	assert.Equal(t, "Dune", list.Books[0].Title)

	resp = ts.api.Get("/api/v1/books?language=ru")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Books, 1)
	assert.Equal(t, "ru", list.Books[0].Language)
}

func TestUpdateBookReResolvesLocation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/books", validBook("Dune"))
	require.Equal(t, http.StatusOK, resp.Code)
	var created BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	update := validBook("Dune")
	update["location_level2"] = "White shelf"
	resp = ts.api.Put("/api/v1/books/1", update)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var updated BookResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.NotEqual(t, created.LocationID, updated.LocationID)
}

func TestDeleteBookIdempotent(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", validBook("Dune")).Code)

	assert.Equal(t, http.StatusOK, ts.api.Delete("/api/v1/books/1").Code)
	// Second delete of the same ID is still OK.
	assert.Equal(t, http.StatusOK, ts.api.Delete("/api/v1/books/1").Code)
}

func TestRoomAndShelfSuggestions(t *testing.T) {
	ts := setupTestServer(t)

	// Nine shelves in one room; the endpoint caps the list at seven.
	for i := range 9 {
		book := validBook("Book")
		book["location_level2"] = string(rune('A'+i)) + " shelf"
		require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", book).Code)
	}

	var list StringListResponse

	resp := ts.api.Get("/api/v1/catalog/rooms")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Equal(t, []string{"Office"}, list.Values)

	resp = ts.api.Get("/api/v1/catalog/rooms/Office/shelves")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	assert.Len(t, list.Values, maxShelfSuggestions)
}

func TestLanguageSuggestionsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", validBook("Dune")).Code)

	resp := ts.api.Get("/api/v1/catalog/language-suggestions")
	require.Equal(t, http.StatusOK, resp.Code)

	var suggestions LanguageSuggestionsResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &suggestions))
	require.NotEmpty(t, suggestions.Languages)
	assert.Equal(t, "en", suggestions.Languages[0].Code)
}

func TestLocationsEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", validBook("Dune")).Code)

	var list ListLocationsResponse

	resp := ts.api.Get("/api/v1/locations/roots")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Locations, 1)
	root := list.Locations[0]
	assert.Equal(t, "Office", root.Name)

	resp = ts.api.Get("/api/v1/locations/1/children")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Locations, 1)
	assert.Equal(t, "Black shelf", list.Locations[0].Name)

	resp = ts.api.Get("/api/v1/locations/9999/children")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestConsistencyCheckEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", validBook("Dune")).Code)

	resp := ts.api.Post("/api/v1/catalog/consistency-check?dry_run=true")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var report service.ConsistencyReport
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &report))
	assert.Equal(t, 1, report.Checked)
	assert.Empty(t, report.Mismatches)
	assert.True(t, report.DryRun)
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
}

func TestStatsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	require.Equal(t, http.StatusOK, ts.api.Post("/api/v1/books", validBook("Dune")).Code)

	resp := ts.api.Get("/api/v1/catalog/stats")
	require.Equal(t, http.StatusOK, resp.Code)

	var stats struct {
		TotalBooks int `json:"total_books"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.TotalBooks)
}
