package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shelfkeeper/shelfkeeper-server/internal/store/sqlite"
	"github.com/shelfkeeper/shelfkeeper-server/internal/validation"
)

// newTestServices wires a catalog and location service over a fresh
// temp-dir store.
func newTestServices(t *testing.T) (*CatalogService, *LocationService, *sqlite.Store) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := sqlite.Open(dbPath, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	locations := NewLocationService(s, logger)
	catalog := NewCatalogService(s, locations, validation.New(), logger)
	return catalog, locations, s
}
