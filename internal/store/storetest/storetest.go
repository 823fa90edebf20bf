// Package storetest opens throwaway stores for tests.
package storetest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fekuna/omnipos-cafeteria-service/internal/logger"
	"github.com/fekuna/omnipos-cafeteria-service/internal/metrics"
	"github.com/fekuna/omnipos-cafeteria-service/internal/store"
	"github.com/stretchr/testify/require"
)

// Open returns a freshly seeded store backed by a file in t.TempDir().
func Open(t testing.TB) *store.Store {
	t.Helper()
	return OpenPath(t, filepath.Join(t.TempDir(), "cafeteria_data.json"))
}

// OpenPath opens the store at path with test defaults.
func OpenPath(t testing.TB, path string) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), &store.Config{Path: path}, logger.NewNop(), metrics.NewUnregistered())
	require.NoError(t, err)
	return s
}

// WriteDocument writes raw JSON to a fresh file and returns its path.
func WriteDocument(t testing.TB, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cafeteria_data.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

// ReadDocument decodes the document currently on disk.
func ReadDocument(t testing.TB, path string) store.Document {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc store.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	return doc
}
