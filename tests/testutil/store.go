package testutil

import (
	"path/filepath"
	"testing"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/store"
)

// NewTestStore creates a FileStore backed by a throwaway directory.
// The document does not exist yet and no demo data is configured, so
// the first Load yields an empty state.
func NewTestStore(t *testing.T) *store.FileStore {
	t.Helper()

	dir := t.TempDir()
	s, err := store.NewFileStore(model.DataConfig{
		File:         filepath.Join(dir, "novel_forge_db.json"),
		SnapshotDir:  filepath.Join(dir, "snapshots"),
		MaxSnapshots: 5,
	})
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	return s
}
