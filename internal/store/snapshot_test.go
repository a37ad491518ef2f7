package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func snapshotNames(t *testing.T, s *FileStore) []string {
	t.Helper()

	entries, err := os.ReadDir(s.snapshotDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSnapshotCreatedOnSave(t *testing.T) {
	s := newTestStore(t, "")

	require.NoError(t, s.Save(sampleState()))

	names := snapshotNames(t, s)
	require.Equal(t, []string{"novel_forge_db_2026-03-10.json"}, names)

	// The snapshot is a faithful copy of the document.
	doc, err := os.ReadFile(s.path)
	require.NoError(t, err)
	snap, err := os.ReadFile(filepath.Join(s.snapshotDir, names[0]))
	require.NoError(t, err)
	require.Equal(t, doc, snap)
}

func TestSnapshotOncePerDay(t *testing.T) {
	s := newTestStore(t, "")

	state := sampleState()
	require.NoError(t, s.Save(state))

	first, err := os.ReadFile(filepath.Join(s.snapshotDir, "novel_forge_db_2026-03-10.json"))
	require.NoError(t, err)

	// A second save the same day leaves the existing snapshot alone.
	state.Chapters[0].WordCount = 9999
	require.NoError(t, s.Save(state))

	require.Len(t, snapshotNames(t, s), 1)
	again, err := os.ReadFile(filepath.Join(s.snapshotDir, "novel_forge_db_2026-03-10.json"))
	require.NoError(t, err)
	require.Equal(t, first, again)
}

func TestSnapshotNewDayNewFile(t *testing.T) {
	s := newTestStore(t, "")

	require.NoError(t, s.Save(sampleState()))

	s.now = func() time.Time { return testNow.AddDate(0, 0, 1) }
	require.NoError(t, s.Save(sampleState()))

	require.ElementsMatch(t, []string{
		"novel_forge_db_2026-03-10.json",
		"novel_forge_db_2026-03-11.json",
	}, snapshotNames(t, s))
}

func TestSnapshotMissingDocumentIsNoop(t *testing.T) {
	s := newTestStore(t, "")

	require.NoError(t, s.Snapshot())
	require.Empty(t, snapshotNames(t, s))
}

func TestSnapshotPruneKeepsNewest(t *testing.T) {
	s := newTestStore(t, "")
	s.maxSnapshots = 3

	state := sampleState()
	for day := 0; day < 5; day++ {
		d := day
		s.now = func() time.Time { return testNow.AddDate(0, 0, d) }
		require.NoError(t, s.Save(state))

		// Spread modification times out so the newest-first ordering is
		// unambiguous on coarse-mtime filesystems.
		name := "novel_forge_db_" + s.now().Format("2006-01-02") + ".json"
		stamp := testNow.AddDate(0, 0, d)
		require.NoError(t, os.Chtimes(filepath.Join(s.snapshotDir, name), stamp, stamp))
	}

	require.ElementsMatch(t, []string{
		"novel_forge_db_2026-03-12.json",
		"novel_forge_db_2026-03-13.json",
		"novel_forge_db_2026-03-14.json",
	}, snapshotNames(t, s))
}

func TestSaveSurfacesSnapshotFailure(t *testing.T) {
	s := newTestStore(t, "")

	// Replace the snapshot directory with a file so copying fails.
	require.NoError(t, os.RemoveAll(s.snapshotDir))
	require.NoError(t, os.WriteFile(s.snapshotDir, []byte("not a dir"), 0o644))

	err := s.Save(sampleState())
	require.ErrorIs(t, err, ErrSnapshot)

	// The document write itself succeeded.
	_, statErr := os.Stat(s.path)
	require.NoError(t, statErr)

	got, loadErr := s.Load()
	require.NoError(t, loadErr)
	require.Len(t, got.Chapters, 2)
}

func TestSnapshotIgnoresForeignFiles(t *testing.T) {
	s := newTestStore(t, "")
	s.maxSnapshots = 1

	require.NoError(t, os.WriteFile(filepath.Join(s.snapshotDir, "notes.txt"), []byte("keep"), 0o644))

	require.NoError(t, s.Save(sampleState()))

	names := snapshotNames(t, s)
	require.Contains(t, names, "notes.txt")
	require.Contains(t, names, "novel_forge_db_2026-03-10.json")
}
