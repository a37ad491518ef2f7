package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nhle/novel-forge/internal/model"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestStore creates a FileStore in a throwaway directory with a
// fixed clock. demoPath is optional.
func newTestStore(t *testing.T, demoPath string) *FileStore {
	t.Helper()

	dir := t.TempDir()
	s, err := NewFileStore(model.DataConfig{
		File:         filepath.Join(dir, "novel_forge_db.json"),
		SnapshotDir:  filepath.Join(dir, "snapshots"),
		DemoFile:     demoPath,
		MaxSnapshots: 5,
	})
	require.NoError(t, err)

	s.now = func() time.Time { return testNow }
	return s
}

func sampleState() *model.AppState {
	chapterID := 1
	return &model.AppState{
		Chapters: []model.Chapter{
			{ID: 1, Title: "One", Status: model.StatusDraft, WordCount: 1000, Priority: model.PriorityHigh, Deadline: "2026-04-01", Changed: true},
			{ID: 2, Title: "Two", Status: model.StatusNotStarted, WordCount: 0, Priority: model.PriorityLow, Changed: true},
		},
		EditingPasses: []model.EditingPass{
			{ID: 1, FocusArea: "Pacing", Description: "Tighten the middle.", ChapterID: &chapterID},
		},
		Todos: []model.Todo{
			{ID: 1, Task: "Outline the ending"},
		},
		Metadata: model.Metadata{ProjectStartWordCount: 500, TargetWordCount: 80000},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t, "")

	require.NoError(t, s.Save(sampleState()))

	got, err := s.Load()
	require.NoError(t, err)

	require.Len(t, got.Chapters, 2)
	require.Equal(t, "One", got.Chapters[0].Title)
	require.Equal(t, model.StatusDraft, got.Chapters[0].Status)
	require.Equal(t, 1000, got.Chapters[0].WordCount)
	require.Equal(t, "2026-04-01", got.Chapters[0].Deadline)
	require.NotNil(t, got.Chapters[0].DeadlineDate)

	require.Len(t, got.EditingPasses, 1)
	require.Equal(t, "Pacing", got.EditingPasses[0].FocusArea)
	require.NotNil(t, got.EditingPasses[0].ChapterID)
	require.Equal(t, 1, *got.EditingPasses[0].ChapterID)

	require.Len(t, got.Todos, 1)
	require.Equal(t, 500, got.Metadata.ProjectStartWordCount)
	require.Equal(t, 80000, got.Metadata.TargetWordCount)
}

func TestSaveStampsLastEditedOnChangedRecords(t *testing.T) {
	s := newTestStore(t, "")
	state := sampleState()
	state.Chapters[1].Changed = false

	require.NoError(t, s.Save(state))

	// The marker is consumed and the stamp reflected back into state.
	require.False(t, state.Chapters[0].Changed)
	require.NotNil(t, state.Chapters[0].LastEdited)
	require.Equal(t, testNow, *state.Chapters[0].LastEdited)
	require.Nil(t, state.Chapters[1].LastEdited)

	got, err := s.Load()
	require.NoError(t, err)
	require.NotNil(t, got.Chapters[0].LastEdited)
	require.True(t, got.Chapters[0].LastEdited.Equal(testNow))
	require.Nil(t, got.Chapters[1].LastEdited)
}

func TestSaveShiftsPreviousWordCountOnlyOnChange(t *testing.T) {
	s := newTestStore(t, "")
	state := sampleState()
	require.NoError(t, s.Save(state))

	// Word count changes: baseline shifts to the pre-change value.
	state.Chapters[0].WordCount = 1200
	require.NoError(t, s.Save(state))

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 1200, got.Chapters[0].WordCount)
	require.Equal(t, 1000, got.Chapters[0].PreviousWordCount)

	// A save that edits only the title leaves the baseline alone.
	got.Chapters[0].Title = "One, Revised"
	require.NoError(t, s.Save(got))

	again, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 1200, again.Chapters[0].WordCount)
	require.Equal(t, 1000, again.Chapters[0].PreviousWordCount)
}

func TestSaveDeletesByAbsence(t *testing.T) {
	s := newTestStore(t, "")
	state := sampleState()
	require.NoError(t, s.Save(state))

	state.Chapters = state.Chapters[:1]
	state.Todos = nil
	require.NoError(t, s.Save(state))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Chapters, 1)
	require.Equal(t, 1, got.Chapters[0].ID)
	require.Empty(t, got.Todos)
}

func TestLoadMissingFileWithoutDemoIsEmpty(t *testing.T) {
	s := newTestStore(t, "")

	got, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, got.Chapters)
	require.Empty(t, got.EditingPasses)
	require.Empty(t, got.Todos)
	require.Equal(t, model.DefaultMetadata(), got.Metadata)
}

func TestLoadBootstrapsFromDemoData(t *testing.T) {
	dir := t.TempDir()
	demoPath := filepath.Join(dir, "demo.json")
	demo := `{
		"chapters": [
			{"id": 42, "title": "First", "status": "Draft", "word_count": 100, "priority": "High"},
			{"title": "Second", "status": "Done", "word_count": 200, "priority": "Low"}
		],
		"editing_passes": [
			{"focus_area": "Pacing", "description": "Check it.", "completed": false}
		],
		"todos": [
			{"task": "Do the thing", "completed": true}
		],
		"metadata": {"project_start_word_count": 50, "target_word_count": 90000, "dark_mode": true}
	}`
	require.NoError(t, os.WriteFile(demoPath, []byte(demo), 0o644))

	s := newTestStore(t, demoPath)

	got, err := s.Load()
	require.NoError(t, err)

	// Identifiers come from file order, never from the records.
	require.Len(t, got.Chapters, 2)
	require.Equal(t, 1, got.Chapters[0].ID)
	require.Equal(t, "First", got.Chapters[0].Title)
	require.Equal(t, 2, got.Chapters[1].ID)

	require.Len(t, got.EditingPasses, 1)
	require.Equal(t, 1, got.EditingPasses[0].ID)
	require.Len(t, got.Todos, 1)

	require.Equal(t, 90000, got.Metadata.TargetWordCount)
	require.True(t, got.Metadata.DarkMode)

	// The seeded document was written; a second load sees the same data
	// even if the demo file disappears.
	require.NoError(t, os.Remove(demoPath))
	again, err := s.Load()
	require.NoError(t, err)
	require.Len(t, again.Chapters, 2)
}

func TestLoadFillsDefaultsForMissingFields(t *testing.T) {
	s := newTestStore(t, "")

	doc := `{
		"chapters": {
			"3": {"title": "Sparse"}
		},
		"editing_passes": {},
		"todos": {},
		"metadata": {}
	}`
	require.NoError(t, os.WriteFile(s.path, []byte(doc), 0o644))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Chapters, 1)

	ch := got.Chapters[0]
	require.Equal(t, 3, ch.ID)
	require.Equal(t, model.StatusNotStarted, ch.Status)
	require.Equal(t, model.PriorityLow, ch.Priority)
	require.Equal(t, 0, ch.WordCount)
	require.Nil(t, ch.LastEdited)
	require.Equal(t, model.DefaultMetadata(), got.Metadata)
}

func TestLoadDegradesMalformedRecord(t *testing.T) {
	s := newTestStore(t, "")

	doc := `{
		"chapters": {
			"1": {"title": 12345, "word_count": 500},
			"2": {"title": "Fine", "status": "Draft", "word_count": 800, "priority": "High"}
		},
		"editing_passes": {},
		"todos": {},
		"metadata": {}
	}`
	require.NoError(t, os.WriteFile(s.path, []byte(doc), 0o644))

	got, err := s.Load()
	require.NoError(t, err)
	require.Len(t, got.Chapters, 2)

	// The bad field fell back to its default; the rest of the record and
	// the other records load normally.
	require.Equal(t, "", got.Chapters[0].Title)
	require.Equal(t, 500, got.Chapters[0].WordCount)
	require.Equal(t, "Fine", got.Chapters[1].Title)
}

func TestLoadNormalizesNegativeCounts(t *testing.T) {
	s := newTestStore(t, "")

	doc := `{
		"chapters": {
			"1": {"title": "Odd", "word_count": -40, "previous_word_count": -10}
		},
		"editing_passes": {},
		"todos": {},
		"metadata": {}
	}`
	require.NoError(t, os.WriteFile(s.path, []byte(doc), 0o644))

	got, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 0, got.Chapters[0].WordCount)
	require.Equal(t, 0, got.Chapters[0].PreviousWordCount)
}

func TestNextID(t *testing.T) {
	s := newTestStore(t, "")

	id, err := s.NextID(CollectionChapters)
	require.NoError(t, err)
	require.Equal(t, 1, id)

	doc := `{
		"chapters": {"1": {}, "2": {}, "5": {}},
		"editing_passes": {},
		"todos": {"9": {}},
		"metadata": {}
	}`
	require.NoError(t, os.WriteFile(s.path, []byte(doc), 0o644))

	id, err = s.NextID(CollectionChapters)
	require.NoError(t, err)
	require.Equal(t, 6, id)

	id, err = s.NextID(CollectionTodos)
	require.NoError(t, err)
	require.Equal(t, 10, id)

	_, err = s.NextID("bogus")
	require.Error(t, err)
}

func TestDocumentShapeOnDisk(t *testing.T) {
	s := newTestStore(t, "")
	require.NoError(t, s.Save(sampleState()))

	data, err := os.ReadFile(s.path)
	require.NoError(t, err)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))

	// Collections keyed by decimal-string identifiers, metadata under "1".
	require.Contains(t, doc["chapters"], "1")
	require.Contains(t, doc["chapters"], "2")
	require.Contains(t, doc["metadata"], "1")

	// Indented output stays human-diffable.
	require.Contains(t, string(data), "\n    \"chapters\"")
}
