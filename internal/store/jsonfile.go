package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nhle/novel-forge/internal/model"
)

// metadataID is the fixed identifier of the metadata singleton.
const metadataID = 1

// FileStore implements Store on top of a single JSON document.
type FileStore struct {
	path         string
	snapshotDir  string
	demoPath     string
	maxSnapshots int

	// now is swappable in tests for deterministic timestamps.
	now func() time.Time
}

// NewFileStore creates a FileStore for the given data configuration,
// creating the document's parent directory and the snapshot directory
// as needed.
func NewFileStore(cfg model.DataConfig) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	return &FileStore{
		path:         cfg.File,
		snapshotDir:  cfg.SnapshotDir,
		demoPath:     cfg.DemoFile,
		maxSnapshots: cfg.MaxSnapshots,
		now:          time.Now,
	}, nil
}

// document is the on-disk shape: four collections keyed by decimal
// string identifiers. Records are held raw so that one malformed record
// degrades alone instead of failing the whole load.
type document struct {
	Chapters      map[string]json.RawMessage `json:"chapters"`
	EditingPasses map[string]json.RawMessage `json:"editing_passes"`
	Todos         map[string]json.RawMessage `json:"todos"`
	Metadata      map[string]json.RawMessage `json:"metadata"`
}

func emptyDocument() *document {
	return &document{
		Chapters:      map[string]json.RawMessage{},
		EditingPasses: map[string]json.RawMessage{},
		Todos:         map[string]json.RawMessage{},
		Metadata:      map[string]json.RawMessage{},
	}
}

// chapterRecord is a chapter as persisted; the identifier lives in the
// enclosing map key, not in the record.
type chapterRecord struct {
	Title             string     `json:"title"`
	Status            string     `json:"status"`
	WordCount         int        `json:"word_count"`
	PreviousWordCount int        `json:"previous_word_count"`
	Priority          string     `json:"priority"`
	Deadline          string     `json:"deadline,omitempty"`
	LastEdited        *time.Time `json:"last_edited,omitempty"`
}

type passRecord struct {
	FocusArea   string `json:"focus_area"`
	Description string `json:"description"`
	ChapterID   *int   `json:"chapter_id,omitempty"`
	Completed   bool   `json:"completed"`
}

type todoRecord struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// Load reads the document, seeding it from the demo dataset on first
// run, and returns the application state with defaults filled in.
func (s *FileStore) Load() (*model.AppState, error) {
	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	state := &model.AppState{Metadata: model.DefaultMetadata()}

	for _, id := range sortedIDs(doc.Chapters) {
		rec := chapterRecord{}
		decodeRecord(doc.Chapters[key(id)], &rec, CollectionChapters, id)
		state.Chapters = append(state.Chapters, chapterFromRecord(id, rec))
	}

	for _, id := range sortedIDs(doc.EditingPasses) {
		rec := passRecord{}
		decodeRecord(doc.EditingPasses[key(id)], &rec, CollectionEditingPasses, id)
		state.EditingPasses = append(state.EditingPasses, model.EditingPass{
			ID:          id,
			FocusArea:   rec.FocusArea,
			Description: rec.Description,
			ChapterID:   rec.ChapterID,
			Completed:   rec.Completed,
		})
	}

	for _, id := range sortedIDs(doc.Todos) {
		rec := todoRecord{}
		decodeRecord(doc.Todos[key(id)], &rec, CollectionTodos, id)
		state.Todos = append(state.Todos, model.Todo{
			ID:        id,
			Task:      rec.Task,
			Completed: rec.Completed,
		})
	}

	if raw, ok := doc.Metadata[key(metadataID)]; ok {
		// Defaults pre-applied; unmarshal only overwrites present fields.
		decodeRecord(raw, &state.Metadata, CollectionMetadata, metadataID)
	}

	return state, nil
}

// chapterFromRecord attaches the identifier, fills defaults for missing
// optional fields, and derives the parsed deadline date.
func chapterFromRecord(id int, rec chapterRecord) model.Chapter {
	if rec.Status == "" {
		rec.Status = model.StatusNotStarted
	}
	if rec.Priority == "" {
		rec.Priority = model.PriorityLow
	}
	if rec.WordCount < 0 {
		rec.WordCount = 0
	}
	if rec.PreviousWordCount < 0 {
		rec.PreviousWordCount = 0
	}

	return model.Chapter{
		ID:                id,
		Title:             rec.Title,
		Status:            rec.Status,
		WordCount:         rec.WordCount,
		PreviousWordCount: rec.PreviousWordCount,
		Priority:          rec.Priority,
		Deadline:          rec.Deadline,
		LastEdited:        rec.LastEdited,
		DeadlineDate:      model.ParseDeadline(rec.Deadline),
	}
}

// Save replaces the persisted collections with the supplied state and
// then snapshots. The document write is temp-file-then-rename; there is
// no rollback beyond that single file replace.
func (s *FileStore) Save(state *model.AppState) error {
	prev, err := s.readDocument()
	if err != nil {
		return err
	}

	doc := emptyDocument()
	nowStamp := s.now()

	for i := range state.Chapters {
		ch := &state.Chapters[i]

		rec := chapterRecord{
			Title:             ch.Title,
			Status:            ch.Status,
			WordCount:         ch.WordCount,
			PreviousWordCount: ch.PreviousWordCount,
			Priority:          ch.Priority,
			Deadline:          ch.Deadline,
			LastEdited:        ch.LastEdited,
		}
		if ch.DeadlineDate != nil {
			rec.Deadline = ch.DeadlineDate.Format(model.DeadlineLayout)
		}
		if rec.WordCount < 0 {
			rec.WordCount = 0
		}

		// previous_word_count shifts only when word_count changed in
		// this save, and holds the pre-change value.
		if raw, ok := prev.Chapters[key(ch.ID)]; ok {
			stored := chapterRecord{}
			decodeRecord(raw, &stored, CollectionChapters, ch.ID)
			if stored.WordCount != rec.WordCount {
				rec.PreviousWordCount = stored.WordCount
			} else {
				rec.PreviousWordCount = stored.PreviousWordCount
			}
		} else {
			rec.PreviousWordCount = 0
		}

		if ch.Changed {
			stamp := nowStamp
			rec.LastEdited = &stamp
			ch.Changed = false
		}

		// Reflect the committed derived fields back into the state so
		// the caller re-renders authoritative values.
		ch.PreviousWordCount = rec.PreviousWordCount
		ch.LastEdited = rec.LastEdited
		ch.Deadline = rec.Deadline
		ch.WordCount = rec.WordCount

		doc.Chapters[key(ch.ID)] = mustMarshal(rec)
	}

	for _, p := range state.EditingPasses {
		doc.EditingPasses[key(p.ID)] = mustMarshal(passRecord{
			FocusArea:   p.FocusArea,
			Description: p.Description,
			ChapterID:   p.ChapterID,
			Completed:   p.Completed,
		})
	}

	for _, t := range state.Todos {
		doc.Todos[key(t.ID)] = mustMarshal(todoRecord{
			Task:      t.Task,
			Completed: t.Completed,
		})
	}

	doc.Metadata[key(metadataID)] = mustMarshal(state.Metadata)

	if err := s.writeDocument(doc); err != nil {
		return err
	}

	if err := s.Snapshot(); err != nil {
		return fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return nil
}

// NextID returns the next free identifier in the named collection.
func (s *FileStore) NextID(collection string) (int, error) {
	doc, err := s.readDocument()
	if err != nil {
		return 0, err
	}

	var m map[string]json.RawMessage
	switch collection {
	case CollectionChapters:
		m = doc.Chapters
	case CollectionEditingPasses:
		m = doc.EditingPasses
	case CollectionTodos:
		m = doc.Todos
	case CollectionMetadata:
		m = doc.Metadata
	default:
		return 0, fmt.Errorf("unknown collection %q", collection)
	}

	maxID := 0
	for k := range m {
		if id, err := strconv.Atoi(k); err == nil && id > maxID {
			maxID = id
		}
	}
	return maxID + 1, nil
}

// readDocument loads the backing file, bootstrapping from the demo
// dataset when the file is absent. A missing file with no demo data
// yields an empty document, not an error.
func (s *FileStore) readDocument() (*document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return s.bootstrap()
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	doc := emptyDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	// Collections absent from the file decode to nil maps.
	if doc.Chapters == nil {
		doc.Chapters = map[string]json.RawMessage{}
	}
	if doc.EditingPasses == nil {
		doc.EditingPasses = map[string]json.RawMessage{}
	}
	if doc.Todos == nil {
		doc.Todos = map[string]json.RawMessage{}
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]json.RawMessage{}
	}
	return doc, nil
}

// demoFile is the bundled dataset shape: plain sequences without
// identifiers; identifiers are assigned in file order on first load.
type demoFile struct {
	Chapters      []json.RawMessage `json:"chapters"`
	EditingPasses []json.RawMessage `json:"editing_passes"`
	Todos         []json.RawMessage `json:"todos"`
	Metadata      json.RawMessage   `json:"metadata"`
}

// bootstrap seeds the document from the demo dataset, or returns an
// empty document when no demo file is available.
func (s *FileStore) bootstrap() (*document, error) {
	doc := emptyDocument()

	data, err := os.ReadFile(s.demoPath)
	if err != nil {
		// No demo data: start empty. Not an error.
		return doc, nil
	}

	var demo demoFile
	if err := json.Unmarshal(data, &demo); err != nil {
		log.Warn("demo data unreadable, starting empty", "file", s.demoPath, "err", err)
		return doc, nil
	}

	for i, raw := range demo.Chapters {
		doc.Chapters[key(i+1)] = stripID(raw)
	}
	for i, raw := range demo.EditingPasses {
		doc.EditingPasses[key(i+1)] = stripID(raw)
	}
	for i, raw := range demo.Todos {
		doc.Todos[key(i+1)] = stripID(raw)
	}
	if len(demo.Metadata) > 0 {
		doc.Metadata[key(metadataID)] = demo.Metadata
	}

	log.Info("database not found, seeded demo data",
		"file", s.path,
		"chapters", len(demo.Chapters),
	)

	if err := s.writeDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// writeDocument persists the document atomically: marshal with stable
// key ordering, write a temp file in the same directory, then rename
// over the target.
func (s *FileStore) writeDocument(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}
	return nil
}

// decodeRecord unmarshals a raw record, tolerating per-field type
// mismatches: fields that fail to decode keep their defaults, matching
// the recoverable-with-default error policy.
func decodeRecord(raw json.RawMessage, dst any, collection string, id int) {
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn("malformed record, using defaults for bad fields",
			"collection", collection, "id", id, "err", err)
	}
}

// stripID drops a stray "id" key from a demo record; demo identifiers
// are assigned by the store, never taken from the file.
func stripID(raw json.RawMessage) json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	if _, ok := m["id"]; !ok {
		return raw
	}
	delete(m, "id")
	out, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return out
}

// sortedIDs returns the numeric identifiers of a collection in
// ascending order, skipping non-numeric keys.
func sortedIDs(m map[string]json.RawMessage) []int {
	ids := make([]int, 0, len(m))
	for k := range m {
		if id, err := strconv.Atoi(k); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func key(id int) string {
	return strconv.Itoa(id)
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		// All record types marshal cleanly; a failure here is a bug.
		panic(fmt.Sprintf("marshaling record: %v", err))
	}
	return data
}
