package store

import (
	"errors"

	"github.com/nhle/novel-forge/internal/model"
)

// Collection names as they appear in the persisted document.
const (
	CollectionChapters      = "chapters"
	CollectionEditingPasses = "editing_passes"
	CollectionTodos         = "todos"
	CollectionMetadata      = "metadata"
)

// ErrSnapshot marks a save that persisted the document but failed to
// create or rotate the dated backup. Callers surface it as a transient
// notice; the data write itself has already succeeded.
var ErrSnapshot = errors.New("snapshot failed")

// Store defines the persistence interface for the four record
// collections. A single JSON document is the sole source of truth;
// callers load it, hand edited state back to Save, and re-render from
// the result of the next Load.
type Store interface {
	// Load reads the full application state, seeding from the demo
	// dataset when the document does not exist yet. Missing optional
	// fields come back defaulted; malformed fields degrade to their
	// defaults rather than failing the load.
	Load() (*model.AppState, error)

	// Save upserts every record in the supplied state by identifier and
	// deletes any stored record absent from it, then creates a dated
	// snapshot. A snapshot failure is reported via ErrSnapshot.
	Save(state *model.AppState) error

	// NextID returns one more than the highest identifier currently
	// stored in the named collection, or 1 when it is empty. Assumes a
	// single writer; this is not concurrency-safe allocation.
	NextID(collection string) (int, error)

	// Snapshot copies the document to a dated backup, at most once per
	// local calendar day, and prunes old backups.
	Snapshot() error
}
