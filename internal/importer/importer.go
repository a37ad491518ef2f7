// Package importer defines the manuscript import contract: an importer
// turns an uploaded document or a remote URL into a sequence of partial
// chapter records, which Apply folds into the application state.
package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/nhle/novel-forge/internal/model"
)

// Record is one chapter extracted from an imported manuscript. Only
// Title and WordCount are expected; the rest default when empty.
type Record struct {
	Title     string
	WordCount int
	Status    string
	Priority  string
	Deadline  string
}

// Importer extracts chapter records from a manuscript source (a file
// path or a document URL, depending on the implementation).
type Importer interface {
	// Name identifies the importer for display and logging.
	Name() string

	// Import parses the source and returns the extracted chapters.
	Import(ctx context.Context, source string) ([]Record, error)
}

// Mode selects how imported chapters are folded into existing state.
type Mode int

const (
	// Append keeps existing chapters and adds the imported ones after.
	Append Mode = iota
	// Replace discards existing chapters and resets the project start
	// word count to the imported total.
	Replace
)

// Applied describes the outcome of one import application.
type Applied struct {
	// BatchID tags this import run in the log and status line.
	BatchID string
	// Count is the number of chapters added.
	Count int
}

// Apply folds imported records into the state. Imported chapters get
// sequential identifiers (continuing from the stored collection on
// Append, restarting at 1 on Replace), a zero word-count baseline, and
// no edit timestamp. Omitted fields take the usual record defaults.
func Apply(state *model.AppState, records []Record, mode Mode, nextID int) Applied {
	startID := nextID
	if mode == Replace {
		state.Chapters = nil
		startID = 1
	}

	for i, rec := range records {
		ch := model.Chapter{
			ID:                startID + i,
			Title:             rec.Title,
			Status:            rec.Status,
			WordCount:         rec.WordCount,
			PreviousWordCount: 0,
			Priority:          rec.Priority,
			Deadline:          rec.Deadline,
			DeadlineDate:      model.ParseDeadline(rec.Deadline),
			Changed:           true,
		}
		if ch.Title == "" {
			ch.Title = "Untitled Chapter"
		}
		if ch.Status == "" {
			ch.Status = model.StatusNotStarted
		}
		if ch.Priority == "" {
			ch.Priority = model.PriorityLow
		}
		if ch.WordCount < 0 {
			ch.WordCount = 0
		}
		state.Chapters = append(state.Chapters, ch)
	}

	if mode == Replace {
		total := 0
		for _, ch := range state.Chapters {
			total += ch.WordCount
		}
		state.Metadata.ProjectStartWordCount = total
	}

	return Applied{
		BatchID: uuid.NewString(),
		Count:   len(records),
	}
}
