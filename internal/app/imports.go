package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nhle/novel-forge/internal/importer"
	"github.com/nhle/novel-forge/internal/store"
	"github.com/nhle/novel-forge/internal/ui/importview"
)

// importTimeout bounds one manuscript parse or fetch.
const importTimeout = 30 * time.Second

// importedMsg carries the parsed chapter records back from the
// importer goroutine.
type importedMsg struct {
	records []importer.Record
	mode    importer.Mode
	name    string
	err     error
}

// runImport dispatches the wizard's request to the matching importer.
func (m *Model) runImport(msg importview.SubmitMsg) tea.Cmd {
	var imp importer.Importer
	switch msg.Method {
	case importview.MethodGoogleDoc:
		imp = importer.GoogleDocImporter{}
	default:
		imp = importer.DocxImporter{}
	}

	mode := importer.Append
	if msg.Mode == importview.ModeReplace {
		mode = importer.Replace
	}

	source := msg.Source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		records, err := imp.Import(ctx, source)
		return importedMsg{records: records, mode: mode, name: imp.Name(), err: err}
	}
}

// applyImport folds the parsed records into the state and persists.
func (m *Model) applyImport(msg importedMsg) tea.Cmd {
	if msg.err != nil {
		return m.setNotice(fmt.Sprintf("Import failed: %v", msg.err))
	}
	if len(msg.records) == 0 {
		return m.setNotice(fmt.Sprintf("No chapters found via %s import", msg.name))
	}

	nextID, err := m.store.NextID(store.CollectionChapters)
	if err != nil {
		return m.setNotice(fmt.Sprintf("Import failed: %v", err))
	}

	applied := importer.Apply(m.state, msg.records, msg.mode, nextID)
	log.Info("import applied", "batch", applied.BatchID, "chapters", applied.Count)

	return m.saveAndReload(m.state, fmt.Sprintf("Imported %d chapters", applied.Count))
}
