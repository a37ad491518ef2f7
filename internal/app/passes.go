package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/store"
	"github.com/nhle/novel-forge/internal/ui/passform"
)

// addPass appends a new editing pass and persists the state.
func (m *Model) addPass(msg passform.SubmitMsg) tea.Cmd {
	id, err := m.store.NextID(store.CollectionEditingPasses)
	if err != nil {
		return m.setNotice(fmt.Sprintf("Save failed: %v", err))
	}

	m.state.EditingPasses = append(m.state.EditingPasses, model.EditingPass{
		ID:          id,
		FocusArea:   msg.FocusArea,
		Description: msg.Description,
		ChapterID:   msg.ChapterID,
	})

	return m.saveAndReload(m.state, "Editing pass added")
}

// togglePass flips a pass's completed flag and persists the state.
func (m *Model) togglePass(id int) tea.Cmd {
	for i := range m.state.EditingPasses {
		if m.state.EditingPasses[i].ID == id {
			m.state.EditingPasses[i].Completed = !m.state.EditingPasses[i].Completed
			return m.saveAndReload(m.state, "")
		}
	}
	return nil
}

// deletePass removes a pass; the store drops it by absence.
func (m *Model) deletePass(id int) tea.Cmd {
	kept := m.state.EditingPasses[:0]
	removed := false
	for _, p := range m.state.EditingPasses {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return nil
	}

	m.state.EditingPasses = kept
	return m.saveAndReload(m.state, "Editing pass deleted")
}
