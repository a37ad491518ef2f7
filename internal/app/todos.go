package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/store"
)

// addTodo appends a new to-do item and persists the state.
func (m *Model) addTodo(task string) tea.Cmd {
	if task == "" {
		return m.setNotice("Cannot add an empty to-do")
	}

	id, err := m.store.NextID(store.CollectionTodos)
	if err != nil {
		return m.setNotice(fmt.Sprintf("Save failed: %v", err))
	}

	m.state.Todos = append(m.state.Todos, model.Todo{ID: id, Task: task})
	return m.saveAndReload(m.state, "To-do added")
}

// toggleTodo flips a to-do's completed flag and persists the state.
func (m *Model) toggleTodo(id int) tea.Cmd {
	for i := range m.state.Todos {
		if m.state.Todos[i].ID == id {
			m.state.Todos[i].Completed = !m.state.Todos[i].Completed
			return m.saveAndReload(m.state, "")
		}
	}
	return nil
}

// deleteTodo removes a to-do; the store drops it by absence.
func (m *Model) deleteTodo(id int) tea.Cmd {
	kept := m.state.Todos[:0]
	removed := false
	for _, t := range m.state.Todos {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return nil
	}

	m.state.Todos = kept
	return m.saveAndReload(m.state, "To-do deleted")
}
