package todolist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/theme"
)

// ToggleMsg asks the app to flip a todo's completed flag.
type ToggleMsg struct{ ID int }

// DeleteMsg asks the app to remove a todo.
type DeleteMsg struct{ ID int }

// AddMsg asks the app to append a new todo with the given task text.
type AddMsg struct{ Task string }

// Model renders the general to-do list with an inline add field.
type Model struct {
	theme  theme.Theme
	todos  []model.Todo
	cursor int
	input  textinput.Model
	width  int
	height int
}

// New creates the to-do list.
func New(t theme.Theme, width, height int) Model {
	input := textinput.New()
	input.Placeholder = "e.g., Final read-through for typos"
	input.CharLimit = 200

	return Model{
		theme:  t,
		input:  input,
		width:  width,
		height: height,
	}
}

// SetTheme swaps the palette.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
}

// SetTodos replaces the list contents.
func (m *Model) SetTodos(todos []model.Todo) {
	m.todos = todos
	if m.cursor >= len(todos) {
		m.cursor = len(todos) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// InputFocused reports whether the add field has keyboard focus; the
// app suppresses global keybindings while it does.
func (m Model) InputFocused() bool {
	return m.input.Focused()
}

// FocusInput moves keyboard focus to the add field.
func (m *Model) FocusInput() tea.Cmd {
	return m.input.Focus()
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles navigation, toggling, deletion, and the add field.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.input.Focused() {
		switch keyMsg.String() {
		case "enter":
			task := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			m.input.Blur()
			return m, func() tea.Msg { return AddMsg{Task: task} }
		case "esc":
			m.input.SetValue("")
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.todos)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "x", " ":
		if t, ok := m.selected(); ok {
			return m, func() tea.Msg { return ToggleMsg{ID: t.ID} }
		}
	case "d":
		if t, ok := m.selected(); ok {
			return m, func() tea.Msg { return DeleteMsg{ID: t.ID} }
		}
	case "n", "a":
		return m, m.FocusInput()
	}
	return m, nil
}

func (m Model) selected() (model.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.todos) {
		return model.Todo{}, false
	}
	return m.todos[m.cursor], true
}

// View renders the list and the add field.
func (m Model) View() string {
	var b strings.Builder

	if len(m.todos) == 0 {
		b.WriteString(m.theme.Muted.Render("Nothing here yet. Add some tasks below!"))
		b.WriteString("\n")
	}

	for i, t := range m.todos {
		cursor := "  "
		if i == m.cursor && !m.input.Focused() {
			cursor = m.theme.Selected.Render(">") + " "
		}

		check := "☐"
		task := t.Task
		if t.Completed {
			check = "☑"
			task = m.theme.Struck.Render(task)
		}

		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, check, task))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Muted.Render("Add a new To-Do item:"))
	b.WriteString("\n")
	b.WriteString(m.input.View())

	return b.String()
}
