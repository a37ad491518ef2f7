package passform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/theme"
)

// SubmitMsg carries a new editing pass out of the form. ChapterID is
// nil for an unlinked pass.
type SubmitMsg struct {
	FocusArea   string
	Description string
	ChapterID   *int
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	focusArea   string
	description string
	chapterID   int // 0 means unlinked
}

// Model is the Bubble Tea model for the new-editing-pass form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	theme    theme.Theme
	chapters []model.Chapter
	width    int
	height   int
}

// New creates a new pass form model.
func New(t theme.Theme, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		theme:  t,
		width:  width,
		height: height,
	}
}

// SetTheme swaps the palette.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
}

// SetChapters sets the chapters offered by the link selector.
func (m *Model) SetChapters(chapters []model.Chapter) {
	m.chapters = chapters
}

// Start initializes an empty form.
func (m *Model) Start() tea.Cmd {
	m.fb.focusArea = ""
	m.fb.description = ""
	m.fb.chapterID = 0
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the pass form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the pass form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	content := titleStyle.Render("New Editing Pass") + "\n" + m.form.View()

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	chapterOpts := []huh.Option[int]{huh.NewOption("None", 0)}
	for i, ch := range m.chapters {
		label := fmt.Sprintf("Ch %d: %s", i+1, ch.Title)
		chapterOpts = append(chapterOpts, huh.NewOption(label, ch.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Focus Area").
				Placeholder("e.g., Pacing, Character Voice").
				Value(&m.fb.focusArea).
				Validate(validateRequired("Focus Area")),
			huh.NewText().
				Title("Description").
				Placeholder("Markdown enabled").
				Value(&m.fb.description).
				Validate(validateRequired("Description")),
			huh.NewSelect[int]().
				Title("Link to Chapter (Optional)").
				Options(chapterOpts...).
				Value(&m.fb.chapterID),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{
		FocusArea:   m.fb.focusArea,
		Description: m.fb.description,
	}
	if m.fb.chapterID != 0 {
		id := m.fb.chapterID
		msg.ChapterID = &id
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}
