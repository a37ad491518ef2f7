package importview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/novel-forge/internal/theme"
)

// Import methods offered by the wizard.
const (
	MethodDocx      = "docx"
	MethodGoogleDoc = "gdoc"
)

// Import modes for folding parsed chapters into existing state.
const (
	ModeAppend  = "append"
	ModeReplace = "replace"
)

// SubmitMsg carries an import request out of the wizard.
type SubmitMsg struct {
	Method string
	Source string
	Mode   string
}

// CancelMsg is dispatched when the user abandons the wizard.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	method string
	source string
	mode   string
}

// Model is the Bubble Tea model for the chapter import wizard.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	theme  theme.Theme
	width  int
	height int
}

// New creates a new import wizard model.
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

// Start initializes an empty wizard.
func (m *Model) Start() tea.Cmd {
	m.fb.method = MethodDocx
	m.fb.source = ""
	m.fb.mode = ModeReplace
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the wizard.
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

// View renders the wizard.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	content := titleStyle.Render("Import Chapters") + "\n" + m.form.View()

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the wizard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Import from").
				Options(
					huh.NewOption(".docx file", MethodDocx),
					huh.NewOption("Google Doc URL", MethodGoogleDoc),
				).
				Value(&m.fb.method),
			huh.NewInput().
				Title("Source").
				Placeholder("Path to manuscript or document URL").
				Value(&m.fb.source).
				Validate(validateRequired("Source")),
			huh.NewSelect[string]().
				Title("Import Action").
				Options(
					huh.NewOption("Replace existing chapters", ModeReplace),
					huh.NewOption("Append to existing chapters", ModeAppend),
				).
				Value(&m.fb.mode),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{
		Method: m.fb.method,
		Source: strings.TrimSpace(m.fb.source),
		Mode:   m.fb.mode,
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
