package chapterform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/theme"
)

// SubmitMsg carries one edited chapter row out of the form. Field
// values stay raw; the reconciler owns coercion and change detection.
// ID is nil for a newly created row, so new vs existing is explicit.
type SubmitMsg struct {
	ID        *int
	Title     string
	Status    string
	WordCount string
	Priority  string
	Deadline  string
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title     string
	status    string
	wordCount string
	priority  string
	deadline  string
}

// Model is the Bubble Tea model for the chapter create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	theme    theme.Theme
	editMode bool
	editID   int
	width    int
	height   int
}

// New creates a new chapter form model.
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

// StartCreate initializes the form for a new chapter.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.fb.title = ""
	m.fb.status = model.StatusNotStarted
	m.fb.wordCount = "0"
	m.fb.priority = model.PriorityLow
	m.fb.deadline = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing chapter's values.
func (m *Model) StartEdit(ch model.Chapter) tea.Cmd {
	m.editMode = true
	m.editID = ch.ID
	m.fb.title = ch.Title
	m.fb.status = ch.Status
	m.fb.wordCount = strconv.Itoa(ch.WordCount)
	m.fb.priority = ch.Priority
	m.fb.deadline = ch.Deadline
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the chapter form.
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

// View renders the chapter form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Chapter"
	if m.editMode {
		titleText = "Edit Chapter"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	statusOpts := make([]huh.Option[string], len(model.ChapterStatuses))
	for i, s := range model.ChapterStatuses {
		statusOpts[i] = huh.NewOption(s, s)
	}
	prioOpts := make([]huh.Option[string], len(model.ChapterPriorities))
	for i, p := range model.ChapterPriorities {
		prioOpts[i] = huh.NewOption(p, p)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Chapter title").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&m.fb.status),
			huh.NewInput().
				Title("Word Count").
				Placeholder("0").
				Value(&m.fb.wordCount),
			huh.NewSelect[string]().
				Title("Priority").
				Options(prioOpts...).
				Value(&m.fb.priority),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.deadline).
				Validate(validateOptionalDate),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmitMsg{
		Title:     m.fb.title,
		Status:    m.fb.status,
		WordCount: m.fb.wordCount,
		Priority:  m.fb.priority,
		Deadline:  m.fb.deadline,
	}
	if m.editMode {
		id := m.editID
		msg.ID = &id
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

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DeadlineLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
