package settings

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/theme"
)

// SubmitMsg carries the edited settings out of the form. WebhookURL
// goes to the keyring, the rest into the metadata record and config.
type SubmitMsg struct {
	TargetWordCount       int
	ProjectStartWordCount int
	DarkMode              bool
	NotifyEnabled         bool
	WebhookURL            string
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	target        string
	start         string
	darkMode      bool
	notifyEnabled bool
	webhookURL    string
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	theme  theme.Theme
	width  int
	height int
}

// New creates a new settings form model.
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

// Start initializes the form with the current settings.
func (m *Model) Start(meta model.Metadata, notifyEnabled bool, webhookURL string) tea.Cmd {
	m.fb.target = strconv.Itoa(meta.TargetWordCount)
	m.fb.start = strconv.Itoa(meta.ProjectStartWordCount)
	m.fb.darkMode = meta.DarkMode
	m.fb.notifyEnabled = notifyEnabled
	m.fb.webhookURL = webhookURL
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
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

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).MarginBottom(1)
	content := titleStyle.Render("Settings") + "\n" + m.form.View()

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target Word Count").
				Description("Your overall manuscript word count goal.").
				Value(&m.fb.target).
				Validate(validateNonNegativeInt),
			huh.NewInput().
				Title("Project Start Word Count").
				Description("Baseline for the total-change display.").
				Value(&m.fb.start).
				Validate(validateNonNegativeInt),
			huh.NewConfirm().
				Title("Dark Mode").
				Affirmative("On").
				Negative("Off").
				Value(&m.fb.darkMode),
			huh.NewConfirm().
				Title("Chapter-Done Notifications").
				Affirmative("On").
				Negative("Off").
				Value(&m.fb.notifyEnabled),
			huh.NewInput().
				Title("Slack/Discord Webhook URL").
				Description("Stored in the system keyring, not the database.").
				Placeholder("https://hooks... (optional)").
				Value(&m.fb.webhookURL),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	target, _ := strconv.Atoi(strings.TrimSpace(m.fb.target))
	start, _ := strconv.Atoi(strings.TrimSpace(m.fb.start))

	msg := SubmitMsg{
		TargetWordCount:       target,
		ProjectStartWordCount: start,
		DarkMode:              m.fb.darkMode,
		NotifyEnabled:         m.fb.notifyEnabled,
		WebhookURL:            strings.TrimSpace(m.fb.webhookURL),
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

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}
