package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/novel-forge/internal/keys"
	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/notify"
	"github.com/nhle/novel-forge/internal/progress"
	"github.com/nhle/novel-forge/internal/store"
	"github.com/nhle/novel-forge/internal/theme"
	"github.com/nhle/novel-forge/internal/ui"
	"github.com/nhle/novel-forge/internal/ui/chapterform"
	"github.com/nhle/novel-forge/internal/ui/chapterlist"
	"github.com/nhle/novel-forge/internal/ui/importview"
	"github.com/nhle/novel-forge/internal/ui/passboard"
	"github.com/nhle/novel-forge/internal/ui/passform"
	"github.com/nhle/novel-forge/internal/ui/settings"
	"github.com/nhle/novel-forge/internal/ui/todolist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewChapters ViewState = iota
	ViewPasses
	ViewTodos
	ViewChapterForm
	ViewPassForm
	ViewSettings
	ViewImport
)

// tabLabels in display order; the first three ViewStates are tabs.
var tabLabels = []string{"📚 Chapters", "📝 Editing Passes", "✅ To-Do List"}

// noticeDuration is how long a transient status-bar notice stays up.
const noticeDuration = 4 * time.Second

// stateLoadedMsg carries the result of loading the store.
type stateLoadedMsg struct {
	state *model.AppState
	err   error
}

// savedMsg carries the result of a save-and-reload cycle. notice is
// shown in the status bar; snapshotWarn distinguishes a save that
// landed but failed to snapshot.
type savedMsg struct {
	state        *model.AppState
	notice       string
	snapshotWarn bool
	err          error
}

// noticeExpiredMsg clears a transient notice after its timeout.
type noticeExpiredMsg struct{ seq int }

// Model is the root Bubble Tea model: it owns the authoritative
// AppState between store round-trips and routes messages to the active
// view. Every committed mutation goes through the store and the state
// is re-read from it, so the document stays the single source of truth.
type Model struct {
	cfg      *model.AppConfig
	cfgPath  string
	store    store.Store
	notifier *notify.Notifier
	state    *model.AppState

	theme  theme.Theme
	layout ui.Layout
	keys   *keys.KeyMap

	currentView ViewState
	activeTab   ViewState

	chapterList  chapterlist.Model
	chapterForm  chapterform.Model
	passBoard    passboard.Model
	passForm     passform.Model
	todoList     todolist.Model
	settingsForm settings.Model
	importView   importview.Model

	notice    string
	noticeSeq int
	ready     bool
}

// New creates the root application model. cfgPath is where settings
// changes are written back.
func New(cfg *model.AppConfig, cfgPath string, s store.Store, notifier *notify.Notifier) Model {
	t := theme.New(cfg.Display.Theme == "dark")

	return Model{
		cfg:          cfg,
		cfgPath:      cfgPath,
		store:        s,
		notifier:     notifier,
		theme:        t,
		keys:         keys.DefaultKeyMap(),
		currentView:  ViewChapters,
		activeTab:    ViewChapters,
		chapterList:  chapterlist.New(t, 80, 24),
		chapterForm:  chapterform.New(t, 80, 24),
		passBoard:    passboard.New(t, 80, 24),
		passForm:     passform.New(t, 80, 24),
		todoList:     todolist.New(t, 80, 24),
		settingsForm: settings.New(t, 80, 24),
		importView:   importview.New(t, 80, 24),
	}
}

// Init loads the application state from the store.
func (m Model) Init() tea.Cmd {
	return m.loadState()
}

// loadState returns a command that reads the full state from the store.
func (m Model) loadState() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		state, err := s.Load()
		return stateLoadedMsg{state: state, err: err}
	}
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.chapterList.SetSize(w, h)
		m.chapterForm.SetSize(w, h)
		m.passBoard.SetSize(w, h)
		m.passForm.SetSize(w, h)
		m.todoList.SetSize(w, h)
		m.settingsForm.SetSize(w, h)
		m.importView.SetSize(w, h)
		return m.updateActiveView(msg)

	case stateLoadedMsg:
		if msg.err != nil {
			return m, m.setNotice(fmt.Sprintf("Load failed: %v", msg.err))
		}
		m.state = msg.state
		m.applyTheme()
		m.refreshViews()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			return m, m.setNotice(fmt.Sprintf("Save failed: %v", msg.err))
		}
		m.state = msg.state
		m.applyTheme()
		m.refreshViews()
		notice := msg.notice
		if msg.snapshotWarn {
			notice = "Saved, but snapshot failed (see log)"
		}
		if notice != "" {
			return m, m.setNotice(notice)
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case chapterform.SubmitMsg:
		m.currentView = m.activeTab
		return m, m.commitChapterEdit(msg)

	case chapterform.CancelMsg:
		m.currentView = m.activeTab
		return m, nil

	case passform.SubmitMsg:
		m.currentView = m.activeTab
		return m, m.addPass(msg)

	case passform.CancelMsg:
		m.currentView = m.activeTab
		return m, nil

	case passboard.ToggleMsg:
		return m, m.togglePass(msg.ID)

	case passboard.DeleteMsg:
		return m, m.deletePass(msg.ID)

	case todolist.AddMsg:
		return m, m.addTodo(msg.Task)

	case todolist.ToggleMsg:
		return m, m.toggleTodo(msg.ID)

	case todolist.DeleteMsg:
		return m, m.deleteTodo(msg.ID)

	case settings.SubmitMsg:
		m.currentView = m.activeTab
		return m, m.applySettings(msg)

	case settings.CancelMsg:
		m.currentView = m.activeTab
		return m, nil

	case settingsReadyMsg:
		m.currentView = ViewSettings
		return m, m.settingsForm.Start(m.state.Metadata, m.cfg.Notify.Enabled, msg.webhookURL)

	case importview.SubmitMsg:
		m.currentView = m.activeTab
		return m, m.runImport(msg)

	case importview.CancelMsg:
		m.currentView = m.activeTab
		return m, nil

	case importedMsg:
		return m, m.applyImport(msg)

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across tab views. Returns
// handled=false when the key should be delegated instead, e.g. while a
// form overlay or the todo input owns the keyboard.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	// Overlays and a focused text input consume all other keys.
	if m.currentView != m.activeTab {
		return nil, false
	}
	if m.currentView == ViewTodos && m.todoList.InputFocused() {
		return nil, false
	}
	if m.state == nil {
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.TabChapters):
		m.switchTab(ViewChapters)
		return nil, true
	case key.Matches(msg, m.keys.TabPasses):
		m.switchTab(ViewPasses)
		return nil, true
	case key.Matches(msg, m.keys.TabTodos):
		m.switchTab(ViewTodos)
		return nil, true
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab((m.activeTab + 1) % 3)
		return nil, true

	case key.Matches(msg, m.keys.Settings):
		return m.openSettings(), true

	case key.Matches(msg, m.keys.Import):
		m.currentView = ViewImport
		return m.importView.Start(), true

	case key.Matches(msg, m.keys.New):
		switch m.activeTab {
		case ViewChapters:
			m.currentView = ViewChapterForm
			return m.chapterForm.StartCreate(), true
		case ViewPasses:
			m.currentView = ViewPassForm
			m.passForm.SetChapters(m.state.Chapters)
			return m.passForm.Start(), true
		}
		// Todos handle n themselves by focusing the input.
		return nil, false

	case key.Matches(msg, m.keys.Edit):
		if m.activeTab == ViewChapters {
			if ch, ok := m.chapterList.SelectedChapter(); ok {
				m.currentView = ViewChapterForm
				return m.chapterForm.StartEdit(ch), true
			}
			return nil, true
		}
		return nil, false

	case key.Matches(msg, m.keys.Delete):
		if m.activeTab == ViewChapters {
			if ch, ok := m.chapterList.SelectedChapter(); ok {
				return m.deleteChapter(ch.ID), true
			}
			return nil, true
		}
		// Passes and todos handle d themselves.
		return nil, false
	}

	return nil, false
}

func (m *Model) switchTab(tab ViewState) {
	m.activeTab = tab
	m.currentView = tab
}

// applyTheme resolves the palette from config and the persisted
// dark_mode flag and pushes it into every view.
func (m *Model) applyTheme() {
	dark := false
	switch m.cfg.Display.Theme {
	case "dark":
		dark = true
	case "light":
		dark = false
	default: // "auto" follows the persisted preference
		if m.state != nil {
			dark = m.state.Metadata.DarkMode
		}
	}

	if dark == m.theme.Dark {
		return
	}
	m.theme = theme.New(dark)
	m.chapterList.SetTheme(m.theme)
	m.chapterForm.SetTheme(m.theme)
	m.passBoard.SetTheme(m.theme)
	m.passForm.SetTheme(m.theme)
	m.todoList.SetTheme(m.theme)
	m.settingsForm.SetTheme(m.theme)
	m.importView.SetTheme(m.theme)
}

// refreshViews pushes the current state into the tab views.
func (m *Model) refreshViews() {
	if m.state == nil {
		return
	}

	m.chapterList.SetChapters(m.state.Chapters, time.Now())

	titles := make(map[int]string, len(m.state.Chapters))
	for _, ch := range m.state.Chapters {
		titles[ch.ID] = ch.Title
	}
	m.passBoard.SetPasses(m.state.EditingPasses, titles)

	m.todoList.SetTodos(m.state.Todos)
}

// setNotice shows a transient status-bar notice.
func (m *Model) setNotice(text string) tea.Cmd {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// saveAndReload persists the given state and re-reads it so the UI
// renders authoritative values (shifted baselines, fresh timestamps).
func (m Model) saveAndReload(state *model.AppState, notice string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.Save(state)
		snapshotWarn := false
		if err != nil {
			if !isSnapshotErr(err) {
				return savedMsg{err: err}
			}
			snapshotWarn = true
		}

		reloaded, err := s.Load()
		if err != nil {
			return savedMsg{err: err}
		}
		return savedMsg{state: reloaded, notice: notice, snapshotWarn: snapshotWarn}
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewChapters:
		m.chapterList, cmd = m.chapterList.Update(msg)
	case ViewPasses:
		m.passBoard, cmd = m.passBoard.Update(msg)
	case ViewTodos:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewChapterForm:
		m.chapterForm, cmd = m.chapterForm.Update(msg)
	case ViewPassForm:
		m.passForm, cmd = m.passForm.Update(msg)
	case ViewSettings:
		m.settingsForm, cmd = m.settingsForm.Update(msg)
	case ViewImport:
		m.importView, cmd = m.importView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready || m.state == nil {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.theme, "📚 Novel-Forge Tracker", m.summary())
	tabs := m.layout.RenderTabs(m.theme, tabLabels, int(m.activeTab))
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.theme, m.statusLine())

	return m.layout.RenderWithFrame(header, tabs, content, statusBar)
}

// renderContent returns the rendered string for the current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewChapters:
		return m.chapterList.View()
	case ViewPasses:
		return m.passBoard.View()
	case ViewTodos:
		return m.todoList.View()
	case ViewChapterForm:
		return m.chapterForm.View()
	case ViewPassForm:
		return m.passForm.View()
	case ViewSettings:
		return m.settingsForm.View()
	case ViewImport:
		return m.importView.View()
	default:
		return ""
	}
}

// summary is the header's word-count readout: total, change since the
// project baseline, and progress toward the target.
func (m Model) summary() string {
	total := progress.TotalWordCount(m.state.Chapters)
	delta := total - m.state.Metadata.ProjectStartWordCount
	target := m.state.Metadata.TargetWordCount

	if target <= 0 {
		return fmt.Sprintf("%d words | %+d", total, delta)
	}
	pct := progress.Fraction(total, target) * 100
	return fmt.Sprintf("%d words | %+d | %.1f%% of %d", total, delta, pct, target)
}

// statusLine is the bottom bar: a transient notice when one is up,
// otherwise key hints for the current view.
func (m Model) statusLine() string {
	if m.notice != "" {
		return m.notice
	}

	switch m.currentView {
	case ViewChapters:
		return "n new | e edit | d delete | 1/2/3 tabs | s settings | i import | q quit"
	case ViewPasses:
		return "x toggle | n new | d delete | 1/2/3 tabs | q quit"
	case ViewTodos:
		return "x toggle | n add | d delete | 1/2/3 tabs | q quit"
	case ViewChapterForm, ViewPassForm, ViewSettings, ViewImport:
		return "enter submit | esc cancel"
	default:
		return ""
	}
}

// isSnapshotErr reports whether err is the store's snapshot warning.
func isSnapshotErr(err error) bool {
	return errors.Is(err, store.ErrSnapshot)
}
