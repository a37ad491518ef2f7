package chapterlist

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/progress"
	"github.com/nhle/novel-forge/internal/theme"
)

// Model renders the chapter progress table. The table is read-only;
// edits go through the chapter form and the reconciler.
type Model struct {
	table    table.Model
	theme    theme.Theme
	chapters []model.Chapter
	width    int
	height   int
}

// New creates the chapter table.
func New(t theme.Theme, width, height int) Model {
	columns := []table.Column{
		{Title: "Nr", Width: 3},
		{Title: "Title", Width: 28},
		{Title: "Status", Width: 11},
		{Title: "Words", Width: 7},
		{Title: "Δ", Width: 6},
		{Title: "Prio", Width: 8},
		{Title: "Deadline", Width: 10},
		{Title: "Countdown", Width: 14},
		{Title: "Last Edited", Width: 20},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height-2),
	)

	m := Model{table: tbl, theme: t, width: width, height: height}
	m.applyStyles()
	return m
}

// SetTheme swaps the palette, e.g. after a dark-mode toggle.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
	m.applyStyles()
}

func (m *Model) applyStyles() {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = m.theme.Selected
	m.table.SetStyles(styles)
}

// SetChapters replaces the table contents. Delta and countdown are
// recomputed here on every render pass; neither is ever stored.
func (m *Model) SetChapters(chapters []model.Chapter, today time.Time) {
	m.chapters = chapters

	rows := make([]table.Row, len(chapters))
	for i, ch := range chapters {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			ch.Title,
			ch.Status,
			fmt.Sprintf("%d", ch.WordCount),
			fmt.Sprintf("%+d", progress.WordDelta(ch.WordCount, ch.PreviousWordCount)),
			ch.Priority,
			ch.Deadline,
			progress.Countdown(ch.Deadline, today),
			formatLastEdited(ch.LastEdited),
		}
	}
	m.table.SetRows(rows)
}

// SelectedChapter returns the chapter under the cursor.
func (m Model) SelectedChapter() (model.Chapter, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.chapters) {
		return model.Chapter{}, false
	}
	return m.chapters[idx], true
}

// SetSize updates the table dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	m.table.SetHeight(height - 2)
}

// Update handles navigation messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table, or a hint when no chapters exist yet.
func (m Model) View() string {
	if len(m.chapters) == 0 {
		return m.theme.Muted.Render("No chapters yet. Press n to add one, or i to import a manuscript.")
	}
	return m.table.View()
}

// formatLastEdited formats an edit timestamp for display.
func formatLastEdited(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("Jan 02, 2006 3:04 PM")
}
