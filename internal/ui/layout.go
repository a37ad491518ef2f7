package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/novel-forge/internal/theme"
)

// Layout manages the terminal frame: header, tab row, content area,
// and status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	TabRowHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		TabRowHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.TabRowHeight - l.StatusBarHeight
}

// RenderHeader renders the top bar with the app title on the left and
// the word-count summary on the right.
func (l Layout) RenderHeader(t theme.Theme, title string, summary string) string {
	titleRendered := t.Header.Render(title)
	summaryRendered := t.Header.Align(lipgloss.Right).Render(summary)

	gap := l.Width - lipgloss.Width(titleRendered) - lipgloss.Width(summaryRendered)
	if gap < 0 {
		gap = 0
	}

	filler := t.Header.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(t.Header.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, titleRendered, filler, summaryRendered)
}

// RenderTabs renders the tab row, highlighting the active tab.
func (l Layout) RenderTabs(t theme.Theme, labels []string, active int) string {
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			rendered[i] = t.TabActive.Render(label)
		} else {
			rendered[i] = t.Tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// RenderStatusBar renders the bottom status bar with key hints or a
// transient notice.
func (l Layout) RenderStatusBar(t theme.Theme, hints string) string {
	rendered := t.StatusBar.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := t.StatusBar.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(t.StatusBar.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes the full terminal view.
func (l Layout) RenderWithFrame(header, tabs, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, statusBar)
}
