package passboard

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/nhle/novel-forge/internal/model"
	"github.com/nhle/novel-forge/internal/theme"
)

// ToggleMsg asks the app to flip a pass's completed flag.
type ToggleMsg struct{ ID int }

// DeleteMsg asks the app to remove a pass.
type DeleteMsg struct{ ID int }

// Model renders the editing-pass board: passes grouped by focus area,
// with markdown descriptions and completion checkboxes.
type Model struct {
	theme    theme.Theme
	renderer *glamour.TermRenderer

	passes        []model.EditingPass
	chapterTitles map[int]string

	// flat is the display order of pass ids, cursor indexes into it.
	flat   []int
	cursor int

	width  int
	height int
}

// New creates the pass board.
func New(t theme.Theme, width, height int) Model {
	m := Model{theme: t, width: width, height: height}
	m.rebuildRenderer()
	return m
}

// SetTheme swaps the palette and the markdown style with it.
func (m *Model) SetTheme(t theme.Theme) {
	m.theme = t
	m.rebuildRenderer()
}

func (m *Model) rebuildRenderer() {
	wrap := m.width - 8
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.theme.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		// Descriptions fall back to raw text.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// SetPasses replaces the board contents. chapterTitles maps chapter
// ids to titles for the link annotations.
func (m *Model) SetPasses(passes []model.EditingPass, chapterTitles map[int]string) {
	m.passes = passes
	m.chapterTitles = chapterTitles

	m.flat = nil
	for _, group := range m.groups() {
		for _, p := range group.passes {
			m.flat = append(m.flat, p.ID)
		}
	}
	if m.cursor >= len(m.flat) {
		m.cursor = len(m.flat) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SelectedID returns the pass id under the cursor.
func (m Model) SelectedID() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.flat) {
		return 0, false
	}
	return m.flat[m.cursor], true
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.rebuildRenderer()
}

// Update handles navigation and toggle/delete keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.flat)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "x", " ":
		if id, ok := m.SelectedID(); ok {
			return m, func() tea.Msg { return ToggleMsg{ID: id} }
		}
	case "d":
		if id, ok := m.SelectedID(); ok {
			return m, func() tea.Msg { return DeleteMsg{ID: id} }
		}
	}
	return m, nil
}

// group is one focus area with its passes in id order.
type group struct {
	focus  string
	passes []model.EditingPass
}

// groups buckets passes by focus area, areas sorted alphabetically,
// passes within an area sorted by id.
func (m Model) groups() []group {
	byFocus := map[string][]model.EditingPass{}
	for _, p := range m.passes {
		focus := p.FocusArea
		if focus == "" {
			focus = "Uncategorized"
		}
		byFocus[focus] = append(byFocus[focus], p)
	}

	names := make([]string, 0, len(byFocus))
	for name := range byFocus {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]group, 0, len(names))
	for _, name := range names {
		passes := byFocus[name]
		sort.Slice(passes, func(i, j int) bool { return passes[i].ID < passes[j].ID })
		groups = append(groups, group{focus: name, passes: passes})
	}
	return groups
}

// View renders the grouped board.
func (m Model) View() string {
	if len(m.passes) == 0 {
		return m.theme.Muted.Render("No editing passes yet. Press n to add one.")
	}

	var b strings.Builder
	idx := 0
	for _, g := range m.groups() {
		b.WriteString(m.theme.GroupHead.Render(fmt.Sprintf("%s (%d items)", g.focus, len(g.passes))))
		b.WriteString("\n")

		for _, p := range g.passes {
			cursor := "  "
			if idx == m.cursor {
				cursor = m.theme.Selected.Render(">") + " "
			}

			check := "☐"
			if p.Completed {
				check = "☑"
			}

			link := ""
			if p.ChapterID != nil {
				if title, ok := m.chapterTitles[*p.ChapterID]; ok {
					link = m.theme.Muted.Render(fmt.Sprintf(" (Ch: %s)", title))
				}
			}

			b.WriteString(fmt.Sprintf("%s%s %s%s\n", cursor, check, m.renderDescription(p), link))
			idx++
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderDescription renders a pass description: markdown for open
// passes, struck-through plain text for completed ones.
func (m Model) renderDescription(p model.EditingPass) string {
	if p.Completed {
		return m.theme.Struck.Render(p.Description)
	}
	if m.renderer == nil {
		return p.Description
	}
	out, err := m.renderer.Render(p.Description)
	if err != nil {
		return p.Description
	}
	return strings.TrimSpace(out)
}
