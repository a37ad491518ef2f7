// Package theme centralizes colors and styles. The palette is switched
// by the persisted dark_mode preference rather than terminal detection,
// so the toggle in settings takes effect immediately.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme bundles the styles for one palette.
type Theme struct {
	Dark bool

	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Panel     lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Notice    lipgloss.Style
	Struck    lipgloss.Style
	GroupHead lipgloss.Style

	blue    lipgloss.Color
	green   lipgloss.Color
	yellow  lipgloss.Color
	red     lipgloss.Color
	orange  lipgloss.Color
	magenta lipgloss.Color
	gray    lipgloss.Color
	text    lipgloss.Color
	subtle  lipgloss.Color
}

// New builds the theme for the given mode.
func New(dark bool) Theme {
	t := Theme{Dark: dark}

	if dark {
		t.blue = lipgloss.Color("#5B9BD5")
		t.green = lipgloss.Color("#6BCB77")
		t.yellow = lipgloss.Color("#FFD93D")
		t.red = lipgloss.Color("#FF6B6B")
		t.orange = lipgloss.Color("#FFA94D")
		t.magenta = lipgloss.Color("#CC5DE8")
		t.gray = lipgloss.Color("#868E96")
		t.text = lipgloss.Color("#F8F9FA")
		t.subtle = lipgloss.Color("#495057")
	} else {
		t.blue = lipgloss.Color("#2B6CB0")
		t.green = lipgloss.Color("#2F855A")
		t.yellow = lipgloss.Color("#B7791F")
		t.red = lipgloss.Color("#C53030")
		t.orange = lipgloss.Color("#C05621")
		t.magenta = lipgloss.Color("#805AD5")
		t.gray = lipgloss.Color("#718096")
		t.text = lipgloss.Color("#1A202C")
		t.subtle = lipgloss.Color("#CBD5E0")
	}

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.text).
		Background(t.blue).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.text).
		Background(t.subtle).
		Padding(0, 1)

	t.Tab = lipgloss.NewStyle().
		Foreground(t.gray).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.blue).
		Padding(0, 2).
		Underline(true)

	t.Panel = lipgloss.NewStyle().
		Padding(1, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.subtle)

	t.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.blue).
		PaddingLeft(1).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.blue)

	t.Muted = lipgloss.NewStyle().Foreground(t.gray)

	t.Notice = lipgloss.NewStyle().Bold(true).Foreground(t.green)

	t.Struck = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(t.gray)

	t.GroupHead = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.magenta)

	return t
}

// StatusStyle returns a color-coded style for a chapter status.
func (t Theme) StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch status {
	case "Not Started":
		return base.Foreground(t.gray)
	case "Draft":
		return base.Foreground(t.yellow)
	case "Line-Edits":
		return base.Foreground(t.magenta)
	case "Done":
		return base.Foreground(t.green)
	default:
		return base.Foreground(t.gray)
	}
}

// PriorityStyle returns a color-coded style for a chapter priority.
func (t Theme) PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case "High":
		return base.Foreground(t.red)
	case "Medium":
		return base.Foreground(t.orange)
	case "Low":
		return base.Foreground(t.yellow)
	case "Optional":
		return base.Foreground(t.green)
	default:
		return base.Foreground(t.gray)
	}
}

// CountdownStyle colors a countdown label by urgency.
func (t Theme) CountdownStyle(label string) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch {
	case label == "DUE TODAY":
		return base.Bold(true).Foreground(t.orange)
	case label == "1 day left":
		return base.Foreground(t.yellow)
	case len(label) > 7 && label[len(label)-7:] == "OVERDUE":
		return base.Bold(true).Foreground(t.red)
	default:
		return base.Foreground(t.gray)
	}
}

// GlamourStyle names the glamour style config matching the palette.
func (t Theme) GlamourStyle() string {
	if t.Dark {
		return "dark"
	}
	return "light"
}
