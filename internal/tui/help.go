package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Keyboard Shortcuts"))

	sections = append(sections, m.renderSection("Navigation", []keyHelp{
		{"ctrl+p", "Planner"},
		{"ctrl+o", "Saved plans"},
		{"?", "Help (this screen)"},
		{"esc", "Back / close help"},
		{"q / ctrl+c", "Quit"},
	}))

	sections = append(sections, m.renderSection("Planner", []keyHelp{
		{"tab / down", "Next field"},
		{"shift+tab / up", "Previous field"},
		{"ctrl+t", "Switch between simple and tempo"},
		{"enter", "Build the schedule"},
		{"ctrl+s", "Save the schedule"},
		{"pgup / pgdn", "Scroll the schedule"},
	}))

	sections = append(sections, m.renderSection("Saved Plans", []keyHelp{
		{"j / down", "Move cursor down"},
		{"k / up", "Move cursor up"},
		{"enter", "Open in planner"},
		{"d", "Delete plan"},
		{"r", "Refresh list"},
	}))

	sections = append(sections, m.renderModesHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render(title))

	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}

	return strings.Join(lines, "\n")
}

func (m HelpModel) renderModesHelp() string {
	var lines []string

	lines = append(lines, "")
	lines = append(lines, sectionStyle.Render("Modes Explained"))
	lines = append(lines, "")

	modes := []struct {
		name string
		desc string
	}{
		{"Simple", "First segment at max speed, the rest near the target average. The last segment absorbs rounding so the total time is exact."},
		{"Tempo", "Work segments alternate with rest segments at a fixed rest speed. Work speeds are tuned until the total time is within a few seconds of target."},
		{"Target average", "Blank falls back to the max speed, which only a single segment can hold."},
		{"Speeds", "Rounded to 0.1, the step of most treadmill consoles."},
	}

	for _, mode := range modes {
		lines = append(lines, "  "+helpKeyStyle.Render(mode.name))
		lines = append(lines, "  "+mutedStyle.Render(mode.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
