package tui

import (
	"errors"
	"fmt"

	"pacer/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HistoryModel is the saved plans screen model
type HistoryModel struct {
	planService *service.PlanService
	items       []service.HistoryItem
	cursor      int
	loading     bool
	err         error
	status      string
}

// NewHistoryModel creates a new history model
func NewHistoryModel(ps *service.PlanService) HistoryModel {
	return HistoryModel{
		planService: ps,
		loading:     true,
	}
}

// Init initializes the history screen
func (m HistoryModel) Init() tea.Cmd {
	return m.loadHistory
}

type historyLoadedMsg struct {
	items []service.HistoryItem
	err   error
}

type planDeletedMsg struct {
	id  string
	err error
}

// OpenPlanMsg asks the app to show a saved plan in the planner
type OpenPlanMsg struct {
	Plan *service.PlanView
}

type openPlanFailedMsg struct {
	err error
}

func (m HistoryModel) loadHistory() tea.Msg {
	items, err := m.planService.History(service.DefaultHistoryLimit)
	return historyLoadedMsg{items: items, err: err}
}

// Update handles messages
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = max(len(m.items)-1, 0)
		}

	case planDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Deleted plan " + shortID(msg.id)
		m.loading = true
		return m, m.loadHistory

	case openPlanFailedMsg:
		m.err = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "r":
			m.loading = true
			m.status = ""
			return m, m.loadHistory
		case "enter":
			if id, ok := m.selectedID(); ok {
				return m, m.openPlan(id)
			}
		case "d":
			if id, ok := m.selectedID(); ok {
				return m, m.deletePlan(id)
			}
		}
	}
	return m, nil
}

func (m HistoryModel) selectedID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return "", false
	}
	return m.items[m.cursor].ID, true
}

func (m HistoryModel) openPlan(id string) tea.Cmd {
	return func() tea.Msg {
		plan, err := m.planService.Load(id)
		if err != nil {
			return openPlanFailedMsg{err: err}
		}
		return OpenPlanMsg{Plan: plan}
	}
}

func (m HistoryModel) deletePlan(id string) tea.Cmd {
	return func() tea.Msg {
		return planDeletedMsg{id: id, err: m.planService.Delete(id)}
	}
}

// View renders the history screen
func (m HistoryModel) View() string {
	title := cardTitleStyle.Render("Saved Plans")

	if errors.Is(m.err, service.ErrHistoryDisabled) {
		return lipgloss.JoinVertical(lipgloss.Left, title,
			warningStyle.Render("  Plan history is disabled."),
			mutedStyle.Render("  Set storage.history_enabled in ~/.pacer/config.json to keep plans."))
	}

	if m.loading {
		return title + "\n  Loading saved plans..."
	}

	if m.err != nil {
		return title + "\n" + errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	if len(m.items) == 0 {
		return title + "\n" + mutedStyle.Render("  No saved plans yet. Build one in the planner and press ctrl+s.")
	}

	lines := []string{title}

	header := fmt.Sprintf("%-10s %-8s %-28s %10s  %s", "ID", "Mode", "Plan", "Time", "Saved")
	lines = append(lines, tableHeaderStyle.Render(header))

	for i, item := range m.items {
		row := fmt.Sprintf("%-10s %-8s %-28s %10s  %s",
			shortID(item.ID), item.Mode, item.Summary, item.TotalTime, item.SavedAgo)
		if i == m.cursor {
			lines = append(lines, tableSelectedStyle.Render(row))
		} else {
			lines = append(lines, tableRowStyle.Render(row))
		}
	}

	if m.status != "" {
		lines = append(lines, "", successStyle.Render("  "+m.status))
	}

	footer := statusStyle.Render("  j/k or arrows: move  enter: open  d: delete  r: refresh")
	lines = append(lines, footer)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
