package tui

import (
	"pacer/internal/service"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen identifiers
type Screen int

const (
	ScreenPlanner Screen = iota
	ScreenHistory
	ScreenHelp
)

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	planner PlannerModel
	history HistoryModel
	help    HelpModel

	// Services
	planService *service.PlanService
	units       Units

	// Window dimensions
	width  int
	height int
}

// NewApp creates a new App with all dependencies
func NewApp(planService *service.PlanService, units Units) *App {
	return &App{
		screen:      ScreenPlanner,
		planService: planService,
		units:       units,
		planner:     NewPlannerModel(planService, units),
		history:     NewHistoryModel(planService),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.planner.Init()
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "ctrl+p":
			a.screen = ScreenPlanner
			return a, a.planner.Init()
		case "ctrl+o":
			a.screen = ScreenHistory
			a.history = NewHistoryModel(a.planService)
			return a, a.history.Init()
		case "?":
			if a.screen != ScreenHelp {
				a.prevScreen = a.screen
				a.screen = ScreenHelp
			}
			return a, nil
		case "esc":
			if a.screen == ScreenHelp {
				a.screen = a.prevScreen
				return a, nil
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// The planner sizes its viewport even while hidden
		m, cmd := a.planner.Update(msg)
		a.planner = m.(PlannerModel)
		return a, cmd

	case OpenPlanMsg:
		a.screen = ScreenPlanner
		a.planner.ShowPlan(msg.Plan)
		return a, nil
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenPlanner:
		var m tea.Model
		m, cmd = a.planner.Update(msg)
		a.planner = m.(PlannerModel)
	case ScreenHistory:
		var m tea.Model
		m, cmd = a.history.Update(msg)
		a.history = m.(HistoryModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenPlanner:
		content = a.planner.View()
	case ScreenHistory:
		content = a.history.View()
	case ScreenHelp:
		content = a.help.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Pacer: treadmill interval planner")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"ctrl+p", "Planner", ScreenPlanner},
		{"ctrl+o", "Saved", ScreenHistory},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	if !a.planService.HistoryEnabled() {
		nav += "  " + navInactiveStyle.Render("(history off)")
	}
	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}
