package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"pacer/internal/schedule"
	"pacer/internal/service"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Input fields, in focus order
const (
	fieldDistance = iota
	fieldSegment
	fieldMax
	fieldAverage
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Total distance",
	"Segment distance",
	"Max speed",
	"Target average",
}

// PlannerModel is the plan entry screen model
type PlannerModel struct {
	planService *service.PlanService
	units       Units
	mode        schedule.Mode
	inputs      []textinput.Model
	focus       int
	plan        *service.PlanView
	saving      bool
	err         error
	status      string
	viewport    viewport.Model
	width       int
	height      int
	ready       bool
}

// NewPlannerModel creates a new planner model
func NewPlannerModel(ps *service.PlanService, units Units) PlannerModel {
	m := PlannerModel{
		planService: ps,
		units:       units,
		inputs:      make([]textinput.Model, fieldCount),
	}

	placeholders := [fieldCount]string{"3.25", "0.25", "8.0", "blank = max speed"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 8
		ti.Width = 20
		m.inputs[i] = ti
	}
	m.inputs[fieldDistance].Focus()

	return m
}

// Init initializes the planner screen
func (m PlannerModel) Init() tea.Cmd {
	return textinput.Blink
}

type planBuiltMsg struct {
	plan *service.PlanView
	err  error
}

type planSavedMsg struct {
	plan      *service.PlanView // the view that was saved, compared by identity only
	id        string
	createdAt time.Time
	err       error
}

// Update handles messages
func (m PlannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planBuiltMsg:
		m.err = msg.err
		m.plan = msg.plan
		m.status = ""
		m.refreshViewport()
		return m, nil

	case planSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.plan == m.plan {
			m.plan.ID = msg.id
			m.plan.CreatedAt = msg.createdAt
		}
		m.status = "Saved plan " + shortID(msg.id)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+t":
			if m.mode == schedule.ModeSimple {
				m.mode = schedule.ModeTempo
			} else {
				m.mode = schedule.ModeSimple
			}
			return m, nil
		case "enter":
			req, err := m.request()
			if err != nil {
				m.err = err
				m.plan = nil
				m.refreshViewport()
				return m, nil
			}
			return m, m.build(req)
		case "ctrl+s":
			if m.plan == nil {
				m.err = errors.New("build a plan before saving")
				return m, nil
			}
			if m.saving {
				return m, nil
			}
			if m.plan.ID != "" {
				m.status = "Already saved as " + shortID(m.plan.ID)
				return m, nil
			}
			m.saving = true
			return m, m.save(m.plan)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		if msg.Type == tea.KeyRunes && !numericRunes(msg.Runes) {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// ShowPlan loads a saved plan into the form and result area
func (m *PlannerModel) ShowPlan(plan *service.PlanView) {
	m.mode = plan.Request.Mode
	m.inputs[fieldDistance].SetValue(formatInput(plan.Request.TotalDistance))
	m.inputs[fieldSegment].SetValue(formatInput(plan.Request.SegmentDistance))
	m.inputs[fieldMax].SetValue(formatInput(plan.Request.MaxSpeed))
	if plan.Request.TargetAverage > 0 {
		m.inputs[fieldAverage].SetValue(formatInput(plan.Request.TargetAverage))
	} else {
		m.inputs[fieldAverage].SetValue("")
	}
	m.plan = plan
	m.err = nil
	m.status = "Loaded plan " + shortID(plan.ID)
	m.refreshViewport()
}

func (m *PlannerModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

// request parses the form into a build request
func (m PlannerModel) request() (schedule.Request, error) {
	req := schedule.Request{Mode: m.mode}

	values := make([]float64, fieldCount)
	for i, ti := range m.inputs {
		raw := strings.TrimSpace(ti.Value())
		if raw == "" {
			if i == fieldAverage {
				continue
			}
			return req, fmt.Errorf("%s is required", strings.ToLower(fieldLabels[i]))
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, fmt.Errorf("%s: %q is not a number", strings.ToLower(fieldLabels[i]), raw)
		}
		values[i] = v
	}

	req.TotalDistance = values[fieldDistance]
	req.SegmentDistance = values[fieldSegment]
	req.MaxSpeed = values[fieldMax]
	req.TargetAverage = values[fieldAverage]
	return req, nil
}

func (m PlannerModel) build(req schedule.Request) tea.Cmd {
	return func() tea.Msg {
		plan, err := m.planService.Plan(req)
		return planBuiltMsg{plan: plan, err: err}
	}
}

// save stores a copy of plan so the command never writes to the view Update reads
func (m PlannerModel) save(plan *service.PlanView) tea.Cmd {
	saved := *plan
	return func() tea.Msg {
		id, err := m.planService.Save(&saved)
		return planSavedMsg{plan: plan, id: id, createdAt: saved.CreatedAt, err: err}
	}
}

func (m *PlannerModel) resizeViewport() {
	// Form, mode line and footer take roughly 12 lines
	h := m.height - 12
	if h < 5 {
		h = 5
	}
	if !m.ready {
		m.viewport = viewport.New(m.width, h)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = h
	}
	m.refreshViewport()
}

func (m *PlannerModel) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderResult())
	m.viewport.GotoTop()
}

// View renders the planner screen
func (m PlannerModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Plan a Workout"))
	sections = append(sections, m.renderForm())

	if m.err != nil {
		sections = append(sections, "", errorStyle.Render("  Error: "+m.err.Error()))
	} else if m.status != "" {
		sections = append(sections, "", successStyle.Render("  "+m.status))
	}

	if m.plan != nil {
		if m.ready {
			sections = append(sections, "", m.viewport.View())
		} else {
			sections = append(sections, "", m.renderResult())
		}
	}

	footer := statusStyle.Render("  tab: next field  ctrl+t: mode  enter: build  ctrl+s: save  pgup/pgdn: scroll")
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PlannerModel) renderForm() string {
	var lines []string

	modeLine := inputLabelStyle.Render("Mode") + navActiveStyle.Render(m.mode.String())
	if m.mode == schedule.ModeTempo {
		modeLine += mutedStyle.Render("  alternating work/rest")
	}
	lines = append(lines, "  "+modeLine)

	for i, ti := range m.inputs {
		label := fieldLabels[i]
		switch i {
		case fieldDistance, fieldSegment:
			label += " (" + m.units.DistanceLabel() + ")"
		default:
			label += " (" + m.units.SpeedLabel() + ")"
		}

		style := inputLabelStyle
		if i == m.focus {
			style = inputFocusedLabelStyle
		}
		lines = append(lines, "  "+style.Width(26).Render(label)+ti.View())
	}

	return strings.Join(lines, "\n")
}

func (m PlannerModel) renderResult() string {
	if m.plan == nil {
		return ""
	}

	sections := []string{
		sectionStyle.Render("Schedule"),
		RenderSchedule(m.plan, m.units),
		"",
		RenderSummary(m.plan, m.units),
	}

	width := m.width - 12
	if width > 60 {
		width = 60
	}
	if chart := RenderSpeedChart(m.plan, m.units, width); chart != "" {
		sections = append(sections, "", sectionStyle.Render("Speeds"), chart)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// numericRunes reports whether typed characters can be part of a number
func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
