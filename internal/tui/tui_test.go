package tui

import (
	"strings"
	"testing"

	"pacer/internal/config"
	"pacer/internal/schedule"
	"pacer/internal/service"
	"pacer/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestPlanService(t *testing.T, withStore bool) *service.PlanService {
	t.Helper()
	var db *store.DB
	if withStore {
		db = store.NewTestDB(t)
	}
	return service.NewPlanService(schedule.DefaultBuilder(), db, schedule.DefaultFormatOptions, nil)
}

func TestUnits(t *testing.T) {
	tests := []struct {
		unit      string
		distLabel string
		speed     string
		distance  string
	}{
		{"mi", "mi", "8.0 mph", "3.25 mi"},
		{"km", "km", "8.0 km/h", "3.25 km"},
	}

	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			cfg := config.DefaultConfig().Display
			cfg.DistanceUnit = tt.unit
			u := NewUnits(cfg)

			if got := u.DistanceLabel(); got != tt.distLabel {
				t.Errorf("DistanceLabel() = %q, want %q", got, tt.distLabel)
			}
			if got := u.FormatSpeed(8); got != tt.speed {
				t.Errorf("FormatSpeed(8) = %q, want %q", got, tt.speed)
			}
			if got := u.FormatDistance(3.25); got != tt.distance {
				t.Errorf("FormatDistance(3.25) = %q, want %q", got, tt.distance)
			}
		})
	}
}

func TestNumericRunes(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"3", true},
		{"0.25", true},
		{"q", false},
		{"1a", false},
		{"-", false},
	}

	for _, tt := range tests {
		if got := numericRunes([]rune(tt.in)); got != tt.want {
			t.Errorf("numericRunes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func typeInto(m PlannerModel, field int, value string) PlannerModel {
	m.inputs[field].SetValue(value)
	return m
}

func TestPlannerRequest(t *testing.T) {
	units := NewUnits(config.DefaultConfig().Display)
	m := NewPlannerModel(newTestPlanService(t, false), units)

	if _, err := m.request(); err == nil || !strings.Contains(err.Error(), "total distance") {
		t.Errorf("request() on empty form error = %v, want total distance required", err)
	}

	m = typeInto(m, fieldDistance, "3.25")
	m = typeInto(m, fieldSegment, "0.75")
	m = typeInto(m, fieldMax, "8")

	req, err := m.request()
	if err != nil {
		t.Fatalf("request() error = %v", err)
	}
	want := schedule.Request{Mode: schedule.ModeSimple, TotalDistance: 3.25, SegmentDistance: 0.75, MaxSpeed: 8}
	if req != want {
		t.Errorf("request() = %+v, want %+v", req, want)
	}

	m = typeInto(m, fieldAverage, "7..0")
	if _, err := m.request(); err == nil || !strings.Contains(err.Error(), "not a number") {
		t.Errorf("request() error = %v, want not a number", err)
	}
}

func TestPlannerBuildAndSave(t *testing.T) {
	units := NewUnits(config.DefaultConfig().Display)
	m := NewPlannerModel(newTestPlanService(t, true), units)
	m = typeInto(m, fieldDistance, "2.5")
	m = typeInto(m, fieldSegment, "0.5")
	m = typeInto(m, fieldMax, "9")
	m = typeInto(m, fieldAverage, "7.5")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = model.(PlannerModel)
	if m.mode != schedule.ModeTempo {
		t.Fatalf("mode = %v, want tempo after ctrl+t", m.mode)
	}

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(PlannerModel)
	if cmd == nil {
		t.Fatal("enter should return a build command")
	}
	model, _ = m.Update(cmd())
	m = model.(PlannerModel)

	if m.err != nil {
		t.Fatalf("build error = %v", m.err)
	}
	if m.plan == nil || len(m.plan.Rows) != 5 {
		t.Fatalf("plan = %+v, want 5 rows", m.plan)
	}

	view := m.View()
	for _, want := range []string{"Work 1", "Rest 2", "Work 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q", want)
		}
	}

	model, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = model.(PlannerModel)
	if cmd == nil {
		t.Fatal("ctrl+s should return a save command")
	}

	// A second ctrl+s while the first save is in flight does nothing
	model, again := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = model.(PlannerModel)
	if again != nil {
		t.Error("ctrl+s during a save should not start another save")
	}

	msg := cmd()
	if m.plan.ID != "" {
		t.Errorf("save command wrote ID %q to the displayed plan", m.plan.ID)
	}

	model, _ = m.Update(msg)
	m = model.(PlannerModel)
	if m.err != nil || !strings.HasPrefix(m.status, "Saved plan") {
		t.Errorf("after save err = %v, status = %q", m.err, m.status)
	}
	if m.plan.ID == "" || m.plan.CreatedAt.IsZero() {
		t.Errorf("saved plan ID = %q, CreatedAt = %v, want both set", m.plan.ID, m.plan.CreatedAt)
	}

	model, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = model.(PlannerModel)
	if cmd != nil || !strings.HasPrefix(m.status, "Already saved") {
		t.Errorf("ctrl+s after save: cmd = %v, status = %q", cmd != nil, m.status)
	}

	items, err := m.planService.History(0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(History()) = %d, want 1", len(items))
	}
}

func TestRenderSummaryWorkRange(t *testing.T) {
	display := config.DefaultConfig().Display
	display.SpeedDecimals = 2
	units := NewUnits(display)

	ps := service.NewPlanService(schedule.DefaultBuilder(), store.NewTestDB(t), units.FormatOptions(), nil)
	view, err := ps.Plan(schedule.Request{
		Mode:            schedule.ModeTempo,
		TotalDistance:   2.5,
		SegmentDistance: 0.5,
		MaxSpeed:        9,
		TargetAverage:   7.5,
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if _, err := ps.Save(view); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := ps.Load(view.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	for name, v := range map[string]*service.PlanView{"built": view, "loaded": loaded} {
		if got := RenderSummary(v, units); !strings.Contains(got, "7.00 mph - 8.90 mph") {
			t.Errorf("%s summary should show the work range with two decimals, got:\n%s", name, got)
		}
	}
}

func TestPlannerShowsBuildError(t *testing.T) {
	units := NewUnits(config.DefaultConfig().Display)
	m := NewPlannerModel(newTestPlanService(t, false), units)
	m = typeInto(m, fieldDistance, "3")
	m = typeInto(m, fieldSegment, "1")
	m = typeInto(m, fieldMax, "8")
	m = typeInto(m, fieldAverage, "7.99")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(PlannerModel)
	model, _ = m.Update(cmd())
	m = model.(PlannerModel)

	if m.err == nil {
		t.Fatal("expected a build error")
	}
	if !strings.Contains(m.View(), "Error:") {
		t.Error("View() should show the error inline")
	}
}

func TestPlannerIgnoresLetters(t *testing.T) {
	units := NewUnits(config.DefaultConfig().Display)
	m := NewPlannerModel(newTestPlanService(t, false), units)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = model.(PlannerModel)
	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4")})
	m = model.(PlannerModel)

	if got := m.inputs[fieldDistance].Value(); got != "4" {
		t.Errorf("distance input = %q, want %q", got, "4")
	}
}

func TestHistoryDisabled(t *testing.T) {
	h := NewHistoryModel(newTestPlanService(t, false))

	model, _ := h.Update(h.Init()())
	h = model.(HistoryModel)

	if !strings.Contains(h.View(), "history is disabled") {
		t.Errorf("View() = %q, want disabled notice", h.View())
	}
}

func TestAppHelpToggle(t *testing.T) {
	units := NewUnits(config.DefaultConfig().Display)
	app := NewApp(newTestPlanService(t, false), units)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if app.screen != ScreenHelp {
		t.Fatalf("screen = %v, want help", app.screen)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.screen != ScreenPlanner {
		t.Errorf("screen = %v, want planner after esc", app.screen)
	}
}

func TestAppOpensSavedPlan(t *testing.T) {
	ps := newTestPlanService(t, true)
	units := NewUnits(config.DefaultConfig().Display)
	app := NewApp(ps, units)

	view, err := ps.Plan(schedule.Request{
		Mode:            schedule.ModeSimple,
		TotalDistance:   3.25,
		SegmentDistance: 0.75,
		MaxSpeed:        8,
		TargetAverage:   7,
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if _, err := ps.Save(view); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if app.screen != ScreenHistory {
		t.Fatalf("screen = %v, want history", app.screen)
	}
	app.Update(app.history.loadHistory())
	if len(app.history.items) != 1 {
		t.Fatalf("history items = %d, want 1", len(app.history.items))
	}

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should return an open command")
	}
	app.Update(cmd())

	if app.screen != ScreenPlanner {
		t.Fatalf("screen = %v, want planner", app.screen)
	}
	if got := app.planner.inputs[fieldDistance].Value(); got != "3.25" {
		t.Errorf("distance input = %q, want 3.25", got)
	}
	if app.planner.plan == nil || app.planner.plan.ID != view.ID {
		t.Errorf("planner should show the saved plan")
	}
}
