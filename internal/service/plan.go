package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"pacer/internal/pacing"
	"pacer/internal/schedule"
	"pacer/internal/store"
)

// ErrHistoryDisabled is returned by history operations when no store is configured
var ErrHistoryDisabled = errors.New("plan history is disabled")

// PlanService builds, formats and saves schedules for the CLI and TUI
type PlanService struct {
	builder *schedule.Builder
	store   *store.DB // nil when history is disabled
	format  schedule.FormatOptions
	logger  *log.Logger
}

// NewPlanService creates a new plan service. db may be nil.
func NewPlanService(builder *schedule.Builder, db *store.DB, format schedule.FormatOptions, logger *log.Logger) *PlanService {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &PlanService{
		builder: builder,
		store:   db,
		format:  format,
		logger:  logger,
	}
}

// HistoryEnabled reports whether plans can be saved
func (s *PlanService) HistoryEnabled() bool {
	return s.store != nil
}

// PlanView is a built schedule ready for display
type PlanView struct {
	ID        string // empty until saved
	Request   schedule.Request
	Result    *schedule.Result
	Rows      []schedule.Row
	CreatedAt time.Time

	TotalTime    string // "M:SS" or "H:MM:SS"
	TargetTime   string
	AverageSpeed string
	Speeds       []float64 // for charts
}

// HistoryItem summarizes a saved plan
type HistoryItem struct {
	ID        string
	Mode      string
	Summary   string // "3.25 @ 7.0 avg, max 8.0"
	TotalTime string
	SavedAgo  string // "3 minutes ago"
	CreatedAt time.Time
}

// Plan builds the schedule described by req
func (s *PlanService) Plan(req schedule.Request) (*PlanView, error) {
	if err := req.Validate(); err != nil {
		s.logger.Printf("rejected %s request: %v", req.Mode, err)
		return nil, err
	}

	result, err := s.builder.Build(req)
	if err != nil {
		s.logger.Printf("%s build failed (distance=%v segment=%v max=%v avg=%v): %v",
			req.Mode, req.TotalDistance, req.SegmentDistance, req.MaxSpeed, req.TargetAverage, err)
		return nil, err
	}

	s.logger.Printf("built %s plan: %d segments, %.4f h (target %.4f h)",
		req.Mode, result.SegmentCount, result.TotalHours(), result.TargetHours)

	return s.newView(req, result), nil
}

// Save stores the plan and returns its ID
func (s *PlanService) Save(view *PlanView) (string, error) {
	if s.store == nil {
		return "", ErrHistoryDisabled
	}

	p := &store.Plan{
		ID:              view.ID,
		Mode:            view.Request.Mode.String(),
		TotalDistance:   view.Request.TotalDistance,
		SegmentDistance: view.Request.SegmentDistance,
		MaxSpeed:        view.Request.MaxSpeed,
		TargetAverage:   view.Request.TargetAverage,
		FloorSpeed:      view.Result.FloorSpeed,
		CeilingSpeed:    view.Result.CeilingSpeed,
		TotalHours:      view.Result.TotalHours(),
		CreatedAt:       view.CreatedAt,
	}
	if view.Result.Mode == schedule.ModeTempo {
		rest := view.Result.RestSpeed
		p.RestSpeed = &rest
	}
	for i, e := range view.Result.Entries {
		p.Entries = append(p.Entries, store.PlanEntry{
			Position:     i,
			Role:         e.Role.String(),
			Distance:     e.Distance,
			Speed:        e.Speed,
			ElapsedHours: e.ElapsedHours,
		})
	}

	if err := s.store.SavePlan(p); err != nil {
		return "", fmt.Errorf("saving plan: %w", err)
	}

	view.ID = p.ID
	view.CreatedAt = p.CreatedAt
	s.logger.Printf("saved %s plan %s", p.Mode, p.ID)

	return p.ID, nil
}

// History lists saved plans, newest first
func (s *PlanService) History(limit int) ([]HistoryItem, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}

	plans, err := s.store.ListPlans(limit)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}

	items := make([]HistoryItem, 0, len(plans))
	for _, p := range plans {
		items = append(items, HistoryItem{
			ID:   p.ID,
			Mode: p.Mode,
			Summary: fmt.Sprintf("%s @ %s avg, max %s",
				schedule.FormatDistance(p.TotalDistance, s.format.DistanceDecimals),
				schedule.FormatSpeed(p.TargetAverage, s.format.SpeedDecimals),
				schedule.FormatSpeed(p.MaxSpeed, s.format.SpeedDecimals)),
			TotalTime: formatHours(p.TotalHours),
			SavedAgo:  humanize.Time(p.CreatedAt),
			CreatedAt: p.CreatedAt,
		})
	}

	return items, nil
}

// Load rebuilds the view of a saved plan from its stored entries
func (s *PlanService) Load(id string) (*PlanView, error) {
	if s.store == nil {
		return nil, ErrHistoryDisabled
	}

	p, err := s.store.GetPlan(id)
	if err != nil {
		return nil, err
	}

	mode, err := schedule.ParseMode(p.Mode)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", id, err)
	}

	req := schedule.Request{
		Mode:            mode,
		TotalDistance:   p.TotalDistance,
		SegmentDistance: p.SegmentDistance,
		MaxSpeed:        p.MaxSpeed,
		TargetAverage:   p.TargetAverage,
	}

	avg := p.TargetAverage
	if avg <= 0 {
		avg = p.MaxSpeed
	}

	result := &schedule.Result{
		Mode:          mode,
		Entries:       make([]schedule.Entry, 0, len(p.Entries)),
		TotalDistance: p.TotalDistance,
		SegmentCount:  len(p.Entries),
		MaxSpeed:      pacing.Quantize(p.MaxSpeed),
		FloorSpeed:    p.FloorSpeed,
		CeilingSpeed:  p.CeilingSpeed,
		TargetHours:   p.TotalDistance / avg,
	}
	if p.RestSpeed != nil {
		result.RestSpeed = *p.RestSpeed
	}
	for _, e := range p.Entries {
		role, err := schedule.ParseRole(e.Role)
		if err != nil {
			return nil, fmt.Errorf("plan %s entry %d: %w", id, e.Position, err)
		}
		result.Entries = append(result.Entries, schedule.Entry{
			Segment:      schedule.Segment{Distance: e.Distance, Role: role},
			Speed:        e.Speed,
			ElapsedHours: e.ElapsedHours,
		})
	}

	view := s.newView(req, result)
	view.ID = p.ID
	view.CreatedAt = p.CreatedAt
	return view, nil
}

// Delete removes a saved plan
func (s *PlanService) Delete(id string) error {
	if s.store == nil {
		return ErrHistoryDisabled
	}
	if err := s.store.DeletePlan(id); err != nil {
		return err
	}
	s.logger.Printf("deleted plan %s", id)
	return nil
}

// Distribution solves a bare speed distribution. count may be any real
// number within epsilon of a positive integer.
func (s *PlanService) Distribution(count, maxSpeed, targetAverage float64) ([]float64, error) {
	n, err := pacing.ParseCount(count)
	if err != nil {
		return nil, err
	}

	speeds, err := pacing.Solve(n, maxSpeed, targetAverage)
	if err != nil {
		s.logger.Printf("distribution failed (count=%d max=%v avg=%v): %v", n, maxSpeed, targetAverage, err)
		return nil, err
	}
	return speeds, nil
}

// FormatSpeed renders a speed with the configured decimals
func (s *PlanService) FormatSpeed(v float64) string {
	return schedule.FormatSpeed(v, s.format.SpeedDecimals)
}

func (s *PlanService) newView(req schedule.Request, result *schedule.Result) *PlanView {
	return &PlanView{
		Request:      req,
		Result:       result,
		Rows:         result.Rows(s.format),
		TotalTime:    formatHours(result.TotalHours()),
		TargetTime:   formatHours(result.TargetHours),
		AverageSpeed: schedule.FormatSpeed(result.AverageSpeed(), s.format.SpeedDecimals+1),
		Speeds:       result.Speeds(),
	}
}
