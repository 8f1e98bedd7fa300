package schedule

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"pacer/internal/pacing"
)

// Mode selects how a schedule is built
type Mode int

const (
	ModeSimple Mode = iota // solver speeds, exact total time on the last segment
	ModeTempo              // alternating work/rest hitting a target duration
)

// String returns the mode name used on the command line and in storage
func (m Mode) String() string {
	switch m {
	case ModeSimple:
		return "simple"
	case ModeTempo:
		return "tempo"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "simple" or "tempo" to a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple", "":
		return ModeSimple, nil
	case "tempo":
		return ModeTempo, nil
	default:
		return 0, fmt.Errorf("%w: %q (want simple or tempo)", ErrUnknownMode, s)
	}
}

// Role marks a segment as work or rest
type Role int

const (
	RoleWork Role = iota
	RoleRest
)

func (r Role) String() string {
	if r == RoleRest {
		return "rest"
	}
	return "work"
}

// ParseRole converts "work" or "rest" to a Role
func ParseRole(s string) (Role, error) {
	switch s {
	case "work":
		return RoleWork, nil
	case "rest":
		return RoleRest, nil
	default:
		return 0, fmt.Errorf("unknown segment role %q", s)
	}
}

var (
	// ErrUnknownMode is returned for a mode other than simple or tempo
	ErrUnknownMode = errors.New("unknown schedule mode")

	// ErrInvalidDistance is returned when a total or segment distance is unusable
	ErrInvalidDistance = errors.New("invalid distance")

	// ErrInsufficientSegments is returned when tempo mode gets fewer than two segments
	ErrInsufficientSegments = errors.New("tempo needs at least two segments")

	// ErrInsufficientWorkIntervals is returned when a fixed tempo layout misses the target time
	ErrInsufficientWorkIntervals = errors.New("not enough work intervals to hit target time")

	// ErrNoRoomForWorkSpeeds is returned when the work floor is not below the work ceiling
	ErrNoRoomForWorkSpeeds = errors.New("no room for work speeds between floor and ceiling")

	// ErrTempoDidNotConverge is returned when the tempo search cannot hit the target time
	ErrTempoDidNotConverge = errors.New("tempo schedule did not converge")
)

// Segment is one portion of the workout
type Segment struct {
	Distance float64
	Role     Role
}

// Entry is a segment with its solved speed and elapsed time in hours
type Entry struct {
	Segment
	Speed        float64
	ElapsedHours float64
}

// ElapsedMinutes returns the entry's elapsed time in minutes
func (e Entry) ElapsedMinutes() float64 {
	return e.ElapsedHours * 60
}

// Result is a built schedule plus the bounds used to build it
type Result struct {
	Mode          Mode
	Entries       []Entry
	TotalDistance float64
	SegmentCount  int
	MaxSpeed      float64
	FloorSpeed    float64
	CeilingSpeed  float64
	RestSpeed     float64 // zero in simple mode
	TargetHours   float64
}

// TotalHours returns the realized total elapsed time
func (r *Result) TotalHours() float64 {
	total := 0.0
	for _, e := range r.Entries {
		total += e.ElapsedHours
	}
	return total
}

// AverageSpeed returns total distance over realized total time
func (r *Result) AverageSpeed() float64 {
	hours := r.TotalHours()
	if hours <= 0 {
		return 0
	}
	return r.TotalDistance / hours
}

// Speeds returns the per-segment speeds in order
func (r *Result) Speeds() []float64 {
	speeds := make([]float64, len(r.Entries))
	for i, e := range r.Entries {
		speeds[i] = e.Speed
	}
	return speeds
}

// Request carries the inputs of a single build
type Request struct {
	Mode            Mode
	TotalDistance   float64
	SegmentDistance float64
	MaxSpeed        float64
	TargetAverage   float64
}

// Validate checks the request's distances and max speed
func (r Request) Validate() error {
	if r.Mode != ModeSimple && r.Mode != ModeTempo {
		return fmt.Errorf("%w: %v", ErrUnknownMode, r.Mode)
	}
	if err := checkDistances(r.TotalDistance, r.SegmentDistance); err != nil {
		return err
	}
	if !isFinite(r.MaxSpeed) || r.MaxSpeed <= 0 {
		return fmt.Errorf("%w: max speed %v must be a positive number", pacing.ErrInvalidMagnitude, r.MaxSpeed)
	}
	return nil
}

const (
	// DefaultRestSpeed is the fixed speed of tempo rest segments
	DefaultRestSpeed = 6.5

	// DefaultRestMargin keeps tempo work speeds above the rest speed
	DefaultRestMargin = 0.5
)

// Builder builds schedules. The zero value is not usable; use NewBuilder.
type Builder struct {
	RestSpeed  float64
	RestMargin float64
}

// NewBuilder creates a Builder with the given tempo rest settings
func NewBuilder(restSpeed, restMargin float64) *Builder {
	return &Builder{RestSpeed: restSpeed, RestMargin: restMargin}
}

// DefaultBuilder creates a Builder with the default rest settings
func DefaultBuilder() *Builder {
	return NewBuilder(DefaultRestSpeed, DefaultRestMargin)
}

// FloorWorkSpeed returns the lowest speed a tempo work segment may take
func (b *Builder) FloorWorkSpeed() float64 {
	return b.RestSpeed + b.RestMargin
}

// Build dispatches the request to the builder for its mode
func (b *Builder) Build(req Request) (*Result, error) {
	switch req.Mode {
	case ModeSimple:
		return b.BuildSimple(req.TotalDistance, req.SegmentDistance, req.MaxSpeed, req.TargetAverage)
	case ModeTempo:
		return b.BuildTempo(req.TotalDistance, req.SegmentDistance, req.MaxSpeed, req.TargetAverage)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, req.Mode)
	}
}

// resolveAverage falls back to the max speed when no usable average is given
func resolveAverage(maxSpeed, targetAverage float64) float64 {
	if !isFinite(targetAverage) || targetAverage <= 0 {
		return maxSpeed
	}
	return targetAverage
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
