package schedule

import (
	"pacer/internal/pacing"
)

// BuildSimple splits the distance, asks the solver for per-segment speeds and
// then rewrites the last segment's speed so the total elapsed time equals
// totalDistance/targetAverage exactly. Solver errors are returned unchanged.
func (b *Builder) BuildSimple(totalDistance, segmentDistance, maxSpeed, targetAverage float64) (*Result, error) {
	distances, err := Split(totalDistance, segmentDistance)
	if err != nil {
		return nil, err
	}

	speeds, err := pacing.Solve(len(distances), maxSpeed, targetAverage)
	if err != nil {
		return nil, err
	}

	targetAverage = resolveAverage(maxSpeed, targetAverage)
	targetHours := totalDistance / targetAverage

	last := len(distances) - 1
	remaining := targetHours - elapsedHours(distances[:last], speeds[:last])
	if remaining > 0 {
		if exact := distances[last] / remaining; isFinite(exact) && exact > 0 {
			speeds[last] = exact
		}
	}

	result := &Result{
		Mode:          ModeSimple,
		Entries:       make([]Entry, len(distances)),
		TotalDistance: totalDistance,
		SegmentCount:  len(distances),
		MaxSpeed:      pacing.Quantize(maxSpeed),
		CeilingSpeed:  maxSpeed - pacing.Step,
		TargetHours:   targetHours,
	}

	floor := speeds[0]
	for i, d := range distances {
		result.Entries[i] = Entry{
			Segment:      Segment{Distance: d, Role: RoleWork},
			Speed:        speeds[i],
			ElapsedHours: d / speeds[i],
		}
		if speeds[i] < floor {
			floor = speeds[i]
		}
	}
	result.FloorSpeed = floor

	return result, nil
}
