package schedule

import (
	"fmt"
	"math"

	"pacer/internal/pacing"
)

const (
	// tempoTightTolerance stops the fine loop early (hours)
	tempoTightTolerance = 1e-4

	// tempoAcceptTolerance is the largest time miss a tempo schedule may carry (hours)
	tempoAcceptTolerance = 5e-3

	tempoMaxIterations = 200
)

// tempoState holds the segment layout and speeds during a tempo search
type tempoState struct {
	distances  []float64
	speeds     []float64
	roles      []Role
	adjustable []int // work indices other than 0, ascending
}

func (s *tempoState) total() float64 {
	return elapsedHours(s.distances, s.speeds)
}

// BuildTempo builds an alternating work/rest schedule whose total elapsed time
// matches totalDistance/targetAverage. Segment 0 is work pinned to the rounded
// max speed, odd segments rest at RestSpeed, and the remaining work segments
// are searched between the floor and one step under the max.
func (b *Builder) BuildTempo(totalDistance, segmentDistance, maxSpeed, targetAverage float64) (*Result, error) {
	distances, err := Split(totalDistance, segmentDistance)
	if err != nil {
		return nil, err
	}
	if len(distances) < 2 {
		return nil, fmt.Errorf("%w: %v split into %v gives %d", ErrInsufficientSegments,
			totalDistance, segmentDistance, len(distances))
	}
	if !isFinite(maxSpeed) || maxSpeed <= 0 {
		return nil, fmt.Errorf("%w: max speed %v must be a positive number", pacing.ErrInvalidMagnitude, maxSpeed)
	}
	if !isFinite(b.RestSpeed) || b.RestSpeed <= 0 {
		return nil, fmt.Errorf("%w: rest speed %v must be a positive number", pacing.ErrInvalidMagnitude, b.RestSpeed)
	}

	targetAverage = resolveAverage(maxSpeed, targetAverage)
	targetHours := totalDistance / targetAverage
	floor := b.FloorWorkSpeed()

	st := &tempoState{
		distances: distances,
		speeds:    make([]float64, len(distances)),
		roles:     make([]Role, len(distances)),
	}
	st.speeds[0] = pacing.Quantize(maxSpeed)
	for i := 1; i < len(distances); i++ {
		if i%2 == 1 {
			st.roles[i] = RoleRest
			st.speeds[i] = b.RestSpeed
			continue
		}
		st.roles[i] = RoleWork
		st.speeds[i] = floor
		st.adjustable = append(st.adjustable, i)
	}

	ceiling := st.speeds[0] - pacing.Step

	if len(st.adjustable) == 0 {
		diff := st.total() - targetHours
		if math.Abs(diff) > tempoAcceptTolerance {
			return nil, fmt.Errorf("%w: fixed layout takes %.4f h, target %.4f h",
				ErrInsufficientWorkIntervals, st.total(), targetHours)
		}
		return b.tempoResult(st, totalDistance, floor, ceiling, targetHours), nil
	}

	if floor >= ceiling-pacing.Epsilon {
		return nil, fmt.Errorf("%w: floor %.1f, ceiling %.1f", ErrNoRoomForWorkSpeeds, floor, ceiling)
	}

	st.coarseSearch(targetHours, floor, ceiling, maxSpeed)
	st.correctLast(targetHours, floor, ceiling)
	st.refineLast(targetHours, floor, ceiling)

	if diff := st.total() - targetHours; math.Abs(diff) > tempoAcceptTolerance {
		return nil, fmt.Errorf("%w: off by %.1f seconds", ErrTempoDidNotConverge, diff*3600)
	}

	return b.tempoResult(st, totalDistance, floor, ceiling, targetHours), nil
}

// coarseSearch moves adjustable work speeds one step at a time. Too slow
// raises speeds left to right, too fast lowers them right to left.
func (s *tempoState) coarseSearch(targetHours, floor, ceiling, maxSpeed float64) {
	total := s.total()

	switch {
	case total > targetHours:
		for _, i := range s.adjustable {
			for total > targetHours {
				next := pacing.Quantize(s.speeds[i] + pacing.Step)
				if next > ceiling+pacing.Epsilon || next > maxSpeed+pacing.Epsilon {
					break
				}
				s.speeds[i] = next
				total = s.total()
			}
		}
	case total < targetHours:
		for k := len(s.adjustable) - 1; k >= 0; k-- {
			i := s.adjustable[k]
			for total < targetHours {
				next := pacing.Quantize(s.speeds[i] - pacing.Step)
				if next < floor-pacing.Epsilon {
					break
				}
				s.speeds[i] = next
				total = s.total()
			}
		}
	}
}

// correctLast solves the last adjustable segment's speed so the total lands
// on the target, clamped to [floor, ceiling] and quantized
func (s *tempoState) correctLast(targetHours, floor, ceiling float64) {
	last := s.adjustable[len(s.adjustable)-1]
	others := s.total() - s.distances[last]/s.speeds[last]
	needed := targetHours - others

	speed := ceiling
	if needed > 0 {
		speed = s.distances[last] / needed
	}
	speed = math.Max(floor, math.Min(ceiling, speed))

	s.speeds[last] = pacing.Quantize(speed)
}

// refineLast nudges the last adjustable segment one step at a time while each
// move shrinks the remaining time difference
func (s *tempoState) refineLast(targetHours, floor, ceiling float64) {
	last := s.adjustable[len(s.adjustable)-1]

	for iter := 0; iter < tempoMaxIterations; iter++ {
		diff := s.total() - targetHours
		if math.Abs(diff) <= tempoTightTolerance {
			return
		}

		next := s.speeds[last] - pacing.Step
		if diff > 0 {
			next = s.speeds[last] + pacing.Step
		}
		next = pacing.Quantize(next)
		if next > ceiling+pacing.Epsilon || next < floor-pacing.Epsilon {
			return
		}

		prev := s.speeds[last]
		s.speeds[last] = next
		if math.Abs(s.total()-targetHours) >= math.Abs(diff) {
			s.speeds[last] = prev
			return
		}
	}
}

func (b *Builder) tempoResult(s *tempoState, totalDistance, floor, ceiling, targetHours float64) *Result {
	result := &Result{
		Mode:          ModeTempo,
		Entries:       make([]Entry, len(s.distances)),
		TotalDistance: totalDistance,
		SegmentCount:  len(s.distances),
		MaxSpeed:      s.speeds[0],
		FloorSpeed:    floor,
		CeilingSpeed:  ceiling,
		RestSpeed:     b.RestSpeed,
		TargetHours:   targetHours,
	}
	for i, d := range s.distances {
		result.Entries[i] = Entry{
			Segment:      Segment{Distance: d, Role: s.roles[i]},
			Speed:        s.speeds[i],
			ElapsedHours: d / s.speeds[i],
		}
	}
	return result
}
