package schedule

import (
	"fmt"
	"math"

	"pacer/internal/pacing"
)

// Split chops totalDistance into chunks of segmentDistance. The final chunk
// takes the remainder; a negligible remainder is dropped so the last chunk
// stays full length.
func Split(totalDistance, segmentDistance float64) ([]float64, error) {
	if err := checkDistances(totalDistance, segmentDistance); err != nil {
		return nil, err
	}

	full := int(math.Floor(totalDistance/segmentDistance + pacing.Epsilon))
	remainder := totalDistance - float64(full)*segmentDistance

	segments := make([]float64, 0, full+1)
	for i := 0; i < full; i++ {
		segments = append(segments, segmentDistance)
	}
	if remainder > pacing.Epsilon {
		segments = append(segments, remainder)
	}

	return segments, nil
}

func checkDistances(totalDistance, segmentDistance float64) error {
	if !isFinite(totalDistance) || totalDistance <= 0 {
		return fmt.Errorf("%w: total distance %v must be a positive number", ErrInvalidDistance, totalDistance)
	}
	if !isFinite(segmentDistance) || segmentDistance <= 0 {
		return fmt.Errorf("%w: segment distance %v must be a positive number", ErrInvalidDistance, segmentDistance)
	}
	return nil
}

// elapsedHours sums distance/speed over the segments
func elapsedHours(distances, speeds []float64) float64 {
	total := 0.0
	for i, d := range distances {
		total += d / speeds[i]
	}
	return total
}
