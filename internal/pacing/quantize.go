package pacing

import "math"

const (
	// Step is the granularity every speed is rounded to
	Step = 0.1

	// Epsilon absorbs floating point error in comparisons and rounding
	Epsilon = 1e-9

	stepsPerUnit = 10
)

// Quantize rounds v half-up to the nearest Step
func Quantize(v float64) float64 {
	return math.Floor(v*stepsPerUnit+0.5+Epsilon) / stepsPerUnit
}

// QuantizeDown rounds v down to the nearest Step
func QuantizeDown(v float64) float64 {
	return math.Floor(v*stepsPerUnit+Epsilon) / stepsPerUnit
}

// Mean returns the arithmetic mean, or 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
