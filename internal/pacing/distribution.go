package pacing

import (
	"fmt"
	"math"
)

// ParseCount converts a caller supplied interval count to an int.
// The value must be within Epsilon of a positive integer.
func ParseCount(v float64) (int, error) {
	if !finite(v) {
		return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidCount, v)
	}
	n := math.Round(v)
	if n < 1 {
		return 0, fmt.Errorf("%w: %v must be at least 1", ErrInvalidCount, v)
	}
	if math.Abs(v-n) > Epsilon {
		return 0, fmt.Errorf("%w: %v is not a whole number", ErrInvalidCount, v)
	}
	return int(n), nil
}

// BestAchievableAverage returns the highest average reachable by count
// intervals while exactly one of them sits at maxSpeed
func BestAchievableAverage(count int, maxSpeed float64) float64 {
	if count < 1 {
		return 0
	}
	secondTier := maxSpeed - Step
	return (maxSpeed + float64(count-1)*secondTier) / float64(count)
}

// Solve distributes count interval speeds so that exactly one equals maxSpeed,
// every value sits on the Step grid and the mean meets targetAverage.
// A targetAverage that is not a positive finite number defaults to maxSpeed.
func Solve(count int, maxSpeed, targetAverage float64) ([]float64, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: %d must be at least 1", ErrInvalidCount, count)
	}
	if !finite(targetAverage) || targetAverage <= 0 {
		targetAverage = maxSpeed
	}
	if !finite(maxSpeed) || maxSpeed <= 0 {
		return nil, fmt.Errorf("%w: max speed %v must be a positive number", ErrInvalidMagnitude, maxSpeed)
	}

	if count == 1 {
		if maxSpeed+Epsilon < targetAverage {
			return nil, fmt.Errorf("%w: a single interval at %.1f cannot average %.2f",
				ErrAverageExceedsMax, maxSpeed, targetAverage)
		}
		return []float64{Quantize(maxSpeed)}, nil
	}

	secondTier := maxSpeed - Step
	best := BestAchievableAverage(count, maxSpeed)
	if targetAverage > best+Epsilon {
		return nil, fmt.Errorf("%w: %d intervals topping out at %.1f can average at most %.3f, asked for %.3f",
			ErrTargetAverageTooHigh, count, maxSpeed, best, targetAverage)
	}

	rest := count - 1
	targetSum := float64(count) * targetAverage

	// Uniform speed the remaining intervals would need to hit the target exactly
	x := (targetSum - maxSpeed) / float64(rest)
	if x > secondTier {
		x = secondTier
	}
	if x < Step {
		x = Step
	}

	low := QuantizeDown(x)
	high := low + Step
	if high > secondTier+Epsilon {
		high = secondTier
		low = high - Step
	}
	if low > high+Epsilon {
		low, high = secondTier, secondTier
	}

	atHigh := 0
	deficit := targetSum - (maxSpeed + float64(rest)*low)
	gap := high - low
	switch {
	case deficit <= Epsilon:
		// low alone meets the target
	case gap <= Epsilon:
		avg := (maxSpeed + float64(rest)*low) / float64(count)
		if avg+Epsilon < targetAverage {
			return nil, fmt.Errorf("%w: intervals stuck at %.1f only average %.3f",
				ErrUnreachableAverage, low, avg)
		}
	default:
		atHigh = int(math.Ceil(deficit/gap - Epsilon))
		if atHigh < 0 {
			atHigh = 0
		}
		if atHigh > rest {
			atHigh = rest
		}
	}

	values := make([]float64, 0, count)
	values = append(values, maxSpeed)
	for i := 0; i < rest; i++ {
		if i < atHigh {
			values = append(values, high)
		} else {
			values = append(values, low)
		}
	}
	for i, v := range values {
		values[i] = Quantize(v)
	}

	repairDuplicateMax(values)

	if mean := Mean(values); mean+Epsilon < targetAverage {
		return nil, fmt.Errorf("%w: rounded speeds average %.3f, need %.3f",
			ErrAverageDroppedBelowTarget, mean, targetAverage)
	}

	return values, nil
}

// repairDuplicateMax demotes every value after index 0 that rounded up to
// the maximum by one Step, leaving values[0] as the only maximum
func repairDuplicateMax(values []float64) {
	if len(values) < 2 {
		return
	}
	top := values[0]
	for i := 1; i < len(values); i++ {
		if almostEqual(values[i], top) {
			values[i] = Quantize(values[i] - Step)
		}
	}
}
