package pacing

import "errors"

var (
	// ErrInvalidCount is returned when the interval count is not a positive integer
	ErrInvalidCount = errors.New("invalid interval count")

	// ErrInvalidMagnitude is returned when max or average speed is not a usable number
	ErrInvalidMagnitude = errors.New("invalid speed")

	// ErrAverageExceedsMax is returned for a single interval whose average is above the max
	ErrAverageExceedsMax = errors.New("average speed exceeds max speed")

	// ErrTargetAverageTooHigh is returned when no distribution with a unique max can reach the average
	ErrTargetAverageTooHigh = errors.New("target average too high")

	// ErrUnreachableAverage is returned when the low/high pair collapses below the target
	ErrUnreachableAverage = errors.New("target average unreachable")

	// ErrAverageDroppedBelowTarget is returned when rounding pulls the mean under the target
	ErrAverageDroppedBelowTarget = errors.New("average dropped below target after rounding")
)
