package service

import (
	"fmt"
	"math"
)

// formatHours renders hours as "M:SS" or "H:MM:SS"
func formatHours(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return "-"
	}
	return formatDuration(int(math.Round(hours * SecondsPerHour)))
}

// formatDuration formats seconds as "M:SS" or "H:MM:SS"
func formatDuration(seconds int) string {
	h := seconds / SecondsPerHour
	m := (seconds % SecondsPerHour) / SecondsPerMinute
	s := seconds % SecondsPerMinute

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
