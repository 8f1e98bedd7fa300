package schedule

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// Row is a display-ready schedule line
type Row struct {
	Label    string // "Interval 3", "Work 2", "Rest 1"
	Role     Role
	Speed    string
	Distance string
	Duration string // "M:SS"
}

// FormatOptions controls the fixed decimal places of formatted rows
type FormatOptions struct {
	SpeedDecimals    int
	DistanceDecimals int
}

// DefaultFormatOptions matches a treadmill display: 0.1 speed, 0.01 distance
var DefaultFormatOptions = FormatOptions{SpeedDecimals: 1, DistanceDecimals: 2}

// Rows formats every entry of the result
func (r *Result) Rows(opts FormatOptions) []Row {
	rows := make([]Row, len(r.Entries))
	work, rest := 0, 0

	for i, e := range r.Entries {
		var label string
		switch {
		case r.Mode == ModeSimple:
			label = fmt.Sprintf("Interval %d", i+1)
		case e.Role == RoleRest:
			rest++
			label = fmt.Sprintf("Rest %d", rest)
		default:
			work++
			label = fmt.Sprintf("Work %d", work)
		}

		rows[i] = Row{
			Label:    label,
			Role:     e.Role,
			Speed:    FormatSpeed(e.Speed, opts.SpeedDecimals),
			Distance: FormatDistance(e.Distance, opts.DistanceDecimals),
			Duration: FormatDuration(e.ElapsedMinutes()),
		}
	}

	return rows
}

// FormatSpeed renders a speed with a fixed number of decimals
func FormatSpeed(v float64, decimals int) string {
	return formatFixed(v, decimals)
}

// FormatDistance renders a distance with a fixed number of decimals
func FormatDistance(v float64, decimals int) string {
	return formatFixed(v, decimals)
}

// FormatDuration renders minutes as whole minutes and seconds, "M:SS"
func FormatDuration(minutes float64) string {
	if !isFinite(minutes) || minutes < 0 {
		return "-"
	}
	total := int(math.Round(minutes * 60))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatFixed(v float64, decimals int) string {
	if !isFinite(v) {
		return "-"
	}
	if decimals < 0 {
		decimals = 0
	}
	return humanize.FormatFloat("#,###."+strings.Repeat("#", decimals), v)
}
