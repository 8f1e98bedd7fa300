package tui

import (
	"fmt"
	"strings"

	"pacer/internal/schedule"
	"pacer/internal/service"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
)

// RenderSchedule renders the rows of a plan as a table
func RenderSchedule(view *service.PlanView, units Units) string {
	rows := make([][]string, len(view.Rows))
	for i, r := range view.Rows {
		rows[i] = []string{r.Label, r.Speed, r.Distance, r.Duration}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("Segment", "Speed ("+units.SpeedLabel()+")", "Distance ("+units.DistanceLabel()+")", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case row >= 0 && row < len(view.Rows) && view.Rows[row].Role == schedule.RoleRest:
				return tableRestStyle
			default:
				return tableRowStyle
			}
		})

	return t.Render()
}

// RenderSummary renders the totals of a plan
func RenderSummary(view *service.PlanView, units Units) string {
	lines := []string{
		RenderMetric("Mode", view.Result.Mode.String()),
		RenderMetric("Distance", units.FormatDistance(view.Result.TotalDistance)),
		RenderMetric("Segments", fmt.Sprintf("%d", view.Result.SegmentCount)),
		RenderMetric("Total time", view.TotalTime),
		RenderMetric("Target time", view.TargetTime),
		RenderMetric("Average", view.AverageSpeed+" "+units.SpeedLabel()),
	}
	if view.Result.Mode == schedule.ModeTempo {
		lines = append(lines,
			RenderMetric("Rest speed", units.FormatSpeed(view.Result.RestSpeed)),
			RenderMetric("Work range", fmt.Sprintf("%s - %s",
				units.FormatSpeed(view.Result.FloorSpeed),
				units.FormatSpeed(view.Result.CeilingSpeed))),
		)
	}
	return strings.Join(lines, "\n")
}

// RenderSpeedChart plots the speed of each segment. Plans with fewer than
// two segments have nothing to plot and render empty.
func RenderSpeedChart(view *service.PlanView, units Units, width int) string {
	if len(view.Speeds) < 2 {
		return ""
	}
	if width <= 0 {
		width = 50
	}

	return asciigraph.Plot(view.Speeds,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Precision(1),
		asciigraph.Caption("speed per segment ("+units.SpeedLabel()+")"),
	)
}
