package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"pacer/internal/schedule"
	"pacer/internal/service"
	"pacer/internal/tui"
)

// cli runs the non-interactive commands
type cli struct {
	planService *service.PlanService
	units       tui.Units
}

// parseFlags parses args, treating --help as a clean exit
func parseFlags(fs *pflag.FlagSet, args []string) (bool, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *cli) plan(args []string) error {
	fs := pflag.NewFlagSet("plan", pflag.ContinueOnError)
	mode := fs.StringP("mode", "m", "simple", "schedule mode: simple or tempo")
	distance := fs.Float64P("distance", "d", 0, "total distance ("+c.units.DistanceLabel()+")")
	segment := fs.Float64P("segment", "s", 0, "segment distance ("+c.units.DistanceLabel()+")")
	maxSpeed := fs.Float64("max", 0, "max speed ("+c.units.SpeedLabel()+")")
	avg := fs.Float64("avg", 0, "target average speed, defaults to max ("+c.units.SpeedLabel()+")")
	save := fs.Bool("save", false, "save the plan to history")
	chart := fs.Bool("chart", false, "plot the speed of each segment")

	ok, err := parseFlags(fs, args)
	if !ok {
		return err
	}

	m, err := schedule.ParseMode(*mode)
	if err != nil {
		return err
	}

	view, err := c.planService.Plan(schedule.Request{
		Mode:            m,
		TotalDistance:   *distance,
		SegmentDistance: *segment,
		MaxSpeed:        *maxSpeed,
		TargetAverage:   *avg,
	})
	if err != nil {
		return err
	}

	c.printPlan(view, *chart)

	if *save {
		id, err := c.planService.Save(view)
		if err != nil {
			return err
		}
		fmt.Printf("\nSaved as %s\n", id)
	}

	return nil
}

func (c *cli) solve(args []string) error {
	fs := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	count := fs.Float64P("count", "n", 0, "number of intervals")
	maxSpeed := fs.Float64("max", 0, "max speed ("+c.units.SpeedLabel()+")")
	avg := fs.Float64("avg", 0, "target average speed, defaults to max")

	ok, err := parseFlags(fs, args)
	if !ok {
		return err
	}

	speeds, err := c.planService.Distribution(*count, *maxSpeed, *avg)
	if err != nil {
		return err
	}

	parts := make([]string, len(speeds))
	total := 0.0
	for i, s := range speeds {
		parts[i] = c.planService.FormatSpeed(s)
		total += s
	}
	fmt.Println(strings.Join(parts, " "))
	fmt.Printf("mean %s %s\n", schedule.FormatSpeed(total/float64(len(speeds)), 3), c.units.SpeedLabel())

	return nil
}

func (c *cli) history(args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	limit := fs.IntP("limit", "l", service.DefaultHistoryLimit, "number of plans to list, 0 for all")

	ok, err := parseFlags(fs, args)
	if !ok {
		return err
	}

	n := *limit
	if n == 0 {
		n = -1
	}
	items, err := c.planService.History(n)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Println("No saved plans.")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %-6s  %-28s  %8s  %s\n", item.ID, item.Mode, item.Summary, item.TotalTime, item.SavedAgo)
	}
	return nil
}

func (c *cli) show(args []string) error {
	fs := pflag.NewFlagSet("show", pflag.ContinueOnError)
	chart := fs.Bool("chart", false, "plot the speed of each segment")

	ok, err := parseFlags(fs, args)
	if !ok {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pacer show [--chart] ID")
	}

	view, err := c.planService.Load(fs.Arg(0))
	if err != nil {
		return err
	}

	c.printPlan(view, *chart)
	return nil
}

func (c *cli) delete(args []string) error {
	fs := pflag.NewFlagSet("delete", pflag.ContinueOnError)

	ok, err := parseFlags(fs, args)
	if !ok {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: pacer delete ID")
	}

	id := fs.Arg(0)
	if err := c.planService.Delete(id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}

func (c *cli) printPlan(view *service.PlanView, chart bool) {
	fmt.Println(tui.RenderSchedule(view, c.units))
	fmt.Println()
	fmt.Println(tui.RenderSummary(view, c.units))

	if chart {
		if plot := tui.RenderSpeedChart(view, c.units, 50); plot != "" {
			fmt.Println()
			fmt.Println(plot)
		}
	}
}
