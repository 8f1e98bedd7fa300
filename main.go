package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"

	"pacer/internal/config"
	"pacer/internal/schedule"
	"pacer/internal/service"
	"pacer/internal/store"
	"pacer/internal/tui"
)

const usage = `Usage: pacer [command] [flags]

Commands:
  tui       Interactive planner (default)
  plan      Build an interval schedule
  solve     Solve a bare speed distribution
  history   List saved plans
  show      Print a saved plan by ID
  delete    Delete a saved plan by ID
  init      Write an example config to ~/.pacer/config.json

Run "pacer <command> --help" for command flags.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cmd := "tui"
	if len(args) > 0 && (!strings.HasPrefix(args[0], "-") || args[0] == "-h" || args[0] == "--help") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	case "init":
		path, err := config.CreateExample()
		if err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		fmt.Printf("Config file at:\n  %s\n", path)
		return nil
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return fmt.Errorf("resolving log path: %w", err)
	}
	logFile := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	defer logFile.Close()
	logger := log.New(logFile, "pacer ", log.LstdFlags)

	// Open database
	var db *store.DB
	if cfg.Storage.HistoryEnabled {
		db, err = store.Open()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
	}

	// Create services
	units := tui.NewUnits(cfg.Display)
	builder := schedule.NewBuilder(cfg.Pacing.RestSpeed, cfg.Pacing.RestMargin)
	planSvc := service.NewPlanService(builder, db, units.FormatOptions(), logger)

	c := &cli{planService: planSvc, units: units}

	switch cmd {
	case "tui":
		return c.runTUI()
	case "plan":
		return c.plan(args)
	case "solve":
		return c.solve(args)
	case "history":
		return c.history(args)
	case "show":
		return c.show(args)
	case "delete":
		return c.delete(args)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (c *cli) runTUI() error {
	app := tui.NewApp(c.planService, c.units)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
