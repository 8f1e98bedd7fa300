package tui

import (
	"pacer/internal/config"
	"pacer/internal/schedule"
)

// Units provides unit labels and formatting based on user preferences.
// Distances and speeds are never converted: a plan entered in km is solved in km/h.
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatOptions returns the row formatting matching the display config
func (u Units) FormatOptions() schedule.FormatOptions {
	return schedule.FormatOptions{
		SpeedDecimals:    u.cfg.SpeedDecimals,
		DistanceDecimals: u.cfg.DistanceDecimals,
	}
}

// FormatDistance formats a distance with the unit label
func (u Units) FormatDistance(v float64) string {
	return schedule.FormatDistance(v, u.cfg.DistanceDecimals) + " " + u.DistanceLabel()
}

// FormatSpeed formats a speed with the unit label
func (u Units) FormatSpeed(v float64) string {
	return schedule.FormatSpeed(v, u.cfg.SpeedDecimals) + " " + u.SpeedLabel()
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.IsMiles() {
		return "mi"
	}
	return "km"
}

// SpeedLabel returns the speed unit label ("mph" or "km/h")
func (u Units) SpeedLabel() string {
	if u.IsMiles() {
		return "mph"
	}
	return "km/h"
}

// IsMiles returns true if distance unit is miles
func (u Units) IsMiles() bool {
	return u.cfg.DistanceUnit != "km"
}
