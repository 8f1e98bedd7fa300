package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Pacing  PacingConfig  `json:"pacing" mapstructure:"pacing"`
	Display DisplayConfig `json:"display" mapstructure:"display"`
	Storage StorageConfig `json:"storage" mapstructure:"storage"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// PacingConfig holds tempo rest settings
type PacingConfig struct {
	RestSpeed  float64 `json:"rest_speed" mapstructure:"rest_speed"`
	RestMargin float64 `json:"rest_margin" mapstructure:"rest_margin"`
}

// DisplayConfig holds display preferences
type DisplayConfig struct {
	DistanceUnit     string `json:"distance_unit" mapstructure:"distance_unit"`
	SpeedDecimals    int    `json:"speed_decimals" mapstructure:"speed_decimals"`
	DistanceDecimals int    `json:"distance_decimals" mapstructure:"distance_decimals"`
}

// StorageConfig controls the saved plan history
type StorageConfig struct {
	HistoryEnabled bool `json:"history_enabled" mapstructure:"history_enabled"`
}

// LoggingConfig controls the rotating log file
type LoggingConfig struct {
	File       string `json:"file" mapstructure:"file"` // relative paths live in the config dir
	MaxSizeMB  int    `json:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int    `json:"max_backups" mapstructure:"max_backups"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

const envPrefix = "PACER"

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Pacing: PacingConfig{
			RestSpeed:  6.5,
			RestMargin: 0.5,
		},
		Display: DisplayConfig{
			DistanceUnit:     "mi",
			SpeedDecimals:    1,
			DistanceDecimals: 2,
		},
		Storage: StorageConfig{
			HistoryEnabled: true,
		},
		Logging: LoggingConfig{
			File:       "pacer.log",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Load reads the configuration from ~/.pacer/config.json.
// Environment variables such as PACER_PACING_REST_SPEED override file values.
// A missing file returns the defaults along with ErrNoConfig.
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path, see Load
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	var missing bool
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
		missing = true
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if missing {
		return &cfg, ErrNoConfig
	}
	return &cfg, nil
}

// newViper returns a viper instance seeded with defaults and env overrides
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")

	defaults := DefaultConfig()
	v.SetDefault("pacing.rest_speed", defaults.Pacing.RestSpeed)
	v.SetDefault("pacing.rest_margin", defaults.Pacing.RestMargin)
	v.SetDefault("display.distance_unit", defaults.Display.DistanceUnit)
	v.SetDefault("display.speed_decimals", defaults.Display.SpeedDecimals)
	v.SetDefault("display.distance_decimals", defaults.Display.DistanceDecimals)
	v.SetDefault("storage.history_enabled", defaults.Storage.HistoryEnabled)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Save writes the configuration to ~/.pacer/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to path
func SaveFile(path string, cfg *Config) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists.
// It returns the path of the config file.
func CreateExample() (string, error) {
	path, err := getConfigPath()
	if err != nil {
		return "", err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return path, nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	return path, SaveFile(path, &example)
}

// Validate checks that the config values are usable
func (c *Config) Validate() error {
	if c.Pacing.RestSpeed <= 0 {
		return fmt.Errorf("pacing.rest_speed must be positive, got %v", c.Pacing.RestSpeed)
	}
	if c.Pacing.RestMargin < 0 {
		return fmt.Errorf("pacing.rest_margin must not be negative, got %v", c.Pacing.RestMargin)
	}

	// Validate display units
	if c.Display.DistanceUnit != "mi" && c.Display.DistanceUnit != "km" {
		return fmt.Errorf("display.distance_unit must be \"mi\" or \"km\", got %q", c.Display.DistanceUnit)
	}
	if c.Display.SpeedDecimals < 0 || c.Display.SpeedDecimals > 3 {
		return fmt.Errorf("display.speed_decimals must be between 0 and 3, got %d", c.Display.SpeedDecimals)
	}
	if c.Display.DistanceDecimals < 0 || c.Display.DistanceDecimals > 3 {
		return fmt.Errorf("display.distance_decimals must be between 0 and 3, got %d", c.Display.DistanceDecimals)
	}

	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return errors.New("logging.max_size_mb and logging.max_backups must not be negative")
	}

	return nil
}

// LogPath resolves the log file against the config directory
func (c *Config) LogPath() (string, error) {
	if filepath.IsAbs(c.Logging.File) {
		return c.Logging.File, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Logging.File), nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pacer"), nil
}
