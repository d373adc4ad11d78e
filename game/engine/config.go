package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/rand"
	"gopkg.in/yaml.v3"
)

// Default configuration values
const (
	DefaultRows                = 15
	DefaultCols                = 11
	DefaultTurnIntervalMs      = 1000
	DefaultMinIntervalMs       = 50
	DefaultSpeedupPerSegmentMs = 40
	DefaultMaxFood             = 5
	DefaultInitialDirection    = "up"
)

var (
	DefaultFoodLifetimeMs = Range{Min: 5000, Max: 10000}
	DefaultSpawnDelayMs   = Range{Min: 1000, Max: 4000}
)

// Range is an inclusive millisecond interval from which random delays are drawn
type Range struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Pick draws a duration uniformly from the range
func (r Range) Pick(rng *rand.Rand) time.Duration {
	ms := r.Min
	if r.Max > r.Min {
		ms += rng.Intn(r.Max - r.Min + 1)
	}
	return time.Duration(ms) * time.Millisecond
}

func (r Range) validate(field string) error {
	if r.Min <= 0 {
		return fmt.Errorf("config validation: %s.min must be positive, got %d", field, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("config validation: %s.max (%d) must not be less than min (%d)", field, r.Max, r.Min)
	}
	return nil
}

// GameConfig holds the construction-time settings of a game.
// Zero-valued fields fall back to the defaults.
type GameConfig struct {
	Name                string `json:"name" yaml:"name"`
	Description         string `json:"description,omitempty" yaml:"description,omitempty"`
	Rows                int    `json:"rows" yaml:"rows"`
	Cols                int    `json:"cols" yaml:"cols"`
	TurnIntervalMs      int    `json:"turn_interval_ms" yaml:"turn_interval_ms"`
	MinIntervalMs       int    `json:"min_interval_ms" yaml:"min_interval_ms"`
	SpeedupPerSegmentMs int    `json:"speedup_per_segment_ms" yaml:"speedup_per_segment_ms"`
	MaxFood             int    `json:"max_food" yaml:"max_food"`
	FoodLifetimeMs      Range  `json:"food_lifetime_ms" yaml:"food_lifetime_ms"`
	SpawnDelayMs        Range  `json:"spawn_delay_ms" yaml:"spawn_delay_ms"`
	InitialDirection    string `json:"initial_direction,omitempty" yaml:"initial_direction,omitempty"`

	// Seed fixes the random source; zero seeds from the clock
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultGameConfig returns the classic 15x11 configuration
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:                "classic",
		Description:         "Classic 15x11 board, one second turns",
		Rows:                DefaultRows,
		Cols:                DefaultCols,
		TurnIntervalMs:      DefaultTurnIntervalMs,
		MinIntervalMs:       DefaultMinIntervalMs,
		SpeedupPerSegmentMs: DefaultSpeedupPerSegmentMs,
		MaxFood:             DefaultMaxFood,
		FoodLifetimeMs:      DefaultFoodLifetimeMs,
		SpawnDelayMs:        DefaultSpawnDelayMs,
		InitialDirection:    DefaultInitialDirection,
	}
}

// WithDefaults returns a copy with every zero field set to its default
func (c *GameConfig) WithDefaults() *GameConfig {
	out := *c
	if out.Rows == 0 {
		out.Rows = DefaultRows
	}
	if out.Cols == 0 {
		out.Cols = DefaultCols
	}
	if out.TurnIntervalMs == 0 {
		out.TurnIntervalMs = DefaultTurnIntervalMs
	}
	if out.MinIntervalMs == 0 {
		out.MinIntervalMs = DefaultMinIntervalMs
		if out.MinIntervalMs > out.TurnIntervalMs {
			out.MinIntervalMs = out.TurnIntervalMs
		}
	}
	if out.SpeedupPerSegmentMs == 0 {
		out.SpeedupPerSegmentMs = DefaultSpeedupPerSegmentMs
	}
	if out.MaxFood == 0 {
		out.MaxFood = DefaultMaxFood
	}
	if out.FoodLifetimeMs == (Range{}) {
		out.FoodLifetimeMs = DefaultFoodLifetimeMs
	}
	if out.SpawnDelayMs == (Range{}) {
		out.SpawnDelayMs = DefaultSpawnDelayMs
	}
	if out.InitialDirection == "" {
		out.InitialDirection = DefaultInitialDirection
	}
	return &out
}

// ValidateGameConfig validates a game configuration for correctness and playability.
// Rows and cols are bounded independently; the aspect ratio is unconstrained.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := validateGameConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func validateGameConfig(config *GameConfig) error {
	if config.Rows < MinBoardSize || config.Rows > MaxBoardSize {
		return fmt.Errorf("config validation: rows must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Rows)
	}
	if config.Cols < MinBoardSize || config.Cols > MaxBoardSize {
		return fmt.Errorf("config validation: cols must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, config.Cols)
	}

	if config.TurnIntervalMs <= 0 {
		return fmt.Errorf("config validation: turn_interval_ms must be positive, got %d", config.TurnIntervalMs)
	}
	if config.MinIntervalMs <= 0 {
		return fmt.Errorf("config validation: min_interval_ms must be positive, got %d", config.MinIntervalMs)
	}
	if config.MinIntervalMs > config.TurnIntervalMs {
		return fmt.Errorf("config validation: min_interval_ms (%d) must not exceed turn_interval_ms (%d)",
			config.MinIntervalMs, config.TurnIntervalMs)
	}
	if config.SpeedupPerSegmentMs < 0 {
		return fmt.Errorf("config validation: speedup_per_segment_ms must not be negative, got %d", config.SpeedupPerSegmentMs)
	}

	cells := config.Rows * config.Cols
	if config.MaxFood < 1 || config.MaxFood > MaxFoodLimit || config.MaxFood >= cells {
		return fmt.Errorf("config validation: max_food must be between 1 and %d and below the board size (%d), got %d",
			MaxFoodLimit, cells, config.MaxFood)
	}

	if err := config.FoodLifetimeMs.validate("food_lifetime_ms"); err != nil {
		return err
	}
	if err := config.SpawnDelayMs.validate("spawn_delay_ms"); err != nil {
		return err
	}

	if config.InitialDirection != "" {
		if _, err := ParseDirection(config.InitialDirection); err != nil {
			return fmt.Errorf("config validation: initial_direction: %v", err)
		}
	}
	return nil
}

// TurnInterval is the base move interval and the food spawn period
func (c *GameConfig) TurnInterval() time.Duration {
	return time.Duration(c.TurnIntervalMs) * time.Millisecond
}

// TickInterval returns the move interval for a snake of the given length:
// max(min_interval, turn_interval - speedup*(length-1))
func (c *GameConfig) TickInterval(length int) time.Duration {
	if length < 1 {
		length = 1
	}
	ms := c.TurnIntervalMs - c.SpeedupPerSegmentMs*(length-1)
	if ms < c.MinIntervalMs {
		ms = c.MinIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// LoadGameConfig loads a game configuration from a JSON or YAML file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := DecodeGameConfig(filename, data)
	if err != nil {
		return nil, err
	}

	if config.Name == "" {
		config.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return config, nil
}

// DecodeGameConfig parses config bytes, choosing YAML or JSON by the file extension,
// then applies defaults and validates
func DecodeGameConfig(filename string, data []byte) (*GameConfig, error) {
	var config GameConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}

	withDefaults := config.WithDefaults()
	if err := ValidateGameConfig(withDefaults); err != nil {
		return nil, err
	}
	return withDefaults, nil
}

// ConfigExtensions lists the file extensions tried when resolving a config by name
var ConfigExtensions = []string{".json", ".yaml", ".yml"}

// ResolveConfigPath finds the file for a config name inside dir.
// The name may carry its extension; otherwise each known extension is tried.
func ResolveConfigPath(dir, configName string) (string, error) {
	if ext := strings.ToLower(filepath.Ext(configName)); ext != "" {
		for _, known := range ConfigExtensions {
			if ext == known {
				path := filepath.Join(dir, configName)
				if _, err := os.Stat(path); err != nil {
					return "", fmt.Errorf("config file '%s' not found", configName)
				}
				return path, nil
			}
		}
	}

	for _, ext := range ConfigExtensions {
		path := filepath.Join(dir, configName+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("config file '%s' not found", configName)
}

// LoadConfigByName loads a config from the configs directory by name, with or without extension
func LoadConfigByName(configName string) (*GameConfig, error) {
	path, err := ResolveConfigPath("configs", configName)
	if err != nil {
		return nil, err
	}

	config, err := LoadGameConfig(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}
	return config, nil
}
