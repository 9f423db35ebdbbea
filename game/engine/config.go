package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidConfig  = errors.New("config validation")
	ErrConfigNotFound = errors.New("config not found")
	ErrUnknownSide    = errors.New("unknown side")
)

// GameConfig holds every tunable of a session. Nothing in the engine reads
// package-level mutable state.
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	GridWidth     int `json:"grid_width"`
	GridHeight    int `json:"grid_height"`
	InitialLength int `json:"initial_length"`
	ObstacleCount int `json:"obstacle_count"`

	TickIntervalMs    int64 `json:"tick_interval_ms"`
	ItemLifetimeMs    int64 `json:"item_lifetime_ms"`
	SpecialLifetimeMs int64 `json:"special_lifetime_ms"`
	SpecialCooldownMs int64 `json:"special_cooldown_ms"`

	RegularChance float64 `json:"regular_chance"`
	BonusShare    float64 `json:"bonus_share"`
	EffectChance  float64 `json:"effect_chance"`

	BonusMultiplier   int   `json:"bonus_multiplier"`
	PenaltyMultiplier int   `json:"penalty_multiplier"`
	BoostSteps        int   `json:"boost_steps"`
	BoostDurationMs   int64 `json:"boost_duration_ms"`
	SlowDurationMs    int64 `json:"slow_duration_ms"`
	SpecialMargin     int   `json:"special_margin"`

	// Seed fixes the random source when non-zero
	Seed int64 `json:"seed,omitempty"`
}

// DefaultConfig returns the classic rules
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:              "classic",
		Description:       "Classic snake with golden and poison items",
		GridWidth:         DefaultGridWidth,
		GridHeight:        DefaultGridHeight,
		InitialLength:     DefaultInitialLength,
		ObstacleCount:     DefaultObstacleCount,
		TickIntervalMs:    DefaultTickIntervalMs,
		ItemLifetimeMs:    DefaultItemLifetimeMs,
		SpecialLifetimeMs: DefaultSpecialLifetimeMs,
		SpecialCooldownMs: DefaultSpecialCooldownMs,
		RegularChance:     DefaultRegularChance,
		BonusShare:        DefaultBonusShare,
		EffectChance:      DefaultEffectChance,
		BonusMultiplier:   DefaultBonusMultiplier,
		PenaltyMultiplier: DefaultPenaltyMultiplier,
		BoostSteps:        DefaultBoostSteps,
		BoostDurationMs:   DefaultBoostDurationMs,
		SlowDurationMs:    DefaultSlowDurationMs,
		SpecialMargin:     DefaultSpecialMargin,
	}
}

// Grid returns the configured playing area
func (c *GameConfig) Grid() Grid {
	return Grid{Width: c.GridWidth, Height: c.GridHeight}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func validProbability(p float64) bool {
	return p >= 0 && p <= 1
}

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return invalid("config is nil")
	}
	if config.Name == "" {
		return invalid("name is required")
	}

	// Validate grid size
	if config.GridWidth < MinGridSize || config.GridWidth > MaxGridSize {
		return invalid("grid_width must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridWidth)
	}
	if config.GridHeight < MinGridSize || config.GridHeight > MaxGridSize {
		return invalid("grid_height must be between %d and %d, got %d", MinGridSize, MaxGridSize, config.GridHeight)
	}

	// The initial body is laid out leftwards from the centre and must fit
	if config.InitialLength < 1 {
		return invalid("initial_length must be at least 1, got %d", config.InitialLength)
	}
	if config.InitialLength > config.GridWidth/2+1 {
		return invalid("initial_length %d does not fit a grid %d cells wide", config.InitialLength, config.GridWidth)
	}
	if config.ObstacleCount < 0 || config.ObstacleCount > config.GridWidth*config.GridHeight/2 {
		return invalid("obstacle_count must be between 0 and half the grid, got %d", config.ObstacleCount)
	}

	// Timers
	if config.TickIntervalMs <= 0 {
		return invalid("tick_interval_ms must be positive, got %d", config.TickIntervalMs)
	}
	if config.ItemLifetimeMs <= 0 || config.SpecialLifetimeMs <= 0 {
		return invalid("item lifetimes must be positive")
	}
	if config.SpecialCooldownMs < 0 || config.BoostDurationMs < 0 || config.SlowDurationMs < 0 {
		return invalid("durations must not be negative")
	}

	// Probabilities
	if !validProbability(config.RegularChance) || !validProbability(config.BonusShare) || !validProbability(config.EffectChance) {
		return invalid("regular_chance, bonus_share and effect_chance must be within [0,1]")
	}

	if config.BonusMultiplier < 1 || config.PenaltyMultiplier < 1 {
		return invalid("multipliers must be at least 1")
	}
	if config.BoostSteps < 1 {
		return invalid("boost_steps must be at least 1, got %d", config.BoostSteps)
	}
	if config.SpecialMargin < 0 {
		return invalid("special_margin must not be negative, got %d", config.SpecialMargin)
	}
	return nil
}

// LoadGameConfig loads a game configuration from a JSON file. Fields missing
// from the file keep their DefaultConfig values.
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return ParseGameConfig(data)
}

// ParseGameConfig decodes and validates JSON config data
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfigByName loads a game configuration by name from the configs directory
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	dir := "configs"
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		dir = configDir
	}
	configPath := filepath.Join(dir, configName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: '%s'", ErrConfigNotFound, configName)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configName, err)
	}

	config, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", configName, err)
	}
	return config, nil
}
