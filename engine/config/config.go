// Package config loads the viewer's YAML configuration. Every field has a default, so a config
// file only needs to name what it changes.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Validation errors returned by Validate and Load.
var (
	ErrDuplicateLocation = errors.New("duplicate location label")
	ErrEmptyLocation     = errors.New("location label is empty")
	ErrInvalidSmoothing  = errors.New("smoothing factor must be in (0, 1]")
	ErrInvalidValue      = errors.New("value out of range")
)

// Config is the root of the YAML document.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Engine     EngineConfig     `yaml:"engine"`
	Logging    LoggingConfig    `yaml:"logging"`
	World      WorldConfig      `yaml:"world"`
	Navigation NavigationConfig `yaml:"navigation"`
	Marker     MarkerConfig     `yaml:"marker"`
	Start      StartConfig      `yaml:"start"`
	Locations  []LocationConfig `yaml:"locations"`
}

// WindowConfig sizes and titles the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// MinWidth through MaxHeight bound interactive resizing.
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`
}

// EngineConfig sets the fixed tick rate of the main loop.
type EngineConfig struct {
	TickRate  int  `yaml:"tick_rate"`
	Profiling bool `yaml:"profiling"`
}

// LoggingConfig selects the zap level and encoding ("json" or "console").
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// WorldConfig lists the assets imported into the collision set.
type WorldConfig struct {
	// Assets are glTF or GLB files whose meshes become collision surfaces.
	Assets []string `yaml:"assets"`
	// MeshPrefix keeps only meshes whose name starts with it. Empty keeps all.
	MeshPrefix string `yaml:"mesh_prefix"`
	// Workers is the size of the import worker pool.
	Workers int `yaml:"workers"`
}

// NavigationConfig tunes the rig controller and intent resolver.
type NavigationConfig struct {
	SeekSmoothing   float32 `yaml:"seek_smoothing"`
	FloorSmoothing  float32 `yaml:"floor_smoothing"`
	ArriveEpsilon   float32 `yaml:"arrive_epsilon"`
	WalkSpeed       float32 `yaml:"walk_speed"`
	EyeHeight       float32 `yaml:"eye_height"`
	ProbeSlack      float32 `yaml:"probe_slack"`
	TapThreshold    float32 `yaml:"tap_threshold"`
	LookSensitivity float32 `yaml:"look_sensitivity"`
	PitchEnabled    bool    `yaml:"pitch_enabled"`
	PitchLimit      float32 `yaml:"pitch_limit"`
}

// MarkerConfig tunes the destination marker pulse.
type MarkerConfig struct {
	PulseSpeed     float32 `yaml:"pulse_speed"`
	PulseAmplitude float32 `yaml:"pulse_amplitude"`
}

// StartConfig is the rig's pose before any input.
type StartConfig struct {
	Position [3]float32 `yaml:"position,flow"`
	Yaw      float32    `yaml:"yaw"`
}

// LocationConfig is one preset travel destination.
type LocationConfig struct {
	Label    string     `yaml:"label"`
	Position [3]float32 `yaml:"position,flow"`
}

// Default returns the built-in configuration.
//
// Returns:
//   - *Config: a fresh default configuration
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "oxy-nav",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 240,
			MaxWidth:  3840,
			MaxHeight: 2160,
		},
		Engine: EngineConfig{
			TickRate: 60,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		World: WorldConfig{
			Workers: 2,
		},
		Navigation: NavigationConfig{
			SeekSmoothing:   0.1,
			FloorSmoothing:  0.2,
			ArriveEpsilon:   0.05,
			WalkSpeed:       0.1,
			EyeHeight:       1.6,
			ProbeSlack:      2.0,
			TapThreshold:    10,
			LookSensitivity: 0.005,
			PitchEnabled:    true,
			PitchLimit:      math.Pi/2 - 0.1,
		},
		Marker: MarkerConfig{
			PulseSpeed:     5,
			PulseAmplitude: 0.2,
		},
		Locations: []LocationConfig{
			{Label: "Entrance", Position: [3]float32{0, 0, 0}},
			{Label: "Dining Hall", Position: [3]float32{-18.41, 4.66, 28.42}},
			{Label: "Library", Position: [3]float32{12.5, 4.66, 18.0}},
			{Label: "Courtyard", Position: [3]float32{4.2, 0, -22.75}},
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
// A list in the file (such as locations) replaces the default list entirely.
//
// Parameters:
//   - path: path to the YAML file
//
// Returns:
//   - *Config: the loaded configuration
//   - error: if the file cannot be read, parsed or validated
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - *Config: the parsed configuration
//   - error: if the document is malformed or invalid
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and location label uniqueness.
//
// Returns:
//   - error: the first problem found, wrapping one of the package sentinels
func (c *Config) Validate() error {
	n := c.Navigation
	if n.SeekSmoothing <= 0 || n.SeekSmoothing > 1 {
		return fmt.Errorf("navigation.seek_smoothing %v: %w", n.SeekSmoothing, ErrInvalidSmoothing)
	}
	if n.FloorSmoothing <= 0 || n.FloorSmoothing > 1 {
		return fmt.Errorf("navigation.floor_smoothing %v: %w", n.FloorSmoothing, ErrInvalidSmoothing)
	}
	positive := []struct {
		name  string
		value float32
	}{
		{"navigation.arrive_epsilon", n.ArriveEpsilon},
		{"navigation.walk_speed", n.WalkSpeed},
		{"navigation.probe_slack", n.ProbeSlack},
		{"navigation.tap_threshold", n.TapThreshold},
		{"navigation.look_sensitivity", n.LookSensitivity},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s %v: %w", p.name, p.value, ErrInvalidValue)
		}
	}
	if n.EyeHeight < 0 {
		return fmt.Errorf("navigation.eye_height %v: %w", n.EyeHeight, ErrInvalidValue)
	}
	if n.PitchEnabled && (n.PitchLimit <= 0 || n.PitchLimit >= math.Pi/2) {
		return fmt.Errorf("navigation.pitch_limit %v: %w", n.PitchLimit, ErrInvalidValue)
	}
	w := c.Window
	if w.MinWidth <= 0 || w.MinHeight <= 0 || w.MaxWidth < w.MinWidth || w.MaxHeight < w.MinHeight {
		return fmt.Errorf("window size limits %dx%d..%dx%d: %w", w.MinWidth, w.MinHeight, w.MaxWidth, w.MaxHeight, ErrInvalidValue)
	}
	if w.Width < w.MinWidth || w.Width > w.MaxWidth || w.Height < w.MinHeight || w.Height > w.MaxHeight {
		return fmt.Errorf("window size %dx%d outside limits: %w", w.Width, w.Height, ErrInvalidValue)
	}
	if c.Engine.TickRate <= 0 {
		return fmt.Errorf("engine.tick_rate %d: %w", c.Engine.TickRate, ErrInvalidValue)
	}
	if c.World.Workers <= 0 {
		return fmt.Errorf("world.workers %d: %w", c.World.Workers, ErrInvalidValue)
	}

	seen := make(map[string]struct{}, len(c.Locations))
	for i, loc := range c.Locations {
		if loc.Label == "" {
			return fmt.Errorf("locations[%d]: %w", i, ErrEmptyLocation)
		}
		if _, dup := seen[loc.Label]; dup {
			return fmt.Errorf("locations[%d] %q: %w", i, loc.Label, ErrDuplicateLocation)
		}
		seen[loc.Label] = struct{}{}
	}
	return nil
}
