package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(0.1), cfg.Navigation.SeekSmoothing)
	assert.Equal(t, "Dining Hall", cfg.Locations[1].Label)
}

func TestParseOverridesDefaults(t *testing.T) {
	doc := `
window:
  title: campus
navigation:
  seek_smoothing: 0.05
  pitch_enabled: false
start:
  position: [1, 0, -2]
  yaw: 1.5
locations:
  - label: Gate
    position: [3, 0, 4]
`
	cfg, err := Parse([]byte(doc))
	require.NoError(t, err)

	want := Default()
	want.Window.Title = "campus"
	want.Navigation.SeekSmoothing = 0.05
	want.Navigation.PitchEnabled = false
	want.Start = StartConfig{Position: [3]float32{1, 0, -2}, Yaw: 1.5}
	want.Locations = []LocationConfig{{Label: "Gate", Position: [3]float32{3, 0, 4}}}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero seek smoothing", func(c *Config) { c.Navigation.SeekSmoothing = 0 }, ErrInvalidSmoothing},
		{"floor smoothing above one", func(c *Config) { c.Navigation.FloorSmoothing = 1.5 }, ErrInvalidSmoothing},
		{"negative walk speed", func(c *Config) { c.Navigation.WalkSpeed = -1 }, ErrInvalidValue},
		{"zero tap threshold", func(c *Config) { c.Navigation.TapThreshold = 0 }, ErrInvalidValue},
		{"pitch limit past vertical", func(c *Config) { c.Navigation.PitchLimit = 2 }, ErrInvalidValue},
		{"max below min width", func(c *Config) { c.Window.MaxWidth = 100 }, ErrInvalidValue},
		{"zero min height", func(c *Config) { c.Window.MinHeight = 0 }, ErrInvalidValue},
		{"width above limit", func(c *Config) { c.Window.Width = 5000 }, ErrInvalidValue},
		{"zero tick rate", func(c *Config) { c.Engine.TickRate = 0 }, ErrInvalidValue},
		{"no workers", func(c *Config) { c.World.Workers = 0 }, ErrInvalidValue},
		{"empty label", func(c *Config) { c.Locations[0].Label = "" }, ErrEmptyLocation},
		{"duplicate label", func(c *Config) {
			c.Locations = append(c.Locations, LocationConfig{Label: "Dining Hall"})
		}, ErrDuplicateLocation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}
}

func TestPitchLimitIgnoredWhenDisabled(t *testing.T) {
	cfg := Default()
	cfg.Navigation.PitchEnabled = false
	cfg.Navigation.PitchLimit = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine:\n  tick_rate: 90\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.Engine.TickRate)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("navigation: [oops"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
