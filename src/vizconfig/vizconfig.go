// Package vizconfig loads the visualization tunables from an optional
// TOML file. Every field has a default so the viewer runs with no
// config at all; a file only overrides what it sets.
package vizconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Marksio90/Narrative-OS-sub001/src/forcesim"
	"github.com/Marksio90/Narrative-OS-sub001/src/viewport"
)

// Config is the tunable surface of the canvas engine.
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Physics  PhysicsConfig  `toml:"physics"`
	Timeline TimelineConfig `toml:"timeline"`
}

// ViewportConfig bounds zoom for both views.
type ViewportConfig struct {
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"`
}

// PhysicsConfig mirrors forcesim.Params plus the tick period.
type PhysicsConfig struct {
	Repulsion  float64 `toml:"repulsion"`
	SpringK    float64 `toml:"spring_k"`
	RestLength float64 `toml:"rest_length"`
	CenterPull float64 `toml:"center_pull"`
	Damping    float64 `toml:"damping"`
	TickMillis int     `toml:"tick_millis"`
}

// TimelineConfig controls the chapter axis framing.
type TimelineConfig struct {
	LeftPad float64 `toml:"left_pad"`
}

// Default returns the built-in tunables.
func Default() Config {
	return Config{
		Viewport: ViewportConfig{
			MinZoom:  viewport.DefaultMinZoom,
			MaxZoom:  viewport.DefaultMaxZoom,
			ZoomStep: viewport.ZoomStep,
		},
		Physics: PhysicsConfig{
			Repulsion:  forcesim.DefaultRepulsion,
			SpringK:    forcesim.DefaultSpringK,
			RestLength: forcesim.DefaultRestLength,
			CenterPull: forcesim.DefaultCenterPull,
			Damping:    forcesim.DefaultDamping,
			TickMillis: int(forcesim.DefaultTickInterval.Milliseconds()),
		},
		Timeline: TimelineConfig{LeftPad: 60},
	}
}

// Load reads a TOML file over the defaults. An empty path means no
// config and returns the defaults; a named file that cannot be read or
// parsed is an error so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.sanitized(), nil
}

// sanitized clamps override values back into usable ranges so a bad
// config degrades instead of breaking the transform invariants.
func (c Config) sanitized() Config {
	d := Default()
	if c.Viewport.MinZoom <= 0 {
		c.Viewport.MinZoom = d.Viewport.MinZoom
	}
	if c.Viewport.MaxZoom <= c.Viewport.MinZoom {
		c.Viewport.MaxZoom = d.Viewport.MaxZoom
	}
	if c.Viewport.ZoomStep <= 1 {
		c.Viewport.ZoomStep = d.Viewport.ZoomStep
	}
	if c.Physics.Damping <= 0 || c.Physics.Damping >= 1 {
		c.Physics.Damping = d.Physics.Damping
	}
	if c.Physics.TickMillis <= 0 {
		c.Physics.TickMillis = d.Physics.TickMillis
	}
	if c.Timeline.LeftPad < 0 {
		c.Timeline.LeftPad = d.Timeline.LeftPad
	}
	return c
}

// Params converts the physics section to simulation parameters.
func (p PhysicsConfig) Params() forcesim.Params {
	return forcesim.Params{
		Repulsion:  p.Repulsion,
		SpringK:    p.SpringK,
		RestLength: p.RestLength,
		CenterPull: p.CenterPull,
		Damping:    p.Damping,
	}
}
