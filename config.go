package flurry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SimulationConfig tunes one snowfall instance. It is copied at Start and
// never changes while the simulation runs; restart to apply a new config.
type SimulationConfig struct {
	// Count is the pool size. Zero renders nothing.
	Count int `yaml:"count"`
	// Radius is the range of core radii in CSS pixels.
	Radius Range `yaml:"radius"`
	// VerticalVelocity is the range of fall speeds in pixels per second.
	VerticalVelocity Range `yaml:"vertical_velocity"`
	// HorizontalVelocity is the range of base drift speeds in pixels per second.
	HorizontalVelocity Range `yaml:"horizontal_velocity"`
	// SwingAmplitude is the range of side-to-side sway magnitudes.
	SwingAmplitude Range `yaml:"swing_amplitude"`
	// Life is the range of lifetimes in seconds.
	Life Range `yaml:"life"`
	// SwingFrequency is the sway angular frequency in radians per second.
	SwingFrequency float64 `yaml:"swing_frequency"`
	// WindMultiplier scales the shared wind drift. Zero disables wind.
	WindMultiplier float64 `yaml:"wind_multiplier"`
	// Alpha is the core opacity in [0, 1].
	Alpha float64 `yaml:"alpha"`
	// HaloScale is the halo radius as a multiple of the core radius.
	HaloScale float64 `yaml:"halo_scale"`
	// HaloAlpha is the fixed halo opacity.
	HaloAlpha float64 `yaml:"halo_alpha"`
	// Tint colors both core and halo. The zero value means white.
	Tint Color `yaml:"tint"`
}

const (
	defaultSwingFrequency = 2.4
	defaultHaloScale      = 1.5
	defaultHaloAlpha      = 0.15
)

// DefaultConfig returns the stock snowfall used when a call site passes no
// overrides.
func DefaultConfig() SimulationConfig {
	return SimulationConfig{
		Count:              70,
		Radius:             Range{0.8, 3.6},
		VerticalVelocity:   Range{20, 55},
		HorizontalVelocity: Range{-12, 12},
		SwingAmplitude:     Range{18, 65},
		Life:               Range{3.5, 9.5},
		SwingFrequency:     defaultSwingFrequency,
		WindMultiplier:     1,
		Alpha:              0.92,
		HaloScale:          defaultHaloScale,
		HaloAlpha:          defaultHaloAlpha,
		Tint:               ColorWhite,
	}
}

// PresetHeroA is the lighter snowfall over the full-screen hero photograph.
func PresetHeroA() SimulationConfig {
	cfg := DefaultConfig()
	cfg.Count = 60
	cfg.VerticalVelocity = Range{18, 50}
	cfg.HorizontalVelocity = Range{-10, 10}
	cfg.SwingAmplitude = Range{14, 55}
	cfg.Alpha = 0.75
	cfg.WindMultiplier = 0.9
	return cfg
}

// PresetHeroB is the denser snowfall over the framed hero card.
func PresetHeroB() SimulationConfig {
	return DefaultConfig()
}

// Normalize returns a copy of c with caller mistakes clamped: inverted ranges
// collapse to their minimum, a negative count becomes zero, opacities are
// clamped into [0, 1] and an unset halo or tint takes its default.
func (c SimulationConfig) Normalize() SimulationConfig {
	if c.Count < 0 {
		c.Count = 0
	}
	c.Radius = c.Radius.Normalized()
	c.VerticalVelocity = c.VerticalVelocity.Normalized()
	c.HorizontalVelocity = c.HorizontalVelocity.Normalized()
	c.SwingAmplitude = c.SwingAmplitude.Normalized()
	c.Life = c.Life.Normalized()
	if c.Life.Min <= 0 {
		c.Life.Min = minLife
		if c.Life.Max < c.Life.Min {
			c.Life.Max = c.Life.Min
		}
	}
	c.Alpha = clamp01(c.Alpha)
	if c.HaloScale <= 0 {
		c.HaloScale = defaultHaloScale
	}
	c.HaloAlpha = clamp01(c.HaloAlpha)
	if c.Tint == (Color{}) {
		c.Tint = ColorWhite
	}
	return c
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the file
// keep their default values. An empty path returns the defaults.
func LoadConfig(path string) (SimulationConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over DefaultConfig and normalizes the result.
func ParseConfig(data []byte) (SimulationConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg.Normalize(), nil
}

// WriteYAML writes the configuration to a YAML file.
func (c SimulationConfig) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
