package flurry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Variant selects one of the hero layouts and, with it, a snowfall preset.
type Variant string

const (
	VariantA Variant = "A" // full-screen photo with a bottom panel
	VariantB Variant = "B" // framed photo card
)

// DefaultVariant is used when no preference has been stored.
const DefaultVariant = VariantB

// ParseVariant returns the variant named by s, or DefaultVariant when s is
// not a known variant.
func ParseVariant(s string) Variant {
	switch Variant(s) {
	case VariantA, VariantB:
		return Variant(s)
	}
	return DefaultVariant
}

// Toggle returns the other variant.
func (v Variant) Toggle() Variant {
	if v == VariantA {
		return VariantB
	}
	return VariantA
}

// Config returns the snowfall preset for the variant.
func (v Variant) Config() SimulationConfig {
	if v == VariantA {
		return PresetHeroA()
	}
	return PresetHeroB()
}

type preferences struct {
	HeroVariant Variant `yaml:"hero_variant"`
}

// LoadVariant reads the stored variant from a YAML preferences file. A
// missing file yields DefaultVariant without error.
func LoadVariant(path string) (Variant, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultVariant, nil
	}
	if err != nil {
		return DefaultVariant, fmt.Errorf("read preferences: %w", err)
	}
	var p preferences
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultVariant, fmt.Errorf("parse preferences: %w", err)
	}
	return ParseVariant(string(p.HeroVariant)), nil
}

// SaveVariant stores v in a YAML preferences file.
func SaveVariant(path string, v Variant) error {
	data, err := yaml.Marshal(preferences{HeroVariant: v})
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
