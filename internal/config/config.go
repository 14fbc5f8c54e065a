// Package config provides YAML-based tuning configuration for the outpost
// simulation: tick timing, the resource ledger, and embark defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-outpost/internal/world"
)

// Resource names the simulation cannot run without.
var requiredResources = []string{"energy", "circles", "squares"}

// Config contains all tuning values for one game.
type Config struct {
	Tick     TickConfig     `yaml:"tick"`
	Economy  EconomyConfig  `yaml:"economy"`
	Embark   EmbarkConfig   `yaml:"embark"`
	Viewport ViewportConfig `yaml:"viewport"`
}

// TickConfig controls the economy tick gate.
type TickConfig struct {
	Interval time.Duration `yaml:"interval"` // e.g. "1s"
}

// EconomyConfig declares the ledger and the costs/rates applied to it.
type EconomyConfig struct {
	Resources   []ResourceConfig `yaml:"resources"`
	EnergyRegen float64          `yaml:"energy_regen"` // Energy gained per tick at base
	SurveyCost  float64          `yaml:"survey_cost"`  // Energy spent per survey
}

// ResourceConfig declares one ledger entry.
type ResourceConfig struct {
	Name  string  `yaml:"name"`
	Start float64 `yaml:"start"`
	Max   float64 `yaml:"max"`
}

// EmbarkConfig holds the parameters given to newly surveyed sites.
type EmbarkConfig struct {
	Seed   int64   `yaml:"seed"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Params returns the site parameters described by e.
func (e EmbarkConfig) Params() world.EmbarkParams {
	return world.EmbarkParams{Seed: e.Seed, Width: e.Width, Height: e.Height}
}

// ViewportConfig is the initial viewport size before the first resize.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Resource returns the declaration for name, if present.
func (c Config) Resource(name string) (ResourceConfig, bool) {
	for _, r := range c.Economy.Resources {
		if r.Name == name {
			return r, true
		}
	}
	return ResourceConfig{}, false
}

// Validate checks that the configuration can drive a game.
func (c Config) Validate() error {
	var errs []error

	if c.Tick.Interval <= 0 {
		errs = append(errs, fmt.Errorf("tick.interval must be positive, got %v", c.Tick.Interval))
	}

	seen := make(map[string]bool)
	for _, r := range c.Economy.Resources {
		if r.Name == "" {
			errs = append(errs, errors.New("economy.resources: name must not be empty"))
			continue
		}
		if seen[r.Name] {
			errs = append(errs, fmt.Errorf("economy.resources: duplicate %q", r.Name))
		}
		seen[r.Name] = true
		if r.Max < 0 {
			errs = append(errs, fmt.Errorf("economy.resources: %q has negative max", r.Name))
		}
	}
	for _, name := range requiredResources {
		if !seen[name] {
			errs = append(errs, fmt.Errorf("economy.resources: missing %q", name))
		}
	}

	if c.Economy.EnergyRegen < 0 {
		errs = append(errs, errors.New("economy.energy_regen must not be negative"))
	}
	if c.Economy.SurveyCost < 0 {
		errs = append(errs, errors.New("economy.survey_cost must not be negative"))
	}

	if !c.Embark.Params().Valid() {
		errs = append(errs, fmt.Errorf("embark: dimensions must be at least 2x2 and at most %d tiles, got %gx%g",
			world.MaxTiles, c.Embark.Width, c.Embark.Height))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}
