package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/outpost.yaml
var defaultOutpostYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Tick: TickConfig{
			Interval: time.Second,
		},
		Economy: EconomyConfig{
			Resources: []ResourceConfig{
				{Name: "energy", Start: 100, Max: 100},
				{Name: "circles", Start: 0, Max: 1e6},
				{Name: "squares", Start: 0, Max: 1e12},
			},
			EnergyRegen: 1.0,
			SurveyCost:  100,
		},
		Embark: EmbarkConfig{
			Seed:   0,
			Width:  100,
			Height: 100,
		},
		Viewport: ViewportConfig{
			Width:  1920,
			Height: 1080,
		},
	}
}
