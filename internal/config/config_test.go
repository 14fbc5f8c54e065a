package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() failed: %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(defaultOutpostYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	def := Default()

	if cfg.Tick.Interval != def.Tick.Interval {
		t.Errorf("Tick.Interval = %v, expected %v", cfg.Tick.Interval, def.Tick.Interval)
	}
	if cfg.Economy.SurveyCost != def.Economy.SurveyCost {
		t.Errorf("SurveyCost = %v, expected %v", cfg.Economy.SurveyCost, def.Economy.SurveyCost)
	}
	if cfg.Economy.EnergyRegen != def.Economy.EnergyRegen {
		t.Errorf("EnergyRegen = %v, expected %v", cfg.Economy.EnergyRegen, def.Economy.EnergyRegen)
	}
	if len(cfg.Economy.Resources) != len(def.Economy.Resources) {
		t.Fatalf("len(Resources) = %d, expected %d", len(cfg.Economy.Resources), len(def.Economy.Resources))
	}
	for i, r := range def.Economy.Resources {
		if cfg.Economy.Resources[i] != r {
			t.Errorf("Resources[%d] = %+v, expected %+v", i, cfg.Economy.Resources[i], r)
		}
	}
	if cfg.Embark != def.Embark {
		t.Errorf("Embark = %+v, expected %+v", cfg.Embark, def.Embark)
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
tick:
  interval: 250ms
embark:
  width: 12
  height: 8
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Tick.Interval != 250*time.Millisecond {
		t.Errorf("Tick.Interval = %v, expected 250ms", cfg.Tick.Interval)
	}
	if cfg.Embark.Width != 12 || cfg.Embark.Height != 8 {
		t.Errorf("Embark = %gx%g, expected 12x8", cfg.Embark.Width, cfg.Embark.Height)
	}
	// Untouched sections keep defaults
	if cfg.Economy.SurveyCost != 100 {
		t.Errorf("SurveyCost = %v, expected default 100", cfg.Economy.SurveyCost)
	}
	if _, ok := cfg.Resource("energy"); !ok {
		t.Error("energy resource should survive a partial override")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero interval", func(c *Config) { c.Tick.Interval = 0 }, "tick.interval"},
		{"missing energy", func(c *Config) { c.Economy.Resources = c.Economy.Resources[1:] }, `missing "energy"`},
		{"duplicate resource", func(c *Config) {
			c.Economy.Resources = append(c.Economy.Resources, ResourceConfig{Name: "energy", Max: 1})
		}, "duplicate"},
		{"negative max", func(c *Config) { c.Economy.Resources[0].Max = -1 }, "negative max"},
		{"negative regen", func(c *Config) { c.Economy.EnergyRegen = -1 }, "energy_regen"},
		{"negative survey cost", func(c *Config) { c.Economy.SurveyCost = -5 }, "survey_cost"},
		{"degenerate embark", func(c *Config) { c.Embark.Width = 1 }, "at least 2x2"},
		{"infinite embark", func(c *Config) { c.Embark.Width = math.Inf(1) }, "embark: dimensions"},
		{"NaN embark", func(c *Config) { c.Embark.Height = math.NaN() }, "embark: dimensions"},
		{"oversized embark", func(c *Config) { c.Embark.Width, c.Embark.Height = 1e10, 1e10 }, "embark: dimensions"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() error = %q, expected it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("economy:\n  survey_cost: 40\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Economy.SurveyCost != 40 {
		t.Errorf("SurveyCost = %v, expected 40", cfg.Economy.SurveyCost)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("tick: [not, a, map"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("tick:\n  interval: 0s\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("Load() of an invalid config should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Tick.Interval = 1500 * time.Millisecond

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "interval: 1.5s") {
		t.Errorf("Marshal() output should encode the interval as a duration string:\n%s", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if back.Tick.Interval != cfg.Tick.Interval {
		t.Errorf("round-trip interval = %v, expected %v", back.Tick.Interval, cfg.Tick.Interval)
	}
}
