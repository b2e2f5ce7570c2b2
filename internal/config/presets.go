package config

import (
	"sort"

	"github.com/san-kum/bounce/internal/dynamo"
)

// Presets are named scenarios. Each entry builds a fresh Config so callers
// can modify the result.
var Presets = map[string]func() *Config{
	"reference": DefaultConfig,
	"crowd": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = nil
		palette := []string{"#0000ff", "#ff4136", "#2ecc40", "#ffdc00"}
		for i := 0; i < 12; i++ {
			b := ball(60+float64(i%4)*180, 40+float64(i/4)*150)
			b.VX = float64(i%3) - 1
			b.Color = palette[i%len(palette)]
			cfg.Bodies = append(cfg.Bodies, b)
		}
		return cfg
	},
	"zero_g": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.GravityY = 0
		cfg.Bodies[0].VX, cfg.Bodies[0].VY = 4, -3
		cfg.Bodies[1].VX, cfg.Bodies[1].VY = -5, 2
		cfg.Bodies[2].VX, cfg.Bodies[2].VY = 3, 3
		cfg.Bodies[3].VX, cfg.Bodies[3].VY = -2, 5
		return cfg
	},
	"pileup": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.Collision = dynamo.CollisionSequential.String()
		cfg.Bodies = []BodyConfig{
			ball(390, 300),
			ball(400, 305),
			ball(410, 300),
			ball(400, 295),
		}
		return cfg
	},
	"lopsided": func() *Config {
		cfg := DefaultConfig()
		cfg.Bodies = []BodyConfig{
			{Radius: 40, X: 100, Y: 100, VX: 2, VY: 0, Color: "#ff851b"},
			{Radius: 5, X: 300, Y: 50, VX: -1, VY: 5, Color: "#7fdbff"},
			{Radius: 20, X: 600, Y: 200, VX: -3, VY: 1, Color: "#b10dc9"},
			{Radius: 10, X: 400, Y: 400, VX: 0, VY: -6, Color: DefaultColor},
		}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
