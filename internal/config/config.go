package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/bounce/internal/dynamo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultTitle      = "Kinematic ball simulation"
	DefaultRadius     = 10.0
	DefaultVY         = 5.0
	DefaultColor      = "#0000ff"
	DefaultIntegrator = "semi_implicit"
)

type Config struct {
	Seed       int64         `yaml:"seed"`
	Integrator string        `yaml:"integrator"`
	Window     WindowConfig  `yaml:"window"`
	Physics    PhysicsConfig `yaml:"physics"`
	Bodies     []BodyConfig  `yaml:"bodies"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

type PhysicsConfig struct {
	GravityX      float64 `yaml:"gravity_x"`
	GravityY      float64 `yaml:"gravity_y"`
	MoveSpeed     float64 `yaml:"move_speed"`
	JitterDegrees float64 `yaml:"jitter_degrees"`
	Collision     string  `yaml:"collision"`
}

type BodyConfig struct {
	Radius float64 `yaml:"radius"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Color  string  `yaml:"color,omitempty"`
}

func ball(x, y float64) BodyConfig {
	return BodyConfig{Radius: DefaultRadius, X: x, Y: y, VY: DefaultVY, Color: DefaultColor}
}

// DefaultConfig is the reference scenario: four radius-10 balls falling at
// (0, 5) in an 800x600 window capped at 120 fps.
func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
			FPS:    dynamo.DefaultFrameRate,
		},
		Physics: PhysicsConfig{
			GravityY:      dynamo.DefaultGravityY,
			MoveSpeed:     dynamo.DefaultMoveSpeed,
			JitterDegrees: dynamo.DefaultJitterDegree,
			Collision:     dynamo.CollisionSnapshot.String(),
		},
		Bodies: []BodyConfig{
			ball(400, 300),
			ball(400, 500),
			ball(30, 100),
			ball(100, 0),
		},
	}
}

// Load reads a YAML file on top of DefaultConfig. A file that lists bodies
// replaces the default bodies entirely.
func Load(path string) (*Config, error) {
	return LoadOnto(DefaultConfig(), path)
}

// LoadOnto reads a YAML file on top of base, which is modified in place.
func LoadOnto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return ParseInto(base, data)
}

func Parse(data []byte) (*Config, error) {
	return ParseInto(DefaultConfig(), data)
}

// ParseInto unmarshals data over base. Fields missing from data keep the
// base values; a bodies list replaces the base bodies rather than merging.
func ParseInto(base *Config, data []byte) (*Config, error) {
	bodies := base.Bodies
	base.Bodies = nil
	if err := yaml.Unmarshal(data, base); err != nil {
		base.Bodies = bodies
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if base.Bodies == nil {
		base.Bodies = bodies
	}
	return base, nil
}

// Overrides are the command-line inputs to Resolve. Zero values mean unset.
type Overrides struct {
	Preset     string
	File       string
	Seed       int64
	Integrator string
	Collision  string
	FPS        int
}

// Resolve builds the effective configuration: defaults or the named preset,
// then the config file on top, then the non-zero overrides. The result is
// validated.
func Resolve(o Overrides) (*Config, error) {
	cfg := DefaultConfig()
	if o.Preset != "" {
		cfg = GetPreset(o.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, o.Preset, ListPresets())
		}
	}

	if o.File != "" {
		if _, err := LoadOnto(cfg, o.File); err != nil {
			return nil, err
		}
	}

	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}
	if o.Integrator != "" {
		cfg.Integrator = o.Integrator
	}
	if o.Collision != "" {
		cfg.Physics.Collision = o.Collision
	}
	if o.FPS > 0 {
		cfg.Window.FPS = o.FPS
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func (c *Config) Bounds() dynamo.Bounds {
	return dynamo.NewBounds(c.Window.Width, c.Window.Height)
}

// Params converts the physics section. It fails only on an unknown
// collision mode; range checks live in Validate.
func (c *Config) Params() (dynamo.Params, error) {
	mode, err := dynamo.ParseCollisionMode(c.Physics.Collision)
	if err != nil {
		return dynamo.Params{}, err
	}
	return dynamo.Params{
		Gravity:       dynamo.Vec2{X: c.Physics.GravityX, Y: c.Physics.GravityY},
		MoveSpeed:     c.Physics.MoveSpeed,
		JitterDegrees: c.Physics.JitterDegrees,
		Collision:     mode,
	}, nil
}

// Validate returns the first problem found as a *dynamo.ConfigError.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return &dynamo.ConfigError{
			Field:   "window",
			Value:   fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height),
			Wrapped: dynamo.ErrInvalidBounds,
		}
	}
	if c.Window.FPS < 0 {
		return &dynamo.ConfigError{Field: "window.fps", Value: strconv.Itoa(c.Window.FPS), Wrapped: dynamo.ErrInvalidParams}
	}

	p, err := c.Params()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	bounds := c.Bounds()
	for i, b := range c.Bodies {
		field := fmt.Sprintf("bodies[%d]", i)
		if b.Radius <= 0 || !finite(b.Radius) {
			return &dynamo.ConfigError{Field: field + ".radius", Value: fmt.Sprint(b.Radius), Wrapped: dynamo.ErrInvalidRadius}
		}
		if !finite(b.X) || !finite(b.Y) {
			return &dynamo.ConfigError{Field: field, Value: fmt.Sprintf("(%g, %g)", b.X, b.Y), Wrapped: dynamo.ErrBodyOutOfBounds}
		}
		if !finite(b.VX) || !finite(b.VY) {
			return &dynamo.ConfigError{Field: field + ".velocity", Value: fmt.Sprintf("(%g, %g)", b.VX, b.VY), Wrapped: dynamo.ErrInvalidParams}
		}
		d := 2 * b.Radius
		if b.X < 0 || b.Y < 0 || b.X+d > bounds.W || b.Y+d > bounds.H {
			return &dynamo.ConfigError{Field: field, Value: fmt.Sprintf("(%g, %g) r=%g", b.X, b.Y, b.Radius), Wrapped: dynamo.ErrBodyOutOfBounds}
		}
		if _, err := b.RGBA(); err != nil {
			return &dynamo.ConfigError{Field: field + ".color", Value: b.Color, Wrapped: err}
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// RGBA parses the hex color, falling back to the default blue when unset.
func (b BodyConfig) RGBA() (color.RGBA, error) {
	hex := b.Color
	if hex == "" {
		hex = DefaultColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, bl := c.RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 255}, nil
}
