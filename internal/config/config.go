package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zeusync/torophy/internal/core/observability/log"
	"github.com/zeusync/torophy/pkg/vector"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full process configuration, usually read from YAML.
type Config struct {
	Space  SpaceConfig  `json:"space" yaml:"space"`
	Runner RunnerConfig `json:"runner" yaml:"runner"`
	Scene  SceneConfig  `json:"scene" yaml:"scene"`
	Server ServerConfig `json:"server" yaml:"server"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// SpaceConfig describes the toroidal world
type SpaceConfig struct {
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Width    uint32  `json:"width" yaml:"width"`
	Height   uint32  `json:"height" yaml:"height"`
	CellSize float64 `json:"cell_size" yaml:"cell_size"`
}

// RunnerConfig controls the fixed-step loop and the continuous forces
type RunnerConfig struct {
	TickRate     time.Duration `json:"tick_rate" yaml:"tick_rate"`
	PublishEvery int           `json:"publish_every" yaml:"publish_every"`
	Gravity      vector.Vec2   `json:"gravity,omitempty" yaml:"gravity,omitempty"`
	Force        vector.Vec2   `json:"force,omitempty" yaml:"force,omitempty"`
}

// SceneConfig lists the bodies to create at startup
type SceneConfig struct {
	Seed       uint64            `json:"seed" yaml:"seed"`
	Bodies     []BodyConfig      `json:"bodies,omitempty" yaml:"bodies,omitempty"`
	Generators []GeneratorConfig `json:"generators,omitempty" yaml:"generators,omitempty"`
}

// BodyConfig describes a single body. A zero radius means no collision shape;
// a zero mass means the default mass of 1.
type BodyConfig struct {
	Position      vector.Vec2 `json:"position" yaml:"position"`
	Velocity      vector.Vec2 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Radius        float64     `json:"radius,omitempty" yaml:"radius,omitempty"`
	Mass          float64     `json:"mass,omitempty" yaml:"mass,omitempty"`
	Static        bool        `json:"static,omitempty" yaml:"static,omitempty"`
	Restitution   *float64    `json:"restitution,omitempty" yaml:"restitution,omitempty"`
	DragLinear    float64     `json:"drag_linear,omitempty" yaml:"drag_linear,omitempty"`
	DragQuadratic float64     `json:"drag_quadratic,omitempty" yaml:"drag_quadratic,omitempty"`
}

// Placement strategies for generated bodies
const (
	PlacementCenter  = "center"
	PlacementUniform = "uniform"
)

// GeneratorConfig spawns Count bodies with randomized mass, speed and heading.
// With a positive RadiusScale each body gets a circle of radius
// sqrt(mass/π)*RadiusScale, so area grows with mass.
type GeneratorConfig struct {
	Count         int      `json:"count" yaml:"count"`
	Placement     string   `json:"placement,omitempty" yaml:"placement,omitempty"`
	MassMin       float64  `json:"mass_min" yaml:"mass_min"`
	MassMax       float64  `json:"mass_max" yaml:"mass_max"`
	SpeedMin      float64  `json:"speed_min" yaml:"speed_min"`
	SpeedMax      float64  `json:"speed_max" yaml:"speed_max"`
	RadiusScale   float64  `json:"radius_scale,omitempty" yaml:"radius_scale,omitempty"`
	Restitution   *float64 `json:"restitution,omitempty" yaml:"restitution,omitempty"`
	DragLinear    float64  `json:"drag_linear,omitempty" yaml:"drag_linear,omitempty"`
	DragQuadratic float64  `json:"drag_quadratic,omitempty" yaml:"drag_quadratic,omitempty"`
}

// ServerConfig configures the snapshot stream
type ServerConfig struct {
	Enabled      bool          `json:"enabled" yaml:"enabled"`
	ListenAddr   string        `json:"listen_addr" yaml:"listen_addr"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	SendBuffer   int           `json:"send_buffer" yaml:"send_buffer"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Development bool   `json:"development,omitempty" yaml:"development,omitempty"`
}

// Default returns a configuration with an empty scene.
func Default() *Config {
	return &Config{
		Space: SpaceConfig{
			Name:     "default",
			Width:    800,
			Height:   600,
			CellSize: 30,
		},
		Runner: RunnerConfig{
			TickRate:     16600 * time.Microsecond,
			PublishEvery: 1,
		},
		Server: ServerConfig{
			Enabled:      true,
			ListenAddr:   "127.0.0.1:8080",
			WriteTimeout: 5 * time.Second,
			SendBuffer:   16,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Demo is Default with three large circles crossing the seams.
func Demo() *Config {
	c := Default()
	c.Scene.Bodies = []BodyConfig{
		{Position: vector.XY(200, 200), Velocity: vector.XY(100, 80), Radius: 60, Mass: 3},
		{Position: vector.XY(400, 200), Velocity: vector.XY(-60, -200), Radius: 40, Mass: 1},
		{Position: vector.XY(800, 0), Velocity: vector.XY(-100, 160), Radius: 100, Mass: 3},
	}
	return c
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

// LoadYAML decodes YAML on top of Default. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate validates the whole configuration
func (c *Config) Validate() error {
	if err := c.Space.Validate(); err != nil {
		return fmt.Errorf("%w: space: %w", ErrInvalidConfig, err)
	}
	if err := c.Runner.Validate(); err != nil {
		return fmt.Errorf("%w: runner: %w", ErrInvalidConfig, err)
	}
	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("%w: scene: %w", ErrInvalidConfig, err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("%w: server: %w", ErrInvalidConfig, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (sc *SpaceConfig) Validate() error {
	if sc.Width == 0 || sc.Height == 0 {
		return fmt.Errorf("width and height are required, got %dx%d", sc.Width, sc.Height)
	}
	if !(sc.CellSize > 0) {
		return fmt.Errorf("cell_size must be positive, got %v", sc.CellSize)
	}
	return nil
}

func (rc *RunnerConfig) Validate() error {
	if rc.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %s", rc.TickRate)
	}
	if rc.PublishEvery < 0 {
		return fmt.Errorf("publish_every must not be negative, got %d", rc.PublishEvery)
	}
	return nil
}

func (sc *SceneConfig) Validate() error {
	for i, b := range sc.Bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d validation failed: %w", i, err)
		}
	}
	for i, g := range sc.Generators {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("generator %d validation failed: %w", i, err)
		}
	}
	return nil
}

func (bc *BodyConfig) Validate() error {
	if bc.Radius < 0 {
		return fmt.Errorf("radius must not be negative, got %v", bc.Radius)
	}
	if bc.Mass < 0 {
		return fmt.Errorf("mass must not be negative, got %v", bc.Mass)
	}
	return nil
}

func (gc *GeneratorConfig) Validate() error {
	if gc.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", gc.Count)
	}
	switch gc.Placement {
	case "", PlacementCenter, PlacementUniform:
	default:
		return fmt.Errorf("unknown placement %q", gc.Placement)
	}
	if !(gc.MassMin > 0) || gc.MassMax < gc.MassMin {
		return fmt.Errorf("mass range [%v, %v] is invalid", gc.MassMin, gc.MassMax)
	}
	if gc.SpeedMin < 0 || gc.SpeedMax < gc.SpeedMin {
		return fmt.Errorf("speed range [%v, %v] is invalid", gc.SpeedMin, gc.SpeedMax)
	}
	if gc.RadiusScale < 0 {
		return fmt.Errorf("radius_scale must not be negative, got %v", gc.RadiusScale)
	}
	return nil
}

func (sc *ServerConfig) Validate() error {
	if !sc.Enabled {
		return nil
	}
	if sc.ListenAddr == "" {
		return errors.New("listen_addr is required when the server is enabled")
	}
	if sc.SendBuffer <= 0 {
		return fmt.Errorf("send_buffer must be positive, got %d", sc.SendBuffer)
	}
	return nil
}
