// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/grit/components"
	"github.com/pthm-cable/grit/material"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Brush     BrushConfig     `yaml:"brush"`
	Scenario  ScenarioConfig  `yaml:"scenario"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds grid dimensions.
// A zero width or height is derived from the screen size and cell_pixels.
type WorldConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	ChunkSize  int `yaml:"chunk_size"`
	CellPixels int `yaml:"cell_pixels"` // Screen pixels per cell at zoom 1
}

// BrushConfig holds the initial placement tool settings.
type BrushConfig struct {
	Radius   int           `yaml:"radius"`
	Material material.Type `yaml:"material"`
	Replace  bool          `yaml:"replace"`
}

// ScenarioConfig describes the initial world contents.
type ScenarioConfig struct {
	Name    string         `yaml:"name"` // empty, basin or dunes
	Sources []SourceConfig `yaml:"sources"`
	Sinks   []CellConfig   `yaml:"sinks"`
	Portals []PortalConfig `yaml:"portals"`
}

// CellConfig is a grid coordinate.
type CellConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SourceConfig places an emitter.
type SourceConfig struct {
	X        int           `yaml:"x"`
	Y        int           `yaml:"y"`
	Material material.Type `yaml:"material"`
	Replaces bool          `yaml:"replaces"`
}

// PortalConfig places a linked portal pair.
type PortalConfig struct {
	A       CellConfig           `yaml:"a"`
	B       CellConfig           `yaml:"b"`
	FacingA components.Direction `yaml:"facing_a"` // Motion from A in this direction warps to B
	FacingB components.Direction `yaml:"facing_b"`
	Color   [3]uint8             `yaml:"color,flow"`
}

// TerrainConfig holds noise parameters for the dunes scenario.
type TerrainConfig struct {
	Scale       float64 `yaml:"scale"`        // Base noise frequency per cell
	Octaves     int     `yaml:"octaves"`      // FBM octaves
	Gain        float64 `yaml:"gain"`         // Amplitude multiplier per octave
	BaseHeight  float64 `yaml:"base_height"`  // Mean surface height as a fraction of world height
	Amplitude   float64 `yaml:"amplitude"`    // Surface variation as a fraction of world height
	GravelDepth int     `yaml:"gravel_depth"` // Cells of sand above the gravel layer
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW  int // Effective world width in cells
	WorldH  int // Effective world height in cells
	ChunksW int
	ChunksH int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.World.CellPixels <= 0 {
		c.World.CellPixels = 1
	}
	c.Derived.WorldW = c.World.Width
	if c.Derived.WorldW == 0 {
		c.Derived.WorldW = fitChunks(c.Screen.Width/c.World.CellPixels, c.World.ChunkSize)
	}
	c.Derived.WorldH = c.World.Height
	if c.Derived.WorldH == 0 {
		c.Derived.WorldH = fitChunks(c.Screen.Height/c.World.CellPixels, c.World.ChunkSize)
	}
	if c.World.ChunkSize > 0 {
		c.Derived.ChunksW = c.Derived.WorldW / c.World.ChunkSize
		c.Derived.ChunksH = c.Derived.WorldH / c.World.ChunkSize
	}
}

// Resize recomputes the derived world size for a new screen size. Explicit
// world dimensions are kept.
func (c *Config) Resize(screenW, screenH int) {
	c.Screen.Width = screenW
	c.Screen.Height = screenH
	c.computeDerived()
}

// Validate checks the configuration for values the world cannot be built from.
func (c *Config) Validate() error {
	cs := c.World.ChunkSize
	if cs <= 0 {
		return fmt.Errorf("world.chunk_size must be positive, got %d", cs)
	}
	w, h := c.Derived.WorldW, c.Derived.WorldH
	if w < cs || h < cs {
		return fmt.Errorf("world %dx%d is smaller than one chunk (%d)", w, h, cs)
	}
	if w%cs != 0 || h%cs != 0 {
		return fmt.Errorf("world %dx%d is not a multiple of chunk_size %d", w, h, cs)
	}
	switch c.Scenario.Name {
	case "", "empty", "basin", "dunes":
	default:
		return fmt.Errorf("unknown scenario %q", c.Scenario.Name)
	}
	if c.Brush.Material == material.Border {
		return fmt.Errorf("brush.material cannot be border")
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry.stats_window must be positive, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// fitChunks rounds n down to a multiple of chunk, with a floor of one chunk.
func fitChunks(n, chunk int) int {
	if chunk <= 0 {
		return n
	}
	n -= n % chunk
	if n < chunk {
		n = chunk
	}
	return n
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
