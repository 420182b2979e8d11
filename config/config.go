// Package config loads the generator settings: built-in defaults, then an
// optional YAML file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"bsp-dungeon/generation"
	"bsp-dungeon/geometry"
)

// DungeonConfig sizes the dungeon and its cells
type DungeonConfig struct {
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	MinCellWidth    int    `yaml:"min_cell_width"`
	MinCellHeight   int    `yaml:"min_cell_height"`
	Offset          int    `yaml:"offset"`
	CorridorWidth   int    `yaml:"corridor_width"`
	Propagation     string `yaml:"propagation"`
	DegenerateRooms string `yaml:"degenerate_rooms"`
}

// PopulationConfig tunes encounter scaling
type PopulationConfig struct {
	NearDistance float64 `yaml:"near_distance"`
	FarDistance  float64 `yaml:"far_distance"`
}

// LogConfig selects the logger level and encoding
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig configures the preview server
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config models the YAML settings file
type Config struct {
	// Seed is nil when the file sets none; a fresh seed is drawn at startup
	Seed       *int64           `yaml:"seed,omitempty"`
	Dungeon    DungeonConfig    `yaml:"dungeon"`
	Population PopulationConfig `yaml:"population"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
}

// Default returns the reference dungeon settings
func Default() *Config {
	gen := generation.DefaultConfig()
	pop := generation.DefaultPopulationOptions()
	return &Config{
		Dungeon: DungeonConfig{
			Width:           100,
			Height:          100,
			MinCellWidth:    gen.MinCellWidth,
			MinCellHeight:   gen.MinCellHeight,
			Offset:          gen.Offset,
			CorridorWidth:   gen.CorridorWidth,
			Propagation:     gen.Propagation.String(),
			DegenerateRooms: gen.DegenerateRooms.String(),
		},
		Population: PopulationConfig{
			NearDistance: pop.NearDistance,
			FarDistance:  pop.FarDistance,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv applies BSP_SEED, LOG_LEVEL and LOG_FORMAT
func (c *Config) LoadFromEnv() error {
	if seed := getEnv("BSP_SEED", ""); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("config: BSP_SEED %q: %w", seed, err)
		}
		c.Seed = &v
	}
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	return nil
}

func (c *Config) normalize() {
	c.Dungeon.Propagation = strings.ToLower(strings.TrimSpace(c.Dungeon.Propagation))
	c.Dungeon.DegenerateRooms = strings.ToLower(strings.TrimSpace(c.Dungeon.DegenerateRooms))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks the settings that can be judged without generating.
// Size rules are left to generation.Config.Validate.
func (c *Config) Validate() error {
	if c.Dungeon.Width <= 0 || c.Dungeon.Height <= 0 {
		return fmt.Errorf("dungeon size must be positive, got %dx%d", c.Dungeon.Width, c.Dungeon.Height)
	}
	if _, err := generation.ParsePropagationStrategy(c.Dungeon.Propagation); err != nil {
		return err
	}
	if _, err := generation.ParseDegeneratePolicy(c.Dungeon.DegenerateRooms); err != nil {
		return err
	}
	if c.Population.NearDistance < 0 || c.Population.FarDistance < c.Population.NearDistance {
		return fmt.Errorf("population distances must satisfy 0 <= near <= far, got %v/%v",
			c.Population.NearDistance, c.Population.FarDistance)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be 'json' or 'console'")
	}
	return nil
}

// Bounds returns the dungeon rectangle anchored at the origin
func (c *Config) Bounds() geometry.Rect {
	return geometry.NewRect(0, 0, c.Dungeon.Width, c.Dungeon.Height)
}

// GenerationConfig converts the dungeon settings for the generator
func (c *Config) GenerationConfig(log *zap.Logger) (generation.Config, error) {
	propagation, err := generation.ParsePropagationStrategy(c.Dungeon.Propagation)
	if err != nil {
		return generation.Config{}, err
	}
	policy, err := generation.ParseDegeneratePolicy(c.Dungeon.DegenerateRooms)
	if err != nil {
		return generation.Config{}, err
	}
	return generation.Config{
		MinCellWidth:    c.Dungeon.MinCellWidth,
		MinCellHeight:   c.Dungeon.MinCellHeight,
		Offset:          c.Dungeon.Offset,
		CorridorWidth:   c.Dungeon.CorridorWidth,
		Propagation:     propagation,
		DegenerateRooms: policy,
		Logger:          log,
	}, nil
}

// PopulationOptions converts the population settings
func (c *Config) PopulationOptions() generation.PopulationOptions {
	return generation.PopulationOptions{
		NearDistance: c.Population.NearDistance,
		FarDistance:  c.Population.FarDistance,
	}
}

// ResolveSeed returns the configured seed, or a clock seed when none is set
func (c *Config) ResolveSeed() int64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return time.Now().UnixNano()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
