// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. ORBIT_WORLD_SEED
const EnvPrefix = "ORBIT"

// Frontend names
const (
	FrontendEngo     = "engo"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Config contains the configuration of one simulation run
type Config struct {
	Window   WindowConfig  `mapstructure:"window" json:"window"`
	World    WorldConfig   `mapstructure:"world" json:"world"`
	Loop     LoopConfig    `mapstructure:"loop" json:"loop"`
	Frontend string        `mapstructure:"frontend" json:"frontend"`
	Log      LogConfig     `mapstructure:"log" json:"log"`
	Metrics  MetricsConfig `mapstructure:"metrics" json:"metrics"`
	Audio    AudioConfig   `mapstructure:"audio" json:"audio"`
}

// WindowConfig describes the presentation surface
type WindowConfig struct {
	Width      int    `mapstructure:"width" json:"width"`
	Height     int    `mapstructure:"height" json:"height"`
	Fullscreen bool   `mapstructure:"fullscreen" json:"fullscreen"`
	Title      string `mapstructure:"title" json:"title"`
}

// WorldConfig contains solar-system generation parameters
type WorldConfig struct {
	Planets   int     `mapstructure:"planets" json:"planets"`
	SunRadius float64 `mapstructure:"sun_radius" json:"sun_radius"`
	// Seed 0 picks a time-based seed
	Seed uint64 `mapstructure:"seed" json:"seed"`
	// MaxProjectiles 0 keeps every projectile for the whole run
	MaxProjectiles int `mapstructure:"max_projectiles" json:"max_projectiles"`
}

// LoopConfig contains frame loop parameters
type LoopConfig struct {
	MaxFPS int `mapstructure:"max_fps" json:"max_fps"`
	// Frames stops the loop after this many frames; 0 runs until quit
	Frames int `mapstructure:"frames" json:"frames"`
	// FixedStep is the delta time used by the headless frontend
	FixedStep float64 `mapstructure:"fixed_step" json:"fixed_step"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
	File  string `mapstructure:"file" json:"file"`
}

// MetricsConfig contains the optional prometheus listener address
type MetricsConfig struct {
	Addr string `mapstructure:"addr" json:"addr"`
}

// AudioConfig toggles sound effects
type AudioConfig struct {
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Orbits",
		},
		World: WorldConfig{
			Planets:   5,
			SunRadius: 50,
		},
		Loop: LoopConfig{
			MaxFPS:    1000,
			FixedStep: 1.0 / 60.0,
		},
		Frontend: FrontendEngo,
		Log: LogConfig{
			Level: "INFO",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("window.width", d.Window.Width)
	v.SetDefault("window.height", d.Window.Height)
	v.SetDefault("window.fullscreen", d.Window.Fullscreen)
	v.SetDefault("window.title", d.Window.Title)
	v.SetDefault("world.planets", d.World.Planets)
	v.SetDefault("world.sun_radius", d.World.SunRadius)
	v.SetDefault("world.seed", d.World.Seed)
	v.SetDefault("world.max_projectiles", d.World.MaxProjectiles)
	v.SetDefault("loop.max_fps", d.Loop.MaxFPS)
	v.SetDefault("loop.frames", d.Loop.Frames)
	v.SetDefault("loop.fixed_step", d.Loop.FixedStep)
	v.SetDefault("frontend", d.Frontend)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("audio.enabled", d.Audio.Enabled)
}

// LoadConfig builds a configuration from defaults, the optional file at path,
// and ORBIT_* environment variables, in increasing precedence. An empty path
// skips the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves a configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a run
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	case c.World.Planets < 1:
		return fmt.Errorf("world.planets must be at least 1, got %d", c.World.Planets)
	case c.World.SunRadius <= 0:
		return fmt.Errorf("world.sun_radius must be positive, got %v", c.World.SunRadius)
	case c.World.MaxProjectiles < 0:
		return fmt.Errorf("world.max_projectiles must not be negative, got %d", c.World.MaxProjectiles)
	case c.Loop.MaxFPS < 0:
		return fmt.Errorf("loop.max_fps must not be negative, got %d", c.Loop.MaxFPS)
	case c.Loop.Frames < 0:
		return fmt.Errorf("loop.frames must not be negative, got %d", c.Loop.Frames)
	case c.Loop.FixedStep <= 0:
		return fmt.Errorf("loop.fixed_step must be positive, got %v", c.Loop.FixedStep)
	}

	switch c.Frontend {
	case FrontendEngo, FrontendTerminal, FrontendHeadless:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	return nil
}
