package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Garsondee/neon-skyline/internal/city"
)

type Config struct {
	Window  WindowConfig       `toml:"window"`
	Scene   SceneConfig        `toml:"scene"`
	Layers  []city.LayerConfig `toml:"layers"`
	Logging LoggingConfig      `toml:"logging"`
	Audio   AudioConfig        `toml:"audio"`
	Theme   string             `toml:"theme"` // YAML palette file; empty = built-in
}

type WindowConfig struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Title     string `toml:"title"`
	Resizable bool   `toml:"resizable"`
	TPS       int    `toml:"tps"`
}

type SceneConfig struct {
	GroundRatio     float64 `toml:"ground_ratio"`
	StarCount       int     `toml:"star_count"`
	RainCount       int     `toml:"rain_count"`
	CarCount        int     `toml:"car_count"`
	SteamCount      int     `toml:"steam_count"`
	LightningChance float64 `toml:"lightning_chance"` // per tick, while raining
	Seed            int64   `toml:"seed"`             // 0 = time-seeded
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0..1
}

// Load reads a TOML file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	// Layers are replaced wholesale when the file declares any.
	cfg.Layers = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Layers) == 0 {
		cfg.Layers = city.DefaultLayers()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	s := city.DefaultSettings()
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "Neon Skyline",
			Resizable: true,
			TPS:       60,
		},
		Scene: SceneConfig{
			GroundRatio:     s.GroundRatio,
			StarCount:       s.StarCount,
			RainCount:       s.RainCount,
			CarCount:        s.CarCount,
			SteamCount:      s.SteamCount,
			LightningChance: s.LightningChance,
		},
		Layers: s.Layers,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.6,
		},
	}
}

// Validate reports every out-of-range field at once.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps must be positive, got %d", c.Window.TPS)

	check(c.Scene.GroundRatio > 0 && c.Scene.GroundRatio < 1, "scene.ground_ratio must be in (0,1), got %g", c.Scene.GroundRatio)
	check(c.Scene.StarCount >= 0, "scene.star_count must not be negative, got %d", c.Scene.StarCount)
	check(c.Scene.RainCount >= 0, "scene.rain_count must not be negative, got %d", c.Scene.RainCount)
	check(c.Scene.CarCount >= 0, "scene.car_count must not be negative, got %d", c.Scene.CarCount)
	check(c.Scene.SteamCount >= 0, "scene.steam_count must not be negative, got %d", c.Scene.SteamCount)
	check(c.Scene.LightningChance >= 0 && c.Scene.LightningChance <= 1, "scene.lightning_chance must be in [0,1], got %g", c.Scene.LightningChance)

	if len(c.Layers) == 0 {
		errs = append(errs, errors.New("at least one layer is required"))
	}
	for i, l := range c.Layers {
		check(l.Count >= 0, "layers[%d].count must not be negative, got %d", i, l.Count)
		check(l.MinHeight > 0 && l.MinHeight <= l.MaxHeight, "layers[%d] height range [%g,%g] is invalid", i, l.MinHeight, l.MaxHeight)
		check(l.MinWidth > 0 && l.MinWidth <= l.MaxWidth, "layers[%d] width range [%g,%g] is invalid", i, l.MinWidth, l.MaxWidth)
		check(l.Opacity >= 0 && l.Opacity <= 1, "layers[%d].opacity must be in [0,1], got %g", i, l.Opacity)
		check(l.WindowSize > 0, "layers[%d].window_size must be positive, got %g", i, l.WindowSize)
		check(l.WindowGap > 0, "layers[%d].window_gap must be positive, got %g", i, l.WindowGap)
		check(l.SignChance >= 0 && l.SignChance <= 1, "layers[%d].sign_chance must be in [0,1], got %g", i, l.SignChance)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be in [0,1], got %g", c.Audio.Volume)

	return errors.Join(errs...)
}

// Settings converts the scene and layer sections into generator settings.
func (c *Config) Settings() city.Settings {
	layers := make([]city.LayerConfig, len(c.Layers))
	copy(layers, c.Layers)
	return city.Settings{
		GroundRatio:     c.Scene.GroundRatio,
		StarCount:       c.Scene.StarCount,
		RainCount:       c.Scene.RainCount,
		CarCount:        c.Scene.CarCount,
		SteamCount:      c.Scene.SteamCount,
		LightningChance: c.Scene.LightningChance,
		Layers:          layers,
	}
}
