package city

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// LayerConfig describes one depth layer of buildings. Layers are ordered
// far to near; the last layer is the nearest.
type LayerConfig struct {
	Count      int     `toml:"count"`
	MinHeight  float64 `toml:"min_height"`
	MaxHeight  float64 `toml:"max_height"`
	MinWidth   float64 `toml:"min_width"`
	MaxWidth   float64 `toml:"max_width"`
	Opacity    float64 `toml:"opacity"`
	WindowSize float64 `toml:"window_size"`
	WindowGap  float64 `toml:"window_gap"`
	SignChance float64 `toml:"sign_chance"`
}

// Settings is everything the generator and particle update need besides
// the palette.
type Settings struct {
	GroundRatio     float64
	StarCount       int
	RainCount       int
	CarCount        int
	SteamCount      int
	LightningChance float64
	Layers          []LayerConfig
}

// DefaultLayers is the far/mid/near layer table.
func DefaultLayers() []LayerConfig {
	return []LayerConfig{
		{Count: 50, MinHeight: 60, MaxHeight: 220, MinWidth: 12, MaxWidth: 45, Opacity: 0.3, WindowSize: 2, WindowGap: 6, SignChance: 0},
		{Count: 30, MinHeight: 100, MaxHeight: 380, MinWidth: 22, MaxWidth: 75, Opacity: 0.6, WindowSize: 3, WindowGap: 8, SignChance: 0.15},
		{Count: 20, MinHeight: 160, MaxHeight: 520, MinWidth: 35, MaxWidth: 120, Opacity: 1.0, WindowSize: 4, WindowGap: 10, SignChance: 0.45},
	}
}

// DefaultSettings mirrors the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		GroundRatio:     0.18,
		StarCount:       250,
		RainCount:       450,
		CarCount:        10,
		SteamCount:      35,
		LightningChance: 0.0008,
		Layers:          DefaultLayers(),
	}
}

// GroundLine returns the y of the ground line for a viewport height.
func GroundLine(height, groundRatio float64) float64 {
	return math.Round(height * (1 - groundRatio))
}

// Palette holds the fixed colour and text pools, already parsed.
type Palette struct {
	Neon      []color.RGBA
	Window    []color.RGBA
	Building  []color.RGBA
	SignTexts []string
}

var (
	defaultNeon     = []string{"#ff006e", "#00f5ff", "#b829dd", "#39ff14", "#ffd700", "#ff0040", "#ff69b4", "#00ffcc"}
	defaultWindow   = []string{"#ffa500", "#ff8c00", "#ffcc00", "#ffe4b5", "#ffffff", "#e0e0ff", "#00ccff", "#ff69b4", "#7b68ee"}
	defaultBuilding = []string{"#0c0c1e", "#0e0e22", "#111128", "#0d0d1a", "#131332", "#0f0f24", "#10102a", "#0b0b1c"}
	// The bundled Go font has no CJK glyphs, so the Japanese entries draw
	// as missing-glyph boxes in window and PNG output. A theme file can
	// replace the pool.
	defaultSigns = []string{"ネオン", "CYBER", "2077", "酒場", "HACK", "DATA", "バー", "NEON", "電脳", "VOID",
		"PUNK", "ZERO", "テック", "BYTE", "CODE", "未来", "DARK", "NET", "SYNTH", "夜"}
)

// DefaultPaletteHex returns the stock palettes as hex strings.
func DefaultPaletteHex() (neon, window, building, signs []string) {
	return append([]string(nil), defaultNeon...),
		append([]string(nil), defaultWindow...),
		append([]string(nil), defaultBuilding...),
		append([]string(nil), defaultSigns...)
}

// DefaultPalette returns the stock palette.
func DefaultPalette() Palette {
	p, err := ParsePalette(defaultNeon, defaultWindow, defaultBuilding, defaultSigns)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePalette converts hex pools into a Palette. Every pool must be non-empty.
func ParsePalette(neon, window, building, signs []string) (Palette, error) {
	var p Palette
	var errs []error
	parse := func(name string, in []string) []color.RGBA {
		if len(in) == 0 {
			errs = append(errs, fmt.Errorf("%s palette is empty", name))
			return nil
		}
		out := make([]color.RGBA, 0, len(in))
		for _, h := range in {
			c, err := HexToRGB(h)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s palette: %w", name, err))
				continue
			}
			out = append(out, c)
		}
		return out
	}
	p.Neon = parse("neon", neon)
	p.Window = parse("window", window)
	p.Building = parse("building", building)
	if len(signs) == 0 {
		errs = append(errs, errors.New("sign text pool is empty"))
	}
	p.SignTexts = append([]string(nil), signs...)
	if len(errs) > 0 {
		return Palette{}, errors.Join(errs...)
	}
	return p, nil
}
