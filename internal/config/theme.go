package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/neon-skyline/internal/city"
)

// Theme is the YAML form of a palette. Colours are "#rrggbb" strings.
type Theme struct {
	Neon      []string `yaml:"neon_colors"`
	Window    []string `yaml:"window_colors"`
	Building  []string `yaml:"building_colors"`
	SignTexts []string `yaml:"sign_texts"`
}

// DefaultTheme returns the built-in palette in YAML form.
func DefaultTheme() Theme {
	neon, window, building, signs := city.DefaultPaletteHex()
	return Theme{Neon: neon, Window: window, Building: building, SignTexts: signs}
}

// LoadTheme reads a palette file. An empty path yields the built-in
// palette. Pools missing from the file fall back to the built-in pools.
func LoadTheme(path string) (city.Palette, error) {
	th := DefaultTheme()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return city.Palette{}, fmt.Errorf("read theme %s: %w", path, err)
		}
		var f Theme
		if err := yaml.Unmarshal(data, &f); err != nil {
			return city.Palette{}, fmt.Errorf("parse theme %s: %w", path, err)
		}
		th = th.merge(f)
	}
	p, err := th.Palette()
	if err != nil {
		return city.Palette{}, fmt.Errorf("theme %s: %w", path, err)
	}
	return p, nil
}

// Palette parses the hex pools.
func (th Theme) Palette() (city.Palette, error) {
	return city.ParsePalette(th.Neon, th.Window, th.Building, th.SignTexts)
}

func (th Theme) merge(o Theme) Theme {
	if len(o.Neon) > 0 {
		th.Neon = o.Neon
	}
	if len(o.Window) > 0 {
		th.Window = o.Window
	}
	if len(o.Building) > 0 {
		th.Building = o.Building
	}
	if len(o.SignTexts) > 0 {
		th.SignTexts = o.SignTexts
	}
	return th
}
