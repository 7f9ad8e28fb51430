// Package config loads engine configuration from TOML. A missing file
// is not an error; the defaults apply and unset fields fall back to
// them individually.
package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the engine configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Editor EditorConfig `toml:"editor"`
}

// LayoutConfig tunes layout and virtual scrolling.
type LayoutConfig struct {
	// EstimatedLineHeight is assumed for paragraphs not yet measured.
	EstimatedLineHeight float64 `toml:"estimated_line_height"`
	// BufferParagraphs widens the lazy layout window on each side of
	// the visible band.
	BufferParagraphs int `toml:"buffer_paragraphs"`
	// MaxCachedLayouts caps the layout cache.
	MaxCachedLayouts int `toml:"max_cached_layouts"`
}

// EditorConfig holds editing defaults.
type EditorConfig struct {
	// DefaultStyle is the paragraph style id for new paragraphs.
	DefaultStyle string `toml:"default_style"`
	// WrapWidth is the layout width used when the embedder supplies
	// none.
	WrapWidth float64 `toml:"wrap_width"`
	// AutosaveSeconds between autosave passes; zero disables.
	AutosaveSeconds int `toml:"autosave_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			EstimatedLineHeight: 16,
			BufferParagraphs:    5,
			MaxCachedLayouts:    256,
		},
		Editor: EditorConfig{
			DefaultStyle:    "body",
			WrapWidth:       640,
			AutosaveSeconds: 60,
		},
	}
}

// Load reads a TOML config file, layering it over the defaults. A
// missing file yields the defaults; malformed TOML is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the configuration as TOML.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// normalize replaces out-of-range values with their defaults.
func (c *Config) normalize() {
	def := Default()
	if c.Layout.EstimatedLineHeight <= 0 {
		c.Layout.EstimatedLineHeight = def.Layout.EstimatedLineHeight
	}
	if c.Layout.BufferParagraphs < 0 {
		c.Layout.BufferParagraphs = def.Layout.BufferParagraphs
	}
	if c.Layout.MaxCachedLayouts <= 0 {
		c.Layout.MaxCachedLayouts = def.Layout.MaxCachedLayouts
	}
	if c.Editor.WrapWidth <= 0 {
		c.Editor.WrapWidth = def.Editor.WrapWidth
	}
	if c.Editor.AutosaveSeconds < 0 {
		c.Editor.AutosaveSeconds = 0
	}
}
