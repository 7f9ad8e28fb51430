package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inkstone.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[layout]
estimated_line_height = 24.5
buffer_paragraphs = 10

[editor]
default_style = "manuscript"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 24.5, cfg.Layout.EstimatedLineHeight)
	assert.Equal(t, 10, cfg.Layout.BufferParagraphs)
	assert.Equal(t, "manuscript", cfg.Editor.DefaultStyle)
	// unset fields keep their defaults
	assert.Equal(t, Default().Layout.MaxCachedLayouts, cfg.Layout.MaxCachedLayouts)
	assert.Equal(t, Default().Editor.WrapWidth, cfg.Editor.WrapWidth)
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, `[layout`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := writeConfig(t, `
[layout]
estimated_line_height = -3.0
max_cached_layouts = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Layout.EstimatedLineHeight, cfg.Layout.EstimatedLineHeight)
	assert.Equal(t, Default().Layout.MaxCachedLayouts, cfg.Layout.MaxCachedLayouts)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.toml")
	want := Default()
	want.Editor.DefaultStyle = "draft"
	want.Layout.BufferParagraphs = 3
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
