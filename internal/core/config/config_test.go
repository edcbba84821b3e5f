package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/waggle/internal/core/feedback"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_missing_file_returns_defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"), "/data")
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 10, cfg.PreviewHeight)
	assert.Equal(t, "/data", cfg.DataDir)
	assert.Empty(t, cfg.Layout)
}

func TestLoad_parses_fields(t *testing.T) {
	path := writeConfig(t, "layout: combined-horizontal\nlanguage: zh-TW\npreview_height: 6\n")

	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.Equal(t, "combined-horizontal", cfg.Layout)
	assert.Equal(t, "zh-TW", cfg.Language)
	assert.Equal(t, 6, cfg.PreviewHeight)
}

func TestLoad_rejects_unknown_layout(t *testing.T) {
	path := writeConfig(t, "layout: diagonal\n")

	_, err := Load(path, "/data")
	assert.ErrorContains(t, err, "unknown layout")
}

func TestLoad_rejects_malformed_yaml(t *testing.T) {
	path := writeConfig(t, "layout: [unterminated\n")

	_, err := Load(path, "/data")
	assert.Error(t, err)
}

func TestConfig_LayoutMode_fallback(t *testing.T) {
	cfg := Default("/data")
	assert.Equal(t, feedback.LayoutCombinedHorizontal, cfg.LayoutMode(feedback.LayoutCombinedHorizontal))

	cfg.Layout = "combined-vertical"
	assert.Equal(t, feedback.LayoutCombinedVertical, cfg.LayoutMode(feedback.LayoutCombinedHorizontal))
}
