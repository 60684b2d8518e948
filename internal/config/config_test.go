package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/mtlximport"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, mtlximport.DialectCurrent, cfg.DialectValue())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mtlximport.yaml")
	cfg := DefaultConfig()
	cfg.Dialect = "19.5.640"
	cfg.Patterns = map[string][]string{"base_color": {"Tint"}}
	cfg.Logging.Development = true

	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
	assert.Equal(t, mtlximport.DialectLegacy, got.DialectValue())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad_yaml", "dialect: [current"},
		{"bad_dialect", "dialect: newest\n"},
		{"bad_channel", "patterns:\n  emission: [emit]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MTLXIMPORT_DIALECT", "legacy")
	t.Setenv("MTLXIMPORT_LOG_LEVEL", "debug")
	t.Setenv("MTLXIMPORT_PRESET", "/presets/foliage.json")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, mtlximport.DialectLegacy, cfg.DialectValue())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/presets/foliage.json", cfg.Preset)
}

func TestPatternTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Patterns = map[string][]string{
		"base_color": {" Tint ", "albedo", ""},
		"opacity":    {"mask"},
	}

	table := cfg.PatternTable()
	assert.Contains(t, table[mtlximport.ChannelBaseColor], "tint")
	assert.Contains(t, table[mtlximport.ChannelBaseColor], "diffuse")
	assert.Len(t, table[mtlximport.ChannelBaseColor], len(mtlximport.DefaultPatterns()[mtlximport.ChannelBaseColor])+1)
	assert.Equal(t, []string{"opacity", "alpha", "mask"}, table[mtlximport.ChannelOpacity])

	cfg.ReplacePatterns = true
	table = cfg.PatternTable()
	assert.Equal(t, []string{"tint", "albedo"}, table[mtlximport.ChannelBaseColor])
	assert.Equal(t, []string{"mask"}, table[mtlximport.ChannelOpacity])
	assert.Equal(t, mtlximport.DefaultPatterns()[mtlximport.ChannelNormal], table[mtlximport.ChannelNormal])
}

func TestScanOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CaseSensitiveExtensions = true

	opt := cfg.ScanOptions()
	assert.Equal(t, []string{"jpg", "exr", "png"}, opt.Extensions)
	assert.True(t, opt.DisableCaseInsensitive)
}

func TestValidateOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Extensions = []string{"tif"}

	opt := cfg.ValidateOptions("/textures")
	assert.Equal(t, "/textures", opt.TextureRoot)
	assert.True(t, opt.CheckFiles)
	assert.Equal(t, []string{"tif"}, opt.Extensions)
}
