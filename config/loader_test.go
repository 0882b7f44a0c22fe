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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoadAppConfig_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
source:
  urlTemplate: https://tiles.example.com/{z}/{x}/{y}.pbf
  timeoutMS: 2500
decoder:
  defaultExtent: 512
  defaultVersion: 2
output:
  pretty: true
  layers: [water, roads]
  layerProperty: layer
logging:
  level: debug
  format: json
`)
	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://tiles.example.com/{z}/{x}/{y}.pbf", cfg.Source.URLTemplate)
	assert.Equal(t, 2500, cfg.Source.TimeoutMS)
	assert.Equal(t, "mvt-to-geojson", cfg.Source.UserAgent, "unset keys keep defaults")
	assert.Equal(t, uint32(512), cfg.Decoder.DefaultExtent)
	assert.Equal(t, uint32(2), cfg.Decoder.DefaultVersion)
	assert.True(t, cfg.Output.Pretty)
	assert.Equal(t, []string{"water", "roads"}, cfg.Output.Layers)
	assert.Equal(t, "layer", cfg.Output.LayerProperty)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadAppConfig_MissingDefaultFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadAppConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAppConfig_DefaultPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server:\n  port: 9000\n"), 0o644))
	chdir(t, dir)

	cfg, err := LoadAppConfig("")
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoadAppConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadAppConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadAppConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "invalid: yaml: content: [[[")
	_, err := LoadAppConfig(path)
	assert.Error(t, err)
}

func TestLoadAppConfig_EmptyFile(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAppConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative port", "server:\n  port: -1\n"},
		{"unsupported version", "decoder:\n  defaultVersion: 3\n"},
		{"zero extent", "decoder:\n  defaultExtent: 0\n"},
		{"unknown log level", "logging:\n  level: loud\n"},
		{"unknown log format", "logging:\n  format: xml\n"},
		{"negative timeout", "source:\n  timeoutMS: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAppConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("MVT_SERVER_PORT", "7070")
	t.Setenv("MVT_LOG_LEVEL", "warn")
	t.Setenv("MVT_SOURCE_URL_TEMPLATE", "tiles/{z}/{x}/{y}.mvt")

	path := writeConfig(t, "server:\n  port: 8080\nlogging:\n  level: debug\n")
	cfg, err := LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "tiles/{z}/{x}/{y}.mvt", cfg.Source.URLTemplate)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadAppConfig_EnvLayers(t *testing.T) {
	t.Setenv("MVT_OUTPUT_LAYERS", "water;roads")
	cfg, err := LoadAppConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"water", "roads"}, cfg.Output.Layers)
}

func TestLoadAppConfig_BadEnvValue(t *testing.T) {
	t.Setenv("MVT_SERVER_PORT", "not-a-port")
	_, err := LoadAppConfig(writeConfig(t, ""))
	assert.Error(t, err)
}
