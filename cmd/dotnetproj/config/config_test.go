package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
indent_size: 2
skip_legacy_projects: true
log_level: debug
tracing:
  exporter: otlp
  endpoint: localhost:4317
metrics_file: /tmp/dotnetproj.prom
`))
	require.NoError(t, err)

	assert.True(t, cfg.SkipLegacyProjects)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, TracingConfig{Exporter: "otlp", Endpoint: "localhost:4317"}, cfg.Tracing)
	assert.Equal(t, "/tmp/dotnetproj.prom", cfg.MetricsFile)
}

func TestParseConfig_Defaults(t *testing.T) {
	for _, text := range []string{"", "skip_legacy_projects: false\n"} {
		cfg, err := ParseConfig([]byte(text))
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig(), cfg)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"indent", "indent_size: 4\n", "IndentSize"},
		{"log level", "log_level: loud\n", "LogLevel"},
		{"exporter", "tracing:\n  exporter: jaeger\n", "Exporter"},
		{"otlp without endpoint", "tracing:\n  exporter: otlp\n", "Endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.text))
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseConfig_UnknownKey(t *testing.T) {
	_, err := ParseConfig([]byte("indent: tabs\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "indent")
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/custom.yaml", []byte("log_level: info\n"), 0o644))

	cfg, path, err := Load(fs, "/work/custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/work/custom.yaml", path)
	assert.Equal(t, "info", cfg.LogLevel)

	_, _, err = Load(fs, "/work/missing.yaml")
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	locations := []string{"/work/.dotnetproj.yaml", "/work/.config/dotnetproj.yaml", "/home/u/.dotnetproj/config.yaml"}

	assert.Equal(t, "", FindConfigFile(fs, locations))

	require.NoError(t, afero.WriteFile(fs, locations[2], []byte(""), 0o644))
	assert.Equal(t, locations[2], FindConfigFile(fs, locations))

	require.NoError(t, afero.WriteFile(fs, locations[1], []byte(""), 0o644))
	assert.Equal(t, locations[1], FindConfigFile(fs, locations))
}
