package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/output"
	"github.com/willibrandon/dotnetproj/observability"
)

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}

func TestGetFullVersion(t *testing.T) {
	got := GetFullVersion()
	assert.True(t, strings.HasPrefix(got, "dotnetproj version "+Version))
	assert.Contains(t, got, "commit: "+Commit)
}

func newTestEnv(fs afero.Fs) (*Env, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewEnv(output.NewConsole(&buf, &buf, output.VerbosityNormal), fs), &buf
}

func TestEnv_Setup_Defaults(t *testing.T) {
	env, _ := newTestEnv(afero.NewMemMapFs())

	require.NoError(t, env.Setup(context.Background(), GlobalFlags{}))
	assert.Equal(t, "", env.ConfigPath)
	assert.False(t, env.DryRun)
	assert.Equal(t, output.VerbosityNormal, env.Console.GetVerbosity())
	assert.False(t, env.ModifierOptions().SkipLegacyProjects)
	require.NoError(t, env.Close(context.Background()))
}

func TestEnv_Setup_ConfigFileAndFlags(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/work", "tool.yaml")
	require.NoError(t, afero.WriteFile(fs, path, []byte("skip_legacy_projects: true\nlog_level: error\n"), 0o644))

	env, _ := newTestEnv(fs)
	require.NoError(t, env.Setup(context.Background(), GlobalFlags{
		ConfigFile: path,
		Verbosity:  "quiet",
		DryRun:     true,
	}))

	assert.Equal(t, path, env.ConfigPath)
	assert.True(t, env.DryRun)
	assert.Equal(t, output.VerbosityQuiet, env.Console.GetVerbosity())
	assert.True(t, env.ModifierOptions().SkipLegacyProjects)
}

func TestEnv_Setup_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/bad.yaml", []byte("log_level: loud\n"), 0o644))

	env, _ := newTestEnv(fs)
	assert.Error(t, env.Setup(context.Background(), GlobalFlags{ConfigFile: "/work/bad.yaml"}))
	assert.Error(t, env.Setup(context.Background(), GlobalFlags{Verbosity: "loud"}))
	assert.Error(t, env.Setup(context.Background(), GlobalFlags{TraceExporter: "jaeger"}))
}

func TestEnv_Setup_StdoutTracing(t *testing.T) {
	env, buf := newTestEnv(afero.NewMemMapFs())
	require.NoError(t, env.Setup(context.Background(), GlobalFlags{TraceExporter: "stdout"}))

	_, span := observability.StartSolutionParseSpan(context.Background(), "/repo/App.sln")
	span.End()
	require.NoError(t, env.Close(context.Background()))
	require.NoError(t, env.Close(context.Background()))

	assert.Contains(t, buf.String(), "solution.parse")
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		verbosity  output.Verbosity
		configured string
		want       observability.LogLevel
	}{
		{output.VerbosityQuiet, "debug", observability.ErrorLevel},
		{output.VerbosityNormal, "warn", observability.WarnLevel},
		{output.VerbosityNormal, "debug", observability.DebugLevel},
		{output.VerbosityDetailed, "warn", observability.InfoLevel},
		{output.VerbosityDetailed, "verbose", observability.VerboseLevel},
		{output.VerbosityDiagnostic, "error", observability.DebugLevel},
	}

	for _, tt := range tests {
		got, err := logLevel(tt.verbosity, tt.configured)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "verbosity %d, configured %s", tt.verbosity, tt.configured)
	}
}
