package observability

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLogger_StructuredProperties(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, InfoLevel)

	log.Info("Parsing solution {SolutionPath}", "/repo/App.sln")
	log.Warn("Nuget {Package} added to projects with different versions: {Versions}", "PackageX", "1.2.2, 1.2.3")

	output := buf.String()
	for _, want := range []string{"/repo/App.sln", "PackageX", "1.2.2, 1.2.3"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q: %s", want, output)
		}
	}
}

func TestLogger_ScopedLoggers(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, InfoLevel)

	log.WithProperty("Solution", "App.sln").Info("Loaded {Count} projects", 3)
	log.WithProperty("Project", "App.csproj").Info("Saved {Kind}", "project")

	output := buf.String()
	if !strings.Contains(output, "Loaded") || !strings.Contains(output, "project") {
		t.Errorf("Output missing template properties: %s", output)
	}
}

func TestLogger_AllContextLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLogger(buf, VerboseLevel)
	ctx := context.Background()

	log.VerboseContext(ctx, "verbose context message")
	log.DebugContext(ctx, "debug context message")
	log.InfoContext(ctx, "info context message")
	log.WarnContext(ctx, "warn context message")
	log.ErrorContext(ctx, "error context message")

	output := buf.String()
	for _, level := range []string{"verbose", "debug", "info", "warn", "error"} {
		if !strings.Contains(output, level+" context message") {
			t.Errorf("Output missing %s context message", level)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     LogLevel
		logFunc   func(Logger)
		shouldLog bool
	}{
		{"Verbose level logs Verbose", VerboseLevel, func(l Logger) { l.Verbose("msg") }, true},
		{"Debug level blocks Verbose", DebugLevel, func(l Logger) { l.Verbose("msg") }, false},
		{"Info level blocks Debug", InfoLevel, func(l Logger) { l.Debug("msg") }, false},
		{"Warn level blocks Info", WarnLevel, func(l Logger) { l.Info("msg") }, false},
		{"Error level blocks Warn", ErrorLevel, func(l Logger) { l.Warn("msg") }, false},
		{"Error level logs Error", ErrorLevel, func(l Logger) { l.Error("msg") }, true},
		{"Warn level allows Error", WarnLevel, func(l Logger) { l.Error("msg") }, true},
		{"Info level allows Warn", InfoLevel, func(l Logger) { l.Warn("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.logFunc(NewLogger(buf, tt.level))

			if hasOutput := buf.Len() > 0; hasOutput != tt.shouldLog {
				t.Errorf("Expected output=%v, got output=%v", tt.shouldLog, hasOutput)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"verbose", VerboseLevel, false},
		{"Debug", DebugLevel, false},
		{" info ", InfoLevel, false},
		{"WARN", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"fatal", InfoLevel, true},
		{"loud", InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLogLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if WarnLevel.String() != "warn" {
		t.Errorf("WarnLevel.String() = %q, want warn", WarnLevel.String())
	}
}

func TestOrNull(t *testing.T) {
	if OrNull(nil) == nil {
		t.Fatal("OrNull(nil) returned nil")
	}

	log := NewLogger(&bytes.Buffer{}, InfoLevel)
	if OrNull(log) != log {
		t.Error("OrNull should return a non-nil logger unchanged")
	}
}

func TestNullLogger(t *testing.T) {
	log := NewNullLogger()
	ctx := context.Background()

	log.Verbose("verbose")
	log.VerboseContext(ctx, "verbose ctx")
	log.Debug("debug")
	log.DebugContext(ctx, "debug ctx")
	log.Info("info")
	log.InfoContext(ctx, "info ctx")
	log.Warn("warn")
	log.WarnContext(ctx, "warn ctx")
	log.Error("error")
	log.ErrorContext(ctx, "error ctx")

	if log.WithProperty("prop", "val") == nil {
		t.Error("scoped null loggers should not be nil")
	}
}
