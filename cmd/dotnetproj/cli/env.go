package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/config"
	"github.com/willibrandon/dotnetproj/cmd/dotnetproj/output"
	"github.com/willibrandon/dotnetproj/modifier"
	"github.com/willibrandon/dotnetproj/observability"
)

// GlobalFlags are the persistent flags of the root command. Empty values
// fall back to the configuration file.
type GlobalFlags struct {
	ConfigFile    string
	Verbosity     string
	DryRun        bool
	TraceExporter string
	MetricsFile   string
}

// Env is what every command runs against: the console, the file system and
// the settings resolved from flags and the configuration file.
type Env struct {
	Console *output.Console
	Fs      afero.Fs
	Logger  observability.Logger
	Config  *config.Config

	// ConfigPath is the configuration file that was read, if any.
	ConfigPath string

	// DryRun prints diffs instead of writing files.
	DryRun bool

	metricsFile string
	tracer      *sdktrace.TracerProvider
}

// NewEnv creates an environment with default settings and no logging.
func NewEnv(console *output.Console, fs afero.Fs) *Env {
	return &Env{
		Console: console,
		Fs:      fs,
		Logger:  observability.NewNullLogger(),
		Config:  config.NewDefaultConfig(),
	}
}

// Setup resolves flags against the configuration file and starts logging
// and tracing.
func (e *Env) Setup(ctx context.Context, flags GlobalFlags) error {
	cfg, path, err := config.Load(e.Fs, flags.ConfigFile)
	if err != nil {
		return err
	}
	e.Config = cfg
	e.ConfigPath = path
	e.DryRun = flags.DryRun

	verbosity := output.VerbosityNormal
	if flags.Verbosity != "" {
		if verbosity, err = output.ParseVerbosity(flags.Verbosity); err != nil {
			return err
		}
	}
	e.Console.SetVerbosity(verbosity)

	level, err := logLevel(verbosity, cfg.LogLevel)
	if err != nil {
		return err
	}
	e.Logger = observability.NewLogger(e.Console.Err(), level)

	e.metricsFile = cfg.MetricsFile
	if flags.MetricsFile != "" {
		e.metricsFile = flags.MetricsFile
	}

	exporter := cfg.Tracing.Exporter
	if flags.TraceExporter != "" {
		exporter = flags.TraceExporter
	}
	if exporter != observability.ExporterNone {
		tc := observability.DefaultTracerConfig()
		tc.ServiceVersion = GetVersion()
		tc.ExporterType = exporter
		tc.OTLPEndpoint = cfg.Tracing.Endpoint
		tc.Output = e.Console.Err()
		if e.tracer, err = observability.SetupTracing(ctx, tc); err != nil {
			return err
		}
	}

	if path != "" {
		e.Logger.Debug("Loaded configuration from {ConfigPath}", path)
	}
	return nil
}

// Close flushes spans and writes the metrics file. It is safe to call
// more than once.
func (e *Env) Close(ctx context.Context) error {
	var errs []error
	if e.tracer != nil {
		errs = append(errs, observability.ShutdownTracing(ctx, e.tracer))
		e.tracer = nil
	}
	if e.metricsFile != "" {
		if err := observability.WriteMetricsFile(e.metricsFile); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics file: %w", err))
		}
		e.metricsFile = ""
	}
	return errors.Join(errs...)
}

// ModifierOptions returns the solution session options for this run.
func (e *Env) ModifierOptions() modifier.Options {
	return modifier.Options{
		SkipLegacyProjects: e.Config.SkipLegacyProjects,
		Logger:             e.Logger,
	}
}

// logLevel maps console verbosity onto the configured log level. Quiet
// only logs errors; detailed and diagnostic lower the level to info and
// debug when the configuration asks for less.
func logLevel(v output.Verbosity, configured string) (observability.LogLevel, error) {
	level, err := observability.ParseLogLevel(configured)
	if err != nil {
		return level, err
	}
	switch v {
	case output.VerbosityQuiet:
		return observability.ErrorLevel, nil
	case output.VerbosityDetailed:
		return min(level, observability.InfoLevel), nil
	case output.VerbosityDiagnostic:
		return min(level, observability.DebugLevel), nil
	}
	return level, nil
}
