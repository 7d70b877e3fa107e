// Package observability carries the logging, tracing and metrics shared by
// the solution, project and modifier packages and the dotnetproj CLI.
//
// Library constructors accept a nil Logger and fall back to a null logger,
// so logging stays observational: nothing a component decides depends on it.
package observability

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/willibrandon/mtlog"
	"github.com/willibrandon/mtlog/core"
	"github.com/willibrandon/mtlog/sinks"
)

// Logger is the message-template logger the packages of this module write to.
// Property values bind to the {Name} holes of the template in order.
type Logger interface {
	Verbose(messageTemplate string, args ...any)
	VerboseContext(ctx context.Context, messageTemplate string, args ...any)

	Debug(messageTemplate string, args ...any)
	DebugContext(ctx context.Context, messageTemplate string, args ...any)

	Info(messageTemplate string, args ...any)
	InfoContext(ctx context.Context, messageTemplate string, args ...any)

	Warn(messageTemplate string, args ...any)
	WarnContext(ctx context.Context, messageTemplate string, args ...any)

	Error(messageTemplate string, args ...any)
	ErrorContext(ctx context.Context, messageTemplate string, args ...any)

	// WithProperty returns a logger that attaches key to every event.
	WithProperty(key string, value any) Logger
}

type mtlogLogger struct {
	log core.Logger
}

// NewLogger creates a logger rendering events at level and above to output.
func NewLogger(output io.Writer, level LogLevel) Logger {
	return &mtlogLogger{log: mtlog.New(
		mtlog.WithSink(sinks.NewConsoleSinkWithWriter(output)),
		mtlog.WithTimestamp(),
		mtlog.WithMinimumLevel(level.mtlogLevel()),
	)}
}

// OrNull returns l, or a null logger when l is nil.
func OrNull(l Logger) Logger {
	if l == nil {
		return NewNullLogger()
	}
	return l
}

func (m *mtlogLogger) Verbose(messageTemplate string, args ...any) {
	m.log.Verbose(messageTemplate, args...)
}

func (m *mtlogLogger) VerboseContext(ctx context.Context, messageTemplate string, args ...any) {
	m.log.VerboseContext(ctx, messageTemplate, args...)
}

func (m *mtlogLogger) Debug(messageTemplate string, args ...any) {
	m.log.Debug(messageTemplate, args...)
}

func (m *mtlogLogger) DebugContext(ctx context.Context, messageTemplate string, args ...any) {
	m.log.DebugContext(ctx, messageTemplate, args...)
}

func (m *mtlogLogger) Info(messageTemplate string, args ...any) {
	m.log.Info(messageTemplate, args...)
}

func (m *mtlogLogger) InfoContext(ctx context.Context, messageTemplate string, args ...any) {
	m.log.InfoContext(ctx, messageTemplate, args...)
}

func (m *mtlogLogger) Warn(messageTemplate string, args ...any) {
	m.log.Warn(messageTemplate, args...)
}

func (m *mtlogLogger) WarnContext(ctx context.Context, messageTemplate string, args ...any) {
	m.log.WarnContext(ctx, messageTemplate, args...)
}

func (m *mtlogLogger) Error(messageTemplate string, args ...any) {
	m.log.Error(messageTemplate, args...)
}

func (m *mtlogLogger) ErrorContext(ctx context.Context, messageTemplate string, args ...any) {
	m.log.ErrorContext(ctx, messageTemplate, args...)
}

func (m *mtlogLogger) WithProperty(key string, value any) Logger {
	return &mtlogLogger{log: m.log.ForContext(key, value)}
}

// LogLevel is the minimum severity a logger emits.
type LogLevel int

const (
	VerboseLevel LogLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

var levelNames = map[string]LogLevel{
	"verbose": VerboseLevel,
	"debug":   DebugLevel,
	"info":    InfoLevel,
	"warn":    WarnLevel,
	"error":   ErrorLevel,
}

// ParseLogLevel parses a level name such as "info", ignoring case.
func ParseLogLevel(name string) (LogLevel, error) {
	level, ok := levelNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// String returns the lower-case level name.
func (l LogLevel) String() string {
	for name, level := range levelNames {
		if level == l {
			return name
		}
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

func (l LogLevel) mtlogLevel() core.LogEventLevel {
	switch l {
	case VerboseLevel:
		return core.VerboseLevel
	case DebugLevel:
		return core.DebugLevel
	case WarnLevel:
		return core.WarningLevel
	case ErrorLevel:
		return core.ErrorLevel
	default:
		return core.InformationLevel
	}
}

// nullLogger discards every event.
type nullLogger struct{}

// NewNullLogger creates a logger that discards every event.
func NewNullLogger() Logger {
	return nullLogger{}
}

func (nullLogger) Verbose(string, ...any)                         {}
func (nullLogger) VerboseContext(context.Context, string, ...any) {}
func (nullLogger) Debug(string, ...any)                           {}
func (nullLogger) DebugContext(context.Context, string, ...any)   {}
func (nullLogger) Info(string, ...any)                            {}
func (nullLogger) InfoContext(context.Context, string, ...any)    {}
func (nullLogger) Warn(string, ...any)                            {}
func (nullLogger) WarnContext(context.Context, string, ...any)    {}
func (nullLogger) Error(string, ...any)                           {}
func (nullLogger) ErrorContext(context.Context, string, ...any)   {}
func (n nullLogger) WithProperty(string, any) Logger              { return n }
