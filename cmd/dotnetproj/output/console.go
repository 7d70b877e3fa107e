package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Verbosity levels
type Verbosity int

const (
	// VerbosityQuiet shows errors only
	VerbosityQuiet Verbosity = iota
	// VerbosityNormal shows errors, warnings, and results (default)
	VerbosityNormal
	// VerbosityDetailed shows above + per-document progress
	VerbosityDetailed
	// VerbosityDiagnostic shows above + debug output
	VerbosityDiagnostic
)

var verbosityNames = map[string]Verbosity{
	"quiet":      VerbosityQuiet,
	"normal":     VerbosityNormal,
	"detailed":   VerbosityDetailed,
	"diagnostic": VerbosityDiagnostic,
}

// ParseVerbosity parses a --verbosity value. The first letter is enough:
// "q", "n", "d" (detailed) and "diag" are accepted.
func ParseVerbosity(s string) (Verbosity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := verbosityNames[s]; ok {
		return v, nil
	}
	switch s {
	case "q":
		return VerbosityQuiet, nil
	case "n":
		return VerbosityNormal, nil
	case "d":
		return VerbosityDetailed, nil
	case "diag":
		return VerbosityDiagnostic, nil
	}
	return VerbosityNormal, fmt.Errorf("invalid verbosity %q (expected quiet, normal, detailed or diagnostic)", s)
}

// Console provides output abstraction
type Console struct {
	out       io.Writer
	err       io.Writer
	verbosity Verbosity
	mu        sync.Mutex
	colors    bool
}

// NewConsole creates a new console
func NewConsole(out, err io.Writer, verbosity Verbosity) *Console {
	c := &Console{
		out:       out,
		err:       err,
		verbosity: verbosity,
		colors:    IsColorEnabled(out),
	}

	if !c.colors {
		DisableColors()
	}

	return c
}

// DefaultConsole creates a console with stdout/stderr and normal verbosity
func DefaultConsole() *Console {
	return NewConsole(os.Stdout, os.Stderr, VerbosityNormal)
}

// Out returns the standard output writer
func (c *Console) Out() io.Writer {
	return c.out
}

// Err returns the error output writer
func (c *Console) Err() io.Writer {
	return c.err
}

// SetVerbosity sets the verbosity level
func (c *Console) SetVerbosity(v Verbosity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verbosity = v
}

// GetVerbosity returns the current verbosity level
func (c *Console) GetVerbosity() Verbosity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verbosity
}

// SetColors enables or disables color output
func (c *Console) SetColors(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colors = enabled
	if enabled {
		EnableColors()
	} else {
		DisableColors()
	}
}

// Print writes to output
func (c *Console) Print(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, a...)
}

// Println writes line to output
func (c *Console) Println(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, a...)
}

// Printf writes formatted output
func (c *Console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, a...)
}

// Success writes success message (green)
func (c *Console) Success(format string, a ...any) {
	c.write(VerbosityNormal, c.out, ColorSuccess, "", format, a...)
}

// Error writes error message (red)
func (c *Console) Error(format string, a ...any) {
	c.write(VerbosityQuiet, c.err, ColorError, "Error: ", format, a...)
}

// Warning writes warning message (yellow)
func (c *Console) Warning(format string, a ...any) {
	c.write(VerbosityNormal, c.err, ColorWarning, "Warning: ", format, a...)
}

// Info writes info message (cyan)
func (c *Console) Info(format string, a ...any) {
	c.write(VerbosityNormal, c.out, ColorInfo, "", format, a...)
}

// Detail writes detailed message
func (c *Console) Detail(format string, a ...any) {
	c.write(VerbosityDetailed, c.out, nil, "", format, a...)
}

// Debug writes debug message (white)
func (c *Console) Debug(format string, a ...any) {
	c.write(VerbosityDiagnostic, c.out, ColorDebug, "[DEBUG] ", format, a...)
}

func (c *Console) write(level Verbosity, w io.Writer, col colorPrinter, prefix, format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verbosity < level {
		return
	}
	if c.colors && col != nil {
		_, _ = col.Fprintf(w, prefix+format+"\n", a...)
		return
	}
	_, _ = fmt.Fprintf(w, prefix+format+"\n", a...)
}

type colorPrinter interface {
	Fprintf(w io.Writer, format string, a ...any) (int, error)
}
