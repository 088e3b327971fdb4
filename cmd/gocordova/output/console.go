package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Verbosity levels
type Verbosity int

const (
	// VerbosityQuiet shows errors only
	VerbosityQuiet Verbosity = iota
	// VerbosityNormal shows errors, warnings, and results (default)
	VerbosityNormal
	// VerbosityDetailed shows above + migration and save details
	VerbosityDetailed
	// VerbosityDiagnostic shows above + timing and settings sources
	VerbosityDiagnostic
)

var verbosityNames = []string{"quiet", "normal", "detailed", "diagnostic"}

func (v Verbosity) String() string {
	if v >= 0 && int(v) < len(verbosityNames) {
		return verbosityNames[v]
	}
	return fmt.Sprintf("Verbosity(%d)", int(v))
}

// ParseVerbosity parses a verbosity name. The single letter forms q, n, d
// and diag are accepted as well.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "q":
		return VerbosityQuiet, nil
	case "normal", "n", "":
		return VerbosityNormal, nil
	case "detailed", "d":
		return VerbosityDetailed, nil
	case "diagnostic", "diag":
		return VerbosityDiagnostic, nil
	}
	return VerbosityNormal, fmt.Errorf("invalid verbosity %q (want quiet, normal, detailed or diagnostic)", s)
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

// Out returns the writer results are printed to.
func (c *Console) Out() io.Writer {
	return c.out
}

// ErrOut returns the writer errors are printed to.
func (c *Console) ErrOut() io.Writer {
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

// SetColors enables or disables color output. Enabling has no effect when
// the output is not a terminal.
func (c *Console) SetColors(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.colors = enabled && IsColorEnabled(c.out)
	if c.colors {
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

// Header writes a bold section title.
func (c *Console) Header(format string, a ...any) {
	c.colored(c.out, VerbosityQuiet, ColorHeader, format+"\n", a...)
}

// Success writes success message (green)
func (c *Console) Success(format string, a ...any) {
	c.colored(c.out, VerbosityNormal, ColorSuccess, format+"\n", a...)
}

// Error writes error message (red)
func (c *Console) Error(format string, a ...any) {
	c.colored(c.err, VerbosityQuiet, ColorError, "Error: "+format+"\n", a...)
}

// Warning writes warning message (yellow)
func (c *Console) Warning(format string, a ...any) {
	c.colored(c.err, VerbosityNormal, ColorWarning, "Warning: "+format+"\n", a...)
}

// Info writes info message (cyan)
func (c *Console) Info(format string, a ...any) {
	c.colored(c.out, VerbosityNormal, ColorInfo, format+"\n", a...)
}

// Debug writes debug message (white)
func (c *Console) Debug(format string, a ...any) {
	c.colored(c.err, VerbosityDiagnostic, ColorDebug, "[DEBUG] "+format+"\n", a...)
}

// Detail writes detailed message
func (c *Console) Detail(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verbosity >= VerbosityDetailed {
		fmt.Fprintf(c.out, format+"\n", a...)
	}
}

func (c *Console) colored(w io.Writer, min Verbosity, col *color.Color, format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.verbosity < min {
		return
	}
	if c.colors {
		_, _ = col.Fprintf(w, format, a...)
	} else {
		fmt.Fprintf(w, format, a...)
	}
}
