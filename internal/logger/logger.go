package logger

import (
	"io"
	"os"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// out is where every log line goes. Logs share the terminal with the report,
// so they are kept on stderr and never mixed into the statistics on stdout.
var out io.Writer = os.Stderr

var (
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgHiMagenta)
	errorColor = color.New(color.FgRed)
	debugColor = color.New(color.FgCyan)
)

// Info logs informational messages in green color.
func Info(format string, a ...any) { _, _ = infoColor.Fprintf(out, format, a...) }

// Warn logs warning messages in bright magenta color.
// Used for recoverable problems such as an unreadable state file.
func Warn(format string, a ...any) { _, _ = warnColor.Fprintf(out, format, a...) }

// Error logs error messages in red color.
func Error(format string, a ...any) { _, _ = errorColor.Fprintf(out, format, a...) }

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is reassigned by Init; the zero value is the no-op so packages can log
// before the CLI has parsed its flags (and in tests).
var Debug = func(format string, a ...any) {}

// Init initializes the logger package.
// Parameters:
// - enableDebug: turn Debug messages on or off.
// - noColor: strip ANSI colors from every level, e.g. when stderr is not a terminal.
func Init(enableDebug, noColor bool) {
	color.NoColor = noColor

	if enableDebug {
		Debug = func(format string, a ...any) { _, _ = debugColor.Fprintf(out, format, a...) }
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetOutput redirects all log levels to w and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}
