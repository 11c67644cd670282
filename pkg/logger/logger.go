package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var (
	verboseMode bool
	base        *log.Logger
)

func init() {
	// Diagnostics go to stderr so stdout stays clean for the generated commands.
	base = log.NewWithOptions(os.Stderr, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: time.TimeOnly,
	})
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(verbose bool) {
	verboseMode = verbose
	if verbose {
		base.SetLevel(log.DebugLevel)
		base.SetReportTimestamp(true)
		return
	}
	base.SetLevel(log.InfoLevel)
	base.SetReportTimestamp(false)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return verboseMode
}

// SetOutput redirects all log output, mostly useful in tests.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// Debugf logs a formatted debug message if verbose mode is enabled.
func Debugf(format string, v ...interface{}) {
	base.Debugf(format, v...)
}

// Infof logs a formatted informational message.
func Infof(format string, v ...interface{}) {
	base.Infof(format, v...)
}

// Warnf logs a formatted warning.
func Warnf(format string, v ...interface{}) {
	base.Warnf(format, v...)
}

// Errorf logs a formatted error message.
func Errorf(format string, v ...interface{}) {
	base.Errorf(format, v...)
}
