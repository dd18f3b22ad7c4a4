package logger

import (
	"io"
	"log"
	"os"
)

// Logger holds the logging configuration
type Logger struct {
	debugEnabled bool
}

var defaultLogger = &Logger{
	debugEnabled: false,
}

// alwaysLogger writes warnings and errors to stderr unconditionally
// (spec §7: recoverable conditions are "corrected and logged at warn
// level" regardless of --debug). Debug/Info stay gated behind the
// global log package the way the teacher's logger always worked.
var alwaysLogger = log.New(os.Stderr, "", log.LstdFlags)

// SetDebugMode enables or disables debug logging globally
func SetDebugMode(enabled bool) {
	defaultLogger.debugEnabled = enabled

	if !enabled {
		// Disable all log output by default
		log.SetOutput(io.Discard)
	} else {
		// Enable log output to stderr when debug is on
		log.SetOutput(os.Stderr)
	}
}

// IsDebugEnabled returns whether debug logging is enabled
func IsDebugEnabled() bool {
	return defaultLogger.debugEnabled
}

// Debug logs a message only if debug mode is enabled
func Debug(format string, args ...interface{}) {
	if defaultLogger.debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// Info logs an info message only if debug mode is enabled
func Info(format string, args ...interface{}) {
	if defaultLogger.debugEnabled {
		log.Printf("[INFO] "+format, args...)
	}
}

// Error always logs, regardless of debug mode: errors terminate a run
// and the operator needs to see them without having passed --debug.
func Error(format string, args ...interface{}) {
	alwaysLogger.Printf("[ERROR] "+format, args...)
}

// Warn always logs, regardless of debug mode: spec §7's auto-corrected
// conditions (clamped max_slot, coerced epoch boundaries) are "warned,
// not failed" and must stay visible without --debug.
func Warn(format string, args ...interface{}) {
	alwaysLogger.Printf("[WARN] "+format, args...)
}
