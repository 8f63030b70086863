package config

import (
	"io"
	"log"
)

// LogLevel controls diagnostics verbosity.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel = LogLevelInfo
	logger   = log.New(io.Discard, "", log.LstdFlags)
)

// SetLogOutput points the diagnostics sink at w, normally the log file the
// TUI opens at startup. Until called, diagnostics are discarded; a TUI must
// never write to stdout.
func SetLogOutput(w io.Writer) {
	logger = log.New(w, "", log.LstdFlags)
}

// SetVerbose enables debug logging.
func SetVerbose(verbose bool) {
	if verbose {
		logLevel = LogLevelDebug
	} else {
		logLevel = LogLevelInfo
	}
}

// LogError records a diagnostics error. Best-effort failures (assist,
// deep-think, customer lookup) land here and nowhere else.
func LogError(format string, args ...any) {
	if logLevel >= LogLevelError {
		logger.Printf("[ERROR] "+format, args...)
	}
}

// LogWarn records a diagnostics warning.
func LogWarn(format string, args ...any) {
	if logLevel >= LogLevelWarn {
		logger.Printf("[WARN] "+format, args...)
	}
}

// LogInfo records a diagnostics note.
func LogInfo(format string, args ...any) {
	if logLevel >= LogLevelInfo {
		logger.Printf("[INFO] "+format, args...)
	}
}

// LogDebug records verbose diagnostics.
func LogDebug(format string, args ...any) {
	if logLevel >= LogLevelDebug {
		logger.Printf("[DEBUG] "+format, args...)
	}
}
