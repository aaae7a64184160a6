package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is the debug log level
	LevelDebug Level = iota
	// LevelInfo is the info log level
	LevelInfo
	// LevelWarn is the warning log level
	LevelWarn
	// LevelError is the error log level
	LevelError
)

var (
	currentLevel Level
	levelOnce    sync.Once

	// Sinks receive a copy of every emitted message regardless of level.
	// The logger interface module uses this to mirror the runtime log
	// stream to a file.
	sinkMu sync.RWMutex
	sinks  []io.Writer
)

// initLevel initializes the log level from environment variables.
func initLevel() {
	levelOnce.Do(func() {
		if debug := os.Getenv("DEBUG"); debug != "" {
			switch strings.ToLower(debug) {
			case "1", "true", "yes", "on":
				currentLevel = LevelDebug
				return
			}
		}

		switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
		case "debug":
			currentLevel = LevelDebug
		case "info":
			currentLevel = LevelInfo
		case "warn", "warning":
			currentLevel = LevelWarn
		case "error":
			currentLevel = LevelError
		default:
			currentLevel = LevelInfo
		}
	})
}

// GetLevel returns the current log level.
func GetLevel() Level {
	initLevel()
	return currentLevel
}

// IsDebugEnabled returns true if debug logging is enabled.
func IsDebugEnabled() bool {
	return GetLevel() <= LevelDebug
}

// AddSink registers an additional writer that receives every emitted
// message. Safe for concurrent use.
func AddSink(w io.Writer) {
	sinkMu.Lock()
	sinks = append(sinks, w)
	sinkMu.Unlock()
}

// RemoveSink detaches a previously registered writer. Removing a writer
// that was never added is a no-op.
func RemoveSink(w io.Writer) {
	sinkMu.Lock()
	for i, s := range sinks {
		if s == w {
			sinks = append(sinks[:i], sinks[i+1:]...)
			break
		}
	}
	sinkMu.Unlock()
}

func emit(tag, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("%s %s", tag, msg)

	sinkMu.RLock()
	for _, s := range sinks {
		fmt.Fprintf(s, "%s %s %s\n", time.Now().Format("2006/01/02 15:04:05"), tag, msg)
	}
	sinkMu.RUnlock()
}

// Debug logs a debug message (only if DEBUG=true or LOG_LEVEL=debug).
func Debug(format string, args ...interface{}) {
	if GetLevel() <= LevelDebug {
		emit("[DEBUG]", format, args...)
	}
}

// Info logs an info message.
func Info(format string, args ...interface{}) {
	if GetLevel() <= LevelInfo {
		emit("[INFO]", format, args...)
	}
}

// Warn logs a warning message.
func Warn(format string, args ...interface{}) {
	if GetLevel() <= LevelWarn {
		emit("[WARN]", format, args...)
	}
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	if GetLevel() <= LevelError {
		emit("[ERROR]", format, args...)
	}
}

// Fatal logs an error message and exits.
func Fatal(format string, args ...interface{}) {
	log.Fatalf("[FATAL] "+format, args...)
}

// Printf is a pass-through for messages that should always print.
func Printf(format string, args ...interface{}) {
	emit("", format, args...)
}

// String returns the string representation of a log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}
