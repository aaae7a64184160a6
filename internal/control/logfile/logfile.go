package logfile

import (
	"fmt"
	"os"

	"media-runtime/internal/chain"
	"media-runtime/internal/intf"
	"media-runtime/internal/logging"
	"media-runtime/internal/modules"
)

const defaultPath = "media-runtime.log"

// Defaults carries the environment-derived log file path; the chain
// option "file" overrides it.
type Defaults struct {
	Path string
}

// Logger is the "logger" control interface: it mirrors the runtime's
// log stream to a file for the lifetime of the interface.
type Logger struct {
	file *os.File
}

// Module returns the factory for the logger interface. Opening the log
// file happens inside the factory, so an unwritable path fails
// resolution instead of producing a silent interface.
func Module(defaults Defaults) *modules.Factory {
	return &modules.Factory{
		Name:       "logger",
		Capability: intf.Capability,
		Score:      20,
		New: func(_ modules.Host, cfg *chain.Chain) (modules.Instance, error) {
			path := cfg.Option("file", defaults.Path)
			if path == "" {
				path = defaultPath
			}

			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("logger open failed: %w", err)
			}

			logging.AddSink(f)
			logging.Info("Logging to %s", path)
			return &Logger{file: f}, nil
		},
	}
}

// Stop detaches the sink and closes the file.
func (l *Logger) Stop() {
	logging.RemoveSink(l.file)
	if err := l.file.Close(); err != nil {
		logging.Warn("Log file close: %v", err)
	}
}
