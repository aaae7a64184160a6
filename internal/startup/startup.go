package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/term"

	"media-runtime/internal/logging"
)

// stdinIsTerminal is a variable so tests can force either default.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// Config holds all runtime configuration.
type Config struct {
	// MediaDir is the directory playlist entries resolve against.
	MediaDir string

	// LibraryDir holds the media library database.
	LibraryDir string

	// Intf is the primary interface selector. It defaults to the
	// console on an interactive stdin and to empty otherwise, which
	// lets the resolver fall back across all registered interfaces.
	Intf string

	// ExtraIntf lists additional selectors, colon-separated in the
	// environment.
	ExtraIntf []string

	// WebAddr is the default listen address of the web interface.
	WebAddr string

	// TelnetPort is the default listen port of the telnet interface.
	TelnetPort string

	// ControlPasswordHash is the bcrypt hash gating the telnet and web
	// interfaces; empty disables the gates.
	ControlPasswordHash string

	// LogFile is the default path of the logger interface.
	LogFile string

	// Derived path of the library database file.
	LibraryPath string
}

// LoadConfig loads and validates configuration from environment
// variables, logging every effective setting.
func LoadConfig() (*Config, error) {
	printBanner()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	cfg := &Config{
		MediaDir:            getEnv("MEDIA_DIR", "/media"),
		LibraryDir:          getEnv("LIBRARY_DIR", "/library"),
		Intf:                getEnv("INTF", defaultIntf()),
		WebAddr:             getEnv("WEB_ADDR", ":8090"),
		TelnetPort:          getEnv("TELNET_PORT", "4212"),
		ControlPasswordHash: getEnv("CONTROL_PASSWORD", ""),
		LogFile:             getEnv("LOG_FILE", "media-runtime.log"),
	}

	if extra := getEnv("EXTRA_INTF", ""); extra != "" {
		for _, sel := range strings.Split(extra, ":") {
			if sel = strings.TrimSpace(sel); sel != "" {
				cfg.ExtraIntf = append(cfg.ExtraIntf, sel)
			}
		}
	}

	logging.Info("  MEDIA_DIR:        %s", cfg.MediaDir)
	logging.Info("  LIBRARY_DIR:      %s", cfg.LibraryDir)
	logging.Info("  INTF:             %q", cfg.Intf)
	logging.Info("  EXTRA_INTF:       %v", cfg.ExtraIntf)
	logging.Info("  WEB_ADDR:         %s", cfg.WebAddr)
	logging.Info("  TELNET_PORT:      %s", cfg.TelnetPort)
	logging.Info("  CONTROL_PASSWORD: %s", maskSecret(cfg.ControlPasswordHash))
	logging.Info("  LOG_FILE:         %s", cfg.LogFile)
	logging.Info("  LOG_LEVEL:        %s", logging.GetLevel())

	if err := ensureDir(cfg.LibraryDir); err != nil {
		return nil, fmt.Errorf("library directory: %w", err)
	}
	cfg.LibraryPath = filepath.Join(cfg.LibraryDir, "library.db")

	return cfg, nil
}

// LogFatal logs a fatal startup error and exits.
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// LogRuntimeStarted marks the end of startup.
func LogRuntimeStarted(elapsed time.Duration) {
	logging.Info("------------------------------------------------------------")
	logging.Info("Media runtime ready in %s", elapsed.Round(time.Millisecond))
	logging.Info("------------------------------------------------------------")
}

// LogShutdownInitiated marks the beginning of shutdown.
func LogShutdownInitiated(reason string) {
	logging.Info("Shutdown initiated (%s)", reason)
}

// LogShutdownStep logs one shutdown stage.
func LogShutdownStep(step string) {
	logging.Info("  %s...", step)
}

// LogShutdownComplete marks the end of shutdown.
func LogShutdownComplete() {
	logging.Info("Shutdown complete")
}

func printBanner() {
	logging.Info("media-runtime %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, BuildTime, GoVersion, runtime.GOOS, runtime.GOARCH)
}

func defaultIntf() string {
	if stdinIsTerminal() {
		return "rc,none"
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	return "(set)"
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dir, 0o755)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}
	return nil
}
