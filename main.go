package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"media-runtime/internal/control/console"
	"media-runtime/internal/control/gestures"
	"media-runtime/internal/control/logfile"
	"media-runtime/internal/control/telnet"
	"media-runtime/internal/control/web"
	"media-runtime/internal/intf"
	"media-runtime/internal/library"
	"media-runtime/internal/logging"
	"media-runtime/internal/modules"
	"media-runtime/internal/playlist"
	"media-runtime/internal/startup"
)

func main() {
	startTime := time.Now()

	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	lib, err := library.Open(config.LibraryPath)
	if err != nil {
		startup.LogFatal("Failed to open media library: %v", err)
	}

	rt := intf.NewRuntime(intf.Options{
		Resolver: newModuleRegistry(config),
		NewPlaylist: func() (*playlist.Playlist, error) {
			return playlist.New(lib)
		},
	})

	// Start the configured interfaces. The primary selector may be
	// empty, which resolves to the best available interface.
	if err := rt.Create(config.Intf); err != nil {
		startup.LogFatal("Failed to start primary interface: %v", err)
	}
	for _, sel := range config.ExtraIntf {
		if err := rt.Create(sel); err != nil {
			logging.Warn("Extra interface %q not started: %v", sel, err)
		}
	}

	startup.LogRuntimeStarted(time.Since(startTime))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	startup.LogShutdownStep("Stopping interfaces")
	rt.DestroyAll()

	startup.LogShutdownStep("Closing media library")
	if err := lib.Close(); err != nil {
		logging.Warn("Library close error: %v", err)
	}

	startup.LogShutdownComplete()
}

// newModuleRegistry registers the builtin interface implementations
// with their environment-derived defaults.
func newModuleRegistry(config *startup.Config) *modules.Registry {
	reg := modules.NewRegistry()
	reg.Register(console.Module())
	reg.Register(telnet.Module(telnet.Defaults{
		Port:         config.TelnetPort,
		PasswordHash: config.ControlPasswordHash,
	}))
	reg.Register(web.Module(web.Defaults{
		Addr:         config.WebAddr,
		PasswordHash: config.ControlPasswordHash,
	}))
	reg.Register(logfile.Module(logfile.Defaults{Path: config.LogFile}))
	reg.Register(gestures.Module())
	return reg
}
