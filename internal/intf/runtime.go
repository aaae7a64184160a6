package intf

import (
	"errors"
	"fmt"
	"sync"

	"media-runtime/internal/chain"
	"media-runtime/internal/logging"
	"media-runtime/internal/metrics"
	"media-runtime/internal/modules"
	"media-runtime/internal/playlist"
)

// Capability is the module slot control interfaces register under.
const Capability = "interface"

// ErrRuntimeClosed is returned by Create after DestroyAll has run.
var ErrRuntimeClosed = errors.New("interface runtime is closed")

// Interface is one running control interface. It is owned exclusively
// by the runtime registry from creation until teardown stops it.
type Interface struct {
	name   string
	module modules.Instance
	cfg    *chain.Chain
}

// Name returns the resolved implementation name.
func (i *Interface) Name() string { return i.name }

// Options configures a Runtime.
type Options struct {
	// Resolver locates and starts interface modules. Required.
	Resolver *modules.Registry

	// NewPlaylist constructs the shared playlist on first demand.
	// Required.
	NewPlaylist func() (*playlist.Playlist, error)

	// StdinIsTerminal overrides the interactive-stdin probe used to
	// gate the console choice. Nil means probe the real stdin.
	StdinIsTerminal func() bool
}

// Runtime owns every piece of shared interface-lifecycle state: the
// registry of running interfaces, the lazily created playlist and the
// single lock guarding both. One Runtime exists per process context;
// the shared lock couples the registry and the playlist reference for
// simplicity, not because they are related.
type Runtime struct {
	resolver    *modules.Registry
	newPlaylist func() (*playlist.Playlist, error)
	selector    *Selector

	mu     sync.Mutex
	intfs  []*Interface // index len-1 is the newest; traversal runs newest-first
	pl     *playlist.Playlist
	closed bool
}

// NewRuntime creates the runtime context and evaluates the selector
// choice list once against the current environment.
func NewRuntime(opts Options) *Runtime {
	if opts.Resolver == nil {
		panic("intf: Options.Resolver is required")
	}
	if opts.NewPlaylist == nil {
		panic("intf: Options.NewPlaylist is required")
	}

	r := &Runtime{
		resolver:    opts.Resolver,
		newPlaylist: opts.NewPlaylist,
	}
	r.selector = newSelector(r, opts.StdinIsTerminal)
	return r
}

// Create resolves the selector into an interface module, starts it and
// registers the resulting interface.
//
// Module resolution runs before the lock is taken, so slow constructors
// never stall unrelated registry or playlist operations. On resolution
// failure the registry is left untouched and the error is returned to
// the caller. After DestroyAll, Create fails with ErrRuntimeClosed and
// stops whatever instance resolution may already have started.
func (r *Runtime) Create(selector string) error {
	name, cfg := chain.Parse(selector)

	inst, resolved, err := r.resolver.Resolve(r, Capability, name, cfg)
	if err != nil {
		logging.Error("No suitable interface module for %q: %v", selector, err)
		metrics.IntfCreateFailuresTotal.WithLabelValues("resolution").Inc()
		return fmt.Errorf("interface %q: %w", selector, err)
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		inst.Stop()
		metrics.IntfCreateFailuresTotal.WithLabelValues("closed").Inc()
		return fmt.Errorf("interface %q: %w", selector, ErrRuntimeClosed)
	}
	r.intfs = append(r.intfs, &Interface{name: resolved, module: inst, cfg: cfg})
	r.mu.Unlock()

	metrics.IntfCreatedTotal.WithLabelValues(resolved).Inc()
	metrics.IntfActive.Inc()
	logging.Info("Interface %q started (selector %q)", resolved, selector)
	return nil
}

// DestroyAll stops and releases every registered interface and closes
// the runtime.
//
// The registry is detached under the lock, then each interface from the
// snapshot is stopped outside it, newest first, exactly once. Any
// interface registered before the snapshot is collected; once the
// runtime is closed, later Create calls fail deterministically instead
// of leaking unreachable interfaces.
func (r *Runtime) DestroyAll() {
	r.mu.Lock()
	snapshot := r.intfs
	r.intfs = nil
	r.closed = true
	r.mu.Unlock()

	for i := len(snapshot) - 1; i >= 0; i-- {
		it := snapshot[i]
		logging.Debug("Stopping interface %q", it.name)
		it.module.Stop()
		it.cfg = nil
		metrics.IntfDestroyedTotal.Inc()
		metrics.IntfActive.Dec()
	}

	if len(snapshot) > 0 {
		logging.Info("Stopped %d interface(s)", len(snapshot))
	}
}

// Playlist returns the shared playlist, constructing it on first
// demand. The constructor runs at most once under concurrency; every
// caller observes the same reference. Construction keeps the lock for
// its whole duration, stalling concurrent Create and DestroyAll calls,
// which is accepted since construction is expected to be quick.
//
// Returns nil if construction failed; callers that cannot tolerate a
// missing playlist should use MustPlaylist.
func (r *Runtime) Playlist() *playlist.Playlist {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pl == nil {
		pl, err := r.newPlaylist()
		if err != nil || pl == nil {
			logging.Error("Playlist creation failed: %v", err)
			return nil
		}
		r.pl = pl
	}
	return r.pl
}

// MustPlaylist returns the shared playlist and treats a construction
// failure as unrecoverable.
func (r *Runtime) MustPlaylist() *playlist.Playlist {
	pl := r.Playlist()
	if pl == nil {
		panic("intf: playlist unavailable")
	}
	return pl
}

// AddInterface is the selection-event entry point: it delivers an
// explicit creation request to the runtime and swallows the outcome.
// Failures are logged as warnings, never returned, so the surface that
// triggered the selection always observes the request as handled. It
// must be called with no runtime lock held, which every caller in this
// package satisfies since the lock never extends past a single
// operation.
func (r *Runtime) AddInterface(selector string) {
	r.handleAdd(addRequest{Selector: selector})
}

// InterfaceChoices exposes the selector's filtered choice list to
// running modules.
func (r *Runtime) InterfaceChoices() []modules.SelectorChoice {
	return r.selector.Choices()
}

// Selector returns the runtime's "add interface" selection point.
func (r *Runtime) Selector() *Selector {
	return r.selector
}

// ActiveInterfaces returns the names of the registered interfaces in
// traversal order (newest first).
func (r *Runtime) ActiveInterfaces() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.intfs))
	for i := len(r.intfs) - 1; i >= 0; i-- {
		names = append(names, r.intfs[i].name)
	}
	return names
}

// addRequest is the event value carried from a selector Set to the
// creation routine.
type addRequest struct {
	Selector string
}

func (r *Runtime) handleAdd(req addRequest) {
	if err := r.Create(req.Selector); err != nil {
		logging.Warn("Interface %q initialization failed: %v", req.Selector, err)
	}
}

var _ modules.Host = (*Runtime)(nil)
