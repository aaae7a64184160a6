package modules

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"media-runtime/internal/chain"
	"media-runtime/internal/logging"
	"media-runtime/internal/playlist"
)

// ErrNoModule is returned by Resolve when no registered factory
// satisfies the requested capability and name.
var ErrNoModule = errors.New("no suitable module")

// Instance is a running module. The caller that resolved it owns it
// exclusively and must call Stop exactly once.
type Instance interface {
	Stop()
}

// SelectorChoice is one entry of the runtime's "add interface" choice
// list as exposed to running modules.
type SelectorChoice struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selector string `json:"selector"`
}

// Host is the narrow view of the runtime handed to module factories and
// running instances. It is the only way a module reaches shared runtime
// state.
type Host interface {
	// Playlist returns the shared playlist, creating it on first use.
	// Returns nil only if playlist construction failed.
	Playlist() *playlist.Playlist

	// MustPlaylist is Playlist but treats a missing playlist as an
	// unrecoverable condition.
	MustPlaylist() *playlist.Playlist

	// InterfaceChoices lists the selectable interface additions.
	InterfaceChoices() []SelectorChoice

	// AddInterface requests creation of another interface. The request
	// is fire-and-forget: failures are logged by the runtime, never
	// returned here.
	AddInterface(selector string)

	// ActiveInterfaces lists the names of the currently registered
	// interfaces in registry traversal order.
	ActiveInterfaces() []string
}

// Factory describes one registered module implementation.
type Factory struct {
	// Name is the implementation name a selector refers to, e.g. "rc".
	Name string

	// Capability is the slot this module fills, e.g. "interface".
	Capability string

	// Score orders candidates when resolution runs without a preferred
	// name; higher wins.
	Score int

	// New builds and starts an instance. Returning an error makes the
	// resolver skip this factory and probe the next candidate.
	New func(host Host, cfg *chain.Chain) (Instance, error)
}

// Registry holds module factories keyed by capability. A Registry is
// instance-scoped; the runtime owns one and tests build their own.
type Registry struct {
	mu        sync.RWMutex
	factories map[string][]*Factory
}

// NewRegistry creates an empty module registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string][]*Factory)}
}

// Register adds a factory. Registering two factories with the same
// capability and name is a programming error and panics.
func (r *Registry) Register(f *Factory) {
	if f.Name == "" || f.Capability == "" || f.New == nil {
		panic("modules: factory must have a name, a capability and a constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.factories[f.Capability] {
		if existing.Name == f.Name {
			panic(fmt.Sprintf("modules: %s/%s already registered", f.Capability, f.Name))
		}
	}
	logging.Debug("Registered module %s/%s (score %d)", f.Capability, f.Name, f.Score)
	r.factories[f.Capability] = append(r.factories[f.Capability], f)
}

// Resolve finds, builds and starts a module for the given capability.
//
// With a non-empty name only factories carrying exactly that name are
// candidates. With an empty name every factory of the capability is a
// candidate, probed in descending score order. A factory whose New
// returns an error is skipped and the next candidate is probed.
//
// Probing may block in module constructors; callers must not hold locks
// across Resolve.
func (r *Registry) Resolve(host Host, capability, name string, cfg *chain.Chain) (Instance, string, error) {
	candidates := r.candidates(capability, name)
	if len(candidates) == 0 {
		return nil, "", fmt.Errorf("%w for capability %q name %q", ErrNoModule, capability, name)
	}

	var lastErr error
	for _, f := range candidates {
		inst, err := f.New(host, cfg)
		if err != nil {
			logging.Debug("Module %s/%s declined: %v", capability, f.Name, err)
			lastErr = err
			continue
		}
		return inst, f.Name, nil
	}

	if lastErr != nil {
		return nil, "", fmt.Errorf("%w for capability %q name %q: %v", ErrNoModule, capability, name, lastErr)
	}
	return nil, "", fmt.Errorf("%w for capability %q name %q", ErrNoModule, capability, name)
}

// Names returns the registered implementation names for a capability,
// in registration order.
func (r *Registry) Names(capability string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories[capability]))
	for _, f := range r.factories[capability] {
		names = append(names, f.Name)
	}
	return names
}

func (r *Registry) candidates(capability, name string) []*Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.factories[capability]
	if name != "" {
		for _, f := range all {
			if f.Name == name {
				return []*Factory{f}
			}
		}
		return nil
	}

	out := make([]*Factory, len(all))
	copy(out, all)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
