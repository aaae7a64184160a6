package modules

import (
	"errors"
	"testing"

	"media-runtime/internal/chain"
)

type stubInstance struct {
	name    string
	stopped bool
}

func (s *stubInstance) Stop() { s.stopped = true }

func factory(name string, score int, err error) *Factory {
	return &Factory{
		Name:       name,
		Capability: "interface",
		Score:      score,
		New: func(Host, *chain.Chain) (Instance, error) {
			if err != nil {
				return nil, err
			}
			return &stubInstance{name: name}, nil
		},
	}
}

func TestResolveByName(t *testing.T) {
	r := NewRegistry()
	r.Register(factory("rc", 10, nil))
	r.Register(factory("telnet", 20, nil))

	inst, name, err := r.Resolve(nil, "interface", "rc", nil)
	if err != nil {
		t.Fatalf("Resolve(rc) error: %v", err)
	}
	if name != "rc" {
		t.Errorf("resolved name = %q, want rc", name)
	}
	if inst.(*stubInstance).name != "rc" {
		t.Errorf("resolved instance is %q, want rc", inst.(*stubInstance).name)
	}
}

func TestResolveNamedIsStrict(t *testing.T) {
	r := NewRegistry()
	r.Register(factory("telnet", 20, nil))

	_, _, err := r.Resolve(nil, "interface", "bogus", nil)
	if !errors.Is(err, ErrNoModule) {
		t.Fatalf("Resolve(bogus) = %v, want ErrNoModule", err)
	}
}

func TestResolveFallbackByScore(t *testing.T) {
	r := NewRegistry()
	r.Register(factory("low", 1, nil))
	r.Register(factory("high", 100, nil))

	_, name, err := r.Resolve(nil, "interface", "", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if name != "high" {
		t.Errorf("fallback resolved %q, want high", name)
	}
}

func TestResolveSkipsFailingFactory(t *testing.T) {
	r := NewRegistry()
	r.Register(factory("broken", 100, errors.New("port in use")))
	r.Register(factory("working", 1, nil))

	_, name, err := r.Resolve(nil, "interface", "", nil)
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if name != "working" {
		t.Errorf("resolved %q, want working after broken declined", name)
	}
}

func TestResolveAllCandidatesFail(t *testing.T) {
	r := NewRegistry()
	r.Register(factory("broken", 1, errors.New("no tty")))

	_, _, err := r.Resolve(nil, "interface", "broken", nil)
	if !errors.Is(err, ErrNoModule) {
		t.Fatalf("Resolve(broken) = %v, want ErrNoModule", err)
	}
}

func TestResolveUnknownCapability(t *testing.T) {
	r := NewRegistry()
	_, _, err := r.Resolve(nil, "decoder", "", nil)
	if !errors.Is(err, ErrNoModule) {
		t.Fatalf("Resolve(decoder) = %v, want ErrNoModule", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicate registration did not panic")
		}
	}()

	r := NewRegistry()
	r.Register(factory("rc", 10, nil))
	r.Register(factory("rc", 10, nil))
}

func TestNames(t *testing.T) {
	r := NewRegistry()
	r.Register(factory("rc", 10, nil))
	r.Register(factory("telnet", 20, nil))

	names := r.Names("interface")
	if len(names) != 2 || names[0] != "rc" || names[1] != "telnet" {
		t.Errorf("Names = %v, want [rc telnet]", names)
	}
}
