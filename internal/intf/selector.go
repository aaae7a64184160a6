package intf

import (
	"os"

	"golang.org/x/term"

	"media-runtime/internal/modules"
)

// The selector's external surface: a named, listable, settable
// selection point.
const (
	SelectorName  = "intf-add"
	SelectorTitle = "Add Interface"
)

// choiceSpec is one candidate of the declarative choice table. The
// availability predicate gates enumeration only; a selector string can
// always be passed to Create directly.
type choiceSpec struct {
	key       string
	label     string
	selector  string
	available func() bool
}

func always() bool { return true }

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Selector is the runtime's "add interface" choice point. Its choice
// list is computed once at runtime construction; setting it requests
// creation of the matching interface through the registry.
type Selector struct {
	rt      *Runtime
	choices []modules.SelectorChoice
}

// newSelector evaluates the choice table against the current
// environment. isTerminal overrides the console predicate when non-nil.
func newSelector(rt *Runtime, isTerminal func() bool) *Selector {
	if isTerminal == nil {
		isTerminal = stdinIsTerminal
	}

	table := []choiceSpec{
		{key: "console", label: "Console", selector: "rc,none", available: isTerminal},
		{key: "telnet", label: "Telnet", selector: "telnet,none", available: always},
		{key: "web", label: "Web", selector: "http,none", available: always},
		{key: "debug-log", label: "Debug logging", selector: "logger,none", available: always},
		{key: "gestures", label: "Mouse Gestures", selector: "gestures,none", available: always},
	}

	s := &Selector{rt: rt}
	for _, c := range table {
		if !c.available() {
			continue
		}
		s.choices = append(s.choices, modules.SelectorChoice{
			Key:      c.key,
			Label:    c.label,
			Selector: c.selector,
		})
	}
	return s
}

// Name returns the selection point's identifier.
func (s *Selector) Name() string { return SelectorName }

// Title returns the human-readable title.
func (s *Selector) Title() string { return SelectorTitle }

// Choices returns the exposed choices. The slice is shared; callers
// must not modify it.
func (s *Selector) Choices() []modules.SelectorChoice {
	return s.choices
}

// Set requests creation of the interface named by value, which need not
// be one of the exposed choices. The act of requesting always succeeds:
// creation failures are logged by the runtime and never surface here.
func (s *Selector) Set(value string) error {
	s.rt.AddInterface(value)
	return nil
}
