// Package modules implements the capability/name resolver for pluggable
// runtime modules.
//
// Implementations register a Factory under a capability (for control
// interfaces, "interface") and an implementation name. Resolution probes
// candidate factories in order until one successfully starts: a named
// request is strict and considers only that implementation, while an
// unnamed request falls back across every registered implementation by
// descending score.
//
// The Host interface defines the contract between running modules and
// the runtime that owns them: access to the shared playlist, the add-
// interface choice list, and fire-and-forget creation of further
// interfaces.
package modules
