package gestures

import (
	"strings"
	"sync"

	"media-runtime/internal/chain"
	"media-runtime/internal/intf"
	"media-runtime/internal/logging"
	"media-runtime/internal/modules"
)

// Direction is one pointer movement of a gesture.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Gestures is the pointer-gesture control interface. Event sources feed
// it Move calls while a gesture is in progress and End when the pointer
// is released; the accumulated pattern maps to a playlist action.
type Gestures struct {
	host modules.Host

	mu      sync.Mutex
	pattern []Direction
	stopped bool
}

// Module returns the factory for the gestures interface.
func Module() *modules.Factory {
	return &modules.Factory{
		Name:       "gestures",
		Capability: intf.Capability,
		Score:      10,
		New: func(host modules.Host, _ *chain.Chain) (modules.Instance, error) {
			return &Gestures{host: host}, nil
		},
	}
}

// Move records one movement. Repeating the previous direction extends
// the current stroke and is collapsed into it.
func (g *Gestures) Move(dir Direction) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stopped {
		return
	}
	if n := len(g.pattern); n > 0 && g.pattern[n-1] == dir {
		return
	}
	g.pattern = append(g.pattern, dir)
}

// End completes the gesture, performs the mapped action and resets the
// pattern. Unrecognized patterns are dropped with a debug log.
func (g *Gestures) End() {
	g.mu.Lock()
	pattern := g.pattern
	g.pattern = nil
	stopped := g.stopped
	g.mu.Unlock()

	if stopped || len(pattern) == 0 {
		return
	}

	pl := g.host.MustPlaylist()
	switch key(pattern) {
	case "right":
		pl.Next()
	case "left":
		pl.Prev()
	case "up":
		pl.Play()
	case "down":
		pl.Pause()
	default:
		logging.Debug("Unmapped gesture %q", key(pattern))
	}
}

// Stop makes further gesture events no-ops.
func (g *Gestures) Stop() {
	g.mu.Lock()
	g.stopped = true
	g.pattern = nil
	g.mu.Unlock()
}

func key(pattern []Direction) string {
	parts := make([]string, len(pattern))
	for i, d := range pattern {
		parts[i] = string(d)
	}
	return strings.Join(parts, "-")
}
