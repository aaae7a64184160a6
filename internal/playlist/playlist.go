package playlist

import (
	"fmt"
	"sync"

	"media-runtime/internal/library"
	"media-runtime/internal/logging"
	"media-runtime/internal/metrics"
)

// Item is one entry of the playlist.
type Item struct {
	Path  string `json:"path"`
	Title string `json:"title"`
}

// Status is a snapshot of the playlist state for control interfaces.
type Status struct {
	Playing bool  `json:"playing"`
	Index   int   `json:"index"`
	Count   int   `json:"count"`
	Current *Item `json:"current,omitempty"`
}

// Playlist is the process-wide shared playlist. It is created at most
// once per runtime context and shared by every control interface, so
// all methods are safe for concurrent use.
type Playlist struct {
	mu      sync.Mutex
	lib     *library.Library
	items   []Item
	current int
	playing bool
}

// New constructs the shared playlist, preloading items from the media
// library. lib may be nil, in which case the playlist is purely
// in-memory.
func New(lib *library.Library) (*Playlist, error) {
	p := &Playlist{lib: lib, current: -1}

	if lib != nil {
		stored, err := lib.Items()
		if err != nil {
			return nil, fmt.Errorf("failed to load playlist from library: %w", err)
		}
		for _, it := range stored {
			p.items = append(p.items, Item{Path: it.Path, Title: it.Title})
		}
	}

	metrics.PlaylistItems.Set(float64(len(p.items)))
	logging.Info("Playlist created with %d items", len(p.items))
	return p, nil
}

// Add appends an item and records it in the library. A library write
// failure is logged but does not reject the in-memory addition.
func (p *Playlist) Add(path, title string) {
	if title == "" {
		title = path
	}

	p.mu.Lock()
	p.items = append(p.items, Item{Path: path, Title: title})
	count := len(p.items)
	p.mu.Unlock()

	if p.lib != nil {
		if _, err := p.lib.Add(path, title); err != nil {
			logging.Warn("Playlist item %q not persisted: %v", path, err)
		}
	}

	metrics.PlaylistItems.Set(float64(count))
	metrics.PlaylistCommandsTotal.WithLabelValues("add").Inc()
}

// Items returns a copy of the playlist contents.
func (p *Playlist) Items() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of items.
func (p *Playlist) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}

// Play starts playback at the current position, or at the first item if
// nothing was selected yet.
func (p *Playlist) Play() {
	p.mu.Lock()
	if p.current < 0 && len(p.items) > 0 {
		p.current = 0
	}
	p.playing = p.current >= 0
	p.mu.Unlock()
	metrics.PlaylistCommandsTotal.WithLabelValues("play").Inc()
}

// Pause stops playback without moving the cursor.
func (p *Playlist) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
	metrics.PlaylistCommandsTotal.WithLabelValues("pause").Inc()
}

// Next advances to the following item. Returns the new current item, or
// false if the end of the playlist was reached.
func (p *Playlist) Next() (Item, bool) {
	metrics.PlaylistCommandsTotal.WithLabelValues("next").Inc()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current+1 >= len(p.items) {
		return Item{}, false
	}
	p.current++
	return p.items[p.current], true
}

// Prev moves back to the preceding item. Returns the new current item,
// or false if already at the start.
func (p *Playlist) Prev() (Item, bool) {
	metrics.PlaylistCommandsTotal.WithLabelValues("prev").Inc()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current <= 0 {
		return Item{}, false
	}
	p.current--
	return p.items[p.current], true
}

// Current returns the item under the cursor.
func (p *Playlist) Current() (Item, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < 0 || p.current >= len(p.items) {
		return Item{}, false
	}
	return p.items[p.current], true
}

// Status returns a snapshot of the playlist state.
func (p *Playlist) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Status{
		Playing: p.playing,
		Index:   p.current,
		Count:   len(p.items),
	}
	if p.current >= 0 && p.current < len(p.items) {
		it := p.items[p.current]
		s.Current = &it
	}
	return s
}
