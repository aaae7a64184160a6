package gestures

import (
	"testing"

	"media-runtime/internal/modules"
	"media-runtime/internal/playlist"
)

type fakeHost struct {
	pl *playlist.Playlist
}

func (h *fakeHost) Playlist() *playlist.Playlist               { return h.pl }
func (h *fakeHost) MustPlaylist() *playlist.Playlist           { return h.pl }
func (h *fakeHost) AddInterface(string)                        {}
func (h *fakeHost) ActiveInterfaces() []string                 { return nil }
func (h *fakeHost) InterfaceChoices() []modules.SelectorChoice { return nil }

func newTestGestures(t *testing.T) (*Gestures, *playlist.Playlist) {
	t.Helper()
	pl, err := playlist.New(nil)
	if err != nil {
		t.Fatalf("playlist.New: %v", err)
	}
	pl.Add("/media/a.mp4", "a")
	pl.Add("/media/b.mp4", "b")

	inst, err := Module().New(&fakeHost{pl: pl}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return inst.(*Gestures), pl
}

func TestGestureActions(t *testing.T) {
	g, pl := newTestGestures(t)

	g.Move(Up)
	g.End()
	if !pl.Status().Playing {
		t.Error("up gesture did not start playback")
	}

	g.Move(Right)
	g.End()
	if cur, _ := pl.Current(); cur.Title != "b" {
		t.Errorf("right gesture current = %q, want b", cur.Title)
	}

	g.Move(Left)
	g.End()
	if cur, _ := pl.Current(); cur.Title != "a" {
		t.Errorf("left gesture current = %q, want a", cur.Title)
	}

	g.Move(Down)
	g.End()
	if pl.Status().Playing {
		t.Error("down gesture did not pause")
	}
}

func TestRepeatedDirectionCollapses(t *testing.T) {
	g, pl := newTestGestures(t)
	pl.Play()

	g.Move(Right)
	g.Move(Right)
	g.Move(Right)
	g.End()

	if cur, _ := pl.Current(); cur.Title != "b" {
		t.Errorf("collapsed stroke moved to %q, want single advance to b", cur.Title)
	}
}

func TestUnmappedGestureIsDropped(t *testing.T) {
	g, pl := newTestGestures(t)
	pl.Play()
	before := pl.Status()

	g.Move(Up)
	g.Move(Left)
	g.Move(Down)
	g.End()

	after := pl.Status()
	if before.Index != after.Index || before.Playing != after.Playing {
		t.Errorf("unmapped gesture changed state: %+v → %+v", before, after)
	}
}

func TestStoppedGestureIgnoresEvents(t *testing.T) {
	g, pl := newTestGestures(t)
	pl.Play()
	g.Stop()

	g.Move(Right)
	g.End()

	if cur, _ := pl.Current(); cur.Title != "a" {
		t.Errorf("stopped interface still acted, current = %q", cur.Title)
	}
}
