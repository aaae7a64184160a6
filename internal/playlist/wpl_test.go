package playlist

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleWPL = `<?xml version="1.0"?>
<smil>
  <head><title>Test List</title></head>
  <body>
    <seq>
      <media src="present.mp4"/>
      <media src="C:\somewhere\missing.mp4"/>
    </seq>
  </body>
</smil>`

func TestLoadWPL(t *testing.T) {
	dir := t.TempDir()
	wplPath := filepath.Join(dir, "list.wpl")
	if err := os.WriteFile(wplPath, []byte(sampleWPL), 0o644); err != nil {
		t.Fatalf("write wpl: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "present.mp4"), nil, 0o644); err != nil {
		t.Fatalf("write media: %v", err)
	}

	p, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	n, err := p.LoadWPL(wplPath, dir)
	if err != nil {
		t.Fatalf("LoadWPL: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d items, want 2", n)
	}

	items := p.Items()
	if items[0].Path != filepath.Join(dir, "present.mp4") {
		t.Errorf("existing entry resolved to %q", items[0].Path)
	}
	if items[1].Path != "missing.mp4" {
		t.Errorf("missing entry should fall back to filename, got %q", items[1].Path)
	}
}

func TestLoadWPLErrors(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := p.LoadWPL("/does/not/exist.wpl", "/media"); err == nil {
		t.Error("missing file should error")
	}

	bad := filepath.Join(t.TempDir(), "bad.wpl")
	if err := os.WriteFile(bad, []byte("not xml at all <"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := p.LoadWPL(bad, "/media"); err == nil {
		t.Error("malformed file should error")
	}
}
