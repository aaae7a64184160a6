package startup

import (
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIBRARY_DIR", dir)
	t.Setenv("MEDIA_DIR", "")
	t.Setenv("INTF", "")
	t.Setenv("EXTRA_INTF", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.MediaDir != "/media" {
		t.Errorf("MediaDir = %q", cfg.MediaDir)
	}
	if cfg.TelnetPort != "4212" {
		t.Errorf("TelnetPort = %q", cfg.TelnetPort)
	}
	if cfg.LibraryPath != filepath.Join(dir, "library.db") {
		t.Errorf("LibraryPath = %q", cfg.LibraryPath)
	}
	if len(cfg.ExtraIntf) != 0 {
		t.Errorf("ExtraIntf = %v", cfg.ExtraIntf)
	}
}

func TestLoadConfigInterfaceDefaultTracksTerminal(t *testing.T) {
	t.Setenv("LIBRARY_DIR", t.TempDir())
	t.Setenv("INTF", "")

	restore := stdinIsTerminal
	defer func() { stdinIsTerminal = restore }()

	stdinIsTerminal = func() bool { return true }
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Intf != "rc,none" {
		t.Errorf("interactive Intf = %q, want %q", cfg.Intf, "rc,none")
	}

	stdinIsTerminal = func() bool { return false }
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Intf != "" {
		t.Errorf("non-interactive Intf = %q, want empty", cfg.Intf)
	}

	t.Setenv("INTF", "telnet,none")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Intf != "telnet,none" {
		t.Errorf("explicit Intf = %q, want %q", cfg.Intf, "telnet,none")
	}
}

func TestLoadConfigExtraInterfaces(t *testing.T) {
	t.Setenv("LIBRARY_DIR", t.TempDir())
	t.Setenv("EXTRA_INTF", "telnet,none: http,none :")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := []string{"telnet,none", "http,none"}
	if len(cfg.ExtraIntf) != len(want) {
		t.Fatalf("ExtraIntf = %v, want %v", cfg.ExtraIntf, want)
	}
	for i := range want {
		if cfg.ExtraIntf[i] != want[i] {
			t.Errorf("ExtraIntf[%d] = %q, want %q", i, cfg.ExtraIntf[i], want[i])
		}
	}
}

func TestLoadConfigCreatesLibraryDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "library")
	t.Setenv("LIBRARY_DIR", dir)

	if _, err := LoadConfig(); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
}
