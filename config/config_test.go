package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ggwoodsman/w0rd/parameter"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "w0rd.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// A missing file loads defaults without error
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file returned error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

// A well-formed file overrides defaults
func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
season = "winter"
volume = 0.25
muted = true
fps = 60
log_file = "/tmp/w0rd.log"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Season != "winter" || cfg.Volume != 0.25 || !cfg.Muted || cfg.FPS != 60 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogFile != "/tmp/w0rd.log" {
		t.Errorf("log file = %q", cfg.LogFile)
	}
}

// A malformed file returns defaults along with the parse error
func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, `volume = = nope`)
	cfg, err := Load(path)
	if err == nil {
		t.Error("malformed config returned nil error")
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v after parse failure, want defaults", cfg)
	}
}

// Out-of-range values are normalized, not rejected
func TestNormalization(t *testing.T) {
	path := writeConfig(t, `
season = "monsoon"
volume = 3.5
fps = 500
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Season != "spring" {
		t.Errorf("season = %q, want spring fallback", cfg.Season)
	}
	if cfg.Volume != 1.0 {
		t.Errorf("volume = %v, want clamped to 1", cfg.Volume)
	}
	if cfg.FPS != 0 {
		t.Errorf("fps = %d, want reset to 0", cfg.FPS)
	}
}

// The FPS cap converts to a tick interval, defaulting to the built-in
// rate when unset
func TestFrameInterval(t *testing.T) {
	cfg := Default()
	if got := cfg.FrameInterval(); got != parameter.FrameInterval {
		t.Errorf("default interval = %v", got)
	}
	cfg.FPS = 50
	if got := cfg.FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("50fps interval = %v, want 20ms", got)
	}
}
