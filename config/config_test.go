package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.yaml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if cfg != Default() {
			t.Errorf("Load(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadOverridesPartially(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jumplab.yaml", `
window:
  title: test
player:
  jump_height: 250
  squash_down: {x: 3, y: 0.25}
audio:
  enabled: false
debug: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	def := Default()
	tests := []struct {
		name      string
		got, want any
	}{
		{"title", cfg.Window.Title, "test"},
		{"width kept", cfg.Window.Width, def.Window.Width},
		{"jump height", cfg.Player.JumpHeight, 250.0},
		{"gravity kept", cfg.Player.Gravity, def.Player.Gravity},
		{"squash down", cfg.Player.SquashDown, cp.Vector{X: 3, Y: 0.25}},
		{"audio", cfg.Audio.Enabled, false},
		{"volume kept", cfg.Audio.Volume, def.Audio.Volume},
		{"debug", cfg.Debug, true},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "player: [unclosed")
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "config: unmarshal") {
		t.Errorf("err = %v", err)
	}
	if cfg != Default() {
		t.Error("failed load should return defaults")
	}
}

func TestIsConfigFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.yaml", true},
		{"dir/B.YML", true},
		{"a.yaml~", false},
		{"a.json", false},
		{"yaml", false},
	}
	for _, tt := range tests {
		if got := isConfigFile(tt.path); got != tt.want {
			t.Errorf("isConfigFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcherReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	writeFile(t, dir, "notes.txt", "ignored")
	path := writeFile(t, dir, "jumplab.yaml", "debug: true\n")

	select {
	case got := <-w.Events:
		if filepath.Base(got) != filepath.Base(path) {
			t.Errorf("event for %q, want %q", got, path)
		}
	case err := <-w.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	select {
	case _, ok := <-w.Events:
		if ok {
			t.Error("Events delivered after Close")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Events not closed")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}
