package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultMatchesSequence(t *testing.T) {
	cfg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded config should validate: %v", err)
	}

	if cfg.TotalFrames != 135 || cfg.GateFrame != 50 || cfg.PreloadAhead != 5 {
		t.Fatalf("unexpected sequence constants: %+v", cfg)
	}
	if cfg.Volume != 0.5 {
		t.Fatalf("expected volume 0.5, got %v", cfg.Volume)
	}

	got := cfg.FrameInterval()
	want := 33333333 * time.Nanosecond
	if got != want {
		t.Fatalf("expected interval %v, got %v", want, got)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "player.yaml")
	if err := os.WriteFile(path, []byte("fps: 24\nclock: interval\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FPS != 24 || cfg.Clock != ClockInterval {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.TotalFrames != 135 {
		t.Fatalf("defaults should survive overlay, got total_frames %d", cfg.TotalFrames)
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.GateFrame != 50 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"gate_at_last_frame", func(c *Config) { c.GateFrame = c.TotalFrames - 1 }},
		{"gate_zero", func(c *Config) { c.GateFrame = 0 }},
		{"zero_fps", func(c *Config) { c.FPS = 0 }},
		{"loud", func(c *Config) { c.Volume = 1.5 }},
		{"no_verb", func(c *Config) { c.FramePattern = "/render/frame.png" }},
		{"unknown_clock", func(c *Config) { c.Clock = "raf" }},
		{"no_fetchers", func(c *Config) { c.MaxFetches = 0 }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Default()
			if err != nil {
				t.Fatalf("Default: %v", err)
			}
			c.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
