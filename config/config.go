package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ClockDrift    = "drift"
	ClockInterval = "interval"
)

//go:embed config.yaml
var defaultConfig []byte

// Config describes one flip-book sequence and how to play it.
type Config struct {
	Title        string  `yaml:"title"`
	AssetRoot    string  `yaml:"asset_root"`
	FramePattern string  `yaml:"frame_pattern"`
	TotalFrames  int     `yaml:"total_frames"`
	GateFrame    int     `yaml:"gate_frame"`
	FPS          float64 `yaml:"fps"`
	PreloadAhead int     `yaml:"preload_ahead"`
	MaxFetches   int     `yaml:"max_fetches"`
	Audio        string  `yaml:"audio"`
	Volume       float64 `yaml:"volume"`
	Clock        string  `yaml:"clock"`
	Watch        bool    `yaml:"watch"`
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultConfig, &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal embedded config.yaml: %w", err)
	}
	return &cfg, nil
}

// Load reads the embedded defaults and overlays the yaml file at path, if
// path is non-empty. Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but ignores a missing file.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return Load("")
		}
	}
	return Load(path)
}

// FrameInterval is the target time between two committed frames.
func (c *Config) FrameInterval() time.Duration {
	if c == nil || c.FPS <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.FPS)
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil config")
	}
	var errs []error
	if c.TotalFrames < 2 {
		errs = append(errs, fmt.Errorf("total_frames must be at least 2, got %d", c.TotalFrames))
	}
	if c.GateFrame <= 0 || c.GateFrame >= c.TotalFrames-1 {
		errs = append(errs, fmt.Errorf("gate_frame must be inside (0, %d), got %d", c.TotalFrames-1, c.GateFrame))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %v", c.FPS))
	}
	if c.PreloadAhead < 0 {
		errs = append(errs, fmt.Errorf("preload_ahead must not be negative, got %d", c.PreloadAhead))
	}
	if c.MaxFetches < 1 {
		errs = append(errs, fmt.Errorf("max_fetches must be at least 1, got %d", c.MaxFetches))
	}
	if c.Volume < 0 || c.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume must be within [0, 1], got %v", c.Volume))
	}
	if !strings.Contains(c.FramePattern, "%") {
		errs = append(errs, fmt.Errorf("frame_pattern %q has no index verb", c.FramePattern))
	}
	switch c.Clock {
	case ClockDrift, ClockInterval:
	default:
		errs = append(errs, fmt.Errorf("clock must be %q or %q, got %q", ClockDrift, ClockInterval, c.Clock))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
