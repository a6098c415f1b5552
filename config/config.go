package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ggwoodsman/w0rd/parameter"
	"github.com/ggwoodsman/w0rd/scene"
)

// Config holds user-facing settings loaded from a TOML file. Hand-tuned
// animation constants live in parameter and are not configurable
type Config struct {
	// Season overrides the backend-reported season at startup
	Season string `toml:"season"`

	// Volume in [0,1], clamped on load
	Volume float64 `toml:"volume"`

	Muted bool `toml:"muted"`

	// Ambient enables the seasonal drone once audio is unlocked
	Ambient bool `toml:"ambient"`

	// FPS caps the frame loop; 0 keeps the built-in rate
	FPS int `toml:"fps"`

	// LogFile enables debug logging to the named file when non-empty
	LogFile string `toml:"log_file"`
}

// Default is the configuration used when no file is present
func Default() Config {
	return Config{
		Season:  "spring",
		Volume:  parameter.MasterVolumeDefault,
		Ambient: true,
	}
}

// Load reads the file at path. A missing file yields defaults without
// error; a malformed file yields defaults plus the parse error, so the
// caller can log and keep running
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Volume < 0 {
		c.Volume = 0
	} else if c.Volume > 1 {
		c.Volume = 1
	}
	if !scene.KnownSeason(c.Season) {
		c.Season = "spring"
	}
	if c.FPS < 0 || c.FPS > 120 {
		c.FPS = 0
	}
}

// FrameInterval converts the FPS cap to a tick interval, falling back
// to the built-in rate
func (c Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return parameter.FrameInterval
	}
	return time.Second / time.Duration(c.FPS)
}
