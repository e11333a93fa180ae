package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultTypingSpeedMS  = 100
	DefaultHighlightCapMS = 300
)

// Config holds the runtime settings.
type Config struct {
	// TypingSpeedMS is the base delay between typing steps, in milliseconds.
	TypingSpeedMS int `toml:"typing_speed_ms"`

	// HighlightCapMS bounds the deletion highlight pause, in milliseconds.
	HighlightCapMS int `toml:"highlight_cap_ms"`

	// ListenAddr, when set, serves the awareness websocket hub.
	ListenAddr string `toml:"listen_addr"`

	// PaceScript, when set, points at a Lua file providing a pace() hook.
	PaceScript string `toml:"pace_script"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TypingSpeedMS:  DefaultTypingSpeedMS,
		HighlightCapMS: DefaultHighlightCapMS,
	}
}

// TypingSpeed returns the base pacing as a duration.
func (c Config) TypingSpeed() time.Duration {
	return time.Duration(c.TypingSpeedMS) * time.Millisecond
}

// HighlightCap returns the highlight bound as a duration.
func (c Config) HighlightCap() time.Duration {
	return time.Duration(c.HighlightCapMS) * time.Millisecond
}

// Load reads configuration from path. A missing file yields the defaults
// without error; a present but unparsable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.TypingSpeedMS < 0 {
		cfg.TypingSpeedMS = DefaultTypingSpeedMS
	}
	if cfg.HighlightCapMS < 0 {
		cfg.HighlightCapMS = DefaultHighlightCapMS
	}
	return cfg, nil
}
