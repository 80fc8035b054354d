package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr          string `json:"addr" yaml:"addr" toml:"addr"`
	AssetsDir     string `json:"assets_dir" yaml:"assets_dir" toml:"assets_dir"`
	AssetsBaseURL string `json:"assets_base_url" yaml:"assets_base_url" toml:"assets_base_url"`

	Backend       string `json:"backend" yaml:"backend" toml:"backend"`
	CacheCapacity int    `json:"cache_capacity" yaml:"cache_capacity" toml:"cache_capacity"`
	RenderSlots   int    `json:"render_slots" yaml:"render_slots" toml:"render_slots"`
	MaxPending    int    `json:"max_pending" yaml:"max_pending" toml:"max_pending"`
	SettleTicks   int    `json:"settle_ticks" yaml:"settle_ticks" toml:"settle_ticks"`
	FrameSize     int    `json:"frame_size" yaml:"frame_size" toml:"frame_size"`

	// SessionTTL is a Go duration string ("15m"). "0" disables expiry.
	// Parsed and translated in main.
	SessionTTL string `json:"session_ttl" yaml:"session_ttl" toml:"session_ttl"`

	VisibilityMode          string  `json:"visibility_mode" yaml:"visibility_mode" toml:"visibility_mode"`
	VisibilityMarginPx      int     `json:"visibility_margin_px" yaml:"visibility_margin_px" toml:"visibility_margin_px"`
	VisibilityThreshold     float64 `json:"visibility_threshold" yaml:"visibility_threshold" toml:"visibility_threshold"`
	VisibilityKeepObserving bool    `json:"visibility_keep_observing" yaml:"visibility_keep_observing" toml:"visibility_keep_observing"`

	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// CORSOrigins is a comma separated origin list; empty leaves CORS off.
	CORSOrigins       string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	MaxBodyBytes      int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	ImageCacheControl string `json:"image_cache_control" yaml:"image_cache_control" toml:"image_cache_control"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
