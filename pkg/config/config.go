// Package config loads wordsphere settings from a TOML file.
//
// Settings are layered: built-in defaults, then the config file, then
// command-line flags (applied by the CLI). A missing file is not an error.
//
// Example config.toml:
//
//	[service]
//	url = "http://127.0.0.1:8000"
//	timeout = "30s"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//	prefix = "wordsphere:"
//
//	[layout]
//	radius = 18.0
//
//	[view]
//	fps = 30
//	auto_rotate_speed = 0.7
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordsphere/pkg/analysis"
	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/scene"
)

// AppName is used for config and cache directories.
const AppName = "wordsphere"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultFPS is the viewer frame rate.
const DefaultFPS = 30

// DefaultAddr is the HTTP listen address for `wordsphere serve`.
const DefaultAddr = "127.0.0.1:8080"

// Config is the root of config.toml.
type Config struct {
	Service ServiceConfig `toml:"service"`
	Cache   CacheConfig   `toml:"cache"`
	Layout  cloud.Options `toml:"layout"`
	View    ViewConfig    `toml:"view"`
	Server  ServerConfig  `toml:"server"`
}

// ServiceConfig locates the analysis service.
type ServiceConfig struct {
	URL     string   `toml:"url"`
	Timeout Duration `toml:"timeout"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`

	// Prefix namespaces keys when several deployments share one Redis.
	Prefix string `toml:"prefix"`
}

// ViewConfig tunes the interactive viewer.
type ViewConfig struct {
	FPS             int     `toml:"fps"`
	AutoRotateSpeed float64 `toml:"auto_rotate_speed"`
	Distance        float64 `toml:"distance"`
	FOV             float64 `toml:"fov"`
	Spin            float64 `toml:"spin"`
	BobAmplitude    float64 `toml:"bob_amplitude"`
	BobFrequency    float64 `toml:"bob_frequency"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("30s", "24h").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	anim := scene.DefaultAnimation()
	return Config{
		Service: ServiceConfig{
			URL:     analysis.DefaultBaseURL,
			Timeout: Duration{30 * time.Second},
		},
		Cache: CacheConfig{
			Backend: BackendFile,
			TTL:     Duration{cache.AnalysisTTL},
		},
		Layout: cloud.DefaultOptions(),
		View: ViewConfig{
			FPS:             DefaultFPS,
			AutoRotateSpeed: scene.DefaultAutoRotateSpeed,
			Distance:        scene.DefaultDistance,
			FOV:             scene.DefaultFOV,
			Spin:            anim.Spin,
			BobAmplitude:    anim.BobAmplitude,
			BobFrequency:    anim.BobFrequency,
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load reads path on top of the defaults. A missing file returns the
// defaults. Unknown keys and invalid values are INVALID_CONFIG errors.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "[layout]")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "[cache] redis backend requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "[cache] unknown backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.View.FPS < 1 || c.View.FPS > 120 {
		return errors.New(errors.ErrCodeInvalidConfig, "[view] fps must be between 1 and 120")
	}
	if c.View.FOV <= 0 || c.View.FOV >= 180 {
		return errors.New(errors.ErrCodeInvalidConfig, "[view] fov must be between 0 and 180 degrees")
	}
	if c.View.Distance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "[view] distance must be positive")
	}
	if c.Service.Timeout.Duration < 0 || c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	return nil
}

// Encode renders the config as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Animation returns the per-frame animation parameters.
func (v ViewConfig) Animation() scene.Animation {
	return scene.Animation{
		Spin:         v.Spin,
		BobFrequency: v.BobFrequency,
		BobAmplitude: v.BobAmplitude,
	}
}

// Camera returns an orbit camera configured from the view settings.
func (v ViewConfig) Camera() *scene.OrbitCamera {
	cam := scene.NewOrbitCamera()
	cam.AutoRotateSpeed = v.AutoRotateSpeed
	cam.Distance = v.Distance
	cam.FOV = v.FOV
	return cam
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns the config file location using the XDG standard
// (~/.config/wordsphere/config.toml).
func DefaultPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// CacheDir returns the cache directory using the XDG standard
// (~/.cache/wordsphere/).
func CacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, AppName), nil
}
