// Package config loads the fractal configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/fractal/config.toml, or
// ~/.config/fractal/config.toml when XDG_CONFIG_HOME is unset. Every key is
// optional; a missing file yields [Default].
//
//	initial = "[0,(0)]"
//
//	[render]
//	direction = "BT"
//	detailed = false
//	depth_colors = ["#D6D848", "#CC76D1", "#4A9DF8"]
//
//	[server]
//	addr = ":8080"
//	max_sessions = 1000
//	session_ttl = "1h"
//
//	[editor]
//	history_limit = 500
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/fractal/pkg/errors"
	"github.com/matzehuels/fractal/pkg/tree"
)

const (
	appName  = "fractal"
	fileName = "config.toml"
)

// Config is the complete configuration.
type Config struct {
	// Initial is the tree editors and new sessions start from, in canonical
	// or nested-array text. Empty means a single leaf.
	Initial string `toml:"initial"`

	Render RenderConfig `toml:"render"`
	Server ServerConfig `toml:"server"`
	Editor EditorConfig `toml:"editor"`
}

// RenderConfig controls diagram and text output.
type RenderConfig struct {
	Direction   string   `toml:"direction"` // Graphviz rankdir: TB, BT, LR or RL
	Detailed    bool     `toml:"detailed"`
	DepthColors []string `toml:"depth_colors"`
	MarkColors  []string `toml:"mark_colors"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr        string        `toml:"addr"`
	MaxSessions int           `toml:"max_sessions"`
	SessionTTL  time.Duration `toml:"session_ttl"`

	// Redis is a redis:// URL for the shared diagram cache. Empty keeps
	// diagrams uncached.
	Redis string `toml:"redis"`
}

// EditorConfig controls editing sessions.
type EditorConfig struct {
	// HistoryLimit caps the snapshots each store keeps; 0 is unbounded.
	HistoryLimit int `toml:"history_limit"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Render: RenderConfig{Direction: "TB"},
		Server: ServerConfig{
			Addr:        ":8080",
			MaxSessions: 1000,
			SessionTTL:  time.Hour,
		},
	}
}

// Dir returns the configuration directory using XDG standard (~/.config/fractal/).
func Dir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the directory for cached diagrams (~/.cache/fractal/),
// honouring XDG_CACHE_HOME.
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Path returns the default configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the file at path over the defaults. An empty path means
// [Path]; a missing file at the default location is not an error, but a
// missing file that was named explicitly is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, ferrors.New(ferrors.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Render.Direction = strings.ToUpper(cfg.Render.Direction)
	return cfg, nil
}

// Validate checks field values that decode cleanly but make no sense.
func (c Config) Validate() error {
	if c.Initial != "" {
		if _, err := tree.Parse(c.Initial); err != nil {
			return ferrors.Wrap(ferrors.ErrCodeInvalidInput, err, "initial tree")
		}
	}
	switch strings.ToUpper(c.Render.Direction) {
	case "", "TB", "BT", "LR", "RL":
	default:
		return ferrors.New(ferrors.ErrCodeInvalidInput, "render.direction %q: want TB, BT, LR or RL", c.Render.Direction)
	}
	if c.Server.MaxSessions < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "server.max_sessions must not be negative")
	}
	if c.Server.SessionTTL < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "server.session_ttl must not be negative")
	}
	if c.Editor.HistoryLimit < 0 {
		return ferrors.New(ferrors.ErrCodeInvalidInput, "editor.history_limit must not be negative")
	}
	return nil
}

// InitialTree parses Initial, defaulting to a leaf.
func (c Config) InitialTree() (tree.Tree, error) {
	if strings.TrimSpace(c.Initial) == "" {
		return tree.Leaf{}, nil
	}
	return tree.Parse(c.Initial)
}
