// Package config loads the terminal's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds everything the terminal needs at startup. The endpoint
// fields are presets only; the durable connection settings live in the
// state snapshot once a connect succeeds.
type Config struct {
	DataDir      string
	SyncInterval time.Duration
	APIURL       string
	APIKey       string
}

const (
	defaultConfigPath   = "~/.config/whizpos/config.toml"
	defaultDataDir      = "~/.local/share/whizpos"
	defaultSyncInterval = 10 * time.Second
)

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Load parses the config at path, falling back to defaults when the
// file is missing. An empty path means the default location.
func Load(path string) (Config, error) {
	if path == "" {
		path = defaultConfigPath
	}
	resolved := mustExpand(path)

	cfg := Config{
		DataDir:      mustExpand(defaultDataDir),
		SyncInterval: defaultSyncInterval,
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir         string `toml:"data_dir"`
		SyncIntervalSec int    `toml:"sync_interval_seconds"`
		APIURL          string `toml:"api_url"`
		APIKey          string `toml:"api_key"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if raw.SyncIntervalSec > 0 {
		cfg.SyncInterval = time.Duration(raw.SyncIntervalSec) * time.Second
	}
	cfg.APIURL = strings.TrimSpace(raw.APIURL)
	cfg.APIKey = strings.TrimSpace(raw.APIKey)

	return cfg, nil
}

func mustExpand(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
