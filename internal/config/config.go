package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings sonarmix reads at startup. Everything is
// optional: with no config file the client falls back to coreProps.json
// discovery at the installer's default location.
type Config struct {
	// CorePropsPath overrides where coreProps.json is looked up.
	CorePropsPath string
	// Address points directly at the Sonar web server, skipping discovery.
	// Useful when the engine runs on another machine or in a VM.
	Address string
	// PollSeconds is the mixer refresh cadence.
	PollSeconds int
}

const (
	defaultConfigPath  = "~/.config/sonarmix/config.toml"
	defaultPollSeconds = 2
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return defaultConfigPath
}

// Load locates and parses the sonarmix config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{PollSeconds: defaultPollSeconds}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var parsed struct {
		CoreProps   string `toml:"core_props"`
		Address     string `toml:"address"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if props := strings.TrimSpace(parsed.CoreProps); props != "" {
		cfg.CorePropsPath = mustExpand(props)
	}
	cfg.Address = strings.TrimSpace(parsed.Address)
	if parsed.PollSeconds > 0 {
		cfg.PollSeconds = parsed.PollSeconds
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
