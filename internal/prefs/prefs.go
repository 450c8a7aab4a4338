// Package prefs handles sonarmix user preferences persistence.
// Preferences are stored in ~/.config/sonarmix/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for sonarmix.
type Prefs struct {
	// Theme is the color theme name.
	Theme string `toml:"theme"`
	// Slider is the output path the mixer focuses when streamer mode is
	// active: "streaming" or "monitoring".
	Slider string `toml:"slider"`
}

const (
	defaultPrefsPath = "~/.config/sonarmix/prefs.toml"
	defaultTheme     = "Dracula"
	defaultSlider    = "streaming"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

func defaults() Prefs {
	return Prefs{Theme: defaultTheme, Slider: defaultSlider}
}

// Load reads preferences from the given path. Preferences are cosmetic, so
// every failure degrades to defaults instead of surfacing.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults()
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return defaults()
	}

	prefs := defaults()
	if err := toml.Unmarshal(raw, &prefs); err != nil {
		return defaults()
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	if prefs.Slider != "streaming" && prefs.Slider != "monitoring" {
		prefs.Slider = defaultSlider
	}
	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	raw, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, raw, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
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
