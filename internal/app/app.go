package app

import (
	"context"
	"fmt"
	"time"

	"github.com/halvard/sonarmix/internal/config"
	"github.com/halvard/sonarmix/internal/prefs"
	"github.com/halvard/sonarmix/internal/state"
	"github.com/halvard/sonarmix/internal/ui"
	"github.com/halvard/sonarmix/sonar"
)

// Options configure the sonarmix application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/sonarmix/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the sonarmix TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client := newClient(cfg)
	store := &state.Store{}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	StartPoller(ctx, store, client, interval)

	// Populate the store before the UI starts so the first frame has data
	// when the engine is already up.
	refresh(ctx, store, client)

	return ui.Run(ctx, ui.Options{
		Client:    client,
		Store:     store,
		PollTick:  interval,
		ThemeName: userPrefs.Theme,
		Slider:    sonar.Slider(userPrefs.Slider),
		PrefsPath: opts.PrefsPath,
	})
}

// newClient maps config to client options: a direct address skips
// discovery, otherwise the coreProps chain runs (with an optional path
// override).
func newClient(cfg config.Config) *sonar.Client {
	if cfg.Address != "" {
		return sonar.New(sonar.WithAddress(cfg.Address))
	}
	if cfg.CorePropsPath != "" {
		return sonar.New(sonar.WithConfigPath(cfg.CorePropsPath))
	}
	return sonar.New()
}
