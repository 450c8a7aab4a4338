// Package config loads the sonarmix configuration file.
//
// The file lives at ~/.config/sonarmix/config.toml and is entirely
// optional; a missing file yields usable defaults. Supported keys:
//
//	core_props   = "~/engine/coreProps.json"  # override discovery artifact
//	address      = "127.0.0.1:49153"          # talk to Sonar directly
//	poll_seconds = 2                          # mixer refresh cadence
//
// core_props and address are mutually exclusive in spirit; when both are
// set, address wins because it skips discovery entirely.
package config
