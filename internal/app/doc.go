// Package app provides the orchestration layer for the sonarmix TUI.
//
// # Overview
//
// This package is the composition root: it loads configuration and
// preferences, builds the sonar client, starts the background poller, and
// hands everything to the UI.
//
// # Data flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()   Read ~/.config/sonarmix/config.toml
//	       ├─────> prefs.Load()    Read theme/slider preferences
//	       ├─────> sonar.New()     Lazy client (discovery on first call)
//	       ├─────> state.Store{}   Shared snapshot container
//	       ├─────> StartPoller()   Background volume/chat-mix refresh
//	       └─────> ui.Run()        Start TUI (blocks)
//
//	Poller loop:
//	┌─────────────────────────────────────────┐
//	│ StartPoller() goroutine                 │
//	│  ├─> client.VolumeData()                │
//	│  ├─> client.ChatMixData()               │
//	│  └─> store.Update()  (atomic)           │
//	│      └─> UI reads store.Snapshot()      │
//	└─────────────────────────────────────────┘
//
// The poller never stops on failure; an unreachable engine is recorded in
// the store (driving the UI's offline banner) and retried on the next tick.
package app
