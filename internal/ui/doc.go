// Package ui implements the sonarmix terminal mixer using Bubble Tea.
//
// # Layout
//
//	┌────────────────────────────────────────────────┐
//	│ sonarmix  streamer · streaming  ●              │  header
//	├────────────────────────────────────────────────┤
//	│ ▸ Master   ████████████░░░░░░░░░░░░   52%      │
//	│   Game     ██████████████████░░░░░░   75%      │  faders
//	│   Chat     ████░░░░░░░░░░░░░░░░░░░░   17% MUTED│
//	│   ...                                          │
//	│   ChatMix  ─────────◆──┊───────────  -0.20     │
//	├────────────────────────────────────────────────┤
//	│ ←/h vol down · →/l vol up · m mute · ? help    │  footer
//	└────────────────────────────────────────────────┘
//
// # Data flow
//
// The model never talks to the engine from the update loop. Reads come from
// the shared state.Store that the background poller fills; writes run as
// Bubble Tea commands which push the change to the engine, re-read it, and
// report back with an opDoneMsg. A tick message re-reads the store at the
// poll cadence so out-of-band changes (the SteelSeries GG app, another
// client) show up without input.
//
// In streamer mode every fader targets the focused slider (streaming or
// monitoring, toggled with "s"); in classic mode the slider focus is
// ignored and writes go to the single classic tree.
package ui
