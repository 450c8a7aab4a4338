// Package state holds the shared snapshot of mixer data.
//
// The poller writes and the UI reads, so the store guards one Snapshot value
// behind a RWMutex and hands out deep copies. Failed polls keep the previous
// data and bump a failure counter; the UI treats two consecutive failures as
// the engine being offline.
package state
