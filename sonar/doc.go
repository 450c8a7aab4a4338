// Package sonar is a client for the SteelSeries Sonar audio service.
//
// # Overview
//
// Sonar is the audio mixer built into SteelSeries GG. It runs locally and
// exposes a REST-like HTTP interface on a dynamically assigned loopback
// port. This package discovers that endpoint and drives the mixer: per
// channel volume and mute, the chat-mix balance, and the classic/streamer
// routing mode.
//
// # Discovery
//
// The running engine advertises itself through coreProps.json, written to a
// fixed location by the installer. Discovery is a two-step chain:
//
//  1. Read coreProps.json and take ggEncryptedAddress, the host:port of the
//     Engine API (HTTPS, self-signed certificate).
//  2. GET /subApps from the Engine API and take the sonar sub-application's
//     webServerAddress. That is the endpoint every mixer request goes to.
//
// Both steps happen lazily on first use and the result is held for the
// lifetime of the Client. Call [Client.Refresh] after restarting the engine,
// since the web server port changes between runs.
//
// # Modes and topology
//
// Sonar operates in one of two routing modes. In classic mode each channel
// carries a single volume/mute pair. In streamer mode every channel is split
// across two sliders (streaming and monitoring) and requests must name the
// slider they target. The active mode shapes every request path, so the
// Client caches a topology snapshot and validates channel, slider, and value
// arguments against it before anything goes on the wire. Validation failures
// never issue a request.
//
// # Usage
//
//	client := sonar.New()
//	if err := client.SetVolume(ctx, sonar.ChannelMaster, 0.5, ""); err != nil {
//		...
//	}
//
// All failures are branchable error values; see [ErrServiceUnavailable],
// [ChannelNotFoundError], and friends in errors.go.
package sonar
