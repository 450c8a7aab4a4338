package sonar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TopologySnapshot is the service's live channel/slider shape as of
// FetchedAt. It never expires on its own: one fetch per Client unless a
// refresh is forced, because mode changes only happen through SetStreamerMode
// or an out-of-band actor (which the mode-mismatch retry covers).
type TopologySnapshot struct {
	Mode      Mode
	Channels  []Channel
	FetchedAt time.Time
}

// Streamer reports whether the snapshot was taken in streamer mode.
func (t TopologySnapshot) Streamer() bool {
	return t.Mode == ModeStreamer
}

func (t TopologySnapshot) clone() TopologySnapshot {
	dup := t
	dup.Channels = make([]Channel, len(t.Channels))
	copy(dup.Channels, t.Channels)
	return dup
}

// cacheState tracks the lazily populated endpoint/topology pair.
type cacheState int

const (
	cacheEmpty cacheState = iota
	cacheReady
	cacheRefreshing
)

// fetchMode asks the service for its routing mode. The /mode endpoint
// returns a bare JSON string, "classic" or "stream".
func fetchMode(ctx context.Context, httpClient *http.Client, endpoint Endpoint) (Mode, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String()+"/mode/", nil)
	if err != nil {
		return "", fmt.Errorf("create mode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: mode returned status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var mode string
	if err := json.NewDecoder(resp.Body).Decode(&mode); err != nil {
		return "", fmt.Errorf("%w: decode mode: %v", ErrUnexpectedResponse, err)
	}
	switch Mode(mode) {
	case ModeClassic, ModeStreamer:
		return Mode(mode), nil
	}
	return "", fmt.Errorf("%w: unknown mode %q", ErrUnexpectedResponse, mode)
}

// snapshotFor builds a topology snapshot for a known mode. Sonar's channel
// set is fixed, so only the mode comes off the wire.
func snapshotFor(mode Mode) TopologySnapshot {
	return TopologySnapshot{
		Mode:      mode,
		Channels:  Channels(),
		FetchedAt: time.Now(),
	}
}
