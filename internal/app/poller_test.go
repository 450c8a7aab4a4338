package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/halvard/sonarmix/internal/state"
	"github.com/halvard/sonarmix/sonar"
)

// mixerStub serves just enough of the Sonar surface for the poller: mode,
// the classic volume tree, and chat mix.
func mixerStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/mode/":
			_ = json.NewEncoder(w).Encode("classic")
		case "/volumeSettings/classic":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"master": map[string]any{"volume": 0.8, "muted": false},
				"game":   map[string]any{"volume": 0.5, "muted": true},
			})
		case "/chatMix":
			_ = json.NewEncoder(w).Encode(map[string]any{"balance": 0.25, "state": "enabled"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRefresh_PopulatesStore(t *testing.T) {
	server := mixerStub(t)
	client := sonar.New(sonar.WithAddress(server.URL))
	store := &state.Store{}

	refresh(context.Background(), store, client)

	snap := store.Snapshot()
	if !snap.HasData {
		t.Fatal("HasData = false after refresh")
	}
	if got := snap.Volume.Channels[sonar.ChannelMaster].Volume; got != 0.8 {
		t.Fatalf("master volume = %v, want 0.8", got)
	}
	if !snap.Volume.Channels[sonar.ChannelGame].Muted {
		t.Fatal("game not muted in snapshot")
	}
	if snap.ChatMix.Balance != 0.25 {
		t.Fatalf("chat mix balance = %v, want 0.25", snap.ChatMix.Balance)
	}
}

func TestRefresh_RecordsFailures(t *testing.T) {
	client := sonar.New(sonar.WithAddress("127.0.0.1:1"))
	store := &state.Store{}

	refresh(context.Background(), store, client)
	refresh(context.Background(), store, client)

	snap := store.Snapshot()
	if snap.LastError == nil {
		t.Fatal("LastError = nil, want poll failure")
	}
	if !snap.IsOffline() {
		t.Fatalf("IsOffline() = false after %d failures", snap.ConsecutiveFailures)
	}
	if snap.HasData {
		t.Fatal("HasData = true, nothing was ever fetched")
	}
}
