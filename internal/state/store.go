package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/halvard/sonarmix/sonar"
)

// Snapshot represents the latest mixer data available to the UI.
type Snapshot struct {
	Volume              sonar.VolumeData
	ChatMix             sonar.ChatMix
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// Streamer reports whether the last poll saw streamer mode active.
func (s Snapshot) Streamer() bool {
	return s.Volume.Mode == sonar.ModeStreamer
}

// IsOffline returns true when the service has been unreachable for
// multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) Update(volume *sonar.VolumeData, chat *sonar.ChatMix, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if volume != nil {
		s.snapshot.Volume = cloneVolume(*volume)
		s.snapshot.HasData = true
	}
	if chat != nil {
		s.snapshot.ChatMix = *chat
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Volume = cloneVolume(s.snapshot.Volume)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneVolume(v sonar.VolumeData) sonar.VolumeData {
	dup := sonar.VolumeData{Mode: v.Mode}
	if v.Channels != nil {
		dup.Channels = make(map[sonar.Channel]sonar.ChannelState, len(v.Channels))
		for ch, st := range v.Channels {
			dup.Channels[ch] = st
		}
	}
	if v.Sliders != nil {
		dup.Sliders = make(map[sonar.Slider]map[sonar.Channel]sonar.ChannelState, len(v.Sliders))
		for slider, states := range v.Sliders {
			inner := make(map[sonar.Channel]sonar.ChannelState, len(states))
			for ch, st := range states {
				inner[ch] = st
			}
			dup.Sliders[slider] = inner
		}
	}
	return dup
}
