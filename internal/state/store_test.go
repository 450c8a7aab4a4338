package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/halvard/sonarmix/sonar"
)

func classicVolume(master float64) sonar.VolumeData {
	return sonar.VolumeData{
		Mode: sonar.ModeClassic,
		Channels: map[sonar.Channel]sonar.ChannelState{
			sonar.ChannelMaster: {Volume: master},
			sonar.ChannelGame:   {Volume: 1},
		},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	volume := classicVolume(0.42)
	chat := sonar.ChatMix{Balance: -0.5, State: "enabled"}

	before := time.Now()
	s.Update(&volume, &chat, nil)

	snap := s.Snapshot()
	if !snap.HasData {
		t.Fatal("HasData = false after update")
	}
	if got := snap.Volume.Channels[sonar.ChannelMaster].Volume; got != 0.42 {
		t.Fatalf("master volume = %v, want 0.42", got)
	}
	if snap.ChatMix.Balance != -0.5 {
		t.Fatalf("ChatMix.Balance = %v, want -0.5", snap.ChatMix.Balance)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Volume.Channels[sonar.ChannelMaster] = sonar.ChannelState{Volume: 0.99}
	snap2 := s.Snapshot()
	if got := snap2.Volume.Channels[sonar.ChannelMaster].Volume; got != 0.42 {
		t.Fatalf("Snapshot should clone volume tree; got %v want 0.42", got)
	}
}

func TestStore_ClonesStreamerTree(t *testing.T) {
	var s Store

	volume := sonar.VolumeData{
		Mode: sonar.ModeStreamer,
		Sliders: map[sonar.Slider]map[sonar.Channel]sonar.ChannelState{
			sonar.SliderStreaming: {sonar.ChannelGame: {Volume: 0.3}},
		},
	}
	s.Update(&volume, nil, nil)

	snap := s.Snapshot()
	if !snap.Streamer() {
		t.Fatal("Streamer() = false, want true")
	}
	snap.Volume.Sliders[sonar.SliderStreaming][sonar.ChannelGame] = sonar.ChannelState{Volume: 1}
	if got := s.Snapshot().Volume.Sliders[sonar.SliderStreaming][sonar.ChannelGame].Volume; got != 0.3 {
		t.Fatalf("Snapshot should deep-clone slider tree; got %v want 0.3", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	volume := classicVolume(0.6)
	s.Update(&volume, nil, nil)

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, nil, origErr)

	snap := s.Snapshot()
	if !snap.HasData {
		t.Fatal("HasData lost on error update")
	}
	if got := snap.Volume.Channels[sonar.ChannelMaster].Volume; got != 0.6 {
		t.Fatalf("volume changed on error: got %v want 0.6", got)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true with 0 failures")
	}

	s.Update(nil, nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after one failure: %+v, want 1 failure and online", snap.ConsecutiveFailures)
	}

	s.Update(nil, nil, errors.New("fail 2"))
	if snap := s.Snapshot(); !snap.IsOffline() {
		t.Fatal("IsOffline() = false after two failures")
	}

	volume := classicVolume(0.5)
	s.Update(&volume, nil, nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("failures not reset on success: %d", snap.ConsecutiveFailures)
	}
}
