package sonar

// ChannelState is one channel's level on one output path.
type ChannelState struct {
	Volume float64 `json:"volume"`
	Muted  bool    `json:"muted"`
}

// VolumeData is the service's full volume/mute state tree, shaped by the
// mode it was read under. Channels is populated in classic mode, Sliders in
// streamer mode; the other map is nil.
type VolumeData struct {
	Mode     Mode
	Channels map[Channel]ChannelState
	Sliders  map[Slider]map[Channel]ChannelState
}

// Level returns the state for a channel, scoped to a slider in streamer
// mode. The second return is false when the service did not report that
// channel.
func (v VolumeData) Level(channel Channel, slider Slider) (ChannelState, bool) {
	if v.Mode == ModeStreamer {
		states, ok := v.Sliders[slider]
		if !ok {
			return ChannelState{}, false
		}
		state, ok := states[channel]
		return state, ok
	}
	state, ok := v.Channels[channel]
	return state, ok
}

// ChatMix is the current chat-mix state. Balance blends the game and chat
// sources: -1.0 is all game, 1.0 is all chat. State reports whether the
// feature is active for the current audio device.
type ChatMix struct {
	Balance float64 `json:"balance"`
	State   string  `json:"state"`
}
