package sonar

import "fmt"

// Channel is one of Sonar's six fixed audio channels. The set is closed:
// the service does not allow user-defined channels, and unknown names are
// rejected during validation rather than passed through.
type Channel string

const (
	ChannelMaster      Channel = "master"
	ChannelGame        Channel = "game"
	ChannelChatRender  Channel = "chatRender"
	ChannelMedia       Channel = "media"
	ChannelAux         Channel = "aux"
	ChannelChatCapture Channel = "chatCapture"
)

// channels lists every valid channel in the order Sonar's own UI shows them.
var channels = []Channel{
	ChannelMaster,
	ChannelGame,
	ChannelChatRender,
	ChannelMedia,
	ChannelAux,
	ChannelChatCapture,
}

// Channels returns all valid channels. The returned slice is a copy.
func Channels() []Channel {
	out := make([]Channel, len(channels))
	copy(out, channels)
	return out
}

// ParseChannel converts a channel name to a Channel, or fails with
// ChannelNotFoundError for anything outside the fixed set.
func ParseChannel(name string) (Channel, error) {
	for _, ch := range channels {
		if string(ch) == name {
			return ch, nil
		}
	}
	return "", &ChannelNotFoundError{Name: name}
}

func (c Channel) valid() bool {
	for _, ch := range channels {
		if c == ch {
			return true
		}
	}
	return false
}

// Slider names one of the two output paths a channel is split across in
// streamer mode. The zero value means "no slider", which is the only valid
// state in classic mode.
type Slider string

const (
	SliderStreaming  Slider = "streaming"
	SliderMonitoring Slider = "monitoring"
)

// Sliders returns the two streamer-mode sliders.
func Sliders() []Slider {
	return []Slider{SliderStreaming, SliderMonitoring}
}

// ParseSlider converts a slider name to a Slider.
func ParseSlider(name string) (Slider, error) {
	switch Slider(name) {
	case SliderStreaming, SliderMonitoring:
		return Slider(name), nil
	}
	return "", fmt.Errorf("%w: unknown slider %q", ErrSliderNotApplicable, name)
}

func (s Slider) valid() bool {
	return s == SliderStreaming || s == SliderMonitoring
}

// Mode is Sonar's routing mode. The wire value on the /mode endpoint is
// "classic" or "stream".
type Mode string

const (
	ModeClassic  Mode = "classic"
	ModeStreamer Mode = "stream"
)

// pathSegment returns the mode's segment in volumeSettings paths, which
// differs from the /mode wire value for streamer mode.
func (m Mode) pathSegment() string {
	if m == ModeStreamer {
		return "streamer"
	}
	return "classic"
}

func modeFor(streamer bool) Mode {
	if streamer {
		return ModeStreamer
	}
	return ModeClassic
}
