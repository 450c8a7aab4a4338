package sonar

import (
	"fmt"
	"strconv"
)

// Request routing. Sonar's write surface is path-shaped: values ride in the
// URL, not a body, and the shape differs between classic and streamer mode.
// Everything here is pure; validation happens before a path is built so no
// request is ever constructed from bad input.

// validateScope checks a channel/slider pair against the active mode. A
// slider is mandatory in streamer mode and a hard error in classic mode.
func validateScope(mode Mode, channel Channel, slider Slider) error {
	if !channel.valid() {
		return &ChannelNotFoundError{Name: string(channel)}
	}
	switch mode {
	case ModeStreamer:
		if slider == "" {
			return ErrSliderRequired
		}
		if !slider.valid() {
			return fmt.Errorf("%w: unknown slider %q", ErrSliderNotApplicable, string(slider))
		}
	default:
		if slider != "" {
			return fmt.Errorf("%w: slider %q supplied", ErrSliderNotApplicable, string(slider))
		}
	}
	return nil
}

// scopedPath returns /volumeSettings/{mode}[/{slider}]/{channel}.
func scopedPath(mode Mode, channel Channel, slider Slider) string {
	if mode == ModeStreamer {
		return fmt.Sprintf("/volumeSettings/%s/%s/%s", mode.pathSegment(), slider, channel)
	}
	return fmt.Sprintf("/volumeSettings/%s/%s", mode.pathSegment(), channel)
}

// volumeRoute builds the write path for a volume change.
func volumeRoute(mode Mode, channel Channel, slider Slider, value float64) (string, error) {
	if err := validateScope(mode, channel, slider); err != nil {
		return "", err
	}
	if value < 0.0 || value > 1.0 {
		return "", &InvalidVolumeError{Value: value}
	}
	return scopedPath(mode, channel, slider) + "/Volume/" + formatFloat(value), nil
}

// muteRoute builds the write path for a mute change. Streamer mode spells
// the property differently than classic mode does.
func muteRoute(mode Mode, channel Channel, slider Slider, muted bool) (string, error) {
	if err := validateScope(mode, channel, slider); err != nil {
		return "", err
	}
	property := "Mute"
	if mode == ModeStreamer {
		property = "isMuted"
	}
	return fmt.Sprintf("%s/%s/%t", scopedPath(mode, channel, slider), property, muted), nil
}

// modeRoute builds the write path for a mode toggle.
func modeRoute(streamer bool) string {
	return "/mode/" + string(modeFor(streamer))
}

// volumeDataRoute builds the read path for the full volume state tree.
func volumeDataRoute(mode Mode) string {
	return "/volumeSettings/" + mode.pathSegment()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
