package sonar

import (
	"errors"
	"fmt"
)

// Sentinel errors. Transport and discovery failures wrap these with detail,
// so callers branch with errors.Is.
var (
	// ErrConfigNotFound means no coreProps.json exists at the default or
	// overridden location; the engine is likely not installed.
	ErrConfigNotFound = errors.New("coreProps.json not found")

	// ErrConfigUnreadable means coreProps.json exists but could not be
	// parsed or is missing required fields.
	ErrConfigUnreadable = errors.New("coreProps.json unreadable")

	// ErrServiceUnavailable means the engine or the Sonar web server did
	// not respond, responded with an error status, or is not ready yet.
	ErrServiceUnavailable = errors.New("sonar service unavailable")

	// ErrUnexpectedResponse means the service answered but the payload did
	// not match the expected shape.
	ErrUnexpectedResponse = errors.New("unexpected response from sonar service")

	// ErrSliderRequired is returned when a streamer-mode operation omits
	// the slider.
	ErrSliderRequired = errors.New("streamer mode requires a slider")

	// ErrSliderNotApplicable is returned when a slider is supplied in
	// classic mode. Rejecting rather than ignoring it keeps callers from
	// believing a per-slider write happened when the service has no such
	// concept active.
	ErrSliderNotApplicable = errors.New("slider not applicable in classic mode")

	// ErrModeMismatch means a request shaped for one mode hit a service in
	// the other mode and a refresh-and-retry did not resolve it.
	ErrModeMismatch = errors.New("routing mode changed under the request")
)

// ChannelNotFoundError reports a channel name outside the fixed set.
type ChannelNotFoundError struct {
	Name string
}

func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("channel %q not found", e.Name)
}

// InvalidVolumeError reports a volume outside [0.0, 1.0].
type InvalidVolumeError struct {
	Value float64
}

func (e *InvalidVolumeError) Error() string {
	return fmt.Sprintf("invalid volume %v, must be within 0.0 and 1.0", e.Value)
}

// InvalidChatMixError reports a chat-mix balance outside [-1.0, 1.0].
type InvalidChatMixError struct {
	Value float64
}

func (e *InvalidChatMixError) Error() string {
	return fmt.Sprintf("invalid chat mix balance %v, must be within -1.0 and 1.0", e.Value)
}
