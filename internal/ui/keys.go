package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap declares the mixer's key bindings.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	VolDown  key.Binding
	VolUp    key.Binding
	Mute     key.Binding
	MixLeft  key.Binding
	MixRight key.Binding
	Slider   key.Binding
	Streamer key.Binding
	Theme    key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous channel"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next channel"),
		),
		VolDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "volume down"),
		),
		VolUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "volume up"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "toggle mute"),
		),
		MixLeft: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "chat mix toward game"),
		),
		MixRight: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "chat mix toward chat"),
		),
		Slider: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "switch slider"),
		),
		Streamer: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "toggle streamer mode"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rediscover engine"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.VolDown, k.VolUp, k.Mute, k.Streamer, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.VolDown, k.VolUp, k.Mute},
		{k.MixLeft, k.MixRight, k.Slider, k.Streamer},
		{k.Theme, k.Refresh, k.Help, k.Quit},
	}
}
