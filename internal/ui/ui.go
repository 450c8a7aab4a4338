package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/halvard/sonarmix/internal/prefs"
	"github.com/halvard/sonarmix/internal/state"
	"github.com/halvard/sonarmix/sonar"
)

const (
	volumeStep  = 0.02
	chatMixStep = 0.1
)

// Options configure the mixer UI.
type Options struct {
	Client    *sonar.Client
	Store     *state.Store
	PollTick  time.Duration
	ThemeName string
	Slider    sonar.Slider // focused slider while streamer mode is active
	PrefsPath string
}

// Run starts the mixer and blocks until quit or context cancellation.
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(
		newModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

// tickMsg drives periodic snapshot reads from the store.
type tickMsg time.Time

// opDoneMsg reports the outcome of a mixer write.
type opDoneMsg struct {
	err error
}

type model struct {
	ctx    context.Context
	client *sonar.Client
	store  *state.Store

	tick      time.Duration
	prefsPath string

	theme  Theme
	styles Styles
	keys   keyMap
	help   help.Model

	snapshot state.Snapshot
	channels []sonar.Channel
	selected int
	slider   sonar.Slider

	width  int
	height int

	busy  bool
	opErr error
}

func newModel(ctx context.Context, opts Options) model {
	theme := GetTheme(opts.ThemeName)

	slider := opts.Slider
	if slider != sonar.SliderStreaming && slider != sonar.SliderMonitoring {
		slider = sonar.SliderStreaming
	}

	tick := opts.PollTick
	if tick <= 0 {
		tick = 2 * time.Second
	}

	m := model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		tick:      tick,
		prefsPath: opts.PrefsPath,
		theme:     theme,
		styles:    theme.Styles(),
		keys:      newKeyMap(),
		help:      help.New(),
		channels:  sonar.Channels(),
		slider:    slider,
	}
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
	}
	return m
}

func (m model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.snapshot = m.store.Snapshot()
		return m, m.tickCmd()

	case opDoneMsg:
		m.busy = false
		m.opErr = msg.err
		m.snapshot = m.store.Snapshot()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.selected < len(m.channels)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, keys.Theme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, keys.Slider):
		if !m.snapshot.Streamer() {
			return m, nil
		}
		if m.slider == sonar.SliderStreaming {
			m.slider = sonar.SliderMonitoring
		} else {
			m.slider = sonar.SliderStreaming
		}
		m.savePrefs()
		return m, nil
	}

	// The remaining bindings write to the engine; ignore them until the
	// first poll has produced data and while a write is in flight.
	if m.busy || !m.snapshot.HasData {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.VolDown):
		return m.nudgeVolume(-volumeStep)
	case key.Matches(msg, keys.VolUp):
		return m.nudgeVolume(volumeStep)
	case key.Matches(msg, keys.Mute):
		return m.toggleMute()
	case key.Matches(msg, keys.MixLeft):
		return m.nudgeChatMix(-chatMixStep)
	case key.Matches(msg, keys.MixRight):
		return m.nudgeChatMix(chatMixStep)
	case key.Matches(msg, keys.Streamer):
		return m.toggleStreamer()
	case key.Matches(msg, keys.Refresh):
		return m.rediscover()
	}
	return m, nil
}

// activeSlider returns the slider scope for writes: the focused slider in
// streamer mode, none in classic mode.
func (m model) activeSlider() sonar.Slider {
	if m.snapshot.Streamer() {
		return m.slider
	}
	return ""
}

func (m model) currentState(channel sonar.Channel) (sonar.ChannelState, bool) {
	return m.snapshot.Volume.Level(channel, m.activeSlider())
}

func (m model) nudgeVolume(delta float64) (tea.Model, tea.Cmd) {
	channel := m.channels[m.selected]
	current, ok := m.currentState(channel)
	if !ok {
		return m, nil
	}
	target := clamp(current.Volume+delta, 0, 1)
	slider := m.activeSlider()

	m.busy = true
	return m, m.opCmd(func(ctx context.Context) error {
		return m.client.SetVolume(ctx, channel, target, slider)
	})
}

func (m model) toggleMute() (tea.Model, tea.Cmd) {
	channel := m.channels[m.selected]
	current, ok := m.currentState(channel)
	if !ok {
		return m, nil
	}
	muted := !current.Muted
	slider := m.activeSlider()

	m.busy = true
	return m, m.opCmd(func(ctx context.Context) error {
		return m.client.MuteChannel(ctx, channel, muted, slider)
	})
}

func (m model) nudgeChatMix(delta float64) (tea.Model, tea.Cmd) {
	target := clamp(m.snapshot.ChatMix.Balance+delta, -1, 1)

	m.busy = true
	return m, m.opCmd(func(ctx context.Context) error {
		return m.client.SetChatMix(ctx, target)
	})
}

func (m model) toggleStreamer() (tea.Model, tea.Cmd) {
	streamer := !m.snapshot.Streamer()

	m.busy = true
	return m, m.opCmd(func(ctx context.Context) error {
		return m.client.SetStreamerMode(ctx, streamer)
	})
}

func (m model) rediscover() (tea.Model, tea.Cmd) {
	m.busy = true
	return m, m.opCmd(func(ctx context.Context) error {
		return m.client.Refresh(ctx)
	})
}

// opCmd runs a mixer write off the update loop, then re-reads the engine so
// the next frame reflects the change instead of waiting out the poll tick.
func (m model) opCmd(op func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	client := m.client
	store := m.store
	return func() tea.Msg {
		if err := op(ctx); err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{err: syncStore(ctx, store, client)}
	}
}

// syncStore refreshes the shared snapshot immediately after a write.
func syncStore(ctx context.Context, store *state.Store, client *sonar.Client) error {
	volume, err := client.VolumeData(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		return err
	}
	chat, err := client.ChatMixData(ctx)
	if err != nil {
		store.Update(nil, nil, err)
		return err
	}
	store.Update(&volume, &chat, nil)
	return nil
}

func (m *model) savePrefs() {
	// Preferences are cosmetic; a failed save should not disturb the mixer.
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:  m.theme.Name,
		Slider: string(m.slider),
	})
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
