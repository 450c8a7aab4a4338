package sonar

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	requestTimeout   = 5 * time.Second
	defaultUserAgent = "sonarmix/0.1"
)

// Client talks to a locally running Sonar service. The zero-cost
// constructor never touches the filesystem or network; discovery runs on
// first use and its failures surface from whichever call triggered it.
//
// A Client is safe for concurrent use. The endpoint and topology snapshot
// are the only shared state and are guarded by one mutex.
type Client struct {
	http       *http.Client
	userAgent  string
	configPath string
	address    string

	mu       sync.Mutex
	state    cacheState
	endpoint Endpoint
	topo     TopologySnapshot
	modeHint *Mode
}

// Option configures a Client.
type Option func(*Client)

// WithConfigPath overrides the coreProps.json location. When set, only this
// path is consulted; there is no fallback to the platform default.
func WithConfigPath(path string) Option {
	return func(c *Client) { c.configPath = path }
}

// WithStreamerMode seeds the topology with a known mode, skipping the first
// mode fetch. A later forced refresh (including the one SetStreamerMode
// performs) reads the live mode instead.
func WithStreamerMode(streamer bool) Option {
	return func(c *Client) {
		mode := modeFor(streamer)
		c.modeHint = &mode
	}
}

// WithAddress points the Client directly at a Sonar web server address
// (host:port or full URL), skipping coreProps.json discovery entirely.
func WithAddress(address string) Option {
	return func(c *Client) { c.address = address }
}

// WithHTTPClient substitutes the transport. The default client skips TLS
// verification because the engine serves a self-signed certificate on
// loopback.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// New builds a Client. Discovery is lazy; the first operation resolves the
// endpoint and topology.
func New(opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetVolume sets a channel's volume. volume must be within [0.0, 1.0]. In
// streamer mode slider names the output path to write; in classic mode it
// must be empty.
func (c *Client) SetVolume(ctx context.Context, channel Channel, volume float64, slider Slider) error {
	if !channel.valid() {
		return &ChannelNotFoundError{Name: string(channel)}
	}
	if volume < 0.0 || volume > 1.0 {
		return &InvalidVolumeError{Value: volume}
	}
	return c.write(ctx, func(mode Mode) (*url.URL, error) {
		path, err := volumeRoute(mode, channel, slider, volume)
		if err != nil {
			return nil, err
		}
		return &url.URL{Path: path}, nil
	})
}

// MuteChannel mutes or unmutes a channel, with the same channel/slider
// scoping rules as SetVolume.
func (c *Client) MuteChannel(ctx context.Context, channel Channel, muted bool, slider Slider) error {
	if !channel.valid() {
		return &ChannelNotFoundError{Name: string(channel)}
	}
	return c.write(ctx, func(mode Mode) (*url.URL, error) {
		path, err := muteRoute(mode, channel, slider, muted)
		if err != nil {
			return nil, err
		}
		return &url.URL{Path: path}, nil
	})
}

// SetChatMix sets the chat-mix balance, within [-1.0, 1.0]. Chat mix has no
// channel or slider scope in either mode.
func (c *Client) SetChatMix(ctx context.Context, balance float64) error {
	if balance < -1.0 || balance > 1.0 {
		return &InvalidChatMixError{Value: balance}
	}
	return c.write(ctx, func(Mode) (*url.URL, error) {
		return &url.URL{
			Path:     "/chatMix",
			RawQuery: url.Values{"balance": {formatFloat(balance)}}.Encode(),
		}, nil
	})
}

// VolumeData reads the full volume/mute state tree for the active mode.
func (c *Client) VolumeData(ctx context.Context) (VolumeData, error) {
	var data VolumeData
	err := c.withTopology(ctx, func(endpoint Endpoint, topo TopologySnapshot) error {
		data = VolumeData{Mode: topo.Mode}
		rel := &url.URL{Path: volumeDataRoute(topo.Mode)}
		if topo.Streamer() {
			return c.do(ctx, http.MethodGet, endpoint, rel, &data.Sliders)
		}
		return c.do(ctx, http.MethodGet, endpoint, rel, &data.Channels)
	})
	if err != nil {
		return VolumeData{}, err
	}
	return data, nil
}

// ChatMixData reads the current chat-mix state.
func (c *Client) ChatMixData(ctx context.Context) (ChatMix, error) {
	endpoint, _, err := c.session(ctx, false)
	if err != nil {
		return ChatMix{}, err
	}
	var data ChatMix
	if err := c.do(ctx, http.MethodGet, endpoint, &url.URL{Path: "/chatMix"}, &data); err != nil {
		return ChatMix{}, err
	}
	return data, nil
}

// StreamerMode reports whether the service is in streamer mode, fetching
// the topology if it is not cached yet.
func (c *Client) StreamerMode(ctx context.Context) (bool, error) {
	_, topo, err := c.session(ctx, false)
	if err != nil {
		return false, err
	}
	return topo.Streamer(), nil
}

// SetStreamerMode switches the routing mode, then forces a topology refresh:
// a mode change invalidates the cached channel/slider shape.
func (c *Client) SetStreamerMode(ctx context.Context, streamer bool) error {
	endpoint, _, err := c.session(ctx, false)
	if err != nil {
		return err
	}
	var confirmed string
	if err := c.do(ctx, http.MethodPut, endpoint, &url.URL{Path: modeRoute(streamer)}, &confirmed); err != nil {
		return err
	}
	_, _, err = c.session(ctx, true)
	return err
}

// Topology returns the cached topology snapshot, fetching it first if
// needed.
func (c *Client) Topology(ctx context.Context) (TopologySnapshot, error) {
	_, topo, err := c.session(ctx, false)
	return topo, err
}

// Refresh drops the cached endpoint and topology and re-runs discovery.
// Call it after restarting the engine; the web server port changes between
// runs.
func (c *Client) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.state = cacheEmpty
	c.endpoint = Endpoint{}
	c.topo = TopologySnapshot{}
	c.mu.Unlock()

	_, _, err := c.session(ctx, false)
	return err
}

// write runs a mode-shaped write through the mismatch-retrying helper.
func (c *Client) write(ctx context.Context, build func(Mode) (*url.URL, error)) error {
	return c.withTopology(ctx, func(endpoint Endpoint, topo TopologySnapshot) error {
		rel, err := build(topo.Mode)
		if err != nil {
			return err
		}
		return c.do(ctx, http.MethodPut, endpoint, rel, nil)
	})
}

// withTopology runs op against the cached topology, with one
// refresh-and-retry when the service 404s a request the cached mode shaped.
// If the refresh shows the mode did not move, the 404 was a real transport
// failure and propagates unchanged; a second 404 against the fresh mode is
// ErrModeMismatch.
func (c *Client) withTopology(ctx context.Context, op func(Endpoint, TopologySnapshot) error) error {
	endpoint, topo, err := c.session(ctx, false)
	if err != nil {
		return err
	}

	opErr := op(endpoint, topo)
	if opErr == nil || !isNotFound(opErr) {
		return opErr
	}

	endpoint, refreshed, err := c.session(ctx, true)
	if err != nil {
		return err
	}
	if refreshed.Mode == topo.Mode {
		return opErr
	}

	if err := op(endpoint, refreshed); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %v", ErrModeMismatch, err)
		}
		return err
	}
	return nil
}

// session returns the endpoint and a copy of the topology snapshot,
// resolving either lazily. forceTopo re-reads the live mode even when a
// snapshot is cached. All read-refresh-write of the cache happens under one
// lock; a failed refresh empties the cache so the next call starts over.
func (c *Client) session(ctx context.Context, forceTopo bool) (Endpoint, TopologySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == cacheReady && !forceTopo {
		return c.endpoint, c.topo.clone(), nil
	}

	fresh := c.state == cacheEmpty
	c.state = cacheRefreshing

	if c.endpoint == (Endpoint{}) {
		endpoint, flag, err := c.resolveLocked(ctx)
		if err != nil {
			c.state = cacheEmpty
			return Endpoint{}, TopologySnapshot{}, err
		}
		c.endpoint = endpoint
		if flag != nil && c.modeHint == nil {
			mode := modeFor(*flag)
			c.modeHint = &mode
		}
	}

	if hint := c.modeHint; hint != nil && fresh && !forceTopo {
		// Explicit flag from the caller or the artifact: trust it for the
		// initial snapshot, consume it so refreshes hit the wire.
		c.modeHint = nil
		c.topo = snapshotFor(*hint)
	} else {
		mode, err := fetchMode(ctx, c.http, c.endpoint)
		if err != nil {
			c.state = cacheEmpty
			return Endpoint{}, TopologySnapshot{}, err
		}
		c.modeHint = nil
		c.topo = snapshotFor(mode)
	}

	c.state = cacheReady
	return c.endpoint, c.topo.clone(), nil
}

// resolveLocked picks the discovery strategy: a direct address when one was
// given, the coreProps.json chain otherwise. Caller holds c.mu.
func (c *Client) resolveLocked(ctx context.Context) (Endpoint, *bool, error) {
	if c.address != "" {
		endpoint, err := parseEndpoint(c.address)
		if err != nil {
			return Endpoint{}, nil, err
		}
		return endpoint, nil, nil
	}
	return resolveEndpoint(ctx, c.http, c.configPath)
}

// statusError carries a non-2xx response status. It matches
// ErrServiceUnavailable under errors.Is so callers keep one branch for
// every transport-level failure.
type statusError struct {
	Code int
	Path string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("sonar service unavailable: %s returned status %d", e.Path, e.Code)
}

func (e *statusError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

func isNotFound(err error) bool {
	var se *statusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// do issues one request against the resolved endpoint and decodes the JSON
// response into dest when dest is non-nil.
func (c *Client) do(ctx context.Context, method string, endpoint Endpoint, rel *url.URL, dest any) error {
	base := url.URL{
		Scheme: endpoint.Scheme,
		Host:   net.JoinHostPort(endpoint.Host, strconv.Itoa(endpoint.Port)),
	}
	reqURL := base.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &statusError{Code: resp.StatusCode, Path: rel.Path}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrUnexpectedResponse, rel.Path, err)
	}
	return nil
}
