package sonar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Endpoint is the resolved address of the Sonar web server. It stays fixed
// for a Client's lifetime unless Refresh is called; the engine assigns a new
// port on every restart.
type Endpoint struct {
	Scheme string
	Host   string
	Port   int
}

// String returns the endpoint as a base URL without a trailing slash.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s://%s:%d", e.Scheme, e.Host, e.Port)
}

// coreProps is the slice of coreProps.json this package needs. Some
// installations also advertise the routing mode directly, which saves the
// first topology fetch.
type coreProps struct {
	GGEncryptedAddress string `json:"ggEncryptedAddress"`
	StreamerMode       *bool  `json:"streamerMode,omitempty"`
}

// subAppsResponse mirrors the engine's /subApps payload, reduced to the
// sonar entry.
type subAppsResponse struct {
	SubApps struct {
		Sonar struct {
			IsEnabled bool `json:"isEnabled"`
			IsReady   bool `json:"isReady"`
			IsRunning bool `json:"isRunning"`
			Metadata  struct {
				WebServerAddress string `json:"webServerAddress"`
			} `json:"metadata"`
		} `json:"sonar"`
	} `json:"subApps"`
}

// defaultCorePropsPath returns the installer's coreProps.json location.
// Only Windows has one; elsewhere the path must be supplied explicitly.
func defaultCorePropsPath() (string, error) {
	if runtime.GOOS != "windows" {
		return "", fmt.Errorf("%w: no default location on %s, set an explicit path", ErrConfigNotFound, runtime.GOOS)
	}
	base := os.Getenv("PROGRAMDATA")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, "SteelSeries", "SteelSeries Engine 3", "coreProps.json"), nil
}

// readCoreProps loads and parses the artifact. A missing file is
// ErrConfigNotFound, anything present but unusable is ErrConfigUnreadable.
func readCoreProps(path string) (coreProps, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return coreProps{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return coreProps{}, fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
	}

	var props coreProps
	if err := json.Unmarshal(raw, &props); err != nil {
		return coreProps{}, fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
	}
	if strings.TrimSpace(props.GGEncryptedAddress) == "" {
		return coreProps{}, fmt.Errorf("%w: missing ggEncryptedAddress", ErrConfigUnreadable)
	}
	return props, nil
}

// resolveEndpoint runs the full discovery chain: coreProps.json for the
// engine address, then a /subApps probe for the Sonar web server. The
// returned *bool carries the artifact's explicit streamer-mode flag when
// present.
func resolveEndpoint(ctx context.Context, httpClient *http.Client, overridePath string) (Endpoint, *bool, error) {
	path := strings.TrimSpace(overridePath)
	if path == "" {
		var err error
		path, err = defaultCorePropsPath()
		if err != nil {
			return Endpoint{}, nil, err
		}
	}

	props, err := readCoreProps(path)
	if err != nil {
		return Endpoint{}, nil, err
	}

	address, err := probeSubApps(ctx, httpClient, "https://"+props.GGEncryptedAddress)
	if err != nil {
		return Endpoint{}, nil, err
	}

	endpoint, err := parseEndpoint(address)
	if err != nil {
		return Endpoint{}, nil, err
	}
	return endpoint, props.StreamerMode, nil
}

// probeSubApps asks the engine for its sub-applications and returns Sonar's
// web server address. Any engine-side condition that prevents talking to
// Sonar maps to ErrServiceUnavailable.
func probeSubApps(ctx context.Context, httpClient *http.Client, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/subApps", nil)
	if err != nil {
		return "", fmt.Errorf("create subApps request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: subApps returned status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var payload subAppsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode subApps: %v", ErrUnexpectedResponse, err)
	}

	app := payload.SubApps.Sonar
	switch {
	case !app.IsEnabled:
		return "", fmt.Errorf("%w: sonar is not enabled", ErrServiceUnavailable)
	case !app.IsReady:
		return "", fmt.Errorf("%w: sonar is not ready yet", ErrServiceUnavailable)
	case !app.IsRunning:
		return "", fmt.Errorf("%w: sonar is not running", ErrServiceUnavailable)
	}

	address := strings.TrimSpace(app.Metadata.WebServerAddress)
	if address == "" || address == "null" {
		return "", fmt.Errorf("%w: web server address not advertised", ErrServiceUnavailable)
	}
	return address, nil
}

// parseEndpoint normalizes a web server address into an Endpoint. The
// engine reports a full URL; bare host:port values get an https scheme.
func parseEndpoint(address string) (Endpoint, error) {
	trimmed := strings.TrimSpace(address)
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: web server address %q: %v", ErrUnexpectedResponse, address, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoint{}, fmt.Errorf("%w: web server address %q: unsupported scheme", ErrUnexpectedResponse, address)
	}
	if u.Hostname() == "" {
		return Endpoint{}, fmt.Errorf("%w: web server address %q: missing host", ErrUnexpectedResponse, address)
	}

	port := 443
	if u.Scheme == "http" {
		port = 80
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return Endpoint{}, fmt.Errorf("%w: web server address %q: bad port", ErrUnexpectedResponse, address)
		}
	}

	return Endpoint{Scheme: u.Scheme, Host: u.Hostname(), Port: port}, nil
}
