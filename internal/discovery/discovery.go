package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/wagiedev/inspector-go/internal/errors"
)

const (
	// DefaultHost is used when an address names only a port.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the inspector's conventional port.
	DefaultPort = "9229"

	// listPath is the path of the target list relative to the base URL.
	listPath = "/json"

	// maxListSize caps the discovery response body.
	maxListSize = 4 * 1024 * 1024
)

// Target is one entry of the discovery list.
type Target struct {
	ID                   string `json:"id"`
	Type                 string `json:"type"`
	Title                string `json:"title"`
	Description          string `json:"description,omitempty"`
	URL                  string `json:"url"`
	FaviconURL           string `json:"faviconUrl,omitempty"`
	DevtoolsFrontendURL  string `json:"devtoolsFrontendUrl,omitempty"`
	WebSocketDebuggerURL string `json:"webSocketDebuggerUrl,omitempty"`
}

// Config holds configuration for endpoint discovery.
type Config struct {
	// HTTPClient performs the discovery request.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// Logger is an optional logger for discovery operations.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the WebSocket endpoint of a remote debugger.
type Discoverer interface {
	// Discover returns the socket URL of the first debuggable target at address.
	Discover(ctx context.Context, address string) (string, error)

	// Targets returns the full discovery list at address.
	Targets(ctx context.Context, address string) ([]Target, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	client *http.Client
	log    *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &discoverer{
		client: client,
		log:    log.With("component", "discovery"),
	}
}

// Discover returns the socket URL of the first debuggable target at address.
// A socket URL passed as address is returned unchanged.
func (d *discoverer) Discover(ctx context.Context, address string) (string, error) {
	if IsSocketURL(address) {
		d.log.Debug("Address is already a socket URL, skipping discovery", "address", address)

		return address, nil
	}

	targets, err := d.Targets(ctx, address)
	if err != nil {
		return "", err
	}

	listURL, _ := ListURL(address)

	if len(targets) == 0 {
		d.log.Warn("Discovery returned no targets", "url", listURL)

		return "", &errors.DiscoveryError{URL: listURL, Err: errors.ErrNoTargets}
	}

	first := targets[0]
	if first.WebSocketDebuggerURL == "" {
		d.log.Warn("First target has no socket URL", "url", listURL, "target_id", first.ID)

		return "", &errors.DiscoveryError{URL: listURL, Err: errors.ErrNoDebuggerURL}
	}

	d.log.Debug("Discovered debugger endpoint",
		"target_id", first.ID,
		"title", first.Title,
		"endpoint", first.WebSocketDebuggerURL,
	)

	return first.WebSocketDebuggerURL, nil
}

// Targets fetches and decodes the discovery list at address.
func (d *discoverer) Targets(ctx context.Context, address string) ([]Target, error) {
	listURL, err := ListURL(address)
	if err != nil {
		return nil, &errors.DiscoveryError{URL: address, Err: err}
	}

	d.log.Debug("Fetching target list", "url", listURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, &errors.DiscoveryError{URL: listURL, Err: err}
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &errors.DiscoveryError{URL: listURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &errors.DiscoveryError{
			URL: listURL,
			Err: fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListSize))
	if err != nil {
		return nil, &errors.DiscoveryError{URL: listURL, Err: fmt.Errorf("read body: %w", err)}
	}

	var targets []Target
	if err := json.Unmarshal(body, &targets); err != nil {
		return nil, &errors.DiscoveryError{URL: listURL, Err: fmt.Errorf("decode target list: %w", err)}
	}

	d.log.Debug("Fetched target list", "url", listURL, "target_count", len(targets))

	return targets, nil
}

// IsSocketURL reports whether address is already a ws:// or wss:// URL.
func IsSocketURL(address string) bool {
	return strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://")
}

// ListURL builds the discovery list URL for address.
//
// Accepted forms:
//
//	""                        -> http://127.0.0.1:9229/json
//	"9229"                    -> http://127.0.0.1:9229/json
//	"localhost:9230"          -> http://localhost:9230/json
//	"http://10.0.0.5:9229/"   -> http://10.0.0.5:9229/json
//	"http://host:9229/json"   -> http://host:9229/json
func ListURL(address string) (string, error) {
	address = strings.TrimSpace(address)

	switch {
	case address == "":
		address = "http://" + net.JoinHostPort(DefaultHost, DefaultPort)
	case isPort(address):
		address = "http://" + net.JoinHostPort(DefaultHost, address)
	case !strings.Contains(address, "://"):
		address = "http://" + address
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", fmt.Errorf("parse address: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("address %q has no host", address)
	}

	u.Path = strings.TrimSuffix(u.Path, "/")
	if !strings.HasSuffix(u.Path, listPath) {
		u.Path += listPath
	}

	u.RawQuery = ""
	u.Fragment = ""

	return u.String(), nil
}

// isPort reports whether s is a bare TCP port number.
func isPort(s string) bool {
	n, err := strconv.Atoi(s)

	return err == nil && n > 0 && n <= 65535
}
