package config

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultRequestTimeout is how long a request may wait for its response.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultSweepInterval is how often expired requests are swept.
	DefaultSweepInterval = time.Second

	// DefaultDialTimeout bounds the WebSocket handshake.
	DefaultDialTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing one outbound frame.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultReadLimit is the maximum inbound frame size in bytes.
	// Script sources and large property listings easily exceed the
	// WebSocket library's 32KiB default.
	DefaultReadLimit = 64 * 1024 * 1024

	// RequestTimeoutEnv overrides RequestTimeout when the option is unset.
	RequestTimeoutEnv = "INSPECTOR_REQUEST_TIMEOUT"
)

// Options configures the behavior of the inspector client.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// RequestTimeout bounds how long each request waits for its response.
	// Nil means DefaultRequestTimeout (or RequestTimeoutEnv if set).
	// A zero duration disables deadlines entirely.
	RequestTimeout *time.Duration

	// SweepInterval is how often pending requests are checked for expiry.
	// If zero, DefaultSweepInterval is used.
	SweepInterval time.Duration

	// DialTimeout bounds the WebSocket handshake. A deadline on the Attach
	// context applies as well, whichever is earlier.
	// If zero, DefaultDialTimeout is used.
	DialTimeout time.Duration

	// WriteTimeout bounds writing one frame. Exceeding it is a transport
	// failure and closes the socket.
	// If zero, DefaultWriteTimeout is used.
	WriteTimeout time.Duration

	// HTTPClient is used for endpoint discovery and the WebSocket handshake.
	// If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// ReadLimit is the maximum inbound frame size in bytes.
	// If zero, DefaultReadLimit is used.
	ReadLimit int64

	// FrameLog receives every inbound and outbound frame verbatim, one per line.
	// If nil, frames are only logged at debug level.
	FrameLog io.Writer

	// SkipEnable suppresses the Debugger.enable request normally sent on Connect.
	SkipEnable bool

	// Dialer allows injecting a custom socket implementation.
	// If nil, the default WebSocket dialer is created automatically.
	Dialer Dialer `json:"-"`
}

// EffectiveRequestTimeout resolves RequestTimeout against the environment and defaults.
func (o *Options) EffectiveRequestTimeout() time.Duration {
	if o.RequestTimeout != nil {
		return *o.RequestTimeout
	}

	if v := os.Getenv(RequestTimeoutEnv); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}

	return DefaultRequestTimeout
}

// EffectiveSweepInterval returns SweepInterval or its default.
func (o *Options) EffectiveSweepInterval() time.Duration {
	if o.SweepInterval > 0 {
		return o.SweepInterval
	}

	return DefaultSweepInterval
}

// EffectiveDialTimeout returns DialTimeout or its default.
func (o *Options) EffectiveDialTimeout() time.Duration {
	if o.DialTimeout > 0 {
		return o.DialTimeout
	}

	return DefaultDialTimeout
}

// EffectiveWriteTimeout returns WriteTimeout or its default.
func (o *Options) EffectiveWriteTimeout() time.Duration {
	if o.WriteTimeout > 0 {
		return o.WriteTimeout
	}

	return DefaultWriteTimeout
}

// EffectiveReadLimit returns ReadLimit or its default.
func (o *Options) EffectiveReadLimit() int64 {
	if o.ReadLimit > 0 {
		return o.ReadLimit
	}

	return DefaultReadLimit
}

// EffectiveHTTPClient returns HTTPClient or http.DefaultClient.
func (o *Options) EffectiveHTTPClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}

	return http.DefaultClient
}

// EffectiveLogger returns Logger or a logger that discards everything.
func (o *Options) EffectiveLogger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.New(slog.DiscardHandler)
}
