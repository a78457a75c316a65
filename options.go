package inspector

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wagiedev/inspector-go/internal/config"
)

const (
	// DefaultRequestTimeout is how long a request waits for its response by default.
	DefaultRequestTimeout = config.DefaultRequestTimeout

	// RequestTimeoutEnv names the environment variable that overrides DefaultRequestTimeout.
	RequestTimeoutEnv = config.RequestTimeoutEnv
)

// Options holds client configuration. Build it with Option functions.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to a fresh Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithRequestTimeout bounds how long each request waits for its response.
// Zero disables the deadline. Defaults to 60 seconds, or the duration in
// INSPECTOR_REQUEST_TIMEOUT when set.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.RequestTimeout = &timeout
	}
}

// WithSweepInterval sets how often overdue requests are expired.
func WithSweepInterval(interval time.Duration) Option {
	return func(o *Options) {
		o.SweepInterval = interval
	}
}

// WithHTTPClient sets the HTTP client used for discovery and the WebSocket handshake.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithDialer replaces the WebSocket dialer, e.g. with an in-memory transport in tests.
func WithDialer(dialer Dialer) Option {
	return func(o *Options) {
		o.Dialer = dialer
	}
}

// WithFrameLog writes every inbound and outbound frame to w, one per line,
// prefixed with "<-- " or "--> ".
func WithFrameLog(w io.Writer) Option {
	return func(o *Options) {
		o.FrameLog = w
	}
}

// WithDialTimeout bounds the WebSocket handshake.
func WithDialTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.DialTimeout = timeout
	}
}

// WithWriteTimeout bounds writing one outbound frame.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.WriteTimeout = timeout
	}
}

// WithReadLimit sets the maximum inbound frame size in bytes.
func WithReadLimit(limit int64) Option {
	return func(o *Options) {
		o.ReadLimit = limit
	}
}

// WithSkipEnable stops Connect and Attach from sending Debugger.enable.
func WithSkipEnable() Option {
	return func(o *Options) {
		o.SkipEnable = true
	}
}
