// Package config provides configuration types for the inspector client.
package config

import "context"

// Transport is an open, message-oriented socket to a remote debugger.
// Implement this to provide custom transports for testing, mocking,
// or alternative framings.
//
// The default implementation is wsconn.Conn, a WebSocket connection.
type Transport interface {
	// ReadMessages returns channels for receiving text frames and errors.
	// Frames are delivered verbatim, one JSON document per frame.
	// The error channel yields a terminal transport error, if any.
	// Both channels are closed when reading stops.
	ReadMessages(ctx context.Context) (<-chan []byte, <-chan error)

	// SendMessage writes one text frame.
	// This method must be safe for concurrent use.
	SendMessage(ctx context.Context, data []byte) error

	// Close terminates the connection and releases resources.
	// It's safe to call Close multiple times.
	Close() error
}

// Dialer opens a Transport to a socket endpoint.
//
// The default implementation is wsconn.Dialer. Custom dialers can be injected
// via Options.Dialer.
type Dialer interface {
	Dial(ctx context.Context, endpoint string) (Transport, error)
}

// DialerFunc adapts an ordinary function to the Dialer interface.
type DialerFunc func(ctx context.Context, endpoint string) (Transport, error)

// Dial calls f(ctx, endpoint).
func (f DialerFunc) Dial(ctx context.Context, endpoint string) (Transport, error) {
	return f(ctx, endpoint)
}
