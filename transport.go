package inspector

import "github.com/wagiedev/inspector-go/internal/config"

// Transport is an open, message-oriented socket to a remote debugger.
// Implement this to provide custom transports for testing, mocking,
// or alternative framings.
//
// The default implementation is a WebSocket connection.
type Transport = config.Transport

// Dialer opens a Transport to an endpoint. Inject one with WithDialer.
type Dialer = config.Dialer

// DialerFunc adapts an ordinary function to the Dialer interface.
type DialerFunc = config.DialerFunc
