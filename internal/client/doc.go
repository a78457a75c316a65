// Package client implements the debugger protocol client.
//
// The Client wraps a protocol.Correlator and adds:
//   - A request id counter that starts at 1 and only increases
//   - Endpoint discovery over HTTP before attaching
//   - A fire-and-forget Debugger.enable on connect
//   - Typed operations for breakpoints, stepping and evaluation
//   - Typed event subscriptions for Debugger.paused, resumed and scriptParsed
//
// Each operation only shapes parameters. Retry, validation and timeout policy
// belong to the caller and the Correlator.
package client
