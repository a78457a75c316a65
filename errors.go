package inspector

import "github.com/wagiedev/inspector-go/internal/errors"

// Re-export error types from internal package

// InspectorError is the base interface for all client errors.
type InspectorError = errors.InspectorError

// DiscoveryError indicates the debugger's /json endpoint could not be resolved.
type DiscoveryError = errors.DiscoveryError

// ConnectionError indicates the socket could not be opened or was lost.
type ConnectionError = errors.ConnectionError

// FrameDecodeError indicates an inbound frame was not valid JSON.
type FrameDecodeError = errors.FrameDecodeError

// ResponseError is an error object returned by the debugger.
type ResponseError = errors.ResponseError

// Re-export sentinel errors from internal package.
var (
	// ErrNotAttached indicates a request was issued before Connect or Attach.
	ErrNotAttached = errors.ErrNotAttached

	// ErrAlreadyAttached indicates Connect or Attach was called twice.
	ErrAlreadyAttached = errors.ErrAlreadyAttached

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrConnectionClosed indicates the socket closed while a request was pending.
	ErrConnectionClosed = errors.ErrConnectionClosed

	// ErrRequestTimeout indicates a request timed out.
	ErrRequestTimeout = errors.ErrRequestTimeout

	// ErrNoTargets indicates discovery found no debuggable targets.
	ErrNoTargets = errors.ErrNoTargets

	// ErrNoDebuggerURL indicates the first target has no socket URL.
	ErrNoDebuggerURL = errors.ErrNoDebuggerURL
)
