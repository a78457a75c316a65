package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// InspectorError is the base interface for all inspector client errors.
type InspectorError interface {
	error
	IsInspectorError() bool
}

// Compile-time verification that all error types implement InspectorError.
var (
	_ InspectorError = (*DiscoveryError)(nil)
	_ InspectorError = (*ConnectionError)(nil)
	_ InspectorError = (*FrameDecodeError)(nil)
	_ InspectorError = (*ResponseError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotAttached indicates a request was issued before the connection was attached.
	ErrNotAttached = errors.New("connection not attached")

	// ErrAlreadyAttached indicates Attach was called more than once.
	ErrAlreadyAttached = errors.New("connection already attached")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: clients are single-use, create a new one with NewClient()")

	// ErrConnectionClosed indicates the socket closed while requests were in flight.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrRequestTimeout indicates a request did not receive a response before its deadline.
	ErrRequestTimeout = errors.New("request timeout")

	// ErrInvalidRequestID indicates a request envelope carried no positive id.
	ErrInvalidRequestID = errors.New("request id must be a positive integer")

	// ErrDuplicateRequestID indicates a request id is already pending.
	ErrDuplicateRequestID = errors.New("request id already pending")

	// ErrNoTargets indicates the discovery endpoint listed no debuggable targets.
	ErrNoTargets = errors.New("no debuggable targets")

	// ErrNoDebuggerURL indicates the first target has no webSocketDebuggerUrl.
	// This usually means another debugger client is already attached to it.
	ErrNoDebuggerURL = errors.New("target has no webSocketDebuggerUrl")
)

// DiscoveryError indicates the HTTP discovery endpoint could not be used.
type DiscoveryError struct {
	URL string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover debugger endpoint at %s: %v", e.URL, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// IsInspectorError implements InspectorError.
func (e *DiscoveryError) IsInspectorError() bool { return true }

// ConnectionError indicates the socket could not be opened or failed after opening.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsInspectorError implements InspectorError.
func (e *ConnectionError) IsInspectorError() bool { return true }

// FrameDecodeError indicates an inbound frame was not valid JSON.
// This error preserves the original raw frame that failed to parse.
type FrameDecodeError struct {
	RawData string
	Err     error
}

func (e *FrameDecodeError) Error() string {
	return fmt.Sprintf("failed to decode frame: %v", e.Err)
}

func (e *FrameDecodeError) Unwrap() error {
	return e.Err
}

// IsInspectorError implements InspectorError.
func (e *FrameDecodeError) IsInspectorError() bool { return true }

// ResponseError is the error object a remote debugger returns in place of a result.
//
// Wire format:
//
//	{"id": 7, "error": {"code": -32000, "message": "Could not find object with given id"}}
type ResponseError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
}

// IsInspectorError implements InspectorError.
func (e *ResponseError) IsInspectorError() bool { return true }
