// Package message defines the envelope exchanged with a remote debugger and the
// payload types of the Debugger and Runtime domains.
package message

import (
	"encoding/json"

	"github.com/wagiedev/inspector-go/internal/errors"
)

// Kind classifies an envelope by the fields it carries.
type Kind int

const (
	// KindUnknown is an envelope with neither a truthy id nor a method.
	KindUnknown Kind = iota
	// KindResponse is an envelope with a truthy id.
	KindResponse
	// KindEvent is an envelope with a method and no id.
	KindEvent
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindResponse:
		return "response"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Envelope is one discrete JSON message exchanged over the socket.
//
// Requests, responses and events share this one wire shape:
//
//	request:  {"id": 1, "method": "Debugger.stepOver", "params": {...}}
//	response: {"id": 1, "result": {...}}
//	event:    {"method": "Debugger.paused", "params": {...}}
type Envelope struct {
	ID     int64                 `json:"id,omitempty"`
	Method string                `json:"method,omitempty"`
	Params json.RawMessage       `json:"params,omitempty"`
	Result json.RawMessage       `json:"result,omitempty"`
	Error  *errors.ResponseError `json:"error,omitempty"`

	// Raw is the verbatim inbound frame. It is empty for outbound envelopes.
	Raw json.RawMessage `json:"-"`
}

// Kind reports whether the envelope is a response, an event, or neither.
//
// An id of zero counts as absent, so {"id": 0, "method": "m"} is an event.
func (e *Envelope) Kind() Kind {
	switch {
	case e.ID != 0:
		return KindResponse
	case e.Method != "":
		return KindEvent
	default:
		return KindUnknown
	}
}

// IsError reports whether a response carries an error object instead of a result.
func (e *Envelope) IsError() bool {
	return e.Error != nil
}
