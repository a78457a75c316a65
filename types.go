package inspector

import (
	"github.com/wagiedev/inspector-go/internal/event"
	"github.com/wagiedev/inspector-go/internal/message"
	"github.com/wagiedev/inspector-go/internal/protocol"
)

// Envelope is one JSON message on the socket: a request, response or event.
type Envelope = message.Envelope

// Call is a request awaiting its response.
type Call = protocol.Call

// State is the lifecycle phase of a connection.
type State = protocol.State

// Connection states.
const (
	StateIdle       = protocol.StateIdle
	StateConnecting = protocol.StateConnecting
	StateOpen       = protocol.StateOpen
	StateClosed     = protocol.StateClosed
)

// EventHandler receives the raw params of an event.
type EventHandler = event.Handler

// Subscription is the handle returned by Subscribe.
type Subscription = event.Subscription

// Event names with typed subscription helpers.
const (
	EventPaused       = message.EventPaused
	EventResumed      = message.EventResumed
	EventScriptParsed = message.EventScriptParsed
)

// Debugger protocol payloads.
type (
	Location                 = message.Location
	RemoteObject             = message.RemoteObject
	ExceptionDetails         = message.ExceptionDetails
	Scope                    = message.Scope
	CallFrame                = message.CallFrame
	PausedEvent              = message.PausedEvent
	ScriptParsedEvent        = message.ScriptParsedEvent
	SetBreakpointResult      = message.SetBreakpointResult
	SetBreakpointByURLParams = message.SetBreakpointByURLParams
	SetBreakpointByURLResult = message.SetBreakpointByURLResult
	EvaluateResult           = message.EvaluateResult
	PropertyDescriptor       = message.PropertyDescriptor
	GetPropertiesResult      = message.GetPropertiesResult
	GetScriptSourceResult    = message.GetScriptSourceResult
	PauseOnExceptionsState   = message.PauseOnExceptionsState
)

// Pause-on-exceptions states.
const (
	PauseOnExceptionsNone     = message.PauseOnExceptionsNone
	PauseOnExceptionsUncaught = message.PauseOnExceptionsUncaught
	PauseOnExceptionsAll      = message.PauseOnExceptionsAll
)

// DecodeResult unmarshals a response's result into T.
// A response carrying an error object returns that *ResponseError.
func DecodeResult[T any](env *Envelope) (*T, error) {
	return message.DecodeResult[T](env)
}

// ParseEnvelope decodes one inbound frame. Invalid JSON yields *FrameDecodeError.
func ParseEnvelope(data []byte) (*Envelope, error) {
	return message.Parse(data)
}
