package inspector

import (
	"context"

	"github.com/wagiedev/inspector-go/internal/client"
	internalmcp "github.com/wagiedev/inspector-go/internal/mcp"
)

// Client is a connection to one remote debugger target.
//
// Lifecycle: Clients are single-use. After Close(), create a new client with NewClient().
//
// Requests are correlated by id, so any number may be outstanding at once and
// they may complete in any order. Event handlers run on the connection's read
// goroutine in arrival order; a handler must not call Close, and should hand
// long work to another goroutine.
type Client interface {
	// Connect resolves address through the debugger's HTTP /json endpoint and
	// attaches to the first target. address may be host:port, a bare port,
	// an http(s) URL or a ws(s) socket URL, which skips discovery.
	// Returns *DiscoveryError when discovery fails.
	Connect(ctx context.Context, address string) error

	// Attach connects directly to a ws(s) socket URL.
	Attach(ctx context.Context, endpoint string) error

	// WaitReady blocks until the socket is open.
	// Returns *ConnectionError if it could not be opened.
	WaitReady(ctx context.Context) error

	// State returns the connection state.
	State() State

	// Done returns a channel that is closed when the connection ends.
	Done() <-chan struct{}

	// Err returns why the connection ended, or nil while it is running.
	Err() error

	// Issue sends a request with the next id and returns without waiting.
	Issue(ctx context.Context, method string, params any) (*Call, error)

	// Request sends a request and waits for the response.
	// A debugger error is returned as *ResponseError alongside the response.
	Request(ctx context.Context, method string, params any) (*Envelope, error)

	// LastID returns the most recently issued request id, or 0.
	LastID() int64

	// Subscribe registers a handler for raw events named name.
	Subscribe(name string, handler EventHandler) *Subscription

	// Unsubscribe removes a subscription. It reports whether it was registered.
	Unsubscribe(sub *Subscription) bool

	// OnPaused registers a handler for Debugger.paused.
	OnPaused(handler func(*PausedEvent)) *Subscription

	// OnResumed registers a handler for Debugger.resumed.
	OnResumed(handler func()) *Subscription

	// OnScriptParsed registers a handler for Debugger.scriptParsed.
	OnScriptParsed(handler func(*ScriptParsedEvent)) *Subscription

	// SetBreakpoint sets a breakpoint at a script location.
	SetBreakpoint(ctx context.Context, location Location, condition string) (*SetBreakpointResult, error)

	// SetBreakpointByURL sets a breakpoint in every script matching a URL,
	// including scripts loaded later.
	SetBreakpointByURL(ctx context.Context, params *SetBreakpointByURLParams) (*SetBreakpointByURLResult, error)

	// RemoveBreakpoint removes a breakpoint by id.
	RemoveBreakpoint(ctx context.Context, breakpointID string) (*Envelope, error)

	// StepOver steps over the next statement.
	StepOver(ctx context.Context) (*Envelope, error)

	// StepInto steps into the next function call.
	StepInto(ctx context.Context) (*Envelope, error)

	// StepOut steps out of the current function.
	StepOut(ctx context.Context) (*Envelope, error)

	// Resume resumes execution.
	Resume(ctx context.Context) (*Envelope, error)

	// Pause pauses execution at the next statement.
	Pause(ctx context.Context) (*Envelope, error)

	// EvaluateOnCallFrame evaluates an expression in a paused call frame.
	EvaluateOnCallFrame(ctx context.Context, callFrameID, expression string) (*EvaluateResult, error)

	// GetProperties lists the own properties of a remote object.
	GetProperties(ctx context.Context, objectID string) (*GetPropertiesResult, error)

	// Evaluate evaluates an expression in the global scope.
	Evaluate(ctx context.Context, expression string) (*EvaluateResult, error)

	// GetScriptSource fetches the source of a parsed script.
	GetScriptSource(ctx context.Context, scriptID string) (*GetScriptSourceResult, error)

	// SetPauseOnExceptions controls whether exceptions pause execution.
	SetPauseOnExceptions(ctx context.Context, state PauseOnExceptionsState) (*Envelope, error)

	// Close closes the connection, rejecting every pending request.
	// Safe to call multiple times.
	Close() error
}

// Compile-time verification that the protocol client implements Client and
// can back the MCP tools.
var (
	_ Client               = (*client.Client)(nil)
	_ internalmcp.Debugger = Client(nil)
)

// NewClient creates an unconnected client.
//
// Subscribe to events before calling Connect so none are missed:
//
//	client := NewClient(WithLogger(slog.Default()))
//	client.OnScriptParsed(func(ev *ScriptParsedEvent) { ... })
//	err := client.Connect(ctx, "127.0.0.1:9229")
func NewClient(opts ...Option) Client {
	return client.New(applyOptions(opts))
}
