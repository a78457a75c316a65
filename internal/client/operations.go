package client

import (
	"context"

	"github.com/wagiedev/inspector-go/internal/message"
)

// SetBreakpoint sets a breakpoint at a script location.
// An empty condition means the breakpoint always pauses.
func (c *Client) SetBreakpoint(
	ctx context.Context,
	location message.Location,
	condition string,
) (*message.SetBreakpointResult, error) {
	return request[message.SetBreakpointResult](ctx, c, message.MethodSetBreakpoint,
		&message.SetBreakpointParams{Location: location, Condition: condition})
}

// SetBreakpointByURL sets a breakpoint in every script matching the URL,
// including scripts parsed later.
func (c *Client) SetBreakpointByURL(
	ctx context.Context,
	params *message.SetBreakpointByURLParams,
) (*message.SetBreakpointByURLResult, error) {
	return request[message.SetBreakpointByURLResult](ctx, c, message.MethodSetBreakpointByURL, params)
}

// RemoveBreakpoint removes a breakpoint by id.
func (c *Client) RemoveBreakpoint(ctx context.Context, breakpointID string) (*message.Envelope, error) {
	return c.Request(ctx, message.MethodRemoveBreakpoint,
		&message.RemoveBreakpointParams{BreakpointID: breakpointID})
}

// StepOver steps over the next statement.
func (c *Client) StepOver(ctx context.Context) (*message.Envelope, error) {
	return c.Request(ctx, message.MethodStepOver, nil)
}

// StepInto steps into the next function call.
func (c *Client) StepInto(ctx context.Context) (*message.Envelope, error) {
	return c.Request(ctx, message.MethodStepInto, nil)
}

// StepOut steps out of the current function.
func (c *Client) StepOut(ctx context.Context) (*message.Envelope, error) {
	return c.Request(ctx, message.MethodStepOut, nil)
}

// Resume resumes execution.
func (c *Client) Resume(ctx context.Context) (*message.Envelope, error) {
	return c.Request(ctx, message.MethodResume, nil)
}

// Pause pauses execution at the next statement.
func (c *Client) Pause(ctx context.Context) (*message.Envelope, error) {
	return c.Request(ctx, message.MethodPause, nil)
}

// EvaluateOnCallFrame evaluates expression in the scope of a paused call frame.
func (c *Client) EvaluateOnCallFrame(
	ctx context.Context,
	callFrameID string,
	expression string,
) (*message.EvaluateResult, error) {
	return request[message.EvaluateResult](ctx, c, message.MethodEvaluateOnCallFrame,
		&message.EvaluateOnCallFrameParams{CallFrameID: callFrameID, Expression: expression})
}

// GetProperties lists the own properties of a remote object.
func (c *Client) GetProperties(ctx context.Context, objectID string) (*message.GetPropertiesResult, error) {
	return request[message.GetPropertiesResult](ctx, c, message.MethodGetProperties,
		&message.GetPropertiesParams{ObjectID: objectID, OwnProperties: true})
}

// Evaluate evaluates expression in the global scope.
func (c *Client) Evaluate(ctx context.Context, expression string) (*message.EvaluateResult, error) {
	return request[message.EvaluateResult](ctx, c, message.MethodEvaluate,
		&message.EvaluateParams{Expression: expression})
}

// GetScriptSource fetches the source text of a parsed script.
func (c *Client) GetScriptSource(ctx context.Context, scriptID string) (*message.GetScriptSourceResult, error) {
	return request[message.GetScriptSourceResult](ctx, c, message.MethodGetScriptSource,
		&message.GetScriptSourceParams{ScriptID: scriptID})
}

// SetPauseOnExceptions controls whether thrown exceptions pause execution.
func (c *Client) SetPauseOnExceptions(
	ctx context.Context,
	state message.PauseOnExceptionsState,
) (*message.Envelope, error) {
	return c.Request(ctx, message.MethodSetPauseOnExceptions,
		&message.SetPauseOnExceptionsParams{State: state})
}
