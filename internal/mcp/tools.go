package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/inspector-go/internal/message"
)

// Debugger is the subset of the protocol client the tools drive.
type Debugger interface {
	SetBreakpointByURL(
		ctx context.Context,
		params *message.SetBreakpointByURLParams,
	) (*message.SetBreakpointByURLResult, error)
	RemoveBreakpoint(ctx context.Context, breakpointID string) (*message.Envelope, error)
	StepOver(ctx context.Context) (*message.Envelope, error)
	StepInto(ctx context.Context) (*message.Envelope, error)
	StepOut(ctx context.Context) (*message.Envelope, error)
	Resume(ctx context.Context) (*message.Envelope, error)
	Pause(ctx context.Context) (*message.Envelope, error)
	Evaluate(ctx context.Context, expression string) (*message.EvaluateResult, error)
	EvaluateOnCallFrame(ctx context.Context, callFrameID, expression string) (*message.EvaluateResult, error)
	GetProperties(ctx context.Context, objectID string) (*message.GetPropertiesResult, error)
}

// Tool names.
const (
	ToolSetBreakpoint       = "set_breakpoint"
	ToolRemoveBreakpoint    = "remove_breakpoint"
	ToolStepOver            = "step_over"
	ToolStepInto            = "step_into"
	ToolStepOut             = "step_out"
	ToolResume              = "resume"
	ToolPause               = "pause"
	ToolEvaluate            = "evaluate"
	ToolEvaluateOnCallFrame = "evaluate_on_call_frame"
	ToolGetProperties       = "get_properties"
)

type setBreakpointArgs struct {
	URL       string `json:"url"`
	Line      int    `json:"line"`
	Column    *int   `json:"column,omitempty"`
	Condition string `json:"condition,omitempty"`
}

type removeBreakpointArgs struct {
	BreakpointID string `json:"breakpoint_id"`
}

type evaluateArgs struct {
	Expression string `json:"expression"`
}

type evaluateOnCallFrameArgs struct {
	CallFrameID string `json:"call_frame_id"`
	Expression  string `json:"expression"`
}

type getPropertiesArgs struct {
	ObjectID string `json:"object_id"`
}

// Tools returns a registry with every debugger tool bound to d.
func Tools(d Debugger) *Registry {
	r := NewRegistry()

	r.AddTool(
		NewTool(ToolSetBreakpoint,
			"Set a breakpoint by script URL and zero-based line number. "+
				"Applies to scripts loaded later as well.",
			Describe(Optional(SimpleSchema(map[string]string{
				"url":       "string",
				"line":      "int",
				"column":    "int",
				"condition": "string",
			}), "column", "condition"), "condition", "Expression that must be truthy for the breakpoint to pause")),
		func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments[setBreakpointArgs](req)
			if err != nil {
				return nil, err
			}

			if args.URL == "" {
				return ErrorResult("url is required"), nil
			}

			res, err := d.SetBreakpointByURL(ctx, &message.SetBreakpointByURLParams{
				URL:          args.URL,
				LineNumber:   args.Line,
				ColumnNumber: args.Column,
				Condition:    args.Condition,
			})
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			return JSONResult(res), nil
		},
	)

	r.AddTool(
		NewTool(ToolRemoveBreakpoint, "Remove a breakpoint by the id set_breakpoint returned.",
			SimpleSchema(map[string]string{"breakpoint_id": "string"})),
		func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments[removeBreakpointArgs](req)
			if err != nil {
				return nil, err
			}

			if _, err := d.RemoveBreakpoint(ctx, args.BreakpointID); err != nil {
				return ErrorResult(err.Error()), nil
			}

			return TextResult("Removed breakpoint " + args.BreakpointID), nil
		},
	)

	controls := []struct {
		name        string
		description string
		invoke      func(context.Context) (*message.Envelope, error)
	}{
		{ToolStepOver, "Step over the next statement while paused.", d.StepOver},
		{ToolStepInto, "Step into the next function call while paused.", d.StepInto},
		{ToolStepOut, "Step out of the current function while paused.", d.StepOut},
		{ToolResume, "Resume execution.", d.Resume},
		{ToolPause, "Pause execution at the next statement.", d.Pause},
	}

	for _, control := range controls {
		r.AddTool(
			NewTool(control.name, control.description, SimpleSchema(nil)),
			func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				if _, err := control.invoke(ctx); err != nil {
					return ErrorResult(err.Error()), nil
				}

				return TextResult("ok"), nil
			},
		)
	}

	r.AddTool(
		NewTool(ToolEvaluate, "Evaluate an expression in the global scope.",
			SimpleSchema(map[string]string{"expression": "string"})),
		func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments[evaluateArgs](req)
			if err != nil {
				return nil, err
			}

			res, err := d.Evaluate(ctx, args.Expression)

			return evaluationResult(res, err), nil
		},
	)

	r.AddTool(
		NewTool(ToolEvaluateOnCallFrame,
			"Evaluate an expression in the scope of a paused call frame.",
			SimpleSchema(map[string]string{"call_frame_id": "string", "expression": "string"})),
		func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments[evaluateOnCallFrameArgs](req)
			if err != nil {
				return nil, err
			}

			res, err := d.EvaluateOnCallFrame(ctx, args.CallFrameID, args.Expression)

			return evaluationResult(res, err), nil
		},
	)

	r.AddTool(
		NewTool(ToolGetProperties, "List the own properties of a remote object.",
			SimpleSchema(map[string]string{"object_id": "string"})),
		func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := ParseArguments[getPropertiesArgs](req)
			if err != nil {
				return nil, err
			}

			res, err := d.GetProperties(ctx, args.ObjectID)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}

			return JSONResult(res), nil
		},
	)

	return r
}

// NewServer returns an MCP server exposing every debugger tool bound to d.
func NewServer(d Debugger, name, version string) *mcp.Server {
	return Tools(d).Server(name, version)
}

// evaluationResult reports a thrown exception as an error result.
func evaluationResult(res *message.EvaluateResult, err error) *mcp.CallToolResult {
	if err != nil {
		return ErrorResult(err.Error())
	}

	if ex := res.ExceptionDetails; ex != nil {
		text := ex.Text
		if ex.Exception != nil && ex.Exception.Description != "" {
			text = ex.Exception.Description
		}

		return ErrorResult(fmt.Sprintf("Uncaught at %d:%d: %s", ex.LineNumber, ex.ColumnNumber, text))
	}

	return JSONResult(res.Result)
}
