package message

import "encoding/json"

// Method names of the Debugger and Runtime domains used by the client.
const (
	MethodDebuggerEnable       = "Debugger.enable"
	MethodSetBreakpoint        = "Debugger.setBreakpoint"
	MethodSetBreakpointByURL   = "Debugger.setBreakpointByUrl"
	MethodRemoveBreakpoint     = "Debugger.removeBreakpoint"
	MethodStepOver             = "Debugger.stepOver"
	MethodStepInto             = "Debugger.stepInto"
	MethodStepOut              = "Debugger.stepOut"
	MethodResume               = "Debugger.resume"
	MethodPause                = "Debugger.pause"
	MethodEvaluateOnCallFrame  = "Debugger.evaluateOnCallFrame"
	MethodGetScriptSource      = "Debugger.getScriptSource"
	MethodSetPauseOnExceptions = "Debugger.setPauseOnExceptions"
	MethodGetProperties        = "Runtime.getProperties"
	MethodEvaluate             = "Runtime.evaluate"
)

// Event names emitted by the Debugger domain.
const (
	EventPaused       = "Debugger.paused"
	EventResumed      = "Debugger.resumed"
	EventScriptParsed = "Debugger.scriptParsed"
)

// Location is a position in a parsed script. Line and column numbers are 0-based.
type Location struct {
	ScriptID     string `json:"scriptId"`
	LineNumber   int    `json:"lineNumber"`
	ColumnNumber *int   `json:"columnNumber,omitempty"`
}

// RemoteObject is a mirror of a value living in the debuggee.
type RemoteObject struct {
	Type                string          `json:"type"`
	Subtype             string          `json:"subtype,omitempty"`
	ClassName           string          `json:"className,omitempty"`
	Value               json.RawMessage `json:"value,omitempty"`
	UnserializableValue string          `json:"unserializableValue,omitempty"`
	Description         string          `json:"description,omitempty"`
	ObjectID            string          `json:"objectId,omitempty"`
}

// ExceptionDetails describes an exception thrown during evaluation.
type ExceptionDetails struct {
	ExceptionID  int           `json:"exceptionId"`
	Text         string        `json:"text"`
	LineNumber   int           `json:"lineNumber"`
	ColumnNumber int           `json:"columnNumber"`
	ScriptID     string        `json:"scriptId,omitempty"`
	URL          string        `json:"url,omitempty"`
	Exception    *RemoteObject `json:"exception,omitempty"`
}

// Scope is one entry of a call frame's scope chain.
type Scope struct {
	Type   string       `json:"type"`
	Object RemoteObject `json:"object"`
	Name   string       `json:"name,omitempty"`
}

// CallFrame is a frame of the paused call stack.
type CallFrame struct {
	CallFrameID  string       `json:"callFrameId"`
	FunctionName string       `json:"functionName"`
	Location     Location     `json:"location"`
	URL          string       `json:"url"`
	ScopeChain   []Scope      `json:"scopeChain"`
	This         RemoteObject `json:"this"`
}

// PausedEvent is the params of Debugger.paused.
type PausedEvent struct {
	CallFrames     []CallFrame     `json:"callFrames"`
	Reason         string          `json:"reason"`
	Data           json.RawMessage `json:"data,omitempty"`
	HitBreakpoints []string        `json:"hitBreakpoints,omitempty"`
}

// TopFrame returns the innermost call frame, or nil when the stack is empty.
func (e *PausedEvent) TopFrame() *CallFrame {
	if len(e.CallFrames) == 0 {
		return nil
	}

	return &e.CallFrames[0]
}

// ScriptParsedEvent is the params of Debugger.scriptParsed.
type ScriptParsedEvent struct {
	ScriptID     string `json:"scriptId"`
	URL          string `json:"url"`
	StartLine    int    `json:"startLine"`
	StartColumn  int    `json:"startColumn"`
	EndLine      int    `json:"endLine"`
	EndColumn    int    `json:"endColumn"`
	Hash         string `json:"hash,omitempty"`
	SourceMapURL string `json:"sourceMapURL,omitempty"`
}

// SetBreakpointParams is the params of Debugger.setBreakpoint.
type SetBreakpointParams struct {
	Location  Location `json:"location"`
	Condition string   `json:"condition,omitempty"`
}

// SetBreakpointResult is the result of Debugger.setBreakpoint.
type SetBreakpointResult struct {
	BreakpointID   string   `json:"breakpointId"`
	ActualLocation Location `json:"actualLocation"`
}

// SetBreakpointByURLParams is the params of Debugger.setBreakpointByUrl.
type SetBreakpointByURLParams struct {
	LineNumber   int    `json:"lineNumber"`
	URL          string `json:"url,omitempty"`
	URLRegex     string `json:"urlRegex,omitempty"`
	ColumnNumber *int   `json:"columnNumber,omitempty"`
	Condition    string `json:"condition,omitempty"`
}

// SetBreakpointByURLResult is the result of Debugger.setBreakpointByUrl.
type SetBreakpointByURLResult struct {
	BreakpointID string     `json:"breakpointId"`
	Locations    []Location `json:"locations"`
}

// RemoveBreakpointParams is the params of Debugger.removeBreakpoint.
type RemoveBreakpointParams struct {
	BreakpointID string `json:"breakpointId"`
}

// EvaluateOnCallFrameParams is the params of Debugger.evaluateOnCallFrame.
type EvaluateOnCallFrameParams struct {
	CallFrameID           string `json:"callFrameId"`
	Expression            string `json:"expression"`
	ObjectGroup           string `json:"objectGroup,omitempty"`
	ReturnByValue         bool   `json:"returnByValue,omitempty"`
	GeneratePreview       bool   `json:"generatePreview,omitempty"`
	ThrowOnSideEffect     bool   `json:"throwOnSideEffect,omitempty"`
	IncludeCommandLineAPI bool   `json:"includeCommandLineAPI,omitempty"`
}

// EvaluateParams is the params of Runtime.evaluate.
type EvaluateParams struct {
	Expression            string `json:"expression"`
	ObjectGroup           string `json:"objectGroup,omitempty"`
	ReturnByValue         bool   `json:"returnByValue,omitempty"`
	GeneratePreview       bool   `json:"generatePreview,omitempty"`
	AwaitPromise          bool   `json:"awaitPromise,omitempty"`
	IncludeCommandLineAPI bool   `json:"includeCommandLineAPI,omitempty"`
}

// EvaluateResult is the result of Runtime.evaluate and Debugger.evaluateOnCallFrame.
type EvaluateResult struct {
	Result           RemoteObject      `json:"result"`
	ExceptionDetails *ExceptionDetails `json:"exceptionDetails,omitempty"`
}

// GetPropertiesParams is the params of Runtime.getProperties.
type GetPropertiesParams struct {
	ObjectID               string `json:"objectId"`
	OwnProperties          bool   `json:"ownProperties,omitempty"`
	AccessorPropertiesOnly bool   `json:"accessorPropertiesOnly,omitempty"`
	GeneratePreview        bool   `json:"generatePreview,omitempty"`
}

// PropertyDescriptor describes one property of a remote object.
type PropertyDescriptor struct {
	Name         string        `json:"name"`
	Value        *RemoteObject `json:"value,omitempty"`
	Writable     bool          `json:"writable,omitempty"`
	Get          *RemoteObject `json:"get,omitempty"`
	Set          *RemoteObject `json:"set,omitempty"`
	Configurable bool          `json:"configurable"`
	Enumerable   bool          `json:"enumerable"`
	WasThrown    bool          `json:"wasThrown,omitempty"`
	IsOwn        bool          `json:"isOwn,omitempty"`
}

// InternalPropertyDescriptor describes an engine-internal property such as [[Scopes]].
type InternalPropertyDescriptor struct {
	Name  string        `json:"name"`
	Value *RemoteObject `json:"value,omitempty"`
}

// GetPropertiesResult is the result of Runtime.getProperties.
type GetPropertiesResult struct {
	Result             []PropertyDescriptor         `json:"result"`
	InternalProperties []InternalPropertyDescriptor `json:"internalProperties,omitempty"`
	ExceptionDetails   *ExceptionDetails            `json:"exceptionDetails,omitempty"`
}

// GetScriptSourceParams is the params of Debugger.getScriptSource.
type GetScriptSourceParams struct {
	ScriptID string `json:"scriptId"`
}

// GetScriptSourceResult is the result of Debugger.getScriptSource.
type GetScriptSourceResult struct {
	ScriptSource string `json:"scriptSource"`
}

// PauseOnExceptionsState selects which exceptions pause execution.
type PauseOnExceptionsState string

const (
	// PauseOnExceptionsNone never pauses on exceptions.
	PauseOnExceptionsNone PauseOnExceptionsState = "none"
	// PauseOnExceptionsUncaught pauses on uncaught exceptions only.
	PauseOnExceptionsUncaught PauseOnExceptionsState = "uncaught"
	// PauseOnExceptionsAll pauses on every thrown exception.
	PauseOnExceptionsAll PauseOnExceptionsState = "all"
)

// SetPauseOnExceptionsParams is the params of Debugger.setPauseOnExceptions.
type SetPauseOnExceptionsParams struct {
	State PauseOnExceptionsState `json:"state"`
}
