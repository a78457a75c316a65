package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	inspector "github.com/wagiedev/inspector-go"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    command
		wantErr string
	}{
		{line: "", want: command{}},
		{line: "   ", want: command{}},
		{line: "n", want: command{name: "next", args: []string{}}},
		{line: "CONT", want: command{name: "cont", args: []string{}}},
		{line: "b file:///app.js 12", want: command{name: "break", args: []string{"file:///app.js", "12"}}},
		{
			line: "break file:///app.js 12 i > 3 && ok",
			want: command{name: "break", args: []string{"file:///app.js", "12", "i > 3 && ok"}},
		},
		{line: "p  a +  b ", want: command{name: "print", args: []string{"a +  b"}}},
		{line: "eval process.version", want: command{name: "eval", args: []string{"process.version"}}},
		{
			line: `raw Runtime.evaluate {"expression": "1"}`,
			want: command{name: "raw", args: []string{"Runtime.evaluate", `{"expression": "1"}`}},
		},
		{line: "exit", want: command{name: "quit", args: []string{}}},
		{line: "break file:///app.js", wantErr: "break needs at least 2 argument(s)"},
		{line: "props", wantErr: "props needs at least 1 argument(s)"},
		{line: "frobnicate", wantErr: `unknown command "frobnicate"`},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		obj  inspector.RemoteObject
		want string
	}{
		{"number", inspector.RemoteObject{Type: "number", Value: json.RawMessage(`42`), Description: "42"}, "42"},
		{"string", inspector.RemoteObject{Type: "string", Value: json.RawMessage(`"hi"`)}, `"hi"`},
		{"unserializable", inspector.RemoteObject{Type: "number", UnserializableValue: "NaN"}, "NaN"},
		{"object", inspector.RemoteObject{Type: "object", ClassName: "Object", Description: "Object"}, "Object"},
		{"undefined", inspector.RemoteObject{Type: "undefined"}, "undefined"},
		{"null", inspector.RemoteObject{Type: "object", Subtype: "null", Value: json.RawMessage(`null`)}, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, describe(tt.obj))
		})
	}
}

func TestFormatPaused(t *testing.T) {
	ev := &inspector.PausedEvent{
		Reason: "breakpoint",
		CallFrames: []inspector.CallFrame{{
			CallFrameID: "f0",
			URL:         "file:///app.js",
			Location:    inspector.Location{ScriptID: "7", LineNumber: 11},
		}},
	}

	require.Equal(t, "Paused (breakpoint) in (anonymous) at file:///app.js:12", formatPaused(ev))
	require.Equal(t, "Paused (other)", formatPaused(&inspector.PausedEvent{Reason: "other"}))
}

func TestHistoryFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, ".inspector_history"), historyFile())
}

func TestParseFlags(t *testing.T) {
	env := map[string]string{
		"INSPECTOR_ADDRESS":         "10.0.0.2:9229",
		"INSPECTOR_REQUEST_TIMEOUT": "5s",
		"INSPECTOR_FRAME_LOG":       "/tmp/frames.log",
	}

	cfg, err := parseFlags(nil, func(k string) string { return env[k] })
	require.NoError(t, err)
	require.Equal(t, "10.0.0.2:9229", cfg.address)
	require.Equal(t, 5*time.Second, cfg.timeout)
	require.Equal(t, "/tmp/frames.log", cfg.frames)

	cfg, err = parseFlags([]string{"-timeout", "0", "-mcp", "-v", "9230"}, func(k string) string { return env[k] })
	require.NoError(t, err)
	require.Equal(t, "9230", cfg.address)
	require.Zero(t, cfg.timeout)
	require.True(t, cfg.mcp)
	require.True(t, cfg.verbose)

	cfg, err = parseFlags(nil, func(string) string { return "" })
	require.NoError(t, err)
	require.Equal(t, defaultAddress, cfg.address)
	require.Equal(t, inspector.DefaultRequestTimeout, cfg.timeout)

	_, err = parseFlags([]string{"a", "b"}, func(string) string { return "" })
	require.ErrorContains(t, err, "unexpected arguments")

	_, err = parseFlags(nil, func(k string) string {
		if k == "INSPECTOR_REQUEST_TIMEOUT" {
			return "soon"
		}

		return ""
	})
	require.ErrorContains(t, err, "INSPECTOR_REQUEST_TIMEOUT")
}

// scriptedTransport answers requests with canned results keyed by method.
type scriptedTransport struct {
	frames  chan []byte
	results map[string]string

	mu      sync.Mutex
	methods []string
	params  []string
}

func (s *scriptedTransport) ReadMessages(context.Context) (<-chan []byte, <-chan error) {
	return s.frames, nil
}

func (s *scriptedTransport) SendMessage(_ context.Context, data []byte) error {
	req := gjson.ParseBytes(data)
	method := req.Get("method").String()

	s.mu.Lock()
	s.methods = append(s.methods, method)
	s.params = append(s.params, req.Get("params").Raw)
	s.mu.Unlock()

	result, ok := s.results[method]
	if !ok {
		result = `{}`
	}

	s.frames <- []byte(`{"id":` + strconv.FormatInt(req.Get("id").Int(), 10) + `,"result":` + result + `}`)

	return nil
}

func (s *scriptedTransport) Close() error { return nil }

func newScriptedREPL(t *testing.T, results map[string]string) (*repl, *scriptedTransport, *bytes.Buffer) {
	t.Helper()

	tr := &scriptedTransport{frames: make(chan []byte, 16), results: results}
	client := inspector.NewClient(
		inspector.WithSkipEnable(),
		inspector.WithDialer(inspector.DialerFunc(func(context.Context, string) (inspector.Transport, error) {
			return tr, nil
		})),
	)
	t.Cleanup(func() { _ = client.Close() })

	var out bytes.Buffer

	r := newREPL(client, &out)

	require.NoError(t, client.Attach(context.Background(), "ws://127.0.0.1:9229/x"))

	return r, tr, &out
}

func TestREPL_Break(t *testing.T) {
	r, tr, out := newScriptedREPL(t, map[string]string{
		"Debugger.setBreakpointByUrl": `{"breakpointId":"1:11:0:file:///app.js","locations":[{"scriptId":"7","lineNumber":11}]}`,
	})

	cmd, err := parseCommand("break file:///app.js 12 x > 1")
	require.NoError(t, err)
	require.NoError(t, r.execute(context.Background(), cmd))

	require.Equal(t, "Breakpoint 1:11:0:file:///app.js (1 location(s))\n", out.String())
	require.Equal(t, []string{"Debugger.setBreakpointByUrl"}, tr.methods)
	require.JSONEq(t, `{"url":"file:///app.js","lineNumber":11,"condition":"x > 1"}`, tr.params[0])

	cmd, err = parseCommand("break file:///app.js zero")
	require.NoError(t, err)
	require.ErrorContains(t, r.execute(context.Background(), cmd), "line must be a positive number")
}

func TestREPL_PrintUsesPausedFrame(t *testing.T) {
	r, tr, out := newScriptedREPL(t, map[string]string{
		"Debugger.evaluateOnCallFrame": `{"result":{"type":"number","value":3,"description":"3"}}`,
		"Runtime.evaluate":             `{"result":{"type":"string","value":"v22.0.0"}}`,
	})

	cmd, err := parseCommand("print process.version")
	require.NoError(t, err)
	require.NoError(t, r.execute(context.Background(), cmd))
	require.Equal(t, "\"v22.0.0\"\n", out.String())

	tr.frames <- []byte(`{"method":"Debugger.paused","params":{"reason":"other","callFrames":[` +
		`{"callFrameId":"f0","functionName":"tick","location":{"scriptId":"7","lineNumber":4},"url":"file:///app.js"}]}}`)

	require.Eventually(t, func() bool { return r.topFrame() != nil }, 2*time.Second, 5*time.Millisecond)

	out.Reset()

	cmd, err = parseCommand("print a + b")
	require.NoError(t, err)
	require.NoError(t, r.execute(context.Background(), cmd))
	require.Equal(t, "3\n", out.String())

	tr.mu.Lock()
	defer tr.mu.Unlock()

	require.Equal(t, []string{"Runtime.evaluate", "Debugger.evaluateOnCallFrame"}, tr.methods)
	require.JSONEq(t, `{"callFrameId":"f0","expression":"a + b"}`, tr.params[1])
}

func TestREPL_Raw(t *testing.T) {
	r, tr, out := newScriptedREPL(t, map[string]string{
		"Runtime.getHeapUsage": `{"usedSize":1024,"totalSize":4096}`,
	})

	cmd, err := parseCommand(`raw Runtime.getHeapUsage {"x": 1}`)
	require.NoError(t, err)
	require.NoError(t, r.execute(context.Background(), cmd))

	require.Equal(t, int64(1024), gjson.Get(out.String(), "result.usedSize").Int())
	require.Contains(t, out.String(), "\n  \"result\": {")
	require.JSONEq(t, `{"x": 1}`, tr.params[0])

	cmd, err = parseCommand(`raw Runtime.getHeapUsage {oops`)
	require.NoError(t, err)
	require.ErrorContains(t, r.execute(context.Background(), cmd), "not valid JSON")
}
