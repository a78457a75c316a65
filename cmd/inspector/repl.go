package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	inspector "github.com/wagiedev/inspector-go"
)

// command is one parsed prompt line.
type command struct {
	name string
	args []string
}

// aliases maps short forms to command names.
var aliases = map[string]string{
	"b":    "break",
	"bp":   "break",
	"d":    "delete",
	"n":    "next",
	"s":    "step",
	"o":    "out",
	"c":    "cont",
	"p":    "print",
	"q":    "quit",
	"exit": "quit",
	"?":    "help",
}

// arity is the minimum argument count of each command.
var arity = map[string]int{
	"break":  2,
	"delete": 1,
	"next":   0,
	"step":   0,
	"out":    0,
	"cont":   0,
	"pause":  0,
	"print":  1,
	"eval":   1,
	"props":  1,
	"source": 1,
	"raw":    1,
	"help":   0,
	"quit":   0,
}

const helpText = `Commands:
  break <url> <line> [condition]  set a breakpoint (line is 1-based)
  delete <breakpointId>           remove a breakpoint
  next | step | out               step over, into or out
  cont                            resume execution
  pause                           pause execution
  print <expr>                    evaluate in the paused frame, or globally
  eval <expr>                     evaluate globally
  props <objectId>                list an object's own properties
  source <scriptId>               print a script's source
  raw <method> [json params]      send any protocol request
  help                            show this help
  quit                            exit`

// parseCommand splits a prompt line into a command and its arguments.
// An empty line yields the zero command.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, nil
	}

	name := strings.ToLower(fields[0])
	if full, ok := aliases[name]; ok {
		name = full
	}

	minArgs, ok := arity[name]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q, type help", fields[0])
	}

	args := fields[1:]
	if len(args) < minArgs {
		return command{}, fmt.Errorf("%s needs at least %d argument(s)", name, minArgs)
	}

	switch name {
	case "print", "eval":
		// Expressions keep their spacing.
		args = []string{strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))}
	case "break":
		if len(args) > 2 {
			condition := strings.Join(args[2:], " ")
			args = []string{args[0], args[1], condition}
		}
	case "raw":
		if len(args) > 1 {
			params := strings.Join(args[1:], " ")
			args = []string{args[0], params}
		}
	}

	return command{name: name, args: args}, nil
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(arity))
	for _, name := range []string{
		"break", "delete", "next", "step", "out", "cont", "pause",
		"print", "eval", "props", "source", "raw", "help", "quit",
	} {
		items = append(items, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(items...)
}

// repl executes prompt commands against a client.
type repl struct {
	client inspector.Client
	out    io.Writer

	mu     sync.Mutex
	paused *inspector.PausedEvent
}

// newREPL creates a repl and subscribes to pause state changes.
func newREPL(client inspector.Client, out io.Writer) *repl {
	r := &repl{client: client, out: out}

	client.OnPaused(func(ev *inspector.PausedEvent) {
		fmt.Fprintln(r.out, formatPaused(ev))

		r.mu.Lock()
		r.paused = ev
		r.mu.Unlock()
	})

	client.OnResumed(func() {
		r.mu.Lock()
		r.paused = nil
		r.mu.Unlock()
	})

	return r
}

// loop reads commands until quit, EOF or the connection ends.
func (r *repl) loop(ctx context.Context, rl *readline.Instance) error {
	for {
		line, err := rl.Readline()

		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		cmd, err := parseCommand(line)
		if err != nil {
			fmt.Fprintln(r.out, err)

			continue
		}

		if cmd.name == "quit" {
			return nil
		}

		if err := r.execute(ctx, cmd); err != nil {
			fmt.Fprintln(r.out, "error:", err)
		}

		select {
		case <-r.client.Done():
			return r.client.Err()
		case <-ctx.Done():
			return nil
		default:
		}
	}
}

// execute runs one command.
func (r *repl) execute(ctx context.Context, cmd command) error {
	c := r.client

	switch cmd.name {
	case "":
		return nil

	case "help":
		fmt.Fprintln(r.out, helpText)

		return nil

	case "break":
		line, err := strconv.Atoi(cmd.args[1])
		if err != nil || line < 1 {
			return fmt.Errorf("line must be a positive number: %s", cmd.args[1])
		}

		params := &inspector.SetBreakpointByURLParams{URL: cmd.args[0], LineNumber: line - 1}
		if len(cmd.args) > 2 {
			params.Condition = cmd.args[2]
		}

		res, err := c.SetBreakpointByURL(ctx, params)
		if err != nil {
			return err
		}

		fmt.Fprintf(r.out, "Breakpoint %s (%d location(s))\n", res.BreakpointID, len(res.Locations))

		return nil

	case "delete":
		if _, err := c.RemoveBreakpoint(ctx, cmd.args[0]); err != nil {
			return err
		}

		fmt.Fprintln(r.out, "Removed", cmd.args[0])

		return nil

	case "next":
		_, err := c.StepOver(ctx)

		return err

	case "step":
		_, err := c.StepInto(ctx)

		return err

	case "out":
		_, err := c.StepOut(ctx)

		return err

	case "cont":
		_, err := c.Resume(ctx)

		return err

	case "pause":
		_, err := c.Pause(ctx)

		return err

	case "print", "eval":
		var (
			res *inspector.EvaluateResult
			err error
		)

		if frame := r.topFrame(); cmd.name == "print" && frame != nil {
			res, err = c.EvaluateOnCallFrame(ctx, frame.CallFrameID, cmd.args[0])
		} else {
			res, err = c.Evaluate(ctx, cmd.args[0])
		}

		if err != nil {
			return err
		}

		if res.ExceptionDetails != nil {
			return fmt.Errorf("uncaught: %s", exceptionText(res.ExceptionDetails))
		}

		fmt.Fprintln(r.out, describe(res.Result))

		return nil

	case "props":
		res, err := c.GetProperties(ctx, cmd.args[0])
		if err != nil {
			return err
		}

		for _, prop := range res.Result {
			value := "<accessor>"
			if prop.Value != nil {
				value = describe(*prop.Value)
			}

			fmt.Fprintf(r.out, "  %s: %s\n", prop.Name, value)
		}

		return nil

	case "source":
		res, err := c.GetScriptSource(ctx, cmd.args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(r.out, res.ScriptSource)

		return nil

	case "raw":
		var params any
		if len(cmd.args) > 1 {
			if !gjson.Valid(cmd.args[1]) {
				return fmt.Errorf("params are not valid JSON: %s", cmd.args[1])
			}

			params = json.RawMessage(cmd.args[1])
		}

		resp, err := c.Request(ctx, cmd.args[0], params)
		if resp != nil {
			fmt.Fprint(r.out, string(pretty.Pretty(resp.Raw)))
		}

		return err

	default:
		return fmt.Errorf("unknown command %q", cmd.name)
	}
}

// topFrame returns the innermost frame of the current pause, or nil.
func (r *repl) topFrame() *inspector.CallFrame {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused == nil {
		return nil
	}

	return r.paused.TopFrame()
}

// formatPaused renders a pause notification.
func formatPaused(ev *inspector.PausedEvent) string {
	frame := ev.TopFrame()
	if frame == nil {
		return fmt.Sprintf("Paused (%s)", ev.Reason)
	}

	name := frame.FunctionName
	if name == "" {
		name = "(anonymous)"
	}

	return fmt.Sprintf("Paused (%s) in %s at %s:%d",
		ev.Reason, name, frame.URL, frame.Location.LineNumber+1)
}

// describe renders a remote object the way a console would.
func describe(obj inspector.RemoteObject) string {
	switch {
	case obj.UnserializableValue != "":
		return obj.UnserializableValue
	case len(obj.Value) > 0:
		return string(obj.Value)
	case obj.Description != "":
		return obj.Description
	default:
		return obj.Type
	}
}

func exceptionText(ex *inspector.ExceptionDetails) string {
	if ex.Exception != nil && ex.Exception.Description != "" {
		return ex.Exception.Description
	}

	return ex.Text
}
