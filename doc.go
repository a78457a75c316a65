// Package inspector is a Go client for the V8 inspector debugging protocol.
//
// It speaks JSON over a WebSocket to a remote debugger such as
// `node --inspect`, correlating each response with its request by id and
// dispatching id-less messages as named events to subscribers.
//
// # Basic Usage
//
// Connect discovers the debugger socket through the HTTP /json endpoint,
// attaches to it and enables the Debugger domain:
//
//	ctx := context.Background()
//	client := inspector.NewClient(inspector.WithLogger(slog.Default()))
//	defer client.Close()
//
//	if err := client.Connect(ctx, "127.0.0.1:9229"); err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnPaused(func(ev *inspector.PausedEvent) {
//	    frame := ev.TopFrame()
//	    fmt.Printf("paused in %s at line %d\n", frame.FunctionName, frame.Location.LineNumber+1)
//	})
//
//	bp, err := client.SetBreakpointByURL(ctx, &inspector.SetBreakpointByURLParams{
//	    URL:        "file:///srv/app.js",
//	    LineNumber: 41,
//	})
//
// Connect returns as soon as the socket is being dialed. Requests issued
// before it opens are queued and sent in order once it does; use WaitReady to
// block until the socket is usable.
//
// # Scoped Clients
//
// WithClient connects, waits for the socket and closes the client when the
// callback returns:
//
//	err := inspector.WithClient(ctx, "9229", func(c inspector.Client) error {
//	    res, err := c.Evaluate(ctx, "process.version")
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(res.Result.Description)
//	    return nil
//	})
//
// # Raw Requests
//
// Methods without a typed helper are sent with Request, or with Issue to get
// the pending Call without waiting:
//
//	resp, err := client.Request(ctx, "Runtime.getHeapUsage", nil)
//
// # Error Handling
//
// Every request fails with an error wrapping ErrConnectionClosed once the
// socket closes, and with ErrRequestTimeout when no response arrives within
// the request timeout (60 seconds unless set with WithRequestTimeout).
// Errors reported by the debugger itself are returned as *ResponseError:
//
//	if _, err := client.StepOver(ctx); err != nil {
//	    if respErr, ok := errors.AsType[*inspector.ResponseError](err); ok {
//	        log.Printf("debugger refused: %s", respErr.Message)
//	    }
//	}
package inspector
