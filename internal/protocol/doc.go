// Package protocol implements request/response correlation over a debugger socket.
//
// The Correlator owns the socket lifecycle, a table of pending requests keyed
// by numeric id, and an event bus for unsolicited messages. It knows nothing
// about specific debugger commands.
//
// Every inbound frame is classified:
//   - a truthy "id" resolves the pending Call with that id, exactly once;
//     an id with no pending Call is logged and dropped
//   - otherwise a "method" is published as an event to its subscribers,
//     in registration order; with no subscribers it is dropped
//   - anything else is ignored
//
// The connection moves through idle, connecting, open and closed. Requests
// issued while connecting are queued and transmitted in submission order once
// the socket opens. When the socket closes or fails, every pending Call is
// rejected with an error wrapping errors.ErrConnectionClosed.
//
// Example usage:
//
//	c := protocol.NewCorrelator(log, options)
//	if err := c.Attach(ctx, "ws://127.0.0.1:9229/0b5f8a1e"); err != nil {
//	    return err
//	}
//
//	env, _ := message.NewRequest(1, "Debugger.enable", nil)
//	call, err := c.Go(ctx, env)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := call.Wait(ctx)
package protocol
