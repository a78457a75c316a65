package inspector

import (
	"context"
	"fmt"
)

// WithClient manages client lifecycle with automatic cleanup.
//
// This helper creates a client, connects it to address, waits for the socket
// to open, executes the callback, and ensures cleanup via Close() when done.
//
// If the callback returns an error, it is returned to the caller.
// If Close() fails, a warning is logged but does not override the callback's error.
//
// Example usage:
//
//	err := inspector.WithClient(ctx, "127.0.0.1:9229", func(c inspector.Client) error {
//	    _, err := c.SetBreakpointByURL(ctx, &inspector.SetBreakpointByURLParams{
//	        URL:        "file:///srv/app.js",
//	        LineNumber: 10,
//	    })
//	    return err
//	},
//	    inspector.WithLogger(log),
//	)
func WithClient(ctx context.Context, address string, fn func(Client) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	options := applyOptions(opts)
	log := options.EffectiveLogger()

	client := NewClient(opts...)

	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Warn("failed to close client", "error", closeErr)
		}
	}()

	if err := client.Connect(ctx, address); err != nil {
		return fmt.Errorf("failed to connect client: %w", err)
	}

	if err := client.WaitReady(ctx); err != nil {
		return fmt.Errorf("failed to open debugger socket: %w", err)
	}

	return fn(client)
}
