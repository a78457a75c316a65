package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/wagiedev/inspector-go/internal/config"
	"github.com/wagiedev/inspector-go/internal/discovery"
	"github.com/wagiedev/inspector-go/internal/event"
	"github.com/wagiedev/inspector-go/internal/message"
	"github.com/wagiedev/inspector-go/internal/protocol"
)

// Client issues debugger requests over one connection.
type Client struct {
	log        *slog.Logger
	options    *config.Options
	discoverer discovery.Discoverer
	correlator *protocol.Correlator

	// lastID is the most recently issued request id.
	lastID atomic.Int64
}

// New creates an unattached client.
func New(options *config.Options) *Client {
	if options == nil {
		options = &config.Options{}
	}

	log := options.EffectiveLogger()

	return &Client{
		log:     log.With("component", "client"),
		options: options,
		discoverer: discovery.NewDiscoverer(&discovery.Config{
			HTTPClient: options.EffectiveHTTPClient(),
			Logger:     log,
		}),
		correlator: protocol.NewCorrelator(log, options),
	}
}

// Connect resolves address to a socket URL and attaches to it.
//
// address may be host:port, a bare port, an http(s) base URL or a ws(s)
// socket URL. A socket URL skips discovery. Connect does not wait for the
// socket to open; requests issued meanwhile are queued.
func (c *Client) Connect(ctx context.Context, address string) error {
	endpoint, err := c.discoverer.Discover(ctx, address)
	if err != nil {
		return err
	}

	return c.Attach(ctx, endpoint)
}

// Attach connects directly to a socket URL and enables the debugger domain.
func (c *Client) Attach(ctx context.Context, endpoint string) error {
	if err := c.correlator.Attach(ctx, endpoint); err != nil {
		return err
	}

	c.log.Info("Attached", "endpoint", endpoint)

	if !c.options.SkipEnable {
		c.enable(ctx)
	}

	return nil
}

// enable issues Debugger.enable without waiting for its response.
func (c *Client) enable(ctx context.Context) {
	call, err := c.Issue(ctx, message.MethodDebuggerEnable, nil)
	if err != nil {
		c.log.Warn("Failed to issue Debugger.enable", "error", err)

		return
	}

	go func() {
		// Resolves at the latest when the connection closes.
		resp, err := call.Wait(context.Background())

		switch {
		case err != nil:
			c.log.Debug("Debugger.enable did not complete", "error", err)
		case resp.IsError():
			c.log.Warn("Debugger.enable rejected", "error", resp.Error)
		default:
			c.log.Debug("Debugger enabled", "id", resp.ID)
		}
	}()
}

// Issue stamps the next id on a request and hands it to the Correlator.
//
// The returned Call resolves with the raw response envelope.
func (c *Client) Issue(ctx context.Context, method string, params any) (*protocol.Call, error) {
	id := c.lastID.Add(1)

	env, err := message.NewRequest(id, method, params)
	if err != nil {
		return nil, err
	}

	return c.correlator.Go(ctx, env)
}

// Request issues a request and waits for its response envelope.
//
// A response carrying an error object is returned together with that
// *errors.ResponseError.
func (c *Client) Request(ctx context.Context, method string, params any) (*message.Envelope, error) {
	call, err := c.Issue(ctx, method, params)
	if err != nil {
		return nil, err
	}

	resp, err := call.Wait(ctx)
	if err != nil {
		return nil, err
	}

	if resp.Error != nil {
		return resp, resp.Error
	}

	return resp, nil
}

// request issues method and decodes the response result into T.
func request[T any](ctx context.Context, c *Client, method string, params any) (*T, error) {
	resp, err := c.Request(ctx, method, params)
	if err != nil {
		return nil, err
	}

	return message.DecodeResult[T](resp)
}

// LastID returns the most recently issued request id, or 0 if none.
func (c *Client) LastID() int64 {
	return c.lastID.Load()
}

// Correlator returns the underlying Correlator.
func (c *Client) Correlator() *protocol.Correlator {
	return c.correlator
}

// State returns the connection state.
func (c *Client) State() protocol.State {
	return c.correlator.State()
}

// WaitReady blocks until the socket is open.
func (c *Client) WaitReady(ctx context.Context) error {
	return c.correlator.WaitReady(ctx)
}

// Done returns a channel that is closed when the connection ends.
func (c *Client) Done() <-chan struct{} {
	return c.correlator.Done()
}

// Err returns why the connection ended, or nil while it is running.
func (c *Client) Err() error {
	return c.correlator.Err()
}

// Close closes the connection and rejects every pending request.
func (c *Client) Close() error {
	c.log.Debug("Closing client")

	return c.correlator.Close()
}

// Subscribe registers handler for raw events named name.
func (c *Client) Subscribe(name string, handler event.Handler) *event.Subscription {
	return c.correlator.Subscribe(name, handler)
}

// Unsubscribe removes a subscription.
func (c *Client) Unsubscribe(sub *event.Subscription) bool {
	return c.correlator.Unsubscribe(sub)
}

// OnPaused registers handler for Debugger.paused.
func (c *Client) OnPaused(handler func(*message.PausedEvent)) *event.Subscription {
	return subscribeTyped(c, message.EventPaused, handler)
}

// OnResumed registers handler for Debugger.resumed.
func (c *Client) OnResumed(handler func()) *event.Subscription {
	return c.Subscribe(message.EventResumed, func(json.RawMessage) { handler() })
}

// OnScriptParsed registers handler for Debugger.scriptParsed.
func (c *Client) OnScriptParsed(handler func(*message.ScriptParsedEvent)) *event.Subscription {
	return subscribeTyped(c, message.EventScriptParsed, handler)
}

// subscribeTyped decodes event params into T before calling handler.
// Params that fail to decode are logged and skipped.
func subscribeTyped[T any](c *Client, name string, handler func(*T)) *event.Subscription {
	return c.Subscribe(name, func(params json.RawMessage) {
		decoded, err := message.DecodeParams[T](params)
		if err != nil {
			c.log.Warn("Dropping undecodable event", "event", name, "error", err)

			return
		}

		handler(decoded)
	})
}

// String implements fmt.Stringer for log output.
func (c *Client) String() string {
	return fmt.Sprintf("client(%s, %s)", c.correlator.Endpoint(), c.State())
}
