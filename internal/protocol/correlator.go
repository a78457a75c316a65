package protocol

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/eapache/queue"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/inspector-go/internal/config"
	"github.com/wagiedev/inspector-go/internal/errors"
	"github.com/wagiedev/inspector-go/internal/event"
	"github.com/wagiedev/inspector-go/internal/message"
	"github.com/wagiedev/inspector-go/internal/wsconn"
)

// outbound is a serialized request waiting for the socket to open.
type outbound struct {
	id   int64
	data []byte
}

// Correlator matches responses to requests and dispatches events over one socket.
//
// The Correlator handles:
//   - Dialing the debugger socket without blocking the caller
//   - Queueing requests until the socket opens, then flushing them in order
//   - Resolving each pending Call exactly once by response id
//   - Expiring Calls whose deadline passes without a response
//   - Publishing events to subscribers by method name
//
// A Correlator is single-use: once closed it cannot be attached again.
type Correlator struct {
	log      *slog.Logger
	dialer   config.Dialer
	timeout  time.Duration
	sweep    time.Duration
	dialWait time.Duration
	events   *event.Bus
	frameMu  sync.Mutex
	frameLog io.Writer

	// sendMu serializes writes so the queue flush and direct sends keep submission order.
	sendMu sync.Mutex

	mu        sync.Mutex
	state     State
	endpoint  string
	deadline  time.Time
	transport config.Transport
	pending   map[int64]*Call
	queued    *queue.Queue
	closing   bool
	runCtx    context.Context
	cancel    context.CancelFunc
	group     *errgroup.Group

	ready chan struct{}

	// Fatal error handling - stores error and broadcasts via done channel
	errMu    sync.RWMutex
	fatalErr error

	closeOnce sync.Once
	done      chan struct{}
}

// NewCorrelator creates an idle correlator.
//
// If options.Dialer is nil, the WebSocket dialer from package wsconn is used.
func NewCorrelator(log *slog.Logger, options *config.Options) *Correlator {
	if options == nil {
		options = &config.Options{}
	}

	if log == nil {
		log = options.EffectiveLogger()
	}

	dialer := options.Dialer
	if dialer == nil {
		dialer = wsconn.NewDialer(log, options)
	}

	return &Correlator{
		log:      log.With("component", "protocol"),
		dialer:   dialer,
		timeout:  options.EffectiveRequestTimeout(),
		sweep:    options.EffectiveSweepInterval(),
		dialWait: options.EffectiveDialTimeout(),
		events:   event.NewBus(),
		frameLog: options.FrameLog,
		pending:  make(map[int64]*Call, 10),
		queued:   queue.New(),
		ready:    make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Attach starts connecting to endpoint and returns without waiting for the socket.
//
// Requests issued before the socket opens are queued. Use WaitReady to block
// until the socket is usable. The connection outlives ctx; use Close to end it.
// The handshake is bounded by the dial timeout and by ctx's deadline, if any.
func (c *Correlator) Attach(ctx context.Context, endpoint string) error {
	c.mu.Lock()

	switch c.state {
	case StateIdle:
	case StateClosed:
		c.mu.Unlock()

		return errors.ErrClientClosed
	default:
		c.mu.Unlock()

		return errors.ErrAlreadyAttached
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	group, groupCtx := errgroup.WithContext(runCtx)

	c.state = StateConnecting
	c.endpoint = endpoint
	c.deadline, _ = ctx.Deadline()
	c.runCtx = groupCtx
	c.cancel = cancel
	c.group = group

	c.mu.Unlock()

	c.log.Debug("Attaching", "endpoint", endpoint)

	group.Go(func() error {
		return c.run(groupCtx, endpoint)
	})

	if c.timeout > 0 {
		group.Go(func() error {
			c.sweepLoop(groupCtx)

			return nil
		})
	}

	return nil
}

// run dials the socket, flushes the queue and reads until the connection ends.
func (c *Correlator) run(ctx context.Context, endpoint string) error {
	transport, err := c.dial(ctx, endpoint)
	if err != nil {
		if c.isClosing() {
			return nil
		}

		connErr := asConnectionError(endpoint, err)

		c.log.Warn("Failed to open debugger socket", "endpoint", endpoint, "error", err)
		c.fail(connErr)

		return connErr
	}

	if !c.open(ctx, transport) {
		// Closed while dialing.
		_ = transport.Close()

		return nil
	}

	frames, errs := transport.ReadMessages(ctx)

	return c.readLoop(ctx, frames, errs)
}

// dial opens the transport within the dial timeout and the Attach deadline.
func (c *Correlator) dial(ctx context.Context, endpoint string) (config.Transport, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.dialWait)
	defer cancel()

	c.mu.Lock()
	deadline := c.deadline
	c.mu.Unlock()

	if !deadline.IsZero() {
		var cancelDeadline context.CancelFunc

		dialCtx, cancelDeadline = context.WithDeadline(dialCtx, deadline)
		defer cancelDeadline()
	}

	return c.dialer.Dial(dialCtx, endpoint)
}

// open installs transport and transmits queued requests in submission order.
// It reports false if the correlator was closed during the dial.
func (c *Correlator) open(ctx context.Context, transport config.Transport) bool {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.mu.Lock()

	if c.state != StateConnecting {
		c.mu.Unlock()

		return false
	}

	c.transport = transport
	c.state = StateOpen

	flush := make([]outbound, 0, c.queued.Length())

	for c.queued.Length() > 0 {
		item, _ := c.queued.Remove().(outbound)

		// Expired or abandoned while queued.
		if _, ok := c.pending[item.id]; !ok {
			continue
		}

		flush = append(flush, item)
	}

	c.mu.Unlock()

	close(c.ready)

	c.log.Debug("Socket open", "queued", len(flush))

	for _, item := range flush {
		c.logFrame(false, item.data)

		if err := transport.SendMessage(ctx, item.data); err != nil {
			c.log.Warn("Failed to send queued request", "id", item.id, "error", err)

			if call := c.take(item.id); call != nil {
				call.resolve(nil, fmt.Errorf("send request %d: %w", item.id, err))
			}
		}
	}

	return true
}

// Ready returns a channel that is closed once the socket is open.
func (c *Correlator) Ready() <-chan struct{} {
	return c.ready
}

// WaitReady blocks until the socket is open, the correlator fails, or ctx is done.
func (c *Correlator) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-c.done:
		return c.closedErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current connection state.
func (c *Correlator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Endpoint returns the socket URL passed to Attach.
func (c *Correlator) Endpoint() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.endpoint
}

// Done returns a channel that is closed when the correlator stops.
func (c *Correlator) Done() <-chan struct{} {
	return c.done
}

// Err returns the reason the correlator stopped, or nil while it is running.
func (c *Correlator) Err() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()

	return c.fatalErr
}

// Pending returns the number of requests awaiting a response.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.pending)
}

// PendingIDs returns the ids of requests awaiting a response, in ascending order.
func (c *Correlator) PendingIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Sorted(maps.Keys(c.pending))
}

// Go registers env as pending and transmits it, or queues it while connecting.
//
// env.ID must be positive and not already pending. A ctx that is already done
// fails the request before it is registered. Once registered, the write is not
// interrupted by ctx: an aborted frame would break the socket shared by every
// other request. Use Call.Wait to await the response.
func (c *Correlator) Go(ctx context.Context, env *message.Envelope) (*Call, error) {
	if env == nil || env.ID <= 0 {
		return nil, errors.ErrInvalidRequestID
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := message.Marshal(env)
	if err != nil {
		return nil, err
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.mu.Lock()

	switch c.state {
	case StateIdle:
		c.mu.Unlock()

		return nil, errors.ErrNotAttached
	case StateClosed:
		c.mu.Unlock()

		return nil, c.closedErr()
	}

	if _, exists := c.pending[env.ID]; exists {
		c.mu.Unlock()

		return nil, fmt.Errorf("%w: %d", errors.ErrDuplicateRequestID, env.ID)
	}

	call := newCall(c, env, c.timeout)
	c.pending[env.ID] = call

	if c.state == StateConnecting {
		c.queued.Add(outbound{id: env.ID, data: data})
		c.mu.Unlock()

		c.log.Debug("Queued request until socket opens", "id", env.ID, "method", env.Method)

		return call, nil
	}

	transport := c.transport
	c.mu.Unlock()

	c.log.Debug("Sending request", "id", env.ID, "method", env.Method)
	c.logFrame(false, data)

	if err := transport.SendMessage(context.WithoutCancel(ctx), data); err != nil {
		c.take(env.ID)

		return nil, fmt.Errorf("send %s: %w", env.Method, err)
	}

	return call, nil
}

// Subscribe registers handler for events named name.
func (c *Correlator) Subscribe(name string, handler event.Handler) *event.Subscription {
	return c.events.Subscribe(name, handler)
}

// Unsubscribe removes sub. It reports whether sub was registered.
func (c *Correlator) Unsubscribe(sub *event.Subscription) bool {
	return c.events.Unsubscribe(sub)
}

// Close closes the socket, rejects every pending Call and drops all subscriptions.
//
// It is safe to call Close multiple times. Close must not be called from an
// event handler, since handlers run on the read goroutine Close waits for.
func (c *Correlator) Close() error {
	c.mu.Lock()

	if c.state == StateIdle {
		c.state = StateClosed
	}

	c.closing = true
	transport := c.transport
	cancel := c.cancel
	group := c.group

	c.mu.Unlock()

	c.log.Debug("Closing correlator")

	c.fail(errors.ErrConnectionClosed)

	var err error

	if transport != nil {
		err = transport.Close()
	}

	if cancel != nil {
		cancel()
	}

	if group != nil {
		_ = group.Wait()
	}

	c.events.Clear()

	return err
}

// readLoop routes inbound frames until the transport stops.
func (c *Correlator) readLoop(ctx context.Context, frames <-chan []byte, errs <-chan error) error {
	c.log.Debug("Read loop started")
	defer c.log.Debug("Read loop stopped")

	for {
		select {
		case <-ctx.Done():
			return nil

		case data, ok := <-frames:
			if !ok {
				return c.disconnect(drainError(errs))
			}

			c.handleFrame(data)

		case err, ok := <-errs:
			if !ok {
				// The frame channel closes right after.
				errs = nil

				continue
			}

			if err != nil {
				return c.disconnect(err)
			}
		}
	}
}

// drainError returns the error reported alongside a closed frame channel.
func drainError(errs <-chan error) error {
	if errs != nil {
		select {
		case err, ok := <-errs:
			if ok && err != nil {
				return err
			}
		default:
		}
	}

	return errors.ErrConnectionClosed
}

// handleFrame classifies one inbound frame.
func (c *Correlator) handleFrame(data []byte) {
	c.logFrame(true, data)

	env, err := message.Parse(data)
	if err != nil {
		c.log.Warn("Discarding malformed frame", "error", err)

		return
	}

	switch env.Kind() {
	case message.KindResponse:
		call := c.take(env.ID)
		if call == nil {
			c.log.Warn("Response for unknown request", "id", env.ID)

			return
		}

		c.log.Debug("Received response", "id", env.ID, "method", call.method, "error", env.IsError())
		call.resolve(env, nil)

	case message.KindEvent:
		if n := c.events.Publish(env.Method, env.Params); n == 0 {
			c.log.Debug("Dropped event without subscribers", "method", env.Method)
		}

	default:
		c.log.Debug("Ignoring frame with neither id nor method")
	}
}

// take removes and returns the pending Call for id, or nil.
func (c *Correlator) take(id int64) *Call {
	c.mu.Lock()
	defer c.mu.Unlock()

	call, ok := c.pending[id]
	if !ok {
		return nil
	}

	delete(c.pending, id)

	return call
}

// abandon forgets call and resolves it with err.
func (c *Correlator) abandon(call *Call, err error) {
	c.mu.Lock()

	if c.pending[call.id] == call {
		delete(c.pending, call.id)
	}

	c.mu.Unlock()

	if call.resolve(nil, err) {
		c.log.Debug("Request abandoned", "id", call.id, "method", call.method, "error", err)
	}
}

// sweepLoop periodically expires overdue Calls.
func (c *Correlator) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(c.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case now := <-ticker.C:
			c.expire(now)
		}
	}
}

// expire rejects every Call whose deadline has passed at now.
func (c *Correlator) expire(now time.Time) int {
	c.mu.Lock()

	var expired []*Call

	for id, call := range c.pending {
		if call.expired(now) {
			delete(c.pending, id)

			expired = append(expired, call)
		}
	}

	c.mu.Unlock()

	for _, call := range expired {
		c.log.Warn("Request timed out", "id", call.id, "method", call.method, "timeout", c.timeout)
		call.resolve(nil, fmt.Errorf("request %d (%s): %w after %s",
			call.id, call.method, errors.ErrRequestTimeout, c.timeout))
	}

	return len(expired)
}

// disconnect handles the transport ending. An intentional Close is not an error.
func (c *Correlator) disconnect(err error) error {
	if c.isClosing() {
		return nil
	}

	endpoint := c.Endpoint()

	connErr := asConnectionError(endpoint, err)
	if !stderrors.Is(connErr, errors.ErrConnectionClosed) {
		connErr = &errors.ConnectionError{
			Endpoint: endpoint,
			Err:      fmt.Errorf("%w: %w", errors.ErrConnectionClosed, err),
		}
	}

	c.log.Warn("Debugger socket closed", "endpoint", endpoint, "error", err)
	c.fail(connErr)

	return connErr
}

// fail stores the fatal error, marks the correlator closed and rejects all pending Calls.
func (c *Correlator) fail(err error) {
	c.closeOnce.Do(func() {
		c.errMu.Lock()
		c.fatalErr = err
		c.errMu.Unlock()

		c.mu.Lock()
		c.state = StateClosed
		pending := c.pending
		c.pending = make(map[int64]*Call)
		c.queued = queue.New()
		c.mu.Unlock()

		close(c.done)

		for _, id := range slices.Sorted(maps.Keys(pending)) {
			call := pending[id]
			call.resolve(nil, fmt.Errorf("request %d (%s): %w", id, call.method, err))
		}

		if len(pending) > 0 {
			c.log.Debug("Rejected pending requests", "count", len(pending), "reason", err)
		}
	})
}

// isClosing reports whether Close has been called.
func (c *Correlator) isClosing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closing
}

// closedErr returns the error reported to callers after the correlator stopped.
func (c *Correlator) closedErr() error {
	if err := c.Err(); err != nil {
		return err
	}

	return errors.ErrClientClosed
}

// logFrame records a frame at debug level and on the frame log, if configured.
func (c *Correlator) logFrame(inbound bool, data []byte) {
	direction, arrow := "out", "-->"
	if inbound {
		direction, arrow = "in", "<--"
	}

	c.log.Debug("Frame", "direction", direction, "bytes", len(data))

	if c.frameLog == nil {
		return
	}

	c.frameMu.Lock()
	defer c.frameMu.Unlock()

	_, _ = fmt.Fprintf(c.frameLog, "%s %s\n", arrow, data)
}

// asConnectionError wraps err in a *errors.ConnectionError unless it already is one.
func asConnectionError(endpoint string, err error) error {
	if _, ok := stderrors.AsType[*errors.ConnectionError](err); ok {
		return err
	}

	return &errors.ConnectionError{Endpoint: endpoint, Err: err}
}
