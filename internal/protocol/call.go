package protocol

import (
	"context"
	"sync"
	"time"

	"github.com/wagiedev/inspector-go/internal/message"
)

// Call is a request awaiting its response.
//
// A Call is resolved exactly once: by the response carrying its id, by its
// deadline expiring, by the connection closing, or by the waiter abandoning it.
type Call struct {
	id       int64
	method   string
	deadline time.Time
	owner    *Correlator

	once     sync.Once
	done     chan struct{}
	response *message.Envelope
	err      error
}

func newCall(owner *Correlator, env *message.Envelope, timeout time.Duration) *Call {
	call := &Call{
		id:     env.ID,
		method: env.Method,
		owner:  owner,
		done:   make(chan struct{}),
	}

	if timeout > 0 {
		call.deadline = time.Now().Add(timeout)
	}

	return call
}

// ID returns the request id.
func (c *Call) ID() int64 {
	return c.id
}

// Method returns the request method.
func (c *Call) Method() string {
	return c.method
}

// Deadline returns when the request expires. The zero time means never.
func (c *Call) Deadline() time.Time {
	return c.deadline
}

// Done returns a channel that is closed once the Call is resolved.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the response arrives, the Call fails, or ctx is done.
//
// The returned envelope is the full response, including any error object;
// interpreting it is left to the caller. Cancelling ctx abandons the Call and
// removes it from the pending table.
func (c *Call) Wait(ctx context.Context) (*message.Envelope, error) {
	select {
	case <-c.done:
		return c.response, c.err

	case <-ctx.Done():
		c.owner.abandon(c, ctx.Err())

		// A response may have won the race; prefer it.
		<-c.done

		return c.response, c.err
	}
}

// resolve completes the Call. Only the first resolution has any effect.
func (c *Call) resolve(response *message.Envelope, err error) bool {
	resolved := false

	c.once.Do(func() {
		c.response = response
		c.err = err
		resolved = true

		close(c.done)
	})

	return resolved
}

// expired reports whether the Call's deadline has passed at now.
func (c *Call) expired(now time.Time) bool {
	return !c.deadline.IsZero() && !now.Before(c.deadline)
}
