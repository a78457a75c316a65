package wsconn

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/wagiedev/inspector-go/internal/config"
	"github.com/wagiedev/inspector-go/internal/errors"
)

// Dialer opens WebSocket connections.
type Dialer struct {
	log        *slog.Logger
	httpClient   *http.Client
	readLimit    int64
	writeTimeout time.Duration
}

// Compile-time verification that Dialer implements config.Dialer.
var _ config.Dialer = (*Dialer)(nil)

// NewDialer creates a dialer from the client options.
func NewDialer(log *slog.Logger, options *config.Options) *Dialer {
	if options == nil {
		options = &config.Options{}
	}

	return &Dialer{
		log:        log.With("component", "wsconn"),
		httpClient:   options.EffectiveHTTPClient(),
		readLimit:    options.EffectiveReadLimit(),
		writeTimeout: options.EffectiveWriteTimeout(),
	}
}

// Dial performs the WebSocket handshake with endpoint.
func (d *Dialer) Dial(ctx context.Context, endpoint string) (config.Transport, error) {
	d.log.Debug("Dialing debugger socket", "endpoint", endpoint)

	ws, _, err := websocket.Dial(ctx, endpoint, &websocket.DialOptions{
		HTTPClient: d.httpClient,
	})
	if err != nil {
		d.log.Debug("Dial failed", "endpoint", endpoint, "error", err)

		return nil, &errors.ConnectionError{Endpoint: endpoint, Err: err}
	}

	ws.SetReadLimit(d.readLimit)

	d.log.Info("Debugger socket open", "endpoint", endpoint)

	return &Conn{
		log:          d.log,
		endpoint:     endpoint,
		ws:           ws,
		writeTimeout: d.writeTimeout,
	}, nil
}

// Conn is an open WebSocket connection implementing config.Transport.
type Conn struct {
	log          *slog.Logger
	endpoint     string
	ws           *websocket.Conn
	writeTimeout time.Duration

	mu     sync.Mutex
	closed bool // Whether Close() has been called (intentional shutdown)
}

// Compile-time verification that Conn implements config.Transport.
var _ config.Transport = (*Conn)(nil)

// ReadMessages starts the read loop and returns its frame and error channels.
//
// A read failure that was not caused by Close is reported once on the error
// channel as a *errors.ConnectionError wrapping errors.ErrConnectionClosed.
func (c *Conn) ReadMessages(ctx context.Context) (<-chan []byte, <-chan error) {
	frames := make(chan []byte)
	errs := make(chan error, 1)

	go func() {
		defer close(frames)
		defer close(errs)
		defer c.log.Debug("ReadMessages goroutine stopped")

		for {
			typ, data, err := c.ws.Read(ctx)
			if err != nil {
				if c.isClosed() || ctx.Err() != nil {
					c.log.Debug("Read loop stopped during shutdown", "error", err)

					return
				}

				c.log.Debug("Socket read failed",
					"endpoint", c.endpoint,
					"close_status", websocket.CloseStatus(err),
					"error", err,
				)

				errs <- &errors.ConnectionError{
					Endpoint: c.endpoint,
					Err:      fmt.Errorf("%w: %w", errors.ErrConnectionClosed, err),
				}

				return
			}

			if typ != websocket.MessageText {
				c.log.Debug("Ignoring non-text frame", "size", len(data))

				continue
			}

			select {
			case frames <- data:
			case <-ctx.Done():
				c.log.Debug("Context cancelled during frame delivery", "error", ctx.Err())

				return
			}
		}
	}()

	return frames, errs
}

// SendMessage writes data as one text frame.
//
// The websocket library closes the whole connection when the write context
// ends mid-frame, so cancellation of ctx is ignored here and the write is
// bounded by the write timeout instead.
func (c *Conn) SendMessage(ctx context.Context, data []byte) error {
	if c.isClosed() {
		return errors.ErrConnectionClosed
	}

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)
	defer cancel()

	if err := c.ws.Write(writeCtx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}

// Close performs the closing handshake. It's safe to call Close multiple times.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()

		return nil
	}

	c.closed = true
	c.mu.Unlock()

	if err := c.ws.Close(websocket.StatusNormalClosure, ""); err != nil {
		// The peer may already be gone; the handshake is best effort.
		c.log.Debug("Close handshake did not complete", "endpoint", c.endpoint, "error", err)

		_ = c.ws.CloseNow()
	}

	c.log.Info("Debugger socket closed", "endpoint", c.endpoint)

	return nil
}

// Endpoint returns the socket URL this connection was dialed with.
func (c *Conn) Endpoint() string {
	return c.endpoint
}

func (c *Conn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}
