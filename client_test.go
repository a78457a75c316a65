package inspector_test

import (
	"bytes"
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	inspector "github.com/wagiedev/inspector-go"
)

// echoTransport answers every request with {"id":N,"result":{}}.
type echoTransport struct {
	frames chan []byte

	mu   sync.Mutex
	sent [][]byte
}

func newEchoTransport() *echoTransport {
	return &echoTransport{frames: make(chan []byte, 32)}
}

func (e *echoTransport) ReadMessages(_ context.Context) (<-chan []byte, <-chan error) {
	return e.frames, nil
}

func (e *echoTransport) SendMessage(_ context.Context, data []byte) error {
	env, err := inspector.ParseEnvelope(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.sent = append(e.sent, bytes.Clone(data))
	e.mu.Unlock()

	e.frames <- []byte(`{"id":` + strconv.FormatInt(env.ID, 10) + `,"result":{}}`)

	return nil
}

func (e *echoTransport) Close() error {
	return nil
}

func (e *echoTransport) methods(t *testing.T) []string {
	t.Helper()

	e.mu.Lock()
	defer e.mu.Unlock()

	methods := make([]string, 0, len(e.sent))

	for _, data := range e.sent {
		env, err := inspector.ParseEnvelope(data)
		require.NoError(t, err)

		methods = append(methods, env.Method)
	}

	return methods
}

func echoDialer(tr inspector.Transport) inspector.Option {
	return inspector.WithDialer(inspector.DialerFunc(
		func(_ context.Context, _ string) (inspector.Transport, error) {
			return tr, nil
		}))
}

func TestNewClient_CloseWithoutConnect(t *testing.T) {
	client := inspector.NewClient()
	require.NotNil(t, client)
	require.Equal(t, inspector.StateIdle, client.State())

	require.NoError(t, client.Close())
	require.Equal(t, inspector.StateClosed, client.State())

	err := client.Attach(context.Background(), "ws://127.0.0.1:9229/x")
	require.ErrorIs(t, err, inspector.ErrClientClosed)
}

func TestClient_RequestNotAttached(t *testing.T) {
	client := inspector.NewClient()
	defer client.Close()

	_, err := client.Resume(context.Background())
	require.ErrorIs(t, err, inspector.ErrNotAttached)
}

func TestClient_AttachWithCustomDialer(t *testing.T) {
	tr := newEchoTransport()

	var frames bytes.Buffer

	client := inspector.NewClient(
		echoDialer(tr),
		inspector.WithFrameLog(&frames),
		inspector.WithLogger(inspector.NopLogger()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, client.Attach(ctx, "ws://127.0.0.1:9229/x"))
	require.NoError(t, client.WaitReady(ctx))
	require.Equal(t, inspector.StateOpen, client.State())

	resp, err := client.StepOver(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.ID)
	require.Equal(t, int64(2), client.LastID())

	require.NoError(t, client.Close())
	require.Equal(t, []string{"Debugger.enable", "Debugger.stepOver"}, tr.methods(t))
	require.Contains(t, frames.String(), `--> {"id":2,"method":"Debugger.stepOver"}`)
	require.Contains(t, frames.String(), `<-- {"id":2,"result":{}}`)
}

func TestClient_SkipEnable(t *testing.T) {
	tr := newEchoTransport()
	client := inspector.NewClient(echoDialer(tr), inspector.WithSkipEnable())

	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, client.Attach(ctx, "ws://127.0.0.1:9229/x"))

	resp, err := client.Request(ctx, "Runtime.getHeapUsage", nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.ID)
	require.Equal(t, []string{"Runtime.getHeapUsage"}, tr.methods(t))
}

func TestClient_RequestTimeout(t *testing.T) {
	silent := inspector.DialerFunc(func(_ context.Context, _ string) (inspector.Transport, error) {
		return &silentTransport{frames: make(chan []byte)}, nil
	})

	client := inspector.NewClient(
		inspector.WithDialer(silent),
		inspector.WithSkipEnable(),
		inspector.WithRequestTimeout(20*time.Millisecond),
		inspector.WithSweepInterval(5*time.Millisecond),
	)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, client.Attach(ctx, "ws://127.0.0.1:9229/x"))

	_, err := client.Pause(ctx)
	require.ErrorIs(t, err, inspector.ErrRequestTimeout)
}

// silentTransport never answers.
type silentTransport struct {
	frames chan []byte
}

func (s *silentTransport) ReadMessages(_ context.Context) (<-chan []byte, <-chan error) {
	return s.frames, nil
}

func (s *silentTransport) SendMessage(context.Context, []byte) error { return nil }

func (s *silentTransport) Close() error { return nil }
