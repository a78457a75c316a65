package inspector_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	inspector "github.com/wagiedev/inspector-go"
)

func TestWithClient_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := inspector.WithClient(ctx, "9229", func(_ inspector.Client) error {
		t.Error("callback should not be called with cancelled context")

		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithClient_CallbackError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sentinel := errors.New("callback failed")

	var got inspector.Client

	err := inspector.WithClient(ctx, "ws://127.0.0.1:9229/x", func(c inspector.Client) error {
		got = c

		_, err := c.Resume(ctx)
		require.NoError(t, err)

		return sentinel
	}, echoDialer(newEchoTransport()))

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, inspector.StateClosed, got.State())
}

func TestWithClient_DiscoveryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := inspector.WithClient(context.Background(), srv.URL, func(inspector.Client) error {
		t.Error("callback should not be called when discovery fails")

		return nil
	})

	_, ok := errors.AsType[*inspector.DiscoveryError](err)
	require.True(t, ok, "expected DiscoveryError, got %v", err)
}

func TestWithClient_DialFailure(t *testing.T) {
	refused := errors.New("connection refused")
	dialer := inspector.DialerFunc(func(context.Context, string) (inspector.Transport, error) {
		return nil, refused
	})

	err := inspector.WithClient(context.Background(), "ws://127.0.0.1:1/x", func(inspector.Client) error {
		t.Error("callback should not be called when the socket fails to open")

		return nil
	}, inspector.WithDialer(dialer))

	require.ErrorIs(t, err, refused)

	_, ok := errors.AsType[*inspector.ConnectionError](err)
	require.True(t, ok)
}
