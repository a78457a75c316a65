//go:build integration

package integration

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	inspector "github.com/wagiedev/inspector-go"
)

func TestConnect_ReportsScripts(t *testing.T) {
	scripts := make(chan *inspector.ScriptParsedEvent, 256)

	client := inspector.NewClient()
	t.Cleanup(func() { _ = client.Close() })

	client.OnScriptParsed(func(ev *inspector.ScriptParsedEvent) {
		select {
		case scripts <- ev:
		default:
		}
	})

	ctx, cancel := contextWithTimeout(t)
	defer cancel()

	require.NoError(t, client.Connect(ctx, targetAddress(t)))

	select {
	case ev := <-scripts:
		require.NotEmpty(t, ev.ScriptID)
	case <-time.After(10 * time.Second):
		t.Fatal("no Debugger.scriptParsed after enable")
	}

	require.Equal(t, inspector.StateOpen, client.State())
	require.GreaterOrEqual(t, client.LastID(), int64(1))
}

func TestClose_RejectsLaterRequests(t *testing.T) {
	ctx, client := connect(t)

	require.NoError(t, client.Close())

	select {
	case <-client.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Done not closed after Close")
	}

	_, err := client.Evaluate(ctx, "1")
	require.Error(t, err)
	require.True(t, errors.Is(err, inspector.ErrConnectionClosed) || errors.Is(err, inspector.ErrClientClosed))
}
