//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	inspector "github.com/wagiedev/inspector-go"
)

// targetAddress returns the address of a running debugger target, skipping
// the test when none is configured.
//
//	node --inspect=9229 -e 'setInterval(() => {}, 1000)'
//	INSPECTOR_ADDRESS=127.0.0.1:9229 go test -tags integration ./integration/...
func targetAddress(t *testing.T) string {
	t.Helper()

	addr := os.Getenv("INSPECTOR_ADDRESS")
	if addr == "" {
		t.Skip("INSPECTOR_ADDRESS not set")
	}

	return addr
}

// connect returns a client attached to the target and closed at test end.
func connect(t *testing.T, opts ...inspector.Option) (context.Context, inspector.Client) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	client := inspector.NewClient(opts...)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Connect(ctx, targetAddress(t)))
	require.NoError(t, client.WaitReady(ctx))

	return ctx, client
}
