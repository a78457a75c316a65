package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string

	bus.Subscribe("Debugger.paused", func(json.RawMessage) { order = append(order, "first") })
	bus.Subscribe("Debugger.paused", func(json.RawMessage) { order = append(order, "second") })
	bus.Subscribe("Debugger.paused", func(json.RawMessage) { order = append(order, "third") })

	n := bus.Publish("Debugger.paused", json.RawMessage(`{"callFrames":[]}`))

	require.Equal(t, 3, n)
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_PublishIsolatesNames(t *testing.T) {
	bus := NewBus()

	var paused, resumed int

	bus.Subscribe("Debugger.paused", func(json.RawMessage) { paused++ })
	bus.Subscribe("Debugger.resumed", func(json.RawMessage) { resumed++ })

	bus.Publish("Debugger.resumed", nil)

	assert.Equal(t, 0, paused)
	assert.Equal(t, 1, resumed)
}

func TestBus_PublishWithoutHandlers(t *testing.T) {
	bus := NewBus()

	require.NotPanics(t, func() {
		require.Equal(t, 0, bus.Publish("Debugger.paused", json.RawMessage(`{}`)))
	})
}

func TestBus_PublishPassesParams(t *testing.T) {
	bus := NewBus()

	var got json.RawMessage

	bus.Subscribe("Debugger.scriptParsed", func(params json.RawMessage) { got = params })
	bus.Publish("Debugger.scriptParsed", json.RawMessage(`{"scriptId":"7"}`))

	require.JSONEq(t, `{"scriptId":"7"}`, string(got))
}

func TestBus_DuplicateHandlersAllRun(t *testing.T) {
	bus := NewBus()

	count := 0
	handler := func(json.RawMessage) { count++ }

	bus.Subscribe("e", handler)
	bus.Subscribe("e", handler)

	bus.Publish("e", nil)
	require.Equal(t, 2, count)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	var calls []string

	a := bus.Subscribe("e", func(json.RawMessage) { calls = append(calls, "a") })
	bus.Subscribe("e", func(json.RawMessage) { calls = append(calls, "b") })

	require.True(t, bus.Unsubscribe(a))
	require.False(t, a.IsActive())
	require.False(t, bus.Unsubscribe(a), "second unsubscribe is a no-op")

	bus.Publish("e", nil)
	require.Equal(t, []string{"b"}, calls)
	require.Equal(t, 1, bus.Len("e"))
}

func TestBus_UnsubscribeForeignSubscription(t *testing.T) {
	a := NewBus()
	b := NewBus()

	sub := a.Subscribe("e", func(json.RawMessage) {})

	require.False(t, b.Unsubscribe(sub))
	require.False(t, b.Unsubscribe(nil))
	require.True(t, sub.IsActive())
}

func TestBus_CancelDuringPublish(t *testing.T) {
	bus := NewBus()

	var calls []string

	var second *Subscription

	bus.Subscribe("e", func(json.RawMessage) {
		calls = append(calls, "first")
		second.Cancel()
	})
	second = bus.Subscribe("e", func(json.RawMessage) { calls = append(calls, "second") })

	require.Equal(t, 1, bus.Publish("e", nil))
	require.Equal(t, []string{"first"}, calls)
	require.Equal(t, 0, bus.Len("unknown"))
}

func TestBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewBus()

	late := 0

	bus.Subscribe("e", func(json.RawMessage) {
		bus.Subscribe("e", func(json.RawMessage) { late++ })
	})

	bus.Publish("e", nil)
	require.Equal(t, 0, late, "handlers added mid-dispatch wait for the next event")

	bus.Publish("e", nil)
	require.Equal(t, 1, late)
}

func TestBus_SubscriptionIDsAreUnique(t *testing.T) {
	bus := NewBus()

	seen := make(map[string]bool)

	for range 100 {
		sub := bus.Subscribe("e", func(json.RawMessage) {})
		require.Len(t, sub.ID(), 26)
		require.False(t, seen[sub.ID()])
		require.Equal(t, "e", sub.Name())

		seen[sub.ID()] = true
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()

	sub := bus.Subscribe("e", func(json.RawMessage) { t.Fatal("cleared handler ran") })
	bus.Clear()

	require.False(t, sub.IsActive())
	require.Equal(t, 0, bus.Publish("e", nil))
}
