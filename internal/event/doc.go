// Package event implements named publish/subscribe for unsolicited messages.
//
// Handlers are registered under an event name and invoked in registration
// order every time an event with that name is published. Each registration
// returns a Subscription handle, so teardown is explicit and deterministic:
//
//	bus := event.NewBus()
//	sub := bus.Subscribe("Debugger.paused", func(params json.RawMessage) {
//	    // inspect params...
//	})
//	defer sub.Cancel()
package event
