/*
Package events provides named, typed event buses for the engine runtime.

# Buses

A bus is a named channel that any subsystem can reach without plumbing, because bus names live in a process-wide [Registry].
The owner of a bus creates it with [NewBus] and releases it with [Bus.Close], which removes every subscription on it and makes the name available again.
Creating two buses with the same name is a programming error, and panics with a [FatalError].

Use [Init] at startup to configure the process-wide registry, and [Shutdown] during teardown.
A [Registry] may also be created with [NewRegistry] to keep buses isolated, which is mostly useful in tests.
The functions ending in "In", such as [DispatchIn], take an explicit Registry.

# Typed dispatch

Handlers subscribe to one static event type with [Subscribe], and only ever receive events of exactly that type.
Every event type gets a process-stable id the first time it's used, and handler lists are keyed by that id.

	bus := events.NewBus("main")
	defer bus.Close()

	events.Subscribe("main", func(e *events.KeyPressedEvent) {
		e.Handled = true
	}, 10)

	evt := events.KeyPressedEvent{KeyCode: 65}
	events.Dispatch("main", &evt)

Handlers run synchronously on the publisher's goroutine, highest priority first.
Among handlers with equal priority, the most recently subscribed runs first, so an overlay added on top of a layer stack sees input before the layers beneath it.
Every handler receives the same pointer, so a handler may record that it consumed the event for the handlers that follow.
Dispatch doesn't stop when an event is handled unless the bus was created with [StopOnHandled].

# Failure

Subscribing or dispatching to a bus that doesn't exist logs a warning and does nothing, which lets subsystems start and stop in any order.
A panicking handler isn't recovered, the panic propagates to the publisher.

# Taxonomy

The event types used by the window and application layers are defined here, each with a fixed [Kind] and [Category].
Categories form a set, so IsInCategory is a subset test, and an event is never in the empty set.
*/
package events
