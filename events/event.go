package events

// Event is implemented by every event type in the taxonomy.
//
// Kind and Category are declared on the type, and never depend on field values.
type Event interface {
	Kind() Kind
	Category() Category
	// IsInCategory reports whether the event belongs to every category in c.
	IsInCategory(c Category) bool
	// Name is the textual form of Kind.
	Name() string
	// String includes the event type and its payload, for logging.
	String() string
}

// Handleable is implemented by events that carry a Handled flag.
// Handlers set the flag to tell later handlers that the event was consumed.
// Dispatch only stops early for a bus created with [StopOnHandled].
type Handleable interface {
	IsHandled() bool
}
