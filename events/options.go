package events

import (
	"log/slog"
	"time"
)

// DefaultWarnInterval is the minimum time between repeated unknown bus warnings for the same bus name.
// The first warning for a name is always logged.
var DefaultWarnInterval = 5 * time.Second

// Observer receives callbacks about bus activity, for metrics and diagnostics.
// Implementations must be safe for concurrent use, and should return quickly since they're called inline with dispatch.
type Observer interface {
	// Dispatched is called after every handler for an event has returned.
	// It isn't called if a handler panics.
	Dispatched(bus string, event string, handlers int, elapsed time.Duration)
	// UnknownBus is called when a subscribe or dispatch names a bus that doesn't exist.
	UnknownBus(bus string, op string)
}

type registryConf struct {
	logger       *slog.Logger
	observer     Observer
	warnInterval time.Duration
}

// RegistryOption configures a [Registry] in [NewRegistry] or [Init].
type RegistryOption func(conf *registryConf)

// WithLogger sets the logger used for warnings.
// By default, [slog.Default] is used at the time of the warning.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(conf *registryConf) {
		conf.logger = logger
	}
}

// WithObserver sets an [Observer] for all buses in the [Registry].
func WithObserver(observer Observer) RegistryOption {
	return func(conf *registryConf) {
		conf.observer = observer
	}
}

// WithWarnInterval overrides [DefaultWarnInterval].
// An interval <= 0 logs every unknown bus warning.
func WithWarnInterval(interval time.Duration) RegistryOption {
	return func(conf *registryConf) {
		conf.warnInterval = interval
	}
}

type busConf struct {
	stopOnHandled bool
}

// BusOption configures a bus when it's created.
type BusOption func(conf *busConf)

// StopOnHandled makes dispatch on the bus stop as soon as a handler leaves a [Handleable] event reporting true from IsHandled.
// Events that don't implement [Handleable] always reach every handler.
// By default, every handler sees every event regardless of the flag.
func StopOnHandled() BusOption {
	return func(conf *busConf) {
		conf.stopOnHandled = true
	}
}
