package events

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateBus = errors.New("bus already exists")
	ErrUnknownBus   = errors.New("unknown bus")
	ErrTypeMismatch = errors.New("handler list type mismatch")
)

// FatalError is the panic value used for programming errors, like creating the same bus twice.
// Use [errors.Is] with a recovered FatalError to find the cause.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return "events: fatal: " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatalf(cause error, format string, args ...any) {
	panic(&FatalError{Err: fmt.Errorf("%w: "+format, append([]any{cause}, args...)...)})
}
