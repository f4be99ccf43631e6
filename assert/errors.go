package assert

import (
	"fmt"
	"strings"
)

// Collector gathers validation failures so they can be reported together.
// A non-empty Collector is itself an error, and [errors.Is] and [errors.As] see every error it holds.
//
// A Collector is not concurrency safe.
type Collector struct {
	errs []error
	sep  string
}

// CollectErrors creates a [Collector] that separates messages with sep, or a newline if sep is not given.
func CollectErrors(sep ...string) *Collector {
	c := &Collector{sep: "\n"}
	if len(sep) > 0 {
		c.sep = sep[0]
	}
	return c
}

// Add records err, ignoring nil.
func (c *Collector) Add(err error) *Collector {
	if err != nil {
		c.errs = append(c.errs, err)
	}
	return c
}

// Check records an error formatted with [fmt.Errorf] unless ok is true, so "%w" may be used to wrap a sentinel.
func (c *Collector) Check(ok bool, format string, args ...any) *Collector {
	if !ok {
		c.errs = append(c.errs, fmt.Errorf(format, args...))
	}
	return c
}

// Result returns nil if nothing was recorded, otherwise the Collector.
func (c *Collector) Result() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c
}

func (c *Collector) Error() string {
	msgs := make([]string, len(c.errs))
	for i, err := range c.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, c.sep)
}

func (c *Collector) Unwrap() []error {
	return c.errs
}
