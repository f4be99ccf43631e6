//go:build !noassert

package assert

import (
	"fmt"
	"runtime"
)

// failure builds the panic message for a violated assertion, pointing at the caller of the assertion.
func failure(label string) string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return fmt.Sprintf("assertion '%s' failed", label)
	}
	return fmt.Sprintf("assertion '%s' failed at '%s#%d'", label, file, line)
}

// True panics with label and the caller's location if result is false.
func True(label string, result bool) {
	if !result {
		panic(failure(label))
	}
}

// Truef is like [True], but the label is only formatted when the assertion fails.
func Truef(result bool, format string, args ...any) {
	if !result {
		panic(failure(fmt.Sprintf(format, args...)))
	}
}
