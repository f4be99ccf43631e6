//go:build noassert

package assert

func True(label string, result bool) {}

func Truef(result bool, format string, args ...any) {}
