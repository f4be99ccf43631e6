//go:build !noassert

package assert_test

import (
	"github.com/saylorsolutions/nain/assert"
	"strings"
	"testing"
)

func TestTrue(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Error("Should not have panicked:", r)
		}
	}()
	assert.True("true", true)
	assert.Truef(true, "id %d", 1)
}

func TestTrue_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Should have panicked")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "'handler has a token' failed at") || !strings.Contains(msg, "assert_test.go#") {
			t.Errorf("Unexpected panic value: %v", r)
		}
	}()
	assert.True("handler has a token", false)
}

func TestTruef_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Should have panicked")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "counter 7 overflowed") {
			t.Errorf("Unexpected panic value: %v", r)
		}
	}()
	assert.Truef(false, "counter %d overflowed", 7)
}
