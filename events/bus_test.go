package events

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testRegistry(t *testing.T, opts ...RegistryOption) (*Registry, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg := NewRegistry(append([]RegistryOption{WithLogger(logger)}, opts...)...)
	t.Cleanup(reg.Close)
	return reg, &buf
}

func TestDispatch_PayloadRoundTrip(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")

	var recorded []KeyPressedEvent
	SubscribeIn(reg, "main", func(e *KeyPressedEvent) {
		recorded = append(recorded, *e)
	}, 0)

	evt := KeyPressedEvent{KeyCode: 65, RepeatCount: 3}
	DispatchIn(reg, "main", &evt)

	require.Len(t, recorded, 1)
	assert.Equal(t, uint32(65), recorded[0].KeyCode)
	assert.Equal(t, uint32(3), recorded[0].RepeatCount)
	assert.Equal(t, "KeyPressedEvent: 65 (3 repeats)", recorded[0].String())
}

func TestDispatch_PriorityOrder(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")

	var order []string
	appender := func(id string) Handler[WindowResizeEvent] {
		return func(e *WindowResizeEvent) {
			order = append(order, id)
		}
	}
	SubscribeIn(reg, "main", appender("H1"), 10)
	SubscribeIn(reg, "main", appender("H2"), 5)
	SubscribeIn(reg, "main", appender("H3"), 10)

	DispatchIn(reg, "main", &WindowResizeEvent{Width: 640, Height: 480})
	assert.Equal(t, []string{"H3", "H1", "H2"}, order)
}

func TestDispatch_PriorityOrder_Random(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")

	const n = 200
	var (
		rng        = rand.New(rand.NewPCG(1, 2))
		priorities = make([]uint32, n)
		order      []int
	)
	for i := range priorities {
		priorities[i] = rng.Uint32N(8)
		SubscribeIn(reg, "main", func(e *AppUpdateEvent) {
			order = append(order, i)
		}, priorities[i])
	}
	DispatchIn(reg, "main", &AppUpdateEvent{})

	expected := make([]int, n)
	for i := range expected {
		expected[i] = i
	}
	slices.SortFunc(expected, func(a, b int) int {
		if priorities[a] != priorities[b] {
			if priorities[a] > priorities[b] {
				return -1
			}
			return 1
		}
		return b - a
	})
	assert.Equal(t, expected, order, "Handlers should run by descending priority, then reverse subscription order")
}

func TestDispatch_SharedMutableEvent(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")

	var firstSaw, secondSaw *bool
	SubscribeIn(reg, "main", func(e *KeyPressedEvent) {
		handled := e.Handled
		secondSaw = &handled
	}, 1)
	SubscribeIn(reg, "main", func(e *KeyPressedEvent) {
		handled := e.Handled
		firstSaw = &handled
		e.Handled = true
	}, 2)

	evt := KeyPressedEvent{KeyCode: 32}
	DispatchIn(reg, "main", &evt)

	require.NotNil(t, firstSaw)
	require.NotNil(t, secondSaw)
	assert.False(t, *firstSaw, "First handler should see the default state")
	assert.True(t, *secondSaw, "Second handler should see the first handler's change")
	assert.True(t, evt.Handled, "Publisher should see the change")
}

func TestDispatch_StopOnHandled(t *testing.T) {
	tests := map[string]struct {
		opts     []BusOption
		expected int32
	}{
		"Pass-through by default": {expected: 2},
		"Opt-in stop":             {opts: []BusOption{StopOnHandled()}, expected: 1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			reg, _ := testRegistry(t)
			reg.MustNewBus("main", tc.opts...)
			var calls atomic.Int32
			SubscribeIn(reg, "main", func(e *MouseButtonPressedEvent) {
				calls.Add(1)
			}, 1)
			SubscribeIn(reg, "main", func(e *MouseButtonPressedEvent) {
				calls.Add(1)
				e.Handled = true
			}, 2)
			DispatchIn(reg, "main", &MouseButtonPressedEvent{Button: 1})
			assert.Equal(t, tc.expected, calls.Load())
		})
	}
}

func TestDispatch_StopOnHandled_IgnoresPlainEvents(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main", StopOnHandled())
	var calls int
	for i := 0; i < 3; i++ {
		SubscribeIn(reg, "main", func(e *AppTickEvent) {
			calls++
		}, 0)
	}
	DispatchIn(reg, "main", &AppTickEvent{})
	assert.Equal(t, 3, calls)
}

func TestDispatch_TypeIsolation(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")

	var (
		seen  = map[Kind][]Kind{}
		kinds []Kind
	)
	record := func(e Event, expected Kind) {
		seen[expected] = append(seen[expected], e.Kind())
	}
	subscribeKind[WindowCloseEvent](reg, &kinds, record)
	subscribeKind[WindowResizeEvent](reg, &kinds, record)
	subscribeKind[WindowFocusEvent](reg, &kinds, record)
	subscribeKind[WindowLostFocusEvent](reg, &kinds, record)
	subscribeKind[WindowMovedEvent](reg, &kinds, record)
	subscribeKind[AppTickEvent](reg, &kinds, record)
	subscribeKind[AppUpdateEvent](reg, &kinds, record)
	subscribeKind[AppRenderEvent](reg, &kinds, record)
	subscribeKind[KeyPressedEvent](reg, &kinds, record)
	subscribeKind[KeyReleasedEvent](reg, &kinds, record)
	subscribeKind[MouseButtonPressedEvent](reg, &kinds, record)
	subscribeKind[MouseButtonReleasedEvent](reg, &kinds, record)
	subscribeKind[MouseMovedEvent](reg, &kinds, record)
	subscribeKind[MouseScrolledEvent](reg, &kinds, record)
	assert.ElementsMatch(t, Kinds(), kinds, "Every kind should have a handler")

	DispatchIn(reg, "main", &WindowCloseEvent{})
	DispatchIn(reg, "main", &WindowResizeEvent{})
	DispatchIn(reg, "main", &WindowFocusEvent{})
	DispatchIn(reg, "main", &WindowLostFocusEvent{})
	DispatchIn(reg, "main", &WindowMovedEvent{})
	DispatchIn(reg, "main", &AppTickEvent{})
	DispatchIn(reg, "main", &AppUpdateEvent{})
	DispatchIn(reg, "main", &AppRenderEvent{})
	DispatchIn(reg, "main", &KeyPressedEvent{})
	DispatchIn(reg, "main", &KeyReleasedEvent{})
	DispatchIn(reg, "main", &MouseButtonPressedEvent{})
	DispatchIn(reg, "main", &MouseButtonReleasedEvent{})
	DispatchIn(reg, "main", &MouseMovedEvent{})
	DispatchIn(reg, "main", &MouseScrolledEvent{})

	for _, kind := range Kinds() {
		assert.Equal(t, []Kind{kind}, seen[kind], "Handler for %s should see exactly one %s", kind, kind)
	}
}

func subscribeKind[T Event](reg *Registry, kinds *[]Kind, record func(e Event, expected Kind)) {
	var zero T
	expected := zero.Kind()
	*kinds = append(*kinds, expected)
	SubscribeIn(reg, "main", func(e *T) {
		record(*e, expected)
	}, 0)
}

func TestDispatch_BusIsolation(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("a")
	reg.MustNewBus("b")

	var countA, countB int
	SubscribeIn(reg, "a", func(e *WindowCloseEvent) {
		countA++
	}, 0)
	SubscribeIn(reg, "b", func(e *WindowCloseEvent) {
		countB++
	}, 0)
	for i := 0; i < 10; i++ {
		DispatchIn(reg, "a", &WindowCloseEvent{})
	}
	assert.Equal(t, 10, countA)
	assert.Equal(t, 0, countB)
}

func TestDispatch_UnknownBusWarns(t *testing.T) {
	reg, logs := testRegistry(t)

	assert.NotPanics(t, func() {
		DispatchIn(reg, "ghost", &AppTickEvent{})
	})
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "bus=ghost")
	assert.Contains(t, logs.String(), "op=dispatch")
}

func TestUnknownBus_DoesNotMutate(t *testing.T) {
	reg, logs := testRegistry(t, WithWarnInterval(0))
	type ghostOnlyEvent struct{}

	identities.mux.Lock()
	idsBefore := len(identities.ids)
	identities.mux.Unlock()

	SubscribeIn(reg, "ghost", func(e *ghostOnlyEvent) {
		t.Error("Should never be called")
	}, 0)
	DispatchIn(reg, "ghost", &ghostOnlyEvent{})
	token := SubscribeTokenIn(reg, "ghost", func(e *ghostOnlyEvent) {}, 0)

	assert.True(t, token.IsZero())
	assert.False(t, reg.HasBus("ghost"))
	assert.Empty(t, reg.BusNames())
	identities.mux.Lock()
	assert.Equal(t, idsBefore, len(identities.ids), "No event id should be assigned for an unknown bus")
	identities.mux.Unlock()
	assert.Equal(t, 3, bytes.Count(logs.Bytes(), []byte("level=WARN")))
}

func TestUnknownBus_WarningsAreRateLimited(t *testing.T) {
	reg, logs := testRegistry(t, WithWarnInterval(time.Hour))
	for i := 0; i < 100; i++ {
		DispatchIn(reg, "ghost", &AppTickEvent{})
	}
	DispatchIn(reg, "other-ghost", &AppTickEvent{})
	assert.Equal(t, 2, bytes.Count(logs.Bytes(), []byte("level=WARN")), "Only the first warning per bus name should be logged")

	reg.MustNewBus("ghost").Close()
	DispatchIn(reg, "ghost", &AppTickEvent{})
	assert.Equal(t, 3, bytes.Count(logs.Bytes(), []byte("level=WARN")), "Creating the bus should reset its warning")
}

func TestUnknownBus_WarningStateIsBounded(t *testing.T) {
	reg, _ := testRegistry(t, WithWarnInterval(time.Hour))
	for i := 0; i < 20*maxWarnedBuses; i++ {
		DispatchIn(reg, fmt.Sprintf("ghost-%d", i), &AppTickEvent{})
		SubscribeIn(reg, fmt.Sprintf("phantom-%d", i), func(e *AppTickEvent) {}, 0)
	}
	reg.warnMux.Lock()
	entries := len(reg.warnings)
	reg.warnMux.Unlock()
	assert.LessOrEqual(t, entries, maxWarnedBuses)
	assert.Empty(t, reg.BusNames())
}

func TestBus_Teardown(t *testing.T) {
	reg, _ := testRegistry(t)
	bus := reg.MustNewBus("main")

	var oldCalls int
	SubscribeIn(reg, "main", func(e *AppTickEvent) {
		oldCalls++
	}, 0)
	bus.Close()
	assert.False(t, reg.HasBus("main"))

	reg.MustNewBus("main")
	assert.Equal(t, 0, HandlerCountIn[AppTickEvent](reg, "main"))
	DispatchIn(reg, "main", &AppTickEvent{})
	assert.Equal(t, 0, oldCalls, "Handlers from a dropped bus should never run")
}

func TestBus_StaleCloseKeepsNewBus(t *testing.T) {
	reg, _ := testRegistry(t)
	stale := reg.MustNewBus("main")
	stale.Close()
	current := reg.MustNewBus("main")
	SubscribeIn(reg, "main", func(e *AppTickEvent) {}, 0)

	stale.Close()
	assert.True(t, reg.HasBus("main"), "Closing an old handle should not drop the new bus")
	assert.Equal(t, 1, HandlerCountIn[AppTickEvent](reg, "main"))
	assert.Equal(t, "main", current.Name())
}

func TestRegistry_DropBus(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")
	assert.NotPanics(t, func() {
		reg.DropBus("main")
		reg.DropBus("main")
		reg.DropBus("never-existed")
	})
	assert.False(t, reg.HasBus("main"))
}

func TestRegistry_DuplicateBus(t *testing.T) {
	reg, _ := testRegistry(t)
	_, err := reg.NewBus("main")
	require.NoError(t, err)
	_, err = reg.NewBus("main")
	assert.ErrorIs(t, err, ErrDuplicateBus)

	defer func() {
		r := recover()
		require.NotNil(t, r, "Should have panicked")
		err, ok := r.(error)
		require.True(t, ok)
		var fatal *FatalError
		assert.ErrorAs(t, err, &fatal)
		assert.ErrorIs(t, err, ErrDuplicateBus)
	}()
	reg.MustNewBus("main")
}

func TestRegistry_BusNames(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("c")
	reg.MustNewBus("a")
	reg.MustNewBus("b")
	assert.Equal(t, []string{"a", "b", "c"}, reg.BusNames())
	reg.Close()
	assert.Empty(t, reg.BusNames())
}

func TestUnsubscribe(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")
	var calls []string
	keep := SubscribeTokenIn(reg, "main", func(e *KeyReleasedEvent) {
		calls = append(calls, "keep")
	}, 0)
	drop := SubscribeTokenIn(reg, "main", func(e *KeyReleasedEvent) {
		calls = append(calls, "drop")
	}, 0)
	assert.False(t, keep.IsZero())
	assert.NotEqual(t, keep, drop)

	assert.True(t, reg.Unsubscribe("main", drop))
	assert.False(t, reg.Unsubscribe("main", drop), "Second removal should report false")
	assert.False(t, reg.Unsubscribe("main", Token{}))

	DispatchIn(reg, "main", &KeyReleasedEvent{KeyCode: 1})
	assert.Equal(t, []string{"keep"}, calls)
}

func TestDispatch_Reentrant(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")

	var (
		renders int
		late    int
	)
	SubscribeIn(reg, "main", func(e *AppRenderEvent) {
		renders++
	}, 0)
	SubscribeIn(reg, "main", func(e *AppUpdateEvent) {
		// Nested dispatch on the same bus.
		DispatchIn(reg, "main", &AppRenderEvent{})
		// Subscribing from a handler applies to later dispatches.
		SubscribeIn(reg, "main", func(e *AppUpdateEvent) {
			late++
		}, 100)
	}, 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		DispatchIn(reg, "main", &AppUpdateEvent{})
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Re-entrant dispatch deadlocked")
	}
	assert.Equal(t, 1, renders)
	assert.Equal(t, 0, late, "A handler subscribed mid-dispatch should not run in that dispatch")

	DispatchIn(reg, "main", &AppUpdateEvent{})
	assert.Equal(t, 2, renders)
	assert.Equal(t, 1, late)
}

func TestDispatch_PanicPropagates(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")
	var after bool
	SubscribeIn(reg, "main", func(e *AppTickEvent) {
		after = true
	}, 0)
	SubscribeIn(reg, "main", func(e *AppTickEvent) {
		panic(errors.New("render failed"))
	}, 1)

	assert.PanicsWithError(t, "render failed", func() {
		DispatchIn(reg, "main", &AppTickEvent{})
	})
	assert.False(t, after, "A panic should abort the dispatch")

	// The bus must still be usable.
	SubscribeIn(reg, "main", func(e *AppUpdateEvent) {}, 0)
	assert.Equal(t, 1, HandlerCountIn[AppUpdateEvent](reg, "main"))
}

func TestDispatch_Concurrent(t *testing.T) {
	reg, _ := testRegistry(t)
	reg.MustNewBus("main")
	var total atomic.Int64
	SubscribeIn(reg, "main", func(e *MouseMovedEvent) {
		total.Add(1)
	}, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				DispatchIn(reg, "main", &MouseMovedEvent{X: float64(j)})
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				SubscribeIn(reg, "main", func(e *MouseScrolledEvent) {}, uint32(j))
				DispatchIn(reg, fmt.Sprintf("missing-%d", i), &MouseMovedEvent{})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), total.Load())
	assert.Equal(t, 80, HandlerCountIn[MouseScrolledEvent](reg, "main"))
}

type recordingObserver struct {
	mux        sync.Mutex
	dispatched []string
	unknown    []string
}

func (o *recordingObserver) Dispatched(bus string, event string, handlers int, _ time.Duration) {
	o.mux.Lock()
	defer o.mux.Unlock()
	o.dispatched = append(o.dispatched, fmt.Sprintf("%s/%s/%d", bus, event, handlers))
}

func (o *recordingObserver) UnknownBus(bus string, op string) {
	o.mux.Lock()
	defer o.mux.Unlock()
	o.unknown = append(o.unknown, op+":"+bus)
}

func TestObserver(t *testing.T) {
	obs := new(recordingObserver)
	reg, _ := testRegistry(t, WithObserver(obs))
	reg.MustNewBus("main")
	SubscribeIn(reg, "main", func(e *KeyPressedEvent) {}, 0)
	SubscribeIn(reg, "main", func(e *KeyPressedEvent) {}, 0)

	type customEvent struct{}
	DispatchIn(reg, "main", &KeyPressedEvent{})
	DispatchIn(reg, "main", &customEvent{})
	DispatchIn(reg, "ghost", &AppTickEvent{})

	assert.Equal(t, []string{"main/KeyPressed/2", "main/events.customEvent/0"}, obs.dispatched)
	assert.Equal(t, []string{"dispatch:ghost"}, obs.unknown)
}
