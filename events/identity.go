package events

import (
	"github.com/saylorsolutions/nain/assert"
	"github.com/saylorsolutions/nain/syncx"
	"math"
	"reflect"
	"sync"
)

type eventID uint64

// identities is process-wide and outlives any Registry, so ids stay stable across Shutdown and Init.
var identities = struct {
	mux  sync.Mutex
	ids  map[reflect.Type]eventID
	next eventID
}{
	ids:  map[reflect.Type]eventID{},
	next: 1,
}

// idFor returns the id assigned to the static type T, assigning the next id on first use.
// Ids are keyed by type identity, so two named types with the same layout get different ids.
func idFor[T any]() eventID {
	t := reflect.TypeFor[T]()
	return syncx.LockFuncT(&identities.mux, func() eventID {
		if id, ok := identities.ids[t]; ok {
			return id
		}
		assert.Truef(identities.next < math.MaxUint64, "event id space exhausted assigning an id to %s", t)
		id := identities.next
		identities.next++
		identities.ids[t] = id
		return id
	})
}
