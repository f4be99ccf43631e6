package events

import "sort"

// Handler receives a pointer to the event being dispatched.
// Changes made by a handler are visible to every handler that runs after it, and to the publisher.
type Handler[T any] func(event *T)

type handlerRecord[T any] struct {
	priority uint32
	token    Token
	handler  Handler[T]
}

// cell is the type-erased view of a handlerList.
type cell interface {
	remove(token Token) bool
	len() int
}

// handlerList holds the records for one event type, sorted by non-decreasing priority.
// The records slice is replaced on every change and never modified in place, so a dispatch may iterate a snapshot without holding a lock.
type handlerList[T any] struct {
	records []handlerRecord[T]
}

// insert places rec after every record with the same or lower priority.
// Dispatch runs back to front, so among equal priorities the newest subscription runs first.
func (l *handlerList[T]) insert(rec handlerRecord[T]) {
	pos := sort.Search(len(l.records), func(i int) bool {
		return l.records[i].priority > rec.priority
	})
	records := make([]handlerRecord[T], 0, len(l.records)+1)
	records = append(records, l.records[:pos]...)
	records = append(records, rec)
	records = append(records, l.records[pos:]...)
	l.records = records
}

func (l *handlerList[T]) remove(token Token) bool {
	for i, rec := range l.records {
		if rec.token != token {
			continue
		}
		records := make([]handlerRecord[T], 0, len(l.records)-1)
		records = append(records, l.records[:i]...)
		records = append(records, l.records[i+1:]...)
		l.records = records
		return true
	}
	return false
}

func (l *handlerList[T]) len() int {
	return len(l.records)
}

// table is the per-bus mapping of event id to handler list.
// It's not concurrency safe, the owning bus guards it.
type table struct {
	cells map[eventID]cell
}

func newTable() *table {
	return &table{cells: map[eventID]cell{}}
}

// listFor down-casts the cell for id to the handler list for T.
// Returns nil if nothing is subscribed to id.
func listFor[T any](t *table, id eventID) *handlerList[T] {
	c, ok := t.cells[id]
	if !ok {
		return nil
	}
	list, ok := c.(*handlerList[T])
	if !ok {
		var zero T
		fatalf(ErrTypeMismatch, "event id %d is bound to %T, not %T", id, c, zero)
	}
	return list
}

func insertHandler[T any](t *table, id eventID, rec handlerRecord[T]) {
	list := listFor[T](t, id)
	if list == nil {
		list = new(handlerList[T])
		t.cells[id] = list
	}
	list.insert(rec)
}

// snapshot returns the current records for T, which may be iterated after the bus lock is released.
func snapshot[T any](t *table, id eventID) []handlerRecord[T] {
	list := listFor[T](t, id)
	if list == nil {
		return nil
	}
	return list.records
}

func (t *table) remove(token Token) bool {
	for id, c := range t.cells {
		if c.remove(token) {
			if c.len() == 0 {
				delete(t.cells, id)
			}
			return true
		}
	}
	return false
}

func (t *table) clear() {
	t.cells = map[eventID]cell{}
}
