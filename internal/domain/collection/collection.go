// Package collection provides the id-indexed record sets that enrichment
// patches land in. Records are addressed by their stable id, never by position,
// so completions may arrive in any order.
package collection

import "sync"

// ChangeKind says what kind of mutation happened
type ChangeKind int

const (
	ChangePublished ChangeKind = iota
	ChangePatched
	ChangeRemoved
)

// Change is delivered to subscribers after every mutation
type Change struct {
	Kind    ChangeKind
	ID      int64
	Version uint64
}

// Collection is an ordered, id-indexed set of records of type T.
// Publish and Patch are the only mutation paths; readers receive copies.
type Collection[T any] struct {
	mu        sync.RWMutex
	idOf      func(T) int64
	order     []int64
	items     map[int64]*T
	version   uint64
	listeners map[int]func(Change)
	nextSub   int
}

// New creates an empty collection keyed by idOf
func New[T any](idOf func(T) int64) *Collection[T] {
	return &Collection[T]{
		idOf:      idOf,
		items:     make(map[int64]*T),
		listeners: make(map[int]func(Change)),
	}
}

// Publish replaces the contents with records, keeping the first record for
// any repeated id. It returns the number of records kept.
func (c *Collection[T]) Publish(records []T) int {
	c.mu.Lock()
	order := make([]int64, 0, len(records))
	items := make(map[int64]*T, len(records))
	for _, r := range records {
		id := c.idOf(r)
		if _, exists := items[id]; exists {
			continue
		}
		record := r
		items[id] = &record
		order = append(order, id)
	}
	c.order = order
	c.items = items
	c.version++
	change := Change{Kind: ChangePublished, Version: c.version}
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, change)
	return len(order)
}

// Patch applies fn to the record with the given id. fn reports whether it
// changed anything. Patch returns false, without notifying, when the id is
// absent or fn made no change.
func (c *Collection[T]) Patch(id int64, fn func(*T) bool) bool {
	c.mu.Lock()
	record, ok := c.items[id]
	if !ok || !fn(record) {
		c.mu.Unlock()
		return false
	}
	c.version++
	change := Change{Kind: ChangePatched, ID: id, Version: c.version}
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, change)
	return true
}

// Remove deletes the record with the given id
func (c *Collection[T]) Remove(id int64) bool {
	c.mu.Lock()
	if _, ok := c.items[id]; !ok {
		c.mu.Unlock()
		return false
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.version++
	change := Change{Kind: ChangeRemoved, ID: id, Version: c.version}
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, change)
	return true
}

// Get returns a copy of the record with the given id
func (c *Collection[T]) Get(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return *record, true
}

// List returns copies of all records in publish order
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.items[id])
	}
	return out
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Version increases by one on every mutation
func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Subscribe registers fn to be called after every mutation. Calls happen
// outside the collection lock, on the mutating goroutine.
func (c *Collection[T]) Subscribe(fn func(Change)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// snapshotListeners must be called with c.mu held
func (c *Collection[T]) snapshotListeners() []func(Change) {
	out := make([]func(Change), 0, len(c.listeners))
	for _, fn := range c.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func(Change), change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}
