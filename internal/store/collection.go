package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
)

// ErrNotFound is returned when an id matches no element of a collection
var ErrNotFound = errors.New("not found")

// KV is the persistent key/value storage a collection mirrors itself to
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Collection is an ordered, observable list of entities persisted as one JSON
// array under a single key. Every mutation replaces the whole slice, pushes it
// to subscribers, then overwrites the stored array.
type Collection[T any] struct {
	mu     sync.RWMutex
	key    string
	kv     KV
	idOf   func(T) string
	items  []T
	subs   map[int]chan []T
	nextID int
	logger *slog.Logger
}

func newCollection[T any](kv KV, key string, idOf func(T) string, seed []T, logger *slog.Logger) *Collection[T] {
	c := &Collection[T]{
		key:    key,
		kv:     kv,
		idOf:   idOf,
		subs:   make(map[int]chan []T),
		logger: logger.With("collection", key),
	}
	c.items = c.load(seed)
	return c
}

// load reads the stored array. A missing key yields the seed; unreadable or
// malformed data is logged and yields an empty collection.
func (c *Collection[T]) load(seed []T) []T {
	raw, ok, err := c.kv.Get(c.key)
	if err != nil {
		c.logger.Error("read collection", "error", err)
		return []T{}
	}
	if !ok {
		items := slices.Clone(seed)
		if items == nil {
			items = []T{}
		}
		return items
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Error("parse stored collection, resetting to empty", "error", err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}

// save writes the full collection. Failures are logged, never retried.
// Callers hold c.mu.
func (c *Collection[T]) save() {
	raw, err := json.Marshal(c.items)
	if err != nil {
		c.logger.Error("serialize collection", "error", err)
		return
	}
	if err := c.kv.Set(c.key, string(raw)); err != nil {
		c.logger.Error("write collection", "error", err)
	}
}

// All returns a copy of the collection in order
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Find returns the element with id
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the elements matching keep, in order
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, item := range c.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// Subscribe returns a stream of the full collection. The current value is
// delivered immediately; a slow subscriber only ever sees the latest value.
// The returned cancel func closes the stream and is safe to call twice.
func (c *Collection[T]) Subscribe() (<-chan []T, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan []T, 1)
	ch <- slices.Clone(c.items)
	id := c.nextID
	c.nextID++
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// publish replaces any unread value with the current one. Callers hold c.mu,
// which makes this the only sender, so the send after draining never blocks.
func (c *Collection[T]) publish() {
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- slices.Clone(c.items)
	}
}

// commit installs next as the collection, notifies subscribers and persists.
// Callers hold c.mu.
func (c *Collection[T]) commit(next []T) {
	c.items = next
	c.publish()
	c.save()
}

// Append adds item at the end
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.items)+1)
	next = append(next, c.items...)
	c.commit(append(next, item))
}

// Update replaces the element with id by fn(element)
func (c *Collection[T]) Update(id string, fn func(T) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		c.logger.Warn("update of unknown id", "id", id)
		var zero T
		return zero, ErrNotFound
	}

	next := slices.Clone(c.items)
	next[i] = fn(next[i])
	c.commit(next)
	return next[i], nil
}

// Delete removes the element with id and reports whether one was removed
func (c *Collection[T]) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(id) < 0 {
		c.logger.Warn("delete of unknown id", "id", id)
		return false
	}

	next := make([]T, 0, len(c.items)-1)
	for _, item := range c.items {
		if c.idOf(item) != id {
			next = append(next, item)
		}
	}
	c.commit(next)
	return true
}

// Replace swaps the whole collection, as done by imports
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	c.commit(slices.Clone(items))
}

// mutate lets fn derive a new collection from the current one. Nothing is
// committed when fn reports no change.
func (c *Collection[T]) mutate(fn func([]T) ([]T, bool)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, changed := fn(c.items)
	if !changed {
		return false
	}
	c.commit(next)
	return true
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if c.idOf(item) == id {
			return i
		}
	}
	return -1
}
