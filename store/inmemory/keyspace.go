// Package inmemory is the in-process keyspace implementing store.Store.
package inmemory

import (
	"context"
	log "log/slog"
	"sync"
	"sync/atomic"

	"github.com/sharedcode/meshin/store"
)

// Listener is called after a key is signalled as modified. version is 0 when the key no
// longer exists.
type Listener func(key string, version uint64)

// Keyspace is an in-memory store.Store. It is safe for concurrent use.
type Keyspace struct {
	items     *shardedMap
	dirty     atomic.Int64
	mux       sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

// NewKeyspace returns an empty keyspace.
func NewKeyspace() *Keyspace {
	return &Keyspace{
		items:     newShardedMap(),
		listeners: map[int]Listener{},
	}
}

// Get returns the value held by key.
func (ks *Keyspace) Get(ctx context.Context, key string) (bool, store.Value, error) {
	v, ok := ks.items.load(key)
	return ok, v, nil
}

// Put replaces the value held by key.
func (ks *Keyspace) Put(ctx context.Context, key string, value store.Value) error {
	ks.items.store(key, value)
	return nil
}

// Delete removes keys and reports whether any existed.
func (ks *Keyspace) Delete(ctx context.Context, keys ...string) (bool, error) {
	r := false
	for _, k := range keys {
		if ks.items.delete(k) {
			r = true
		}
	}
	return r, nil
}

// GetHashField implements store.HashFieldReader.
func (ks *Keyspace) GetHashField(ctx context.Context, key, field string) (string, bool, bool, error) {
	v, ok := ks.items.load(key)
	if !ok {
		return "", false, false, nil
	}
	h, isHash := v.(*store.Hash)
	if !isHash {
		return "", false, false, nil
	}
	s, found := h.Field(field)
	return s, found, true, nil
}

// KeyCount implements store.KeyCounter.
func (ks *Keyspace) KeyCount(ctx context.Context) (int64, error) {
	return ks.items.count(), nil
}

// Flush removes every key.
func (ks *Keyspace) Flush() {
	ks.items.clear()
}

// SignalModified bumps key's version and notifies listeners.
func (ks *Keyspace) SignalModified(ctx context.Context, key string) {
	v := ks.items.bump(key)
	log.Debug("key modified", "key", key, "version", v)
	ks.mux.RLock()
	defer ks.mux.RUnlock()
	for _, l := range ks.listeners {
		l(key, v)
	}
}

// Version returns key's modification version, 0 if missing.
func (ks *Keyspace) Version(key string) uint64 {
	return ks.items.version(key)
}

// Watch registers l and returns a function that unregisters it.
func (ks *Keyspace) Watch(l Listener) func() {
	ks.mux.Lock()
	defer ks.mux.Unlock()
	id := ks.nextID
	ks.nextID++
	ks.listeners[id] = l
	return func() {
		ks.mux.Lock()
		defer ks.mux.Unlock()
		delete(ks.listeners, id)
	}
}

// IncrDirty adds n to the change counter.
func (ks *Keyspace) IncrDirty(n int64) {
	ks.dirty.Add(n)
}

// Dirty returns the change counter.
func (ks *Keyspace) Dirty() int64 {
	return ks.dirty.Load()
}
