// Package store defines the typed value model and the key/value store contract the
// meshin operators run against.
package store

import "context"

// Store is the key/value store the operators read sources from and write destinations to.
type Store interface {
	// Get returns the value held by key. A missing key is (false, nil, nil).
	Get(ctx context.Context, key string) (bool, Value, error)
	// Put replaces the value held by key.
	Put(ctx context.Context, key string, value Value) error
	// Delete removes keys and reports whether any existed.
	Delete(ctx context.Context, keys ...string) (bool, error)
	// SignalModified notifies watchers that key changed.
	SignalModified(ctx context.Context, key string)
	// IncrDirty adds n to the count of changes since the last save.
	IncrDirty(n int64)
	// Dirty returns the count of changes.
	Dirty() int64
}

// HashFieldReader is implemented by stores that can read one hash field without loading
// the whole hash. ok is false when the key is missing or the field absent; a key that is
// not a hash reports isHash false.
type HashFieldReader interface {
	GetHashField(ctx context.Context, key, field string) (value string, ok bool, isHash bool, err error)
}

// KeyCounter is implemented by stores that can report their number of keys.
type KeyCounter interface {
	KeyCount(ctx context.Context) (int64, error)
}
