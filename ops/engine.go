// Package ops implements the meshin operators on top of the pattern resolver and sorter:
// SORT with BY/GET/LIMIT/STORE, the list unique filters, list to set conversion, the
// foreach set builders, GROUPSORT, GROUPSUM and the range by score and member queries.
//
// Every operator reads its source once, computes the whole result, then either returns it
// or replaces the destination key in one step.
package ops

import (
	"context"
	"sync"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/pattern"
	"github.com/sharedcode/meshin/sorting"
	"github.com/sharedcode/meshin/store"
)

// Bulk is one reply entry; Nil marks a lookup that found nothing.
type Bulk struct {
	Value string
	Nil   bool
}

// Engine runs operators against a store one at a time.
type Engine struct {
	mux                   sync.Mutex
	store                 store.Store
	resolver              *pattern.Resolver
	patterns              *pattern.Cache
	sorter                *sorting.Sorter
	compactListMaxEntries int
}

// NewEngine returns an engine over s configured by o.
func NewEngine(s store.Store, o meshin.Options) *Engine {
	r := pattern.NewResolver(s, o.MaxKeyLength)
	return &Engine{
		store:                 s,
		resolver:              r,
		patterns:              pattern.NewCache(o.PatternCacheSize),
		sorter:                sorting.NewSorter(r, o.Locale),
		compactListMaxEntries: o.CompactListMaxEntries,
	}
}

// Store returns the engine's store.
func (e *Engine) Store() store.Store {
	return e.store
}

// Exec runs f while holding the engine lock, so f observes and mutates the store without
// interleaving with an operator.
func (e *Engine) Exec(ctx context.Context, f func(ctx context.Context, s store.Store) error) error {
	e.mux.Lock()
	defer e.mux.Unlock()
	return f(ctx, e.store)
}

// NewList returns an empty list using the engine's list encoding threshold.
func (e *Engine) NewList(elements ...string) *store.List {
	return store.NewList(e.compactListMaxEntries, elements...)
}

// lookup returns the value at key if it has type t. Missing keys return (nil, nil);
// other types return a WrongType error.
func (e *Engine) lookup(ctx context.Context, key string, t store.Type) (store.Value, error) {
	found, v, err := e.store.Get(ctx, key)
	if err != nil || !found {
		return nil, err
	}
	if v.Type() != t {
		return nil, meshin.NewWrongTypeError(key)
	}
	return v, nil
}

func (e *Engine) lookupList(ctx context.Context, key string) (*store.List, error) {
	v, err := e.lookup(ctx, key, store.ListType)
	if v == nil {
		return nil, err
	}
	return v.(*store.List), nil
}

func (e *Engine) lookupSet(ctx context.Context, key string) (*store.Set, error) {
	v, err := e.lookup(ctx, key, store.SetType)
	if v == nil {
		return nil, err
	}
	return v.(*store.Set), nil
}

func isCollection(v store.Value) bool {
	switch v.Type() {
	case store.ListType, store.SetType, store.SortedSetType:
		return true
	}
	return false
}

// replace deletes dst, stores v when it holds n > 0 elements, then signals the change and
// counts one dirty write.
func (e *Engine) replace(ctx context.Context, dst string, v store.Value, n int) (int, error) {
	if _, err := e.store.Delete(ctx, dst); err != nil {
		return 0, err
	}
	if n > 0 {
		if err := e.store.Put(ctx, dst, v); err != nil {
			return 0, err
		}
	}
	e.store.SignalModified(ctx, dst)
	e.store.IncrDirty(1)
	return n, nil
}
