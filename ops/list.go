package ops

import (
	"context"
	"slices"

	"github.com/sharedcode/meshin/store"
)

// SetFromList replaces dst with a set of the distinct elements of the list at src.
// Returns the set size; an empty result leaves dst absent.
func (e *Engine) SetFromList(ctx context.Context, dst, src string) (int, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	l, err := e.lookupList(ctx, src)
	if err != nil {
		return 0, err
	}
	s := store.NewSet()
	if l != nil {
		for el := range l.All() {
			s.Add(el)
		}
	}
	return e.replace(ctx, dst, s, s.Len())
}

// unique walks the list keeping the first occurrence of each element it meets. Walking
// forward keeps first occurrences; walking from the tail keeps last occurrences, and the
// kept elements are flipped back into original relative order.
func (e *Engine) unique(l *store.List, reverse bool) *store.List {
	if l == nil {
		return e.NewList()
	}
	seen := make(map[string]struct{}, l.Len())
	walk := l.All()
	if reverse {
		walk = l.Backward()
	}
	var kept []string
	for el := range walk {
		if _, ok := seen[el]; ok {
			continue
		}
		seen[el] = struct{}{}
		kept = append(kept, el)
	}
	if reverse {
		slices.Reverse(kept)
	}
	return e.NewList(kept...)
}

// Unique returns the list at src without repeated elements. reverse keeps the last
// occurrence of each element instead of the first.
func (e *Engine) Unique(ctx context.Context, src string, reverse bool) ([]string, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	l, err := e.lookupList(ctx, src)
	if err != nil {
		return nil, err
	}
	return e.unique(l, reverse).Range(0, -1), nil
}

// UniqueStore replaces dst with the result of Unique and returns its length.
func (e *Engine) UniqueStore(ctx context.Context, dst, src string, reverse bool) (int, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	l, err := e.lookupList(ctx, src)
	if err != nil {
		return 0, err
	}
	r := e.unique(l, reverse)
	return e.replace(ctx, dst, r, r.Len())
}
