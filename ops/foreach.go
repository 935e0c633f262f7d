package ops

import (
	"context"
	"iter"

	"github.com/sharedcode/meshin/pattern"
	"github.com/sharedcode/meshin/store"
)

// ForeachListIntoSet resolves pattern for every element of the list at src and replaces
// dst with the union: set results contribute their members, string results themselves,
// anything else is skipped. A pattern without '*' leaves dst untouched and returns 0.
func (e *Engine) ForeachListIntoSet(ctx context.Context, dst, src, pat string) (int, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	l, err := e.lookupList(ctx, src)
	if err != nil {
		return 0, err
	}
	var elements iter.Seq[string]
	if l != nil {
		elements = l.All()
	}
	return e.foreachIntoSet(ctx, dst, elements, pat)
}

// ForeachSetIntoSet is ForeachListIntoSet over the members of the set at src.
func (e *Engine) ForeachSetIntoSet(ctx context.Context, dst, src, pat string) (int, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	s, err := e.lookupSet(ctx, src)
	if err != nil {
		return 0, err
	}
	var elements iter.Seq[string]
	if s != nil {
		elements = s.All()
	}
	return e.foreachIntoSet(ctx, dst, elements, pat)
}

func (e *Engine) foreachIntoSet(ctx context.Context, dst string, elements iter.Seq[string], pat string) (int, error) {
	p := e.patterns.Get(pat)
	if p.Kind() == pattern.Invalid {
		return 0, nil
	}
	r := store.NewSet()
	if elements != nil {
		for el := range elements {
			found, v, err := e.resolver.Resolve(ctx, p, el, false)
			if err != nil {
				return 0, err
			}
			if !found {
				continue
			}
			switch t := v.(type) {
			case *store.Set:
				for m := range t.All() {
					r.Add(m)
				}
			case store.String:
				r.Add(string(t))
			}
		}
	}
	return e.replace(ctx, dst, r, r.Len())
}
