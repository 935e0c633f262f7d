package ops

import (
	"context"
	"strconv"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/pattern"
	"github.com/sharedcode/meshin/sorting"
	"github.com/sharedcode/meshin/store"
)

// GroupSortRequest describes a GROUPSORT call.
type GroupSortRequest struct {
	// KeyPattern maps each source element to the collection to sort.
	KeyPattern string
	// SortPattern is the BY pattern applied inside each collection. "#" sorts by the
	// elements themselves; any other pattern without '*' keeps the collections' own order.
	SortPattern string
	Offset      int
	Count       int
	Descending  bool
	Alpha       bool
}

// GroupSort resolves KeyPattern for each element of the list at src, sorts every list,
// set or sorted set found that way, and replaces dst with the concatenated windows.
// Returns the destination length.
func (e *Engine) GroupSort(ctx context.Context, dst, src string, req GroupSortRequest) (int, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	l, err := e.lookupList(ctx, src)
	if err != nil {
		return 0, err
	}
	out := e.NewList()
	if l != nil {
		keyPattern := e.patterns.Get(req.KeyPattern)
		o := sorting.Options{
			By:         e.patterns.Get(req.SortPattern),
			Descending: req.Descending,
			Alpha:      req.Alpha,
			Offset:     req.Offset,
			Count:      req.Count,
		}
		for el := range l.All() {
			found, v, err := e.resolver.Resolve(ctx, keyPattern, el, false)
			if err != nil {
				return 0, err
			}
			if !found {
				continue
			}
			if !isCollection(v) {
				continue
			}
			r, err := e.sorter.BuildAndSort(ctx, v, o)
			if err != nil {
				return 0, err
			}
			for _, se := range r.Elements {
				out.PushTail(se.Value)
			}
		}
	}
	return e.replace(ctx, dst, out, out.Len())
}

// GroupSum resolves keyPattern for each element of the list at src. When that yields a
// set, every pattern in sums is resolved for each member and its integer value added to
// that pattern's total. dst is replaced by a list of len(sums) totals per source element;
// non-integer and missing values count as 0.
func (e *Engine) GroupSum(ctx context.Context, dst, src, keyPattern string, sums []string) (int, error) {
	if len(sums) == 0 {
		return 0, meshin.NewSyntaxError("GROUPSUM needs at least one sum pattern")
	}
	e.mux.Lock()
	defer e.mux.Unlock()
	l, err := e.lookupList(ctx, src)
	if err != nil {
		return 0, err
	}
	out := e.NewList()
	if l != nil {
		kp := e.patterns.Get(keyPattern)
		sp := make([]*pattern.Pattern, len(sums))
		for i, s := range sums {
			sp[i] = e.patterns.Get(s)
		}
		accu := make([]int64, len(sums))
		for el := range l.All() {
			clear(accu)
			found, v, err := e.resolver.Resolve(ctx, kp, el, false)
			if err != nil {
				return 0, err
			}
			if set, ok := v.(*store.Set); found && ok {
				for m := range set.All() {
					for i, p := range sp {
						s, ok, err := e.resolver.ResolveString(ctx, p, m)
						if err != nil {
							return 0, err
						}
						if !ok {
							continue
						}
						if n, err := strconv.ParseInt(s, 10, 64); err == nil {
							accu[i] += n
						}
					}
				}
			}
			for _, n := range accu {
				out.PushTail(strconv.FormatInt(n, 10))
			}
		}
	}
	return e.replace(ctx, dst, out, out.Len())
}
