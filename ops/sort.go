package ops

import (
	"context"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/pattern"
	"github.com/sharedcode/meshin/sorting"
)

// SortRequest describes a SORT call.
type SortRequest struct {
	// By is the sort key pattern. Empty sorts by the element itself.
	By string
	// Get lists the patterns fetched per element. Empty returns the elements themselves.
	Get []string
	// Limit selects a window of the sorted elements. Nil returns all of them.
	Limit      *Limit
	Descending bool
	Alpha      bool
}

// Limit is a LIMIT offset count clause. A negative Count runs to the end.
type Limit struct {
	Offset int
	Count  int
}

func (e *Engine) sort(ctx context.Context, key string, req SortRequest) ([]Bulk, error) {
	found, v, err := e.store.Get(ctx, key)
	if err != nil || !found {
		return nil, err
	}
	o := sorting.Options{
		Descending: req.Descending,
		Alpha:      req.Alpha,
		Count:      -1,
	}
	if req.Limit != nil {
		o.Offset, o.Count = req.Limit.Offset, req.Limit.Count
	}
	if req.By != "" {
		o.By = e.patterns.Get(req.By)
	}
	if !isCollection(v) {
		return nil, meshin.NewWrongTypeError(key)
	}
	r, err := e.sorter.BuildAndSort(ctx, v, o)
	if err != nil {
		return nil, err
	}

	if len(req.Get) == 0 {
		out := make([]Bulk, len(r.Elements))
		for i, el := range r.Elements {
			out[i] = Bulk{Value: el.Value}
		}
		return out, nil
	}
	gets := make([]*pattern.Pattern, len(req.Get))
	for i, g := range req.Get {
		gets[i] = e.patterns.Get(g)
	}
	out := make([]Bulk, 0, len(r.Elements)*len(gets))
	for _, el := range r.Elements {
		for _, g := range gets {
			s, ok, err := e.resolver.ResolveString(ctx, g, el.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, Bulk{Value: s, Nil: !ok})
		}
	}
	return out, nil
}

// Sort returns the sorted window of the list, set or sorted set at key, or the GET
// lookups of each element in it. A missing key sorts as empty.
func (e *Engine) Sort(ctx context.Context, key string, req SortRequest) ([]Bulk, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.sort(ctx, key, req)
}

// SortStore runs Sort and replaces dst with the result as a list. Missing lookups are
// stored as empty strings. Returns the stored length.
func (e *Engine) SortStore(ctx context.Context, key, dst string, req SortRequest) (int, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	r, err := e.sort(ctx, key, req)
	if err != nil {
		return 0, err
	}
	l := e.NewList()
	for _, b := range r {
		l.PushTail(b.Value)
	}
	return e.replace(ctx, dst, l, l.Len())
}
