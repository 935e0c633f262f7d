// Package sorting builds sort vectors from collection values and orders a window of them.
package sorting

import (
	"bytes"
	"cmp"
	"context"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/pattern"
	"github.com/sharedcode/meshin/store"
)

// Options controls one sort pass.
type Options struct {
	Descending bool
	// Alpha compares collation keys instead of numeric scores.
	Alpha bool
	// DontSort keeps the snapshot order.
	DontSort bool
	// By is the pattern resolved per element for its sort key. Nil or "#" sorts by the
	// element itself; an Invalid pattern implies DontSort.
	By *pattern.Pattern
	// Offset and Count select the output window. A negative Count means to the end.
	Offset int
	Count  int
}

// Element is one entry of the sort vector.
type Element struct {
	// Value is the source element.
	Value string
	// Present is false when the BY lookup found nothing.
	Present bool
	Score   float64
	Key     []byte
}

// Result is the window of the sorted vector.
type Result struct {
	// Elements holds the window, in order.
	Elements []Element
	// Start and End are the inclusive window bounds within the vector; End < Start when empty.
	Start, End int
	// Total is the number of elements in the source.
	Total int
}

// Values returns the source elements of the window.
func (r Result) Values() []string {
	vs := make([]string, len(r.Elements))
	for i, e := range r.Elements {
		vs[i] = e.Value
	}
	return vs
}

// Sorter builds and sorts vectors. It is not safe for concurrent use.
type Sorter struct {
	resolver *pattern.Resolver
	collator *collate.Collator
	buf      collate.Buffer
}

// NewSorter returns a sorter resolving BY patterns through r. locale picks the collation
// used by alpha sorts; an empty locale compares raw bytes.
func NewSorter(r *pattern.Resolver, locale string) *Sorter {
	s := &Sorter{resolver: r}
	if locale != "" {
		s.collator = collate.New(language.Make(locale))
	}
	return s
}

// Members snapshots the elements of a list (head to tail), set (native order) or sorted
// set (index order). ok is false for other types.
func Members(v store.Value) ([]string, bool) {
	switch t := v.(type) {
	case *store.List:
		return slices.AppendSeq(make([]string, 0, t.Len()), t.All()), true
	case *store.Set:
		return slices.AppendSeq(make([]string, 0, t.Len()), t.All()), true
	case *store.ZSet:
		r := make([]string, 0, t.Len())
		for sm := range t.All() {
			r = append(r, sm.Member)
		}
		return r, true
	}
	return nil, false
}

// Window computes the inclusive window [start, end] over n elements.
func Window(offset, count, n int) (int, int) {
	start := max(offset, 0)
	end := n - 1
	if count >= 0 && count <= n-start {
		end = start + count - 1
	}
	if start >= n {
		start = n - 1
		end = n - 2
	}
	if end >= n {
		end = n - 1
	}
	return start, end
}

// BuildAndSort snapshots v, attaches sort keys, and orders the requested window.
func (s *Sorter) BuildAndSort(ctx context.Context, v store.Value, o Options) (Result, error) {
	members, ok := Members(v)
	if !ok {
		return Result{}, meshin.Error{Code: meshin.WrongType, Err: meshin.ErrWrongType}
	}
	by := o.By
	if by != nil {
		switch by.Kind() {
		case pattern.Invalid:
			o.DontSort = true
		case pattern.Identity:
			by = nil
		}
	}

	vector := make([]Element, len(members))
	for i, m := range members {
		vector[i] = Element{Value: m}
		if o.DontSort {
			continue
		}
		src := m
		if by != nil {
			val, found, err := s.resolver.ResolveString(ctx, by, m)
			if err != nil {
				return Result{}, err
			}
			if !found {
				continue
			}
			src = val
		}
		vector[i].Present = true
		if o.Alpha {
			vector[i].Key = s.collationKey(src)
		} else {
			vector[i].Score = ParseScore(src)
		}
	}

	start, end := Window(o.Offset, o.Count, len(vector))
	if !o.DontSort && start <= end {
		partialSort(vector, start, end, comparer(o.Descending, o.Alpha))
	}
	r := Result{Start: start, End: end, Total: len(vector)}
	if start <= end {
		r.Elements = vector[start : end+1]
	}
	return r, nil
}

func (s *Sorter) collationKey(str string) []byte {
	if s.collator == nil {
		return []byte(str)
	}
	k := s.collator.KeyFromString(&s.buf, str)
	// Keys alias the shared buffer until Reset; copy so the buffer can be reused.
	r := bytes.Clone(k)
	s.buf.Reset()
	return r
}

// comparer orders elements missing a sort key before present ones, then by score or
// collation key. Descending negates the final result.
func comparer(descending, alpha bool) func(a, b Element) int {
	return func(a, b Element) int {
		var r int
		switch {
		case !a.Present || !b.Present:
			switch {
			case a.Present == b.Present:
				r = 0
			case !a.Present:
				r = -1
			default:
				r = 1
			}
		case alpha:
			r = bytes.Compare(a.Key, b.Key)
		default:
			r = cmp.Compare(a.Score, b.Score)
		}
		if descending {
			return -r
		}
		return r
	}
}
