package store

import (
	"iter"
	"slices"

	"github.com/sharedcode/meshin/internal/list"
)

// Encoding is the in-memory representation of a list.
type Encoding int

const (
	// Compact keeps the elements in a single slice.
	Compact Encoding = iota
	// Linked keeps the elements in a doubly linked list.
	Linked
)

// List is an ordered sequence of strings. Short lists use the compact encoding and switch
// to the linked encoding once they grow past maxCompact elements. Both encodings iterate
// identically.
type List struct {
	maxCompact int
	compact    []string
	linked     *list.DoublyLinkedList[string]
}

// NewList returns an empty list. maxCompact <= 0 keeps it compact regardless of length.
func NewList(maxCompact int, elements ...string) *List {
	l := &List{maxCompact: maxCompact}
	for _, e := range elements {
		l.PushTail(e)
	}
	return l
}

// NewLinkedList returns an empty list that starts in the linked encoding.
func NewLinkedList(elements ...string) *List {
	l := &List{linked: list.New[string]()}
	for _, e := range elements {
		l.PushTail(e)
	}
	return l
}

// Type implements Value.
func (*List) Type() Type { return ListType }

// Encoding returns the current representation.
func (l *List) Encoding() Encoding {
	if l.linked != nil {
		return Linked
	}
	return Compact
}

// Len returns the number of elements.
func (l *List) Len() int {
	if l.linked != nil {
		return l.linked.Count()
	}
	return len(l.compact)
}

// PushTail appends e.
func (l *List) PushTail(e string) {
	if l.linked != nil {
		l.linked.AddToTail(e)
		return
	}
	l.compact = append(l.compact, e)
	l.convertIfNeeded()
}

// PushHead prepends e.
func (l *List) PushHead(e string) {
	if l.linked != nil {
		l.linked.AddToHead(e)
		return
	}
	l.compact = slices.Insert(l.compact, 0, e)
	l.convertIfNeeded()
}

func (l *List) convertIfNeeded() {
	if l.maxCompact <= 0 || len(l.compact) <= l.maxCompact {
		return
	}
	l.linked = list.New[string]()
	for _, e := range l.compact {
		l.linked.AddToTail(e)
	}
	l.compact = nil
}

// All iterates head to tail.
func (l *List) All() iter.Seq[string] {
	if l.linked != nil {
		return l.linked.All()
	}
	return slices.Values(l.compact)
}

// Backward iterates tail to head.
func (l *List) Backward() iter.Seq[string] {
	if l.linked != nil {
		return l.linked.Backward()
	}
	return func(yield func(string) bool) {
		for i := len(l.compact) - 1; i >= 0; i-- {
			if !yield(l.compact[i]) {
				return
			}
		}
	}
}

// Range returns the elements between start and stop inclusive. Negative indexes count
// from the tail, as in LRANGE.
func (l *List) Range(start, stop int) []string {
	n := l.Len()
	if start < 0 {
		start = max(n+start, 0)
	}
	if stop < 0 {
		stop = n + stop
	}
	stop = min(stop, n-1)
	if start > stop || start >= n {
		return []string{}
	}
	r := make([]string, 0, stop-start+1)
	i := 0
	for e := range l.All() {
		if i > stop {
			break
		}
		if i >= start {
			r = append(r, e)
		}
		i++
	}
	return r
}
