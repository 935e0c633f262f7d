// Package btree contains the in-memory B-Tree used as the ordered index of sorted sets.
//
// Keys are unique under the tree's comparer. The tree is not safe for concurrent use;
// callers serialize access the same way they serialize access to the owning value.
package btree

import "iter"

// DefaultSlotLength is the number of items a node holds before it splits.
const DefaultSlotLength = 31

// Btree is an in-memory B-Tree keyed by TK.
type Btree[TK any, TV any] struct {
	root     *node[TK, TV]
	degree   int
	comparer ComparerFunc[TK]
	count    int
}

// New creates an empty Btree. slotLength is the maximum number of items per node and is
// rounded up to the next odd number of at least 3.
func New[TK any, TV any](slotLength int, comparer ComparerFunc[TK]) *Btree[TK, TV] {
	if slotLength < 3 {
		slotLength = 3
	}
	return &Btree[TK, TV]{
		degree:   (slotLength + 2) / 2,
		comparer: comparer,
	}
}

func (b *Btree[TK, TV]) maxSlots() int {
	return 2*b.degree - 1
}

// Count returns the number of items in the tree.
func (b *Btree[TK, TV]) Count() int {
	return b.count
}

// Add inserts the key/value pair. Returns false, leaving the tree unchanged, if key exists.
func (b *Btree[TK, TV]) Add(key TK, value TV) bool {
	if b.root == nil {
		b.root = &node[TK, TV]{Slots: make([]Item[TK, TV], 0, b.maxSlots())}
	}
	if len(b.root.Slots) == b.maxSlots() {
		r := &node[TK, TV]{Children: []*node[TK, TV]{b.root}}
		r.splitChild(0, b.degree)
		b.root = r
	}
	if !b.root.insertNonFull(Item[TK, TV]{Key: key, Value: value}, b) {
		return false
	}
	b.count++
	return true
}

// Remove deletes key. Returns false if it was not found.
func (b *Btree[TK, TV]) Remove(key TK) bool {
	if b.root == nil {
		return false
	}
	ok := b.root.remove(key, b)
	if len(b.root.Slots) == 0 {
		if b.root.isLeaf() {
			b.root = nil
		} else {
			b.root = b.root.Children[0]
		}
	}
	if ok {
		b.count--
	}
	return ok
}

// Get returns the value stored under key.
func (b *Btree[TK, TV]) Get(key TK) (TV, bool) {
	for n := b.root; n != nil; {
		i, found := n.find(key, b.comparer)
		if found {
			return n.Slots[i].Value, true
		}
		if n.isLeaf() {
			break
		}
		n = n.Children[i]
	}
	var zero TV
	return zero, false
}

// All iterates the items in key order.
func (b *Btree[TK, TV]) All() iter.Seq2[TK, TV] {
	return func(yield func(TK, TV) bool) {
		c := NewCursor(b)
		for ok := c.First(); ok; ok = c.Next() {
			if !yield(c.GetCurrentKey(), c.GetCurrentValue()) {
				return
			}
		}
	}
}
