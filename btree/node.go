package btree

import (
	"slices"
	"sort"
)

// Item contains a key/value pair.
type Item[TK any, TV any] struct {
	// Key is the key part in the key/value pair.
	Key TK
	// Value is the value part in the key/value pair.
	Value TV
}

// node contains a B-Tree node's data. Leaves have no children; an internal node
// with n slots always has n+1 children.
type node[TK any, TV any] struct {
	// Slots is an array where the Items get stored, in key order.
	Slots []Item[TK, TV]
	// Children holds this node's children.
	Children []*node[TK, TV]
}

func (n *node[TK, TV]) isLeaf() bool {
	return len(n.Children) == 0
}

// find returns the index of the first slot whose key is >= key and whether that slot matches.
func (n *node[TK, TV]) find(key TK, compare ComparerFunc[TK]) (int, bool) {
	i := sort.Search(len(n.Slots), func(i int) bool {
		return compare(n.Slots[i].Key, key) >= 0
	})
	return i, i < len(n.Slots) && compare(n.Slots[i].Key, key) == 0
}

// splitChild splits the full child at index i, promoting its median into n.
func (n *node[TK, TV]) splitChild(i int, degree int) {
	y := n.Children[i]
	median := y.Slots[degree-1]

	z := &node[TK, TV]{
		Slots: append(make([]Item[TK, TV], 0, 2*degree-1), y.Slots[degree:]...),
	}
	clear(y.Slots[degree-1:])
	y.Slots = y.Slots[:degree-1]
	if !y.isLeaf() {
		z.Children = append(make([]*node[TK, TV], 0, 2*degree), y.Children[degree:]...)
		clear(y.Children[degree:])
		y.Children = y.Children[:degree]
	}

	n.Slots = slices.Insert(n.Slots, i, median)
	n.Children = slices.Insert(n.Children, i+1, z)
}

// insertNonFull adds the item into the subtree rooted at n. n must not be full.
func (n *node[TK, TV]) insertNonFull(item Item[TK, TV], b *Btree[TK, TV]) bool {
	for {
		i, found := n.find(item.Key, b.comparer)
		if found {
			return false
		}
		if n.isLeaf() {
			n.Slots = slices.Insert(n.Slots, i, item)
			return true
		}
		if len(n.Children[i].Slots) == b.maxSlots() {
			n.splitChild(i, b.degree)
			switch c := b.comparer(item.Key, n.Slots[i].Key); {
			case c == 0:
				return false
			case c > 0:
				i++
			}
		}
		n = n.Children[i]
	}
}

// remove deletes key from the subtree rooted at n. Every node visited below the root has
// at least degree slots when entered, so a removal never leaves a child underfull.
func (n *node[TK, TV]) remove(key TK, b *Btree[TK, TV]) bool {
	i, found := n.find(key, b.comparer)
	if n.isLeaf() {
		if !found {
			return false
		}
		n.Slots = slices.Delete(n.Slots, i, i+1)
		return true
	}
	if found {
		switch {
		case len(n.Children[i].Slots) >= b.degree:
			pred := n.Children[i].max()
			n.Slots[i] = pred
			return n.Children[i].remove(pred.Key, b)
		case len(n.Children[i+1].Slots) >= b.degree:
			succ := n.Children[i+1].min()
			n.Slots[i] = succ
			return n.Children[i+1].remove(succ.Key, b)
		default:
			n.merge(i)
			return n.Children[i].remove(key, b)
		}
	}
	if len(n.Children[i].Slots) < b.degree {
		i = n.ensureChild(i, b.degree)
	}
	return n.Children[i].remove(key, b)
}

// ensureChild gives child i at least degree slots by borrowing from a sibling or merging
// with one. Returns the index of the child that now covers the original key range.
func (n *node[TK, TV]) ensureChild(i int, degree int) int {
	child := n.Children[i]
	if i > 0 && len(n.Children[i-1].Slots) >= degree {
		left := n.Children[i-1]
		child.Slots = slices.Insert(child.Slots, 0, n.Slots[i-1])
		last := len(left.Slots) - 1
		n.Slots[i-1] = left.Slots[last]
		left.Slots = slices.Delete(left.Slots, last, last+1)
		if !left.isLeaf() {
			lc := len(left.Children) - 1
			child.Children = slices.Insert(child.Children, 0, left.Children[lc])
			left.Children = slices.Delete(left.Children, lc, lc+1)
		}
		return i
	}
	if i < len(n.Slots) && len(n.Children[i+1].Slots) >= degree {
		right := n.Children[i+1]
		child.Slots = append(child.Slots, n.Slots[i])
		n.Slots[i] = right.Slots[0]
		right.Slots = slices.Delete(right.Slots, 0, 1)
		if !right.isLeaf() {
			child.Children = append(child.Children, right.Children[0])
			right.Children = slices.Delete(right.Children, 0, 1)
		}
		return i
	}
	if i < len(n.Slots) {
		n.merge(i)
		return i
	}
	n.merge(i - 1)
	return i - 1
}

// merge folds slot i and child i+1 into child i.
func (n *node[TK, TV]) merge(i int) {
	left, right := n.Children[i], n.Children[i+1]
	left.Slots = append(left.Slots, n.Slots[i])
	left.Slots = append(left.Slots, right.Slots...)
	left.Children = append(left.Children, right.Children...)
	n.Slots = slices.Delete(n.Slots, i, i+1)
	n.Children = slices.Delete(n.Children, i+1, i+2)
}

func (n *node[TK, TV]) min() Item[TK, TV] {
	for !n.isLeaf() {
		n = n.Children[0]
	}
	return n.Slots[0]
}

func (n *node[TK, TV]) max() Item[TK, TV] {
	for !n.isLeaf() {
		n = n.Children[len(n.Children)-1]
	}
	return n.Slots[len(n.Slots)-1]
}
