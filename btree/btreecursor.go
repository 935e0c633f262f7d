package btree

// frame is one level of a cursor path. On the top frame index is the current slot;
// on lower frames it is the child the cursor descended into.
type frame[TK any, TV any] struct {
	n     *node[TK, TV]
	index int
}

// Cursor walks a Btree forward in key order. Modifying the tree invalidates the cursor.
type Cursor[TK any, TV any] struct {
	btree *Btree[TK, TV]
	path  []frame[TK, TV]
}

// NewCursor returns an unpositioned cursor on btree.
func NewCursor[TK any, TV any](btree *Btree[TK, TV]) *Cursor[TK, TV] {
	return &Cursor[TK, TV]{btree: btree}
}

// IsValid reports whether the cursor points at an item.
func (c *Cursor[TK, TV]) IsValid() bool {
	return len(c.path) > 0
}

// First positions the cursor on the smallest item.
func (c *Cursor[TK, TV]) First() bool {
	c.path = c.path[:0]
	if c.btree.root == nil {
		return false
	}
	c.descendLeftmost(c.btree.root)
	return c.IsValid()
}

// Find positions the cursor on the first item whose key is >= key and
// reports whether that item's key equals key.
func (c *Cursor[TK, TV]) Find(key TK) bool {
	compare := c.btree.comparer
	if !c.FindFirst(func(k TK) bool { return compare(k, key) < 0 }) {
		return false
	}
	return compare(c.GetCurrentKey(), key) == 0
}

// FindFirst positions the cursor on the first item for which before returns false.
// before must be monotone over the key order: true for a prefix of the items, then false.
func (c *Cursor[TK, TV]) FindFirst(before func(TK) bool) bool {
	c.path = c.path[:0]
	for n := c.btree.root; n != nil; {
		lo, hi := 0, len(n.Slots)
		for lo < hi {
			m := int(uint(lo+hi) >> 1)
			if before(n.Slots[m].Key) {
				lo = m + 1
			} else {
				hi = m
			}
		}
		c.path = append(c.path, frame[TK, TV]{n: n, index: lo})
		if n.isLeaf() {
			break
		}
		n = n.Children[lo]
	}
	if len(c.path) == 0 {
		return false
	}
	if top := c.path[len(c.path)-1]; top.index >= len(top.n.Slots) {
		c.ascend()
	}
	return c.IsValid()
}

// Next moves the cursor to the next item in key order.
func (c *Cursor[TK, TV]) Next() bool {
	if !c.IsValid() {
		return false
	}
	top := &c.path[len(c.path)-1]
	if !top.n.isLeaf() {
		top.index++
		c.descendLeftmost(top.n.Children[top.index])
		return true
	}
	top.index++
	if top.index < len(top.n.Slots) {
		return true
	}
	c.ascend()
	return c.IsValid()
}

// GetCurrentKey returns the key of the current item. The cursor must be valid.
func (c *Cursor[TK, TV]) GetCurrentKey() TK {
	top := c.path[len(c.path)-1]
	return top.n.Slots[top.index].Key
}

// GetCurrentValue returns the value of the current item. The cursor must be valid.
func (c *Cursor[TK, TV]) GetCurrentValue() TV {
	top := c.path[len(c.path)-1]
	return top.n.Slots[top.index].Value
}

func (c *Cursor[TK, TV]) descendLeftmost(n *node[TK, TV]) {
	for {
		c.path = append(c.path, frame[TK, TV]{n: n})
		if n.isLeaf() {
			return
		}
		n = n.Children[0]
	}
}

// ascend pops exhausted frames until a parent has a slot right of the child it descended into.
func (c *Cursor[TK, TV]) ascend() {
	for {
		c.path = c.path[:len(c.path)-1]
		if len(c.path) == 0 {
			return
		}
		if top := c.path[len(c.path)-1]; top.index < len(top.n.Slots) {
			return
		}
	}
}
