package btree

import "cmp"

// ComparerFunc compares a and b and returns -1, 0, or 1.
// -1 means a < b, 0 means equal, 1 means a > b.
type ComparerFunc[TK any] func(a TK, b TK) int

// OrderedComparer returns the natural comparer of a cmp.Ordered key type.
func OrderedComparer[TK cmp.Ordered]() ComparerFunc[TK] {
	return cmp.Compare[TK]
}
