package btree

import (
	"cmp"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func keys[TK any, TV any](b *Btree[TK, TV]) []TK {
	var r []TK
	for k := range b.All() {
		r = append(r, k)
	}
	return r
}

func TestAddGetAndDuplicates(t *testing.T) {
	b := New[int, string](3, OrderedComparer[int]())
	for i := 10; i > 0; i-- {
		assert.True(t, b.Add(i, "v"))
	}
	assert.False(t, b.Add(5, "dup"))
	assert.Equal(t, 10, b.Count())

	v, ok := b.Get(5)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	_, ok = b.Get(11)
	assert.False(t, ok)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, keys(b))
}

func TestRemoveAll(t *testing.T) {
	b := New[int, int](3, OrderedComparer[int]())
	for i := range 100 {
		b.Add(i, i*i)
	}
	for i := 0; i < 100; i += 2 {
		assert.True(t, b.Remove(i))
	}
	assert.False(t, b.Remove(0))
	assert.Equal(t, 50, b.Count())
	for i := 1; i < 100; i += 2 {
		assert.True(t, b.Remove(i))
	}
	assert.Equal(t, 0, b.Count())
	assert.Nil(t, keys(b))
	assert.False(t, NewCursor(b).First())
}

func TestRandomizedAgainstSortedReference(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, slotLength := range []int{3, 4, 7, DefaultSlotLength} {
		b := New[int, int](slotLength, OrderedComparer[int]())
		ref := map[int]bool{}
		for range 5000 {
			k := r.Intn(700)
			if r.Intn(3) == 0 {
				assert.Equal(t, ref[k], b.Remove(k))
				delete(ref, k)
			} else {
				assert.Equal(t, !ref[k], b.Add(k, k))
				ref[k] = true
			}
		}
		want := make([]int, 0, len(ref))
		for k := range ref {
			want = append(want, k)
		}
		slices.Sort(want)
		assert.Equal(t, len(want), b.Count(), "slot length %d", slotLength)
		assert.Equal(t, want, keys(b), "slot length %d", slotLength)
	}
}

func TestCursorFind(t *testing.T) {
	b := New[int, int](3, OrderedComparer[int]())
	for i := 0; i < 200; i += 10 {
		b.Add(i, i)
	}
	c := NewCursor(b)

	assert.True(t, c.Find(50))
	assert.Equal(t, 50, c.GetCurrentKey())

	assert.False(t, c.Find(55))
	assert.True(t, c.IsValid())
	assert.Equal(t, 60, c.GetCurrentKey())
	assert.True(t, c.Next())
	assert.Equal(t, 70, c.GetCurrentKey())

	assert.False(t, c.Find(-5))
	assert.Equal(t, 0, c.GetCurrentKey())

	assert.False(t, c.Find(191))
	assert.False(t, c.IsValid())
	assert.False(t, c.Next())
}

func TestCursorFindEveryLowerBound(t *testing.T) {
	b := New[int, struct{}](4, OrderedComparer[int]())
	var ks []int
	for i := 0; i < 500; i += 3 {
		b.Add(i, struct{}{})
		ks = append(ks, i)
	}
	c := NewCursor(b)
	for target := -1; target < 502; target++ {
		i, _ := slices.BinarySearch(ks, target)
		c.Find(target)
		if i == len(ks) {
			assert.False(t, c.IsValid(), "target %d", target)
			continue
		}
		assert.Equal(t, ks[i], c.GetCurrentKey(), "target %d", target)
		var walked []int
		for ok := true; ok; ok = c.Next() {
			walked = append(walked, c.GetCurrentKey())
		}
		assert.Equal(t, ks[i:], walked, "target %d", target)
	}
}

type pair struct {
	score  float64
	member string
}

func TestFindFirstWithCompositeKey(t *testing.T) {
	compare := func(a, b pair) int {
		if c := cmp.Compare(a.score, b.score); c != 0 {
			return c
		}
		return cmp.Compare(a.member, b.member)
	}
	b := New[pair, struct{}](3, compare)
	for _, p := range []pair{{1, "a"}, {2, "a"}, {2, "b"}, {2, "c"}, {3, "a"}} {
		b.Add(p, struct{}{})
	}
	c := NewCursor(b)
	// First item with score > 1.
	assert.True(t, c.FindFirst(func(k pair) bool { return k.score <= 1 }))
	assert.Equal(t, pair{2, "a"}, c.GetCurrentKey())
	// Nothing has score > 3.
	assert.False(t, c.FindFirst(func(k pair) bool { return k.score <= 3 }))
}
