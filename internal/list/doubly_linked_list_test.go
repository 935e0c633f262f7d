package list

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAndIterate(t *testing.T) {
	dll := New[int]()
	dll.AddToTail(2)
	dll.AddToTail(3)
	dll.AddToHead(1)

	assert.Equal(t, 3, dll.Count())
	assert.Equal(t, []int{1, 2, 3}, slices.Collect(dll.All()))
	assert.Equal(t, []int{3, 2, 1}, slices.Collect(dll.Backward()))
}

func TestDeleteKeepsEnds(t *testing.T) {
	dll := New[string]()
	a := dll.AddToTail("a")
	dll.AddToTail("b")
	c := dll.AddToTail("c")

	dll.Delete(a)
	dll.Delete(c)
	h, _ := dll.PeekHead()
	tl, _ := dll.PeekTail()
	assert.Equal(t, "b", h)
	assert.Equal(t, "b", tl)
	assert.Equal(t, 1, dll.Count())

	v, ok := dll.DeleteFromTail()
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	assert.True(t, dll.IsEmpty())
	_, ok = dll.DeleteFromHead()
	assert.False(t, ok)
}

func TestMoveToHead(t *testing.T) {
	dll := New[int]()
	dll.AddToTail(1)
	dll.AddToTail(2)
	n := dll.AddToTail(3)

	dll.MoveToHead(n)
	assert.Equal(t, []int{3, 1, 2}, slices.Collect(dll.All()))
	assert.Equal(t, 3, dll.Count())
	v, _ := dll.PeekTail()
	assert.Equal(t, 2, v)
}
