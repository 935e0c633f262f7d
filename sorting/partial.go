package sorting

import (
	"math/bits"
	"slices"
)

// smallRange is the size below which selection falls back to sorting.
const smallRange = 16

// partialSort reorders s so that s[lo:hi+1] holds, in order, exactly the elements a full
// sort would place there. It selects both window boundaries, then sorts only the window.
func partialSort[T any](s []T, lo, hi int, cmp func(a, b T) int) {
	if lo > hi || len(s) == 0 {
		return
	}
	if lo == 0 && hi == len(s)-1 {
		slices.SortFunc(s, cmp)
		return
	}
	nthElement(s, lo, cmp)
	// Everything right of lo is now >= s[lo], so the upper boundary is selected within s[lo:].
	nthElement(s[lo:], hi-lo, cmp)
	slices.SortFunc(s[lo:hi+1], cmp)
}

// nthElement places the element of rank k at s[k] with no greater element before it and no
// smaller element after it. Quickselect with a three-way partition and a median-of-three
// pivot; ranges that exhaust the depth budget are sorted outright.
func nthElement[T any](s []T, k int, cmp func(a, b T) int) {
	l, r := 0, len(s)
	budget := 2 * bits.Len(uint(len(s)))
	for r-l > smallRange {
		if budget == 0 {
			slices.SortFunc(s[l:r], cmp)
			return
		}
		budget--
		pivot := medianOfThree(s[l], s[l+(r-l)/2], s[r-1], cmp)
		lt, gt := partition3(s, l, r, pivot, cmp)
		switch {
		case k < lt:
			r = lt
		case k >= gt:
			l = gt
		default:
			return
		}
	}
	slices.SortFunc(s[l:r], cmp)
}

// partition3 splits s[l:r] into < pivot, == pivot and > pivot, returning the bounds of the
// middle band.
func partition3[T any](s []T, l, r int, pivot T, cmp func(a, b T) int) (int, int) {
	lt, i, gt := l, l, r
	for i < gt {
		switch c := cmp(s[i], pivot); {
		case c < 0:
			s[lt], s[i] = s[i], s[lt]
			lt++
			i++
		case c > 0:
			gt--
			s[i], s[gt] = s[gt], s[i]
		default:
			i++
		}
	}
	return lt, gt
}

func medianOfThree[T any](a, b, c T, cmp func(a, b T) int) T {
	if cmp(a, b) > 0 {
		a, b = b, a
	}
	if cmp(b, c) > 0 {
		b = c
		if cmp(a, b) > 0 {
			b = a
		}
	}
	return b
}
