package ops

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/store"
	"github.com/sharedcode/meshin/store/inmemory"
)

var ctx = context.Background()

func newEngine() (*Engine, *inmemory.Keyspace) {
	ks := inmemory.NewKeyspace()
	o := meshin.DefaultOptions()
	o.CompactListMaxEntries = 4
	return NewEngine(ks, o), ks
}

func values(bs []Bulk) []string {
	r := make([]string, len(bs))
	for i, b := range bs {
		r[i] = b.Value
	}
	return r
}

func getList(t *testing.T, ks *inmemory.Keyspace, key string) []string {
	t.Helper()
	found, v, err := ks.Get(ctx, key)
	assert.NoError(t, err)
	if !found {
		return nil
	}
	return slices.Collect(v.(*store.List).All())
}

func getSet(t *testing.T, ks *inmemory.Keyspace, key string) []string {
	t.Helper()
	found, v, _ := ks.Get(ctx, key)
	if !found {
		return nil
	}
	return slices.Sorted(v.(*store.Set).All())
}

func TestSortByGetAndLimit(t *testing.T) {
	e, ks := newEngine()
	ks.Put(ctx, "ids", store.NewList(0, "1", "2", "3"))
	for id, w := range map[string]string{"1": "30", "2": "10", "3": "20"} {
		ks.Put(ctx, "w_"+id, store.String(w))
		h := store.NewHash()
		h.Set("name", "n"+id)
		ks.Put(ctx, "u_"+id, h)
	}

	r, err := e.Sort(ctx, "ids", SortRequest{By: "w_*"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, values(r))

	r, _ = e.Sort(ctx, "ids", SortRequest{By: "w_*", Get: []string{"#", "u_*->name"}, Limit: &Limit{Offset: 1, Count: 1}})
	assert.Equal(t, []Bulk{{Value: "3"}, {Value: "n3"}}, r)

	r, _ = e.Sort(ctx, "ids", SortRequest{By: "w_*", Get: []string{"missing_*"}, Descending: true})
	assert.Equal(t, []Bulk{{Nil: true}, {Nil: true}, {Nil: true}}, r)

	r, err = e.Sort(ctx, "nokey", SortRequest{})
	assert.NoError(t, err)
	assert.Empty(t, r)

	ks.Put(ctx, "str", store.String("x"))
	_, err = e.Sort(ctx, "str", SortRequest{})
	assert.Equal(t, meshin.WrongType, meshin.CodeOf(err))
}

func TestSortStore(t *testing.T) {
	e, ks := newEngine()
	ks.Put(ctx, "ids", store.NewList(0, "2", "1"))
	ks.Put(ctx, "name_1", store.String("one"))

	n, err := e.SortStore(ctx, "ids", "out", SortRequest{Get: []string{"name_*"}})
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"one", ""}, getList(t, ks, "out"))
	assert.Equal(t, int64(1), ks.Dirty())

	// An empty result removes the destination.
	n, _ = e.SortStore(ctx, "empty", "out", SortRequest{})
	assert.Equal(t, 0, n)
	assert.Nil(t, getList(t, ks, "out"))
}

func TestSetFromList(t *testing.T) {
	e, ks := newEngine()
	ks.Put(ctx, "l", store.NewList(0, "a", "b", "a"))
	n, err := e.SetFromList(ctx, "s", "l")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a", "b"}, getSet(t, ks, "s"))

	ks.Put(ctx, "l2", store.NewList(0))
	n, _ = e.SetFromList(ctx, "s", "l2")
	assert.Equal(t, 0, n)
	found, _, _ := ks.Get(ctx, "s")
	assert.False(t, found)
}

func TestUnique(t *testing.T) {
	for _, l := range []*store.List{
		store.NewList(0, "a", "b", "a", "c", "b"),
		store.NewLinkedList("a", "b", "a", "c", "b"),
	} {
		e, ks := newEngine()
		ks.Put(ctx, "l", l)

		r, err := e.Unique(ctx, "l", false)
		assert.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, r)

		r, _ = e.Unique(ctx, "l", true)
		assert.Equal(t, []string{"a", "c", "b"}, r)

		n, _ := e.UniqueStore(ctx, "u", "l", true)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"a", "c", "b"}, getList(t, ks, "u"))

		// Idempotent.
		r2, _ := e.Unique(ctx, "u", true)
		assert.Equal(t, []string{"a", "c", "b"}, r2)
		r2, _ = e.Unique(ctx, "u", false)
		assert.Equal(t, []string{"a", "c", "b"}, r2)
	}
}

func TestUniqueLongListSwitchesEncoding(t *testing.T) {
	e, ks := newEngine()
	l := store.NewList(0)
	for i := range 20 {
		l.PushTail(string(rune('a' + i%7)))
	}
	ks.Put(ctx, "l", l)
	n, _ := e.UniqueStore(ctx, "u", "l", false)
	assert.Equal(t, 7, n)
	_, v, _ := ks.Get(ctx, "u")
	assert.Equal(t, store.Linked, v.(*store.List).Encoding())
}

func TestForeachIntoSet(t *testing.T) {
	e, ks := newEngine()
	ks.Put(ctx, "users", store.NewList(0, "1", "2", "3", "4"))
	ks.Put(ctx, "tags_1", store.NewSet("go", "redis"))
	ks.Put(ctx, "tags_2", store.String("c"))
	ks.Put(ctx, "tags_3", store.NewList(0, "ignored"))

	n, err := e.ForeachListIntoSet(ctx, "all", "users", "tags_*")
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"c", "go", "redis"}, getSet(t, ks, "all"))

	ks.Put(ctx, "uset", store.NewSet("1", "2"))
	n, _ = e.ForeachSetIntoSet(ctx, "all2", "uset", "tags_*")
	assert.Equal(t, 3, n)

	// A constant pattern changes nothing.
	n, _ = e.ForeachSetIntoSet(ctx, "all", "uset", "constant")
	assert.Equal(t, 0, n)
	assert.Len(t, getSet(t, ks, "all"), 3)

	_, err = e.ForeachSetIntoSet(ctx, "x", "users", "tags_*")
	assert.Equal(t, meshin.WrongType, meshin.CodeOf(err))
}

func TestGroupSort(t *testing.T) {
	e, ks := newEngine()
	ks.Put(ctx, "groups", store.NewList(0, "g1", "g2", "g3"))
	ks.Put(ctx, "members_g1", store.NewList(0, "3", "1", "2"))
	ks.Put(ctx, "members_g2", store.NewSet("9", "7", "8"))
	ks.Put(ctx, "members_g3", store.String("skip"))

	n, err := e.GroupSort(ctx, "out", "groups", GroupSortRequest{
		KeyPattern: "members_*", SortPattern: "#", Offset: 0, Count: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"1", "2", "7", "8"}, getList(t, ks, "out"))

	n, _ = e.GroupSort(ctx, "out", "groups", GroupSortRequest{
		KeyPattern: "members_*", SortPattern: "nosort", Count: -1,
	})
	assert.Equal(t, 6, n)
	assert.Equal(t, []string{"3", "1", "2"}, getList(t, ks, "out")[:3])

	n, _ = e.GroupSort(ctx, "out", "groups", GroupSortRequest{
		KeyPattern: "members_*", SortPattern: "#", Count: 1, Descending: true,
	})
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"3", "9"}, getList(t, ks, "out"))
}

func TestGroupSum(t *testing.T) {
	e, ks := newEngine()
	ks.Put(ctx, "src", store.NewList(0, "a", "b"))
	ks.Put(ctx, "S_a", store.NewSet("x", "y"))
	ks.Put(ctx, "v_x", store.String("3"))
	ks.Put(ctx, "v_y", store.String("4"))

	n, err := e.GroupSum(ctx, "dst", "src", "S_*", []string{"v_*"})
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"7", "0"}, getList(t, ks, "dst"))

	ks.Put(ctx, "c_x", store.String("1"))
	ks.Put(ctx, "c_y", store.String("oops"))
	n, _ = e.GroupSum(ctx, "dst", "src", "S_*", []string{"v_*", "c_*"})
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"7", "1", "0", "0"}, getList(t, ks, "dst"))

	_, err = e.GroupSum(ctx, "dst", "src", "S_*", nil)
	assert.Equal(t, meshin.SyntaxError, meshin.CodeOf(err))
}

func TestRangeByScoreAndMember(t *testing.T) {
	e, ks := newEngine()
	z := store.NewZSet()
	z.Add("a", 1)
	z.Add("b", 1)
	z.Add("c", 1)
	z.Add("d", 2)
	ks.Put(ctx, "z", z)

	r, err := e.RangeByScoreAndMember(ctx, "z", store.ScoreRange{Min: 1, MinMember: "b", Max: 1, MaxMember: "c"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, r)

	n, _ := e.RangeByScoreAndMemberStore(ctx, "out", "z", store.ScoreRange{Min: math.Inf(-1), Max: math.Inf(1)})
	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"a", "b", "c", "d"}, getList(t, ks, "out"))

	n, _ = e.RangeByScoreAndMemberStore(ctx, "out", "z", store.ScoreRange{Min: 5, Max: 6})
	assert.Equal(t, 0, n)
	assert.Nil(t, getList(t, ks, "out"))

	r, err = e.RangeByScoreAndMember(ctx, "missing", store.ScoreRange{})
	assert.NoError(t, err)
	assert.Empty(t, r)
}

func TestWrongTypeDoesNotMutate(t *testing.T) {
	e, ks := newEngine()
	ks.Put(ctx, "s", store.String("x"))
	ks.Put(ctx, "dst", store.String("keep"))

	_, err := e.UniqueStore(ctx, "dst", "s", false)
	assert.ErrorIs(t, err, meshin.ErrWrongType)
	_, err = e.GroupSum(ctx, "dst", "s", "S_*", []string{"v_*"})
	assert.ErrorIs(t, err, meshin.ErrWrongType)
	_, err = e.RangeByScoreAndMemberStore(ctx, "dst", "s", store.ScoreRange{})
	assert.ErrorIs(t, err, meshin.ErrWrongType)

	_, v, _ := ks.Get(ctx, "dst")
	assert.Equal(t, store.String("keep"), v)
	assert.Equal(t, int64(0), ks.Dirty())
}

func TestExec(t *testing.T) {
	e, ks := newEngine()
	err := e.Exec(ctx, func(ctx context.Context, s store.Store) error {
		return s.Put(ctx, "k", store.String("v"))
	})
	assert.NoError(t, err)
	found, _, _ := ks.Get(ctx, "k")
	assert.True(t, found)
}
