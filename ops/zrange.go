package ops

import (
	"context"

	"github.com/sharedcode/meshin/store"
)

func (e *Engine) rangeByScoreAndMember(ctx context.Context, key string, r store.ScoreRange) ([]string, error) {
	v, err := e.lookup(ctx, key, store.SortedSetType)
	if v == nil {
		return nil, err
	}
	var out []string
	for sm := range v.(*store.ZSet).Range(r) {
		out = append(out, sm.Member)
	}
	return out, nil
}

// RangeByScoreAndMember returns, in index order, the members of the sorted set at key
// that fall inside r.
func (e *Engine) RangeByScoreAndMember(ctx context.Context, key string, r store.ScoreRange) ([]string, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.rangeByScoreAndMember(ctx, key, r)
}

// RangeByScoreAndMemberStore replaces dst with the RangeByScoreAndMember result as a list
// and returns its length.
func (e *Engine) RangeByScoreAndMemberStore(ctx context.Context, dst, key string, r store.ScoreRange) (int, error) {
	e.mux.Lock()
	defer e.mux.Unlock()
	members, err := e.rangeByScoreAndMember(ctx, key, r)
	if err != nil {
		return 0, err
	}
	return e.replace(ctx, dst, e.NewList(members...), len(members))
}
