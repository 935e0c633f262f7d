package store

import (
	"cmp"
	"iter"

	"github.com/sharedcode/meshin/btree"
)

// ScoreMember is a sorted set entry. Entries order by score, then by member bytes.
type ScoreMember struct {
	Score  float64
	Member string
}

// Compare orders x against y by score, then member.
func (x ScoreMember) Compare(y ScoreMember) int {
	if c := cmp.Compare(x.Score, y.Score); c != 0 {
		return c
	}
	return cmp.Compare(x.Member, y.Member)
}

// ZSet is a sorted set: a member to score dictionary plus an ordered index.
type ZSet struct {
	dict  map[string]float64
	index *btree.Btree[ScoreMember, struct{}]
}

// NewZSet returns an empty sorted set.
func NewZSet() *ZSet {
	return &ZSet{
		dict:  map[string]float64{},
		index: btree.New[ScoreMember, struct{}](btree.DefaultSlotLength, ScoreMember.Compare),
	}
}

// Type implements Value.
func (*ZSet) Type() Type { return SortedSetType }

// Add sets member's score and reports whether member was new.
func (z *ZSet) Add(member string, score float64) bool {
	old, ok := z.dict[member]
	if ok {
		if old == score {
			return false
		}
		z.index.Remove(ScoreMember{Score: old, Member: member})
	}
	z.dict[member] = score
	z.index.Add(ScoreMember{Score: score, Member: member}, struct{}{})
	return !ok
}

// Remove deletes member and reports whether it was present.
func (z *ZSet) Remove(member string) bool {
	score, ok := z.dict[member]
	if !ok {
		return false
	}
	delete(z.dict, member)
	z.index.Remove(ScoreMember{Score: score, Member: member})
	return true
}

// Score returns member's score.
func (z *ZSet) Score(member string) (float64, bool) {
	s, ok := z.dict[member]
	return s, ok
}

// Len returns the number of members.
func (z *ZSet) Len() int { return len(z.dict) }

// All iterates entries in index order.
func (z *ZSet) All() iter.Seq[ScoreMember] {
	return func(yield func(ScoreMember) bool) {
		for sm := range z.index.All() {
			if !yield(sm) {
				return
			}
		}
	}
}

// ScoreRange selects entries between two (score, member) bounds.
//
// The lower bound includes entries with (score, member) >= (Min, MinMember); when
// MinExclusive is set it includes entries with score > Min, ignoring MinMember.
// The upper bound includes entries with score < Max, or score == Max and member <= MaxMember;
// when MaxExclusive is set only score < Max qualifies.
type ScoreRange struct {
	Min, Max                   float64
	MinMember, MaxMember       string
	MinExclusive, MaxExclusive bool
}

func (r ScoreRange) belowMin(sm ScoreMember) bool {
	if r.MinExclusive {
		return sm.Score <= r.Min
	}
	return sm.Compare(ScoreMember{Score: r.Min, Member: r.MinMember}) < 0
}

func (r ScoreRange) aboveMax(sm ScoreMember) bool {
	if r.MaxExclusive {
		return sm.Score >= r.Max
	}
	return sm.Score > r.Max || (sm.Score == r.Max && sm.Member > r.MaxMember)
}

// Range iterates the entries inside r in index order. It seeks to the lower bound and
// walks forward until the upper bound fails.
func (z *ZSet) Range(r ScoreRange) iter.Seq[ScoreMember] {
	return func(yield func(ScoreMember) bool) {
		c := btree.NewCursor(z.index)
		for ok := c.FindFirst(r.belowMin); ok; ok = c.Next() {
			sm := c.GetCurrentKey()
			if r.aboveMax(sm) || !yield(sm) {
				return
			}
		}
	}
}
