package redis

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sharedcode/meshin/store"
)

func zsetFromScores(zs []redis.Z) *store.ZSet {
	z := store.NewZSet()
	for _, e := range zs {
		m, ok := e.Member.(string)
		if !ok {
			m = fmt.Sprint(e.Member)
		}
		z.Add(m, e.Score)
	}
	return z
}

func hashFromMap(m map[string]string) *store.Hash {
	h := store.NewHash()
	for f, v := range m {
		h.Set(f, v)
	}
	return h
}

func listArgs(l *store.List) []interface{} {
	args := make([]interface{}, 0, l.Len())
	for e := range l.All() {
		args = append(args, e)
	}
	return args
}

func setArgs(s *store.Set) []interface{} {
	args := make([]interface{}, 0, s.Len())
	for m := range s.All() {
		args = append(args, m)
	}
	return args
}

func zsetArgs(z *store.ZSet) []redis.Z {
	zs := make([]redis.Z, 0, z.Len())
	for sm := range z.All() {
		zs = append(zs, redis.Z{Score: sm.Score, Member: sm.Member})
	}
	return zs
}

func hashArgs(h *store.Hash) []interface{} {
	args := make([]interface{}, 0, 2*h.Len())
	for f, v := range h.All() {
		args = append(args, f, v)
	}
	return args
}
