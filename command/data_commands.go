package command

import (
	"context"
	"slices"
	"strings"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/store"
)

func (d *Dispatcher) registerDataCommands() {
	d.register("PING", -1, pingCommand)
	d.register("SET", 3, setCommand)
	d.register("GET", 2, getCommand)
	d.register("DEL", -2, delCommand)
	d.register("EXISTS", -2, existsCommand)
	d.register("TYPE", 2, typeCommand)
	d.register("RPUSH", -3, pushCommand(false))
	d.register("LPUSH", -3, pushCommand(true))
	d.register("LRANGE", 4, lrangeCommand)
	d.register("SADD", -3, saddCommand)
	d.register("SMEMBERS", 2, smembersCommand)
	d.register("ZADD", -4, zaddCommand)
	d.register("ZRANGE", -4, zrangeCommand)
	d.register("HSET", -4, hsetCommand)
	d.register("HGET", 3, hgetCommand)
}

// lookupTyped returns key's value when it has type t, nil when missing.
func lookupTyped(ctx context.Context, s store.Store, key string, t store.Type) (store.Value, error) {
	found, v, err := s.Get(ctx, key)
	if err != nil || !found {
		return nil, err
	}
	if v.Type() != t {
		return nil, meshin.NewWrongTypeError(key)
	}
	return v, nil
}

// write stores v at key, signals the change and counts n dirty writes.
func write(ctx context.Context, s store.Store, key string, v store.Value, n int) error {
	if err := s.Put(ctx, key, v); err != nil {
		return err
	}
	s.SignalModified(ctx, key)
	s.IncrDirty(int64(n))
	return nil
}

func pingCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	switch len(args) {
	case 1:
		return Status("PONG"), nil
	case 2:
		return Bulk(args[1]), nil
	}
	return Reply{}, meshin.NewSyntaxError("wrong number of arguments for 'ping' command")
}

func setCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		return write(ctx, s, args[1], store.String(args[2]), 1)
	})
	return Status("OK"), err
}

func getCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	r := Nil()
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.StringType)
		if v != nil {
			r = Bulk(string(v.(store.String)))
		}
		return err
	})
	return r, err
}

func delCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	var n int64
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		for _, k := range args[1:] {
			ok, err := s.Delete(ctx, k)
			if err != nil {
				return err
			}
			if ok {
				n++
				s.SignalModified(ctx, k)
			}
		}
		s.IncrDirty(n)
		return nil
	})
	return Integer(n), err
}

func existsCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	var n int64
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		for _, k := range args[1:] {
			found, _, err := s.Get(ctx, k)
			if err != nil {
				return err
			}
			if found {
				n++
			}
		}
		return nil
	})
	return Integer(n), err
}

func typeCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	r := Status("none")
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		found, v, err := s.Get(ctx, args[1])
		if found {
			r = Status(v.Type().String())
		}
		return err
	})
	return r, err
}

func pushCommand(head bool) handler {
	return func(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
		var n int
		err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
			v, err := lookupTyped(ctx, s, args[1], store.ListType)
			if err != nil {
				return err
			}
			l := d.engine.NewList()
			if v != nil {
				l = v.(*store.List)
			}
			for _, e := range args[2:] {
				if head {
					l.PushHead(e)
				} else {
					l.PushTail(e)
				}
			}
			n = l.Len()
			return write(ctx, s, args[1], l, len(args)-2)
		})
		return Integer(int64(n)), err
	}
}

func lrangeCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	start, err := parseInt(args[2])
	if err != nil {
		return Reply{}, err
	}
	stop, err := parseInt(args[3])
	if err != nil {
		return Reply{}, err
	}
	r := Strings(nil)
	err = d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.ListType)
		if v != nil {
			r = Strings(v.(*store.List).Range(start, stop))
		}
		return err
	})
	return r, err
}

func saddCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	var added int
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.SetType)
		if err != nil {
			return err
		}
		set := store.NewSet()
		if v != nil {
			set = v.(*store.Set)
		}
		for _, m := range args[2:] {
			if set.Add(m) {
				added++
			}
		}
		return write(ctx, s, args[1], set, added)
	})
	return Integer(int64(added)), err
}

// SMEMBERS replies in byte order so output is stable across runs.
func smembersCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	r := Strings(nil)
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.SetType)
		if v != nil {
			r = Strings(slices.Sorted(v.(*store.Set).All()))
		}
		return err
	})
	return r, err
}

func zaddCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	if len(args)%2 != 0 {
		return Reply{}, meshin.NewSyntaxError("ZADD expects score member pairs")
	}
	scores := make([]float64, 0, (len(args)-2)/2)
	for i := 2; i < len(args); i += 2 {
		f, err := parseFloat(args[i])
		if err != nil {
			return Reply{}, err
		}
		scores = append(scores, f)
	}
	var added int
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.SortedSetType)
		if err != nil {
			return err
		}
		z := store.NewZSet()
		if v != nil {
			z = v.(*store.ZSet)
		}
		for i, score := range scores {
			if z.Add(args[3+2*i], score) {
				added++
			}
		}
		return write(ctx, s, args[1], z, len(scores))
	})
	return Integer(int64(added)), err
}

// ZRANGE key start stop [WITHSCORES]
func zrangeCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	if len(args) > 5 {
		return Reply{}, meshin.NewSyntaxError("wrong number of arguments for 'zrange' command")
	}
	withScores := false
	if len(args) == 5 {
		if !strings.EqualFold(args[4], "WITHSCORES") {
			return Reply{}, meshin.NewSyntaxError("unexpected ZRANGE argument '%s'", args[4])
		}
		withScores = true
	}
	start, err := parseInt(args[2])
	if err != nil {
		return Reply{}, err
	}
	stop, err := parseInt(args[3])
	if err != nil {
		return Reply{}, err
	}
	var out []string
	err = d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.SortedSetType)
		if v == nil {
			return err
		}
		z := v.(*store.ZSet)
		members := make([]string, 0, z.Len())
		scores := make([]float64, 0, z.Len())
		for sm := range z.All() {
			members = append(members, sm.Member)
			scores = append(scores, sm.Score)
		}
		from, to := indexRange(start, stop, len(members))
		for i := from; i <= to; i++ {
			out = append(out, members[i])
			if withScores {
				out = append(out, formatScore(scores[i]))
			}
		}
		return nil
	})
	return Strings(out), err
}

// indexRange clamps Redis style start/stop indexes; to < from when empty.
func indexRange(start, stop, n int) (int, int) {
	if start < 0 {
		start = max(n+start, 0)
	}
	if stop < 0 {
		stop = n + stop
	}
	return start, min(stop, n-1)
}

func hsetCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	if len(args)%2 != 0 {
		return Reply{}, meshin.NewSyntaxError("HSET expects field value pairs")
	}
	var added int
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.HashType)
		if err != nil {
			return err
		}
		h := store.NewHash()
		if v != nil {
			h = v.(*store.Hash)
		}
		for i := 2; i < len(args); i += 2 {
			if h.Set(args[i], args[i+1]) {
				added++
			}
		}
		return write(ctx, s, args[1], h, (len(args)-2)/2)
	})
	return Integer(int64(added)), err
}

func hgetCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	r := Nil()
	err := d.engine.Exec(ctx, func(ctx context.Context, s store.Store) error {
		v, err := lookupTyped(ctx, s, args[1], store.HashType)
		if v != nil {
			if f, ok := v.(*store.Hash).Field(args[2]); ok {
				r = Bulk(f)
			}
		}
		return err
	})
	return r, err
}
