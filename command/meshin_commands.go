package command

import (
	"context"
	"strings"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/ops"
	"github.com/sharedcode/meshin/store"
)

func (d *Dispatcher) registerMeshinCommands() {
	d.register("SORT", -2, sortCommand)
	d.register("L2SSTORE", 3, l2sstoreCommand)
	d.register("LLUNIQUE", 2, uniqueCommand(false, false))
	d.register("LRUNIQUE", 2, uniqueCommand(true, false))
	d.register("LLUNIQUESTORE", 3, uniqueCommand(false, true))
	d.register("LRUNIQUESTORE", 3, uniqueCommand(true, true))
	d.register("LFOREACHSSTORE", 4, foreachCommand(false))
	d.register("SFOREACHSSTORE", 4, foreachCommand(true))
	d.register("GROUPSORT", -7, groupsortCommand)
	d.register("GROUPSUM", -5, groupsumCommand)
	d.register("ZRANGEBYSCORENMEMBER", 6, zrangeByScoreAndMemberCommand(false))
	d.register("ZRANGEBYSCORENMEMBERSTORE", 7, zrangeByScoreAndMemberCommand(true))
}

// SORT key [BY pattern] [LIMIT offset count] [GET pattern ...] [ASC|DESC] [ALPHA] [STORE dst]
func sortCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	req := ops.SortRequest{}
	var dst string
	storeResult := false
	for i := 2; i < len(args); i++ {
		left := len(args) - i - 1
		switch opt := strings.ToUpper(args[i]); {
		case opt == "ASC":
			req.Descending = false
		case opt == "DESC":
			req.Descending = true
		case opt == "ALPHA":
			req.Alpha = true
		case opt == "LIMIT" && left >= 2:
			offset, err := parseInt(args[i+1])
			if err != nil {
				return Reply{}, err
			}
			count, err := parseInt(args[i+2])
			if err != nil {
				return Reply{}, err
			}
			req.Limit = &ops.Limit{Offset: offset, Count: count}
			i += 2
		case opt == "BY" && left >= 1:
			req.By = args[i+1]
			i++
		case opt == "GET" && left >= 1:
			req.Get = append(req.Get, args[i+1])
			i++
		case opt == "STORE" && left >= 1:
			dst, storeResult = args[i+1], true
			i++
		default:
			return Reply{}, meshin.NewSyntaxError("unexpected SORT argument '%s'", args[i])
		}
	}
	if storeResult {
		n, err := d.engine.SortStore(ctx, args[1], dst, req)
		return Integer(int64(n)), err
	}
	r, err := d.engine.Sort(ctx, args[1], req)
	if err != nil {
		return Reply{}, err
	}
	out := Reply{Kind: ArrayReply, Array: make([]Reply, len(r))}
	for i, b := range r {
		if b.Nil {
			out.Array[i] = Nil()
		} else {
			out.Array[i] = Bulk(b.Value)
		}
	}
	return out, nil
}

// L2SSTORE dst src
func l2sstoreCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	n, err := d.engine.SetFromList(ctx, args[1], args[2])
	return Integer(int64(n)), err
}

// LLUNIQUE src, LRUNIQUE src, LLUNIQUESTORE dst src, LRUNIQUESTORE dst src
func uniqueCommand(reverse, save bool) handler {
	return func(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
		if save {
			n, err := d.engine.UniqueStore(ctx, args[1], args[2], reverse)
			return Integer(int64(n)), err
		}
		r, err := d.engine.Unique(ctx, args[1], reverse)
		if err != nil {
			return Reply{}, err
		}
		return Strings(r), nil
	}
}

// LFOREACHSSTORE dst src pattern, SFOREACHSSTORE dst src pattern
func foreachCommand(fromSet bool) handler {
	return func(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
		f := d.engine.ForeachListIntoSet
		if fromSet {
			f = d.engine.ForeachSetIntoSet
		}
		n, err := f(ctx, args[1], args[2], args[3])
		return Integer(int64(n)), err
	}
}

// GROUPSORT dst src keypattern sortpattern offset count [ASC|DESC] [ALPHA]
func groupsortCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	if len(args) > 9 {
		return Reply{}, meshin.NewSyntaxError("wrong number of arguments for 'groupsort' command")
	}
	offset, err := parseInt(args[5])
	if err != nil {
		return Reply{}, err
	}
	count, err := parseInt(args[6])
	if err != nil {
		return Reply{}, err
	}
	req := ops.GroupSortRequest{
		KeyPattern:  args[3],
		SortPattern: args[4],
		Offset:      offset,
		Count:       count,
	}
	for i, a := range args[7:] {
		switch opt := strings.ToUpper(a); {
		case opt == "ALPHA" && i == len(args)-8:
			req.Alpha = true
		case opt == "DESC" && i == 0:
			req.Descending = true
		case opt == "ASC" && i == 0:
		default:
			return Reply{}, meshin.NewSyntaxError("wrong argument '%s' for GROUPSORT command", a)
		}
	}
	n, err := d.engine.GroupSort(ctx, args[1], args[2], req)
	return Integer(int64(n)), err
}

// GROUPSUM dst src keypattern pattern1 ... patternN
func groupsumCommand(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
	n, err := d.engine.GroupSum(ctx, args[1], args[2], args[3], args[4:])
	return Integer(int64(n)), err
}

// ZRANGEBYSCORENMEMBER key min max minmember maxmember
// ZRANGEBYSCORENMEMBERSTORE dst key min max minmember maxmember
func zrangeByScoreAndMemberCommand(save bool) handler {
	return func(ctx context.Context, d *Dispatcher, args []string) (Reply, error) {
		argv := args
		if save {
			argv = args[1:]
		}
		var r store.ScoreRange
		var err error
		if r.Min, r.MinExclusive, err = parseScoreBound(argv[2]); err != nil {
			return Reply{}, err
		}
		if r.Max, r.MaxExclusive, err = parseScoreBound(argv[3]); err != nil {
			return Reply{}, err
		}
		r.MinMember, r.MaxMember = argv[4], argv[5]
		if save {
			n, err := d.engine.RangeByScoreAndMemberStore(ctx, args[1], argv[1], r)
			return Integer(int64(n)), err
		}
		members, err := d.engine.RangeByScoreAndMember(ctx, argv[1], r)
		if err != nil {
			return Reply{}, err
		}
		return Strings(members), nil
	}
}
