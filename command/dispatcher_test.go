package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/ops"
	"github.com/sharedcode/meshin/store/inmemory"
)

var ctx = context.Background()

func newDispatcher() *Dispatcher {
	return NewDispatcher(ops.NewEngine(inmemory.NewKeyspace(), meshin.DefaultOptions()))
}

func run(t *testing.T, d *Dispatcher, args ...string) Reply {
	t.Helper()
	r, err := d.Execute(ctx, args)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return r
}

func strs(r Reply) []string {
	out := make([]string, len(r.Array))
	for i, e := range r.Array {
		out[i] = e.Str
	}
	return out
}

func TestDataCommands(t *testing.T) {
	d := newDispatcher()
	assert.Equal(t, Status("PONG"), run(t, d, "ping"))
	assert.Equal(t, Status("OK"), run(t, d, "SET", "k", "v"))
	assert.Equal(t, Bulk("v"), run(t, d, "GET", "k"))
	assert.Equal(t, Nil(), run(t, d, "GET", "nope"))
	assert.Equal(t, Integer(3), run(t, d, "RPUSH", "l", "a", "b", "c"))
	assert.Equal(t, Integer(4), run(t, d, "LPUSH", "l", "z"))
	assert.Equal(t, []string{"z", "a", "b", "c"}, strs(run(t, d, "LRANGE", "l", "0", "-1")))
	assert.Equal(t, Integer(2), run(t, d, "SADD", "s", "x", "y", "x"))
	assert.Equal(t, []string{"x", "y"}, strs(run(t, d, "SMEMBERS", "s")))
	assert.Equal(t, Integer(2), run(t, d, "ZADD", "z", "2", "b", "1", "a"))
	assert.Equal(t, []string{"a", "1", "b", "2"}, strs(run(t, d, "ZRANGE", "z", "0", "-1", "WITHSCORES")))
	assert.Equal(t, Integer(1), run(t, d, "HSET", "h", "f", "1"))
	assert.Equal(t, Bulk("1"), run(t, d, "HGET", "h", "f"))
	assert.Equal(t, Status("zset"), run(t, d, "TYPE", "z"))
	assert.Equal(t, Status("none"), run(t, d, "TYPE", "none"))
	assert.Equal(t, Integer(2), run(t, d, "EXISTS", "k", "l", "nope"))
	assert.Equal(t, Integer(2), run(t, d, "DEL", "k", "l", "nope"))
	assert.Equal(t, Integer(0), run(t, d, "EXISTS", "k"))
}

func TestMeshinCommands(t *testing.T) {
	d := newDispatcher()
	run(t, d, "RPUSH", "ids", "1", "2", "3", "2")
	run(t, d, "SET", "w_1", "30")
	run(t, d, "SET", "w_2", "10")
	run(t, d, "SET", "w_3", "20")
	run(t, d, "HSET", "u_3", "name", "carol")

	assert.Equal(t, []string{"2", "2", "3", "1"}, strs(run(t, d, "SORT", "ids", "BY", "w_*")))
	r := run(t, d, "SORT", "ids", "BY", "w_*", "LIMIT", "2", "1", "GET", "#", "GET", "u_*->name", "GET", "u_*->zip")
	assert.Equal(t, []Reply{Bulk("3"), Bulk("carol"), Nil()}, r.Array)
	assert.Equal(t, Integer(4), run(t, d, "SORT", "ids", "DESC", "STORE", "sorted"))
	assert.Equal(t, []string{"3", "2", "2", "1"}, strs(run(t, d, "LRANGE", "sorted", "0", "-1")))

	assert.Equal(t, []string{"1", "2", "3"}, strs(run(t, d, "LLUNIQUE", "ids")))
	assert.Equal(t, []string{"1", "3", "2"}, strs(run(t, d, "LRUNIQUE", "ids")))
	assert.Equal(t, Integer(3), run(t, d, "LRUNIQUESTORE", "u", "ids"))
	assert.Equal(t, Integer(3), run(t, d, "L2SSTORE", "idset", "ids"))

	run(t, d, "SADD", "f_1", "a", "b")
	run(t, d, "SET", "f_2", "c")
	assert.Equal(t, Integer(3), run(t, d, "LFOREACHSSTORE", "fs", "ids", "f_*"))
	assert.Equal(t, Integer(3), run(t, d, "SFOREACHSSTORE", "fs2", "idset", "f_*"))

	run(t, d, "RPUSH", "groups", "g")
	run(t, d, "RPUSH", "m_g", "b", "a", "c")
	assert.Equal(t, Integer(2), run(t, d, "GROUPSORT", "gs", "groups", "m_*", "#", "0", "2", "DESC", "ALPHA"))
	assert.Equal(t, []string{"c", "b"}, strs(run(t, d, "LRANGE", "gs", "0", "-1")))

	run(t, d, "RPUSH", "src", "a", "b")
	run(t, d, "SADD", "S_a", "x", "y")
	run(t, d, "SET", "v_x", "3")
	run(t, d, "SET", "v_y", "4")
	assert.Equal(t, Integer(2), run(t, d, "GROUPSUM", "dst", "src", "S_*", "v_*"))
	assert.Equal(t, []string{"7", "0"}, strs(run(t, d, "LRANGE", "dst", "0", "-1")))

	run(t, d, "ZADD", "z", "1", "a", "1", "b", "1", "c", "2", "d")
	assert.Equal(t, []string{"b", "c"}, strs(run(t, d, "ZRANGEBYSCORENMEMBER", "z", "1", "1", "b", "c")))
	assert.Equal(t, []string{"d"}, strs(run(t, d, "ZRANGEBYSCORENMEMBER", "z", "(1", "+inf", "", "")))
	assert.Equal(t, Integer(3), run(t, d, "ZRANGEBYSCORENMEMBERSTORE", "zr", "z", "-inf", "(2", "", ""))
	assert.Equal(t, Integer(0), run(t, d, "ZRANGEBYSCORENMEMBERSTORE", "zr", "z", "5", "6", "", ""))
	assert.Equal(t, Integer(0), run(t, d, "EXISTS", "zr"))
}

func TestCommandErrors(t *testing.T) {
	d := newDispatcher()
	run(t, d, "SET", "k", "v")

	tests := []struct {
		args []string
		code meshin.ErrorCode
	}{
		{[]string{}, meshin.SyntaxError},
		{[]string{"NOPE"}, meshin.SyntaxError},
		{[]string{"GET"}, meshin.SyntaxError},
		{[]string{"SORT", "k", "LIMIT", "0"}, meshin.SyntaxError},
		{[]string{"SORT", "k", "LIMIT", "x", "1"}, meshin.NotAnInteger},
		{[]string{"SORT", "k"}, meshin.WrongType},
		{[]string{"LLUNIQUE", "k"}, meshin.WrongType},
		{[]string{"GROUPSORT", "d", "s", "k_*", "#", "0", "1", "ALPHA", "DESC"}, meshin.SyntaxError},
		{[]string{"GROUPSORT", "d", "s", "k_*", "#", "a", "1"}, meshin.NotAnInteger},
		{[]string{"ZRANGEBYSCORENMEMBER", "z", "x", "1", "a", "b"}, meshin.NotAFloat},
		{[]string{"ZADD", "z", "nan", "m"}, meshin.NotAFloat},
		{[]string{"ZADD", "z", "1"}, meshin.SyntaxError},
	}
	for _, tt := range tests {
		_, err := d.Execute(ctx, tt.args)
		assert.Error(t, err, "%v", tt.args)
		assert.Equal(t, tt.code, meshin.CodeOf(err), "%v: %v", tt.args, err)
	}

	_, err := d.Execute(ctx, []string{"RPUSH", "k", "x"})
	assert.True(t, errors.Is(err, meshin.ErrWrongType))
}

func TestReplyJSON(t *testing.T) {
	r := Reply{Kind: ArrayReply, Array: []Reply{Bulk("a"), Nil(), Integer(3), Strings(nil)}}
	ba, err := json.Marshal(map[string]Reply{"result": r})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"result":["a",null,3,[]]}`, string(ba))
	assert.Equal(t, "1) a\n2) (nil)\n3) (integer) 3\n4) (empty array)", r.String())
}

func TestSortStoreEmptyDestination(t *testing.T) {
	d := newDispatcher()
	run(t, d, "RPUSH", "ids", "3", "1", "2")
	assert.Equal(t, Integer(3), run(t, d, "SORT", "ids", "STORE", ""))
	assert.Equal(t, []string{"1", "2", "3"}, strs(run(t, d, "LRANGE", "", "0", "-1")))
}

func TestSortLimitHugeCount(t *testing.T) {
	d := newDispatcher()
	run(t, d, "RPUSH", "ids", "5", "4", "3", "2", "1")
	assert.Equal(t, []string{"3", "4", "5"}, strs(run(t, d, "SORT", "ids", "LIMIT", "2", "9223372036854775807")))
	run(t, d, "RPUSH", "groups", "g")
	run(t, d, "RPUSH", "m_g", "c", "a", "b")
	assert.Equal(t, Integer(2), run(t, d, "GROUPSORT", "gs", "groups", "m_*", "#", "1", "9223372036854775807", "ALPHA"))
	assert.Equal(t, []string{"b", "c"}, strs(run(t, d, "LRANGE", "gs", "0", "-1")))
}
