package command

import (
	"encoding/json"
	"strconv"
)

// Kind tags a Reply.
type Kind int

const (
	StatusReply Kind = iota
	IntegerReply
	BulkReply
	NilReply
	ArrayReply
)

// Reply is a command result in the shape of the Redis protocol replies.
type Reply struct {
	Kind  Kind
	Str   string
	Int   int64
	Array []Reply
}

// Status returns a status reply such as OK or PONG.
func Status(s string) Reply { return Reply{Kind: StatusReply, Str: s} }

// Integer returns an integer reply.
func Integer(n int64) Reply { return Reply{Kind: IntegerReply, Int: n} }

// Bulk returns a bulk string reply.
func Bulk(s string) Reply { return Reply{Kind: BulkReply, Str: s} }

// Nil returns the nil reply.
func Nil() Reply { return Reply{Kind: NilReply} }

// Strings returns an array of bulk strings.
func Strings(ss []string) Reply {
	r := Reply{Kind: ArrayReply, Array: make([]Reply, len(ss))}
	for i, s := range ss {
		r.Array[i] = Bulk(s)
	}
	return r
}

// MarshalJSON renders statuses and bulks as strings, integers as numbers, nil as null
// and arrays as arrays.
func (r Reply) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case StatusReply, BulkReply:
		return json.Marshal(r.Str)
	case IntegerReply:
		return []byte(strconv.FormatInt(r.Int, 10)), nil
	case NilReply:
		return []byte("null"), nil
	}
	if r.Array == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Array)
}

// String renders the reply the way redis-cli prints it, for logs and the CLI.
func (r Reply) String() string {
	switch r.Kind {
	case StatusReply, BulkReply:
		return r.Str
	case IntegerReply:
		return "(integer) " + strconv.FormatInt(r.Int, 10)
	case NilReply:
		return "(nil)"
	}
	if len(r.Array) == 0 {
		return "(empty array)"
	}
	s := ""
	for i, e := range r.Array {
		if i > 0 {
			s += "\n"
		}
		s += strconv.Itoa(i+1) + ") " + e.String()
	}
	return s
}
