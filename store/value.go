package store

import (
	"fmt"
	"iter"
	"maps"
)

// Type tags the kind of value held by a key.
type Type int

const (
	StringType Type = iota
	ListType
	SetType
	SortedSetType
	HashType
)

// String returns the name reported by the TYPE command.
func (t Type) String() string {
	switch t {
	case StringType:
		return "string"
	case ListType:
		return "list"
	case SetType:
		return "set"
	case SortedSetType:
		return "zset"
	case HashType:
		return "hash"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Value is a typed value held by a key: String, *List, *Set, *ZSet or *Hash.
// Values read from a Store are shared with the store. Callers treat them as read-only
// unless they write the mutated value back with Put while holding the engine lock.
type Value interface {
	Type() Type
}

// String is a string value.
type String string

// Type implements Value.
func (String) Type() Type { return StringType }

// Set is an unordered collection of unique strings.
type Set struct {
	members map[string]struct{}
}

// NewSet returns a set holding members.
func NewSet(members ...string) *Set {
	s := &Set{members: make(map[string]struct{}, len(members))}
	for _, m := range members {
		s.members[m] = struct{}{}
	}
	return s
}

// Type implements Value.
func (*Set) Type() Type { return SetType }

// Add inserts member and reports whether it was new.
func (s *Set) Add(member string) bool {
	if _, ok := s.members[member]; ok {
		return false
	}
	s.members[member] = struct{}{}
	return true
}

// Contains reports whether member is in the set.
func (s *Set) Contains(member string) bool {
	_, ok := s.members[member]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int { return len(s.members) }

// All iterates the members in the set's native (unspecified) order.
func (s *Set) All() iter.Seq[string] {
	return maps.Keys(s.members)
}

// Hash maps field names to string values.
type Hash struct {
	fields map[string]string
}

// NewHash returns an empty hash.
func NewHash() *Hash {
	return &Hash{fields: map[string]string{}}
}

// Type implements Value.
func (*Hash) Type() Type { return HashType }

// Set assigns value to field and reports whether the field was new.
func (h *Hash) Set(field, value string) bool {
	_, ok := h.fields[field]
	h.fields[field] = value
	return !ok
}

// Field returns the value of field.
func (h *Hash) Field(field string) (string, bool) {
	v, ok := h.fields[field]
	return v, ok
}

// Len returns the number of fields.
func (h *Hash) Len() int { return len(h.fields) }

// All iterates field/value pairs.
func (h *Hash) All() iter.Seq2[string, string] {
	return maps.All(h.fields)
}
