// Package pattern compiles lookup patterns and resolves them against a store.
//
// A pattern is "#" (the element itself), a string without '*' (a constant that never
// resolves), or a template with one substitution marker, optionally dereferencing a hash
// field after "->":
//
//	weight_*            key weight_<elem>
//	user_*->age         field age of hash user_<elem>
//	scores->user_*      field user_<elem> of hash scores
package pattern

import (
	"fmt"
	log "log/slog"
	"strings"
)

// Kind classifies a compiled pattern.
type Kind int

const (
	// Invalid patterns hold no '*'. They resolve to nothing and disable sorting.
	Invalid Kind = iota
	// Identity is "#": the substitution value itself.
	Identity
	// Indirect patterns substitute the element into a key (and maybe a hash field).
	Indirect
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Identity:
		return "identity"
	case Indirect:
		return "indirect"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pattern is a compiled pattern. Marker positions are fixed at compile time.
type Pattern struct {
	source string
	kind   Kind
	// star is the index of the first '*'.
	star int
	// arrow is the index of the first "->" at or after index 1, -1 when absent.
	arrow int
}

// Compile classifies s and records its marker positions. It never fails; strings without
// '*' compile to an Invalid pattern.
func Compile(s string) *Pattern {
	p := &Pattern{source: s, star: -1, arrow: -1}
	switch {
	case s == "#":
		p.kind = Identity
	case !strings.Contains(s, "*"):
		p.kind = Invalid
	default:
		p.kind = Indirect
		p.star = strings.IndexByte(s, '*')
		if len(s) > 1 {
			if i := strings.Index(s[1:], "->"); i >= 0 {
				p.arrow = i + 1
			}
		}
	}
	log.Debug("pattern compiled", "pattern", s, "kind", p.kind, "star", p.star, "arrow", p.arrow)
	return p
}

// Kind returns the pattern classification.
func (p *Pattern) Kind() Kind { return p.kind }

// String returns the source text.
func (p *Pattern) String() string { return p.source }

// HasField reports whether the pattern dereferences a hash field.
func (p *Pattern) HasField() bool { return p.arrow >= 0 }

// Build substitutes subst into an Indirect pattern and returns the key and hash field.
// field is empty for plain key lookups. ok is false when the pattern is not Indirect or
// when the key or the field would exceed maxLen bytes; lengths are checked before any
// allocation.
func (p *Pattern) Build(subst string, maxLen int) (key, field string, ok bool) {
	if p.kind != Indirect {
		return "", "", false
	}
	s := p.source
	switch {
	case p.arrow < 0:
		if len(s)-1+len(subst) > maxLen {
			return "", "", false
		}
		return concat(s[:p.star], subst, s[p.star+1:]), "", true
	case p.arrow > p.star:
		if p.star+len(subst)+(p.arrow-p.star-1) > maxLen || len(s)-p.arrow-2 > maxLen {
			return "", "", false
		}
		return concat(s[:p.star], subst, s[p.star+1:p.arrow]), s[p.arrow+2:], true
	default:
		if p.arrow > maxLen || len(s)-p.arrow-3+len(subst) > maxLen {
			return "", "", false
		}
		return s[:p.arrow], concat(s[p.arrow+2:p.star], subst, s[p.star+1:]), true
	}
}

func concat(prefix, subst, suffix string) string {
	var sb strings.Builder
	sb.Grow(len(prefix) + len(subst) + len(suffix))
	sb.WriteString(prefix)
	sb.WriteString(subst)
	sb.WriteString(suffix)
	return sb.String()
}
