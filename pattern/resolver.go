package pattern

import (
	"context"
	log "log/slog"

	"github.com/sharedcode/meshin/store"
)

// Resolver looks patterns up in a store.
type Resolver struct {
	store        store.Store
	maxKeyLength int
}

// NewResolver returns a resolver over s. Keys or fields longer than maxKeyLength never resolve.
func NewResolver(s store.Store, maxKeyLength int) *Resolver {
	return &Resolver{store: s, maxKeyLength: maxKeyLength}
}

// Resolve maps subst through p.
//
// Identity returns subst as a string value. Invalid patterns and oversize keys resolve to
// nothing. An Indirect pattern without a field returns the value at the built key; with
// requireString set, non-string values resolve to nothing. With a field, the key must hold
// a hash and the field value is returned as a string. Only backend failures are errors.
func (r *Resolver) Resolve(ctx context.Context, p *Pattern, subst string, requireString bool) (bool, store.Value, error) {
	switch p.Kind() {
	case Identity:
		return true, store.String(subst), nil
	case Invalid:
		return false, nil, nil
	}
	key, field, ok := p.Build(subst, r.maxKeyLength)
	if !ok {
		log.Debug("lookup key too long", "pattern", p.String(), "subst_len", len(subst))
		return false, nil, nil
	}
	if field == "" {
		log.Debug("lookup", "pattern", p.String(), "subst", subst, "key", key)
		found, v, err := r.store.Get(ctx, key)
		if err != nil || !found {
			return false, nil, err
		}
		if requireString && v.Type() != store.StringType {
			return false, nil, nil
		}
		return true, v, nil
	}

	log.Debug("lookup", "pattern", p.String(), "subst", subst, "key", key, "field", field)
	if fr, ok := r.store.(store.HashFieldReader); ok {
		s, found, _, err := fr.GetHashField(ctx, key, field)
		if err != nil || !found {
			return false, nil, err
		}
		return true, store.String(s), nil
	}
	found, v, err := r.store.Get(ctx, key)
	if err != nil || !found {
		return false, nil, err
	}
	h, ok := v.(*store.Hash)
	if !ok {
		return false, nil, nil
	}
	s, found := h.Field(field)
	if !found {
		return false, nil, nil
	}
	return true, store.String(s), nil
}

// ResolveString resolves p with requireString set and returns the string form.
func (r *Resolver) ResolveString(ctx context.Context, p *Pattern, subst string) (string, bool, error) {
	found, v, err := r.Resolve(ctx, p, subst, true)
	if err != nil || !found {
		return "", false, err
	}
	return string(v.(store.String)), true, nil
}
