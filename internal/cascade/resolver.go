package cascade

import (
	"fmt"
	"maps"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultResolveCacheSize bounds the number of memoized computed maps.
const DefaultResolveCacheSize = 256

type resolveKey struct {
	version    uint64
	sources    string
	breakpoint string
	state      PseudoState
}

// Resolver flattens a chain of sources into one computed style map.
// Results are memoized by store version, so a cached entry is never stale.
type Resolver struct {
	store       *Store
	breakpoints Breakpoints
	cache       *lru.Cache[resolveKey, map[string]string]
}

// NewResolver returns a resolver over store. size <= 0 disables memoization.
func NewResolver(store *Store, breakpoints Breakpoints, size int) (*Resolver, error) {
	r := &Resolver{store: store, breakpoints: breakpoints}
	if size > 0 {
		c, err := lru.New[resolveKey, map[string]string](size)
		if err != nil {
			return nil, fmt.Errorf("create resolve cache: %w", err)
		}
		r.cache = c
	}
	return r, nil
}

// Resolve computes the effective value of every property for sourceIDs
// (applied in order, later wins) at breakpoint and state. The breakpoint
// cascade runs from the base breakpoint to the target and the state cascade
// is default, then state. Values that are empty, initial or inherit do not
// override. Unknown source ids contribute nothing.
//
// The returned map belongs to the caller.
func (r *Resolver) Resolve(sourceIDs []string, breakpoint string, state PseudoState) (map[string]string, error) {
	bps, err := r.breakpoints.Cascade(breakpoint)
	if err != nil {
		return nil, err
	}
	st, ok := ParsePseudoState(string(state))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	state = st

	key := resolveKey{
		version:    r.store.Version(),
		sources:    strings.Join(sourceIDs, "\x00"),
		breakpoint: breakpoint,
		state:      state,
	}
	if r.cache != nil {
		if cached, ok := r.cache.Get(key); ok {
			return maps.Clone(cached), nil
		}
	}

	states := stateCascade(state)
	out := make(map[string]string)
	for _, id := range sourceIDs {
		if !r.store.HasDeclarations(id) {
			continue
		}
		for _, bp := range bps {
			for _, st := range states {
				for prop, v := range r.store.Scope(id, bp, st) {
					if isExplicit(v) {
						out[prop] = v
					}
				}
			}
		}
	}

	if r.cache != nil {
		r.cache.Add(key, maps.Clone(out))
	}
	return out, nil
}

// Purge drops every memoized result.
func (r *Resolver) Purge() {
	if r.cache != nil {
		r.cache.Purge()
	}
}
