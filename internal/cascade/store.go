package cascade

import (
	"maps"
	"sort"

	"github.com/maruel/natural"
)

// scope is the (breakpoint, state) part of a key.
type scope struct {
	breakpoint string
	state      PseudoState
}

// Store holds explicit declarations indexed by source, then scope, then property.
//
// Property maps are never mutated after they are published: every write
// replaces the scope's map with a modified copy and bumps Version, so a map
// returned by Scope stays a consistent snapshot.
type Store struct {
	bySource map[string]map[scope]map[string]string
	count    int
	version  uint64
}

// NewStore returns an empty declaration store.
func NewStore() *Store {
	return &Store{bySource: make(map[string]map[scope]map[string]string)}
}

// Version increases on every mutation.
func (s *Store) Version() uint64 {
	return s.version
}

// Len returns the number of stored declarations.
func (s *Store) Len() int {
	return s.count
}

// Set upserts a value. An empty value removes the key instead, keeping the
// invariant that a present key is an explicit author-set value.
// It reports whether the store changed.
func (s *Store) Set(key StyleKey, value string) bool {
	if value == "" {
		return s.Delete(key)
	}
	sc := scope{key.Breakpoint, key.State}
	scopes := s.bySource[key.SourceID]
	if scopes == nil {
		scopes = make(map[scope]map[string]string)
		s.bySource[key.SourceID] = scopes
	}
	old := scopes[sc]
	if cur, ok := old[key.Property]; ok && cur == value {
		return false
	}
	next := make(map[string]string, len(old)+1)
	maps.Copy(next, old)
	if _, existed := old[key.Property]; !existed {
		s.count++
	}
	next[key.Property] = value
	scopes[sc] = next
	s.version++
	return true
}

// Get returns the explicit value stored under key.
func (s *Store) Get(key StyleKey) (string, bool) {
	v, ok := s.bySource[key.SourceID][scope{key.Breakpoint, key.State}][key.Property]
	return v, ok
}

// Delete removes one key and reports whether it existed.
func (s *Store) Delete(key StyleKey) bool {
	scopes := s.bySource[key.SourceID]
	sc := scope{key.Breakpoint, key.State}
	old, ok := scopes[sc]
	if !ok {
		return false
	}
	if _, ok := old[key.Property]; !ok {
		return false
	}
	if len(old) == 1 {
		delete(scopes, sc)
		if len(scopes) == 0 {
			delete(s.bySource, key.SourceID)
		}
	} else {
		next := make(map[string]string, len(old)-1)
		for p, v := range old {
			if p != key.Property {
				next[p] = v
			}
		}
		scopes[sc] = next
	}
	s.count--
	s.version++
	return true
}

// Reset removes every declaration of a source at one (breakpoint, state)
// scope and returns how many were removed.
func (s *Store) Reset(sourceID, breakpoint string, state PseudoState) int {
	scopes := s.bySource[sourceID]
	sc := scope{breakpoint, state}
	n := len(scopes[sc])
	if n == 0 {
		return 0
	}
	delete(scopes, sc)
	if len(scopes) == 0 {
		delete(s.bySource, sourceID)
	}
	s.count -= n
	s.version++
	return n
}

// DeleteSource removes every declaration keyed to a source.
func (s *Store) DeleteSource(sourceID string) int {
	scopes, ok := s.bySource[sourceID]
	if !ok {
		return 0
	}
	n := 0
	for _, props := range scopes {
		n += len(props)
	}
	delete(s.bySource, sourceID)
	s.count -= n
	s.version++
	return n
}

// Scope returns the declarations of a source at one scope. The returned map
// must be treated as read-only.
func (s *Store) Scope(sourceID, breakpoint string, state PseudoState) map[string]string {
	return s.bySource[sourceID][scope{breakpoint, state}]
}

// HasDeclarations reports whether anything is stored for a source.
func (s *Store) HasDeclarations(sourceID string) bool {
	return len(s.bySource[sourceID]) > 0
}

// Keys returns every stored key, ordered by source (natural order),
// breakpoint, state and property.
func (s *Store) Keys() []StyleKey {
	keys := make([]StyleKey, 0, s.count)
	for id, scopes := range s.bySource {
		for sc, props := range scopes {
			for p := range props {
				keys = append(keys, StyleKey{SourceID: id, Breakpoint: sc.breakpoint, State: sc.state, Property: p})
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.SourceID != b.SourceID {
			return natural.Less(a.SourceID, b.SourceID)
		}
		if a.Breakpoint != b.Breakpoint {
			return a.Breakpoint < b.Breakpoint
		}
		if a.State != b.State {
			return a.State < b.State
		}
		return a.Property < b.Property
	})
	return keys
}
