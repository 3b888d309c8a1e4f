// Package cascade implements the style cascade and class-dependency engine:
// a registry of class-like style sources, a declaration store keyed by
// (source, breakpoint, pseudo-state, property), a resolver that flattens a
// chain of sources into one computed style map, an auto-class namer, and a
// stylesheet compiler.
package cascade

import (
	"fmt"
	"strings"
)

// PseudoState is the interaction state a declaration applies to.
type PseudoState string

// Supported pseudo-states. StateDefault is always the base layer.
const (
	StateDefault PseudoState = "default"
	StateHover   PseudoState = "hover"
	StateFocus   PseudoState = "focus"
	StateActive  PseudoState = "active"
	StateVisited PseudoState = "visited"
)

// States lists every pseudo-state in emission order.
var States = []PseudoState{StateDefault, StateHover, StateFocus, StateActive, StateVisited}

// ParsePseudoState maps a state name (with or without a leading colon) to a PseudoState.
func ParsePseudoState(s string) (PseudoState, bool) {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ":"))
	if s == "" {
		return StateDefault, true
	}
	for _, st := range States {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// stateCascade returns the states layered for a target state, base first.
func stateCascade(target PseudoState) []PseudoState {
	if target == StateDefault || target == "" {
		return []PseudoState{StateDefault}
	}
	return []PseudoState{StateDefault, target}
}

// SourceKind classifies a style source.
type SourceKind string

// KindLocal is the only kind currently produced by the editor.
const KindLocal SourceKind = "local"

// StyleSource is a named, reusable container of declarations (a class).
type StyleSource struct {
	ID   string     `json:"id" yaml:"id"`                         // immutable, unique
	Kind SourceKind `json:"kind" yaml:"kind"`                     // "local"
	Name string     `json:"name" yaml:"name"`                     // emitted class token
	Meta *Metadata  `json:"meta,omitempty" yaml:"meta,omitempty"` // compound effects
}

// StyleKey addresses one declared value.
type StyleKey struct {
	SourceID   string
	Breakpoint string
	State      PseudoState
	Property   string
}

// String renders the key in its persisted "id:bp:state:prop" form.
func (k StyleKey) String() string {
	return k.SourceID + ":" + k.Breakpoint + ":" + string(k.State) + ":" + k.Property
}

// ParseStyleKey parses the persisted "id:bp:state:prop" form.
// The property part may itself contain colons (custom properties never do,
// but the split is limited to four parts to stay lossless).
func ParseStyleKey(s string) (StyleKey, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) != 4 {
		return StyleKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	state, ok := ParsePseudoState(parts[2])
	if !ok || parts[0] == "" || parts[1] == "" || parts[2] == "" || parts[3] == "" {
		return StyleKey{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return StyleKey{
		SourceID:   parts[0],
		Breakpoint: parts[1],
		State:      state,
		Property:   parts[3],
	}, nil
}

// Selection is the ambient editing context used when a caller leaves the
// breakpoint or state unspecified.
type Selection struct {
	Breakpoint string
	State      PseudoState
}

// isExplicit reports whether a stored value counts as an author-set value.
// Empty, "initial" and "inherit" mean "fall through to the cascade".
func isExplicit(v string) bool {
	switch strings.TrimSpace(v) {
	case "", "initial", "inherit":
		return false
	}
	return true
}
