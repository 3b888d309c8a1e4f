package cascade

import (
	"slices"
)

// Edge is one dependency: Dependent was chained directly after Base.
type Edge struct {
	Base      string `json:"base" yaml:"base"`
	Dependent string `json:"dependent" yaml:"dependent"`
}

// Chain is the ordered list of classes applied to one element.
// Index 0 is the primary class; the last entry is the editable tail.
type Chain []string

// Tail returns the last class, or "" for an empty chain.
func (c Chain) Tail() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// Index returns the position of id, or -1.
func (c Chain) Index(id string) int {
	return slices.Index(c, id)
}

// Contains reports whether id is part of the chain.
func (c Chain) Contains(id string) bool {
	return slices.Contains(c, id)
}

// Adjacency returns the edges between consecutive entries.
func (c Chain) Adjacency() []Edge {
	if len(c) < 2 {
		return nil
	}
	out := make([]Edge, 0, len(c)-1)
	for i := 1; i < len(c); i++ {
		if c[i-1] == c[i] {
			continue
		}
		out = append(out, Edge{Base: c[i-1], Dependent: c[i]})
	}
	return out
}

// DeriveAdjacency compares the adjacency of two versions of a chain and
// returns the edges that appeared and the ones that went away.
func DeriveAdjacency(before, after Chain) (added, removed []Edge) {
	oldEdges := before.Adjacency()
	newEdges := after.Adjacency()
	for _, e := range newEdges {
		if !slices.Contains(oldEdges, e) {
			added = append(added, e)
		}
	}
	for _, e := range oldEdges {
		if !slices.Contains(newEdges, e) {
			removed = append(removed, e)
		}
	}
	return added, removed
}
