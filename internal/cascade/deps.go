package cascade

import (
	"sort"

	"github.com/maruel/natural"
)

// Dependencies records which classes are layered on top of which.
// An edge base -> dependent means dependent was chained after base, so base
// is locked for direct edits. Empty dependent sets are never kept.
type Dependencies struct {
	dependents map[string]map[string]struct{}
}

// NewDependencies returns an empty dependency graph.
func NewDependencies() *Dependencies {
	return &Dependencies{dependents: make(map[string]map[string]struct{})}
}

// SetDependency records that dependent builds on base. Idempotent.
func (d *Dependencies) SetDependency(base, dependent string) {
	if base == "" || dependent == "" || base == dependent {
		return
	}
	set := d.dependents[base]
	if set == nil {
		set = make(map[string]struct{})
		d.dependents[base] = set
	}
	set[dependent] = struct{}{}
}

// RemoveDependency drops the edge base -> dependent. Idempotent.
func (d *Dependencies) RemoveDependency(base, dependent string) {
	set, ok := d.dependents[base]
	if !ok {
		return
	}
	delete(set, dependent)
	if len(set) == 0 {
		delete(d.dependents, base)
	}
}

// IsEditable reports whether nothing depends on id.
func (d *Dependencies) IsEditable(id string) bool {
	return len(d.dependents[id]) == 0
}

// DependentsOf returns the direct dependents of id in natural order.
func (d *Dependencies) DependentsOf(id string) []string {
	set := d.dependents[id]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for dep := range set {
		out = append(out, dep)
	}
	sort.Sort(natural.StringSlice(out))
	return out
}

// Apply adds and removes edges produced by DeriveAdjacency.
func (d *Dependencies) Apply(added, removed []Edge) {
	for _, e := range removed {
		d.RemoveDependency(e.Base, e.Dependent)
	}
	for _, e := range added {
		d.SetDependency(e.Base, e.Dependent)
	}
}

// Forget removes every edge that mentions id, on either side.
func (d *Dependencies) Forget(id string) {
	delete(d.dependents, id)
	for base := range d.dependents {
		d.RemoveDependency(base, id)
	}
}

// Edges returns every edge ordered by base, then dependent.
func (d *Dependencies) Edges() []Edge {
	bases := make([]string, 0, len(d.dependents))
	for b := range d.dependents {
		bases = append(bases, b)
	}
	sort.Sort(natural.StringSlice(bases))
	var out []Edge
	for _, b := range bases {
		for _, dep := range d.DependentsOf(b) {
			out = append(out, Edge{Base: b, Dependent: dep})
		}
	}
	return out
}

// Graph returns the graph as base -> sorted dependents.
func (d *Dependencies) Graph() map[string][]string {
	out := make(map[string][]string, len(d.dependents))
	for b := range d.dependents {
		out[b] = d.DependentsOf(b)
	}
	return out
}
