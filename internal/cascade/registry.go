package cascade

import (
	"fmt"
	"strconv"
	"strings"
)

// fallbackName is used when a requested name sanitizes to nothing.
const fallbackName = "style"

// Registry owns the style sources of one document, in creation order.
type Registry struct {
	byID  map[string]*StyleSource
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*StyleSource)}
}

// Create registers a new source and returns its id. The id is the sanitized
// name, suffixed with -2, -3, ... when it collides with an existing id or name.
func (r *Registry) Create(kind SourceKind, name string) (string, error) {
	if kind == "" {
		kind = KindLocal
	}
	if kind != KindLocal {
		return "", fmt.Errorf("create %q: unsupported source kind %q", name, kind)
	}
	base := SanitizeName(name)
	if base == "" {
		base = fallbackName
	}
	id := base
	for n := 2; r.taken(id, ""); n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	r.byID[id] = &StyleSource{ID: id, Kind: kind, Name: id}
	r.order = append(r.order, id)
	return id, nil
}

// Rename changes the emitted class name of a source. The id never changes.
func (r *Registry) Rename(id, newName string) error {
	src, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("rename %q: %w", id, ErrSourceNotFound)
	}
	name := SanitizeName(newName)
	if name == "" {
		return fmt.Errorf("rename %q to %q: %w", id, newName, ErrInvalidName)
	}
	if r.taken(name, id) {
		return fmt.Errorf("rename %q to %q: %w", id, name, ErrNameTaken)
	}
	src.Name = name
	return nil
}

// taken reports whether token is used as an id or name by any source other
// than except. Comparison is case-insensitive.
func (r *Registry) taken(token, except string) bool {
	for _, id := range r.order {
		if id == except {
			continue
		}
		src := r.byID[id]
		if strings.EqualFold(src.ID, token) || strings.EqualFold(src.Name, token) {
			return true
		}
	}
	return false
}

// Get returns the source with the given id.
func (r *Registry) Get(id string) (StyleSource, bool) {
	src, ok := r.byID[id]
	if !ok {
		return StyleSource{}, false
	}
	return *src, true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// ByName looks a source up by its emitted class name (case-insensitive).
func (r *Registry) ByName(name string) (StyleSource, bool) {
	for _, id := range r.order {
		if src := r.byID[id]; strings.EqualFold(src.Name, name) {
			return *src, true
		}
	}
	return StyleSource{}, false
}

// SetMeta replaces the compound-effect metadata of a source.
func (r *Registry) SetMeta(id string, meta *Metadata) error {
	src, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("set metadata on %q: %w", id, ErrSourceNotFound)
	}
	src.Meta = meta
	return nil
}

// Remove unregisters a source and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Sources returns every source in creation order.
func (r *Registry) Sources() []StyleSource {
	out := make([]StyleSource, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out
}

// Names returns the class names of every source of the given kind
// (all kinds when kind is empty), in creation order.
func (r *Registry) Names(kind SourceKind) []string {
	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		src := r.byID[id]
		if kind == "" || src.Kind == kind {
			out = append(out, src.Name)
		}
	}
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	return len(r.order)
}

// restore inserts a source verbatim; used when loading snapshots.
func (r *Registry) restore(src StyleSource) error {
	if src.ID == "" {
		return fmt.Errorf("restore source: %w", ErrInvalidName)
	}
	if _, ok := r.byID[src.ID]; ok {
		return fmt.Errorf("restore source %q: %w", src.ID, ErrNameTaken)
	}
	if src.Kind == "" {
		src.Kind = KindLocal
	}
	if src.Name == "" {
		src.Name = src.ID
	}
	r.byID[src.ID] = &src
	r.order = append(r.order, src.ID)
	return nil
}
