package cascade

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/zap"
)

// Options configures a Document.
type Options struct {
	Breakpoints Breakpoints  // DefaultBreakpoints when empty
	Naming      *NamerConfig // DefaultNamerConfig when nil
	Logger      *zap.Logger  // zap.NewNop when nil
	CacheSize   int          // computed-style memo entries; 0 = default, < 0 disables
	Notify      func(Notice) // receives redirect and blocked-removal notices
}

// Notice kinds
const (
	NoticeRedirect = "redirect"
	NoticeBlocked  = "blocked"
)

// Notice tells the UI that an edit did not land where it was aimed.
type Notice struct {
	Kind       string
	SourceID   string   // class the caller targeted
	Target     string   // class the write landed on (redirects only)
	Dependents []string // classes that lock SourceID
	Message    string
}

// Document owns every piece of style state of one open document. It is not
// safe for concurrent use; callers serialize access.
type Document struct {
	log         *zap.Logger
	breakpoints Breakpoints
	registry    *Registry
	store       *Store
	deps        *Dependencies
	namer       *Namer
	resolver    *Resolver
	chains      map[string]Chain
	raw         []RawRule
	selection   Selection
	notify      func(Notice)
}

// New creates an empty document.
func New(opts Options) (*Document, error) {
	bps := opts.Breakpoints
	if len(bps) == 0 {
		bps = DefaultBreakpoints()
	}
	if err := bps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid breakpoints: %w", err)
	}
	naming := DefaultNamerConfig()
	if opts.Naming != nil {
		naming = *opts.Naming
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	size := opts.CacheSize
	if size == 0 {
		size = DefaultResolveCacheSize
	}

	store := NewStore()
	resolver, err := NewResolver(store, bps, size)
	if err != nil {
		return nil, err
	}
	return &Document{
		log:         log.Named("document"),
		breakpoints: slices.Clone(bps),
		registry:    NewRegistry(),
		store:       store,
		deps:        NewDependencies(),
		namer:       NewNamer(naming),
		resolver:    resolver,
		chains:      make(map[string]Chain),
		selection:   Selection{Breakpoint: bps.Base(), State: StateDefault},
		notify:      opts.Notify,
	}, nil
}

// Breakpoints returns the configured breakpoints.
func (d *Document) Breakpoints() Breakpoints {
	return slices.Clone(d.breakpoints)
}

// Selection returns the ambient breakpoint and state.
func (d *Document) Selection() Selection {
	return d.selection
}

// Select changes the ambient breakpoint and state. Empty fields keep their
// current value.
func (d *Document) Select(sel Selection) error {
	next := d.selection
	if sel.Breakpoint != "" {
		if _, ok := d.breakpoints.Find(sel.Breakpoint); !ok {
			return fmt.Errorf("select %q: %w", sel.Breakpoint, ErrUnknownBreakpoint)
		}
		next.Breakpoint = sel.Breakpoint
	}
	if sel.State != "" {
		st, ok := ParsePseudoState(string(sel.State))
		if !ok {
			return fmt.Errorf("select %q: %w", sel.State, ErrUnknownState)
		}
		next.State = st
	}
	d.selection = next
	return nil
}

// SetNotifier registers the receiver of notices, replacing any previous one.
func (d *Document) SetNotifier(fn func(Notice)) {
	d.notify = fn
}

// Namer exposes the auto-class namer so its configuration can be changed.
func (d *Document) Namer() *Namer {
	return d.namer
}

// scope fills empty breakpoint/state arguments from the selection and
// validates both.
func (d *Document) scope(breakpoint string, state PseudoState) (string, PseudoState, error) {
	if breakpoint == "" {
		breakpoint = d.selection.Breakpoint
	}
	if _, ok := d.breakpoints.Find(breakpoint); !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownBreakpoint, breakpoint)
	}
	if state == "" {
		state = d.selection.State
	}
	st, ok := ParsePseudoState(string(state))
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownState, state)
	}
	return breakpoint, st, nil
}

// Sources returns every style source in creation order.
func (d *Document) Sources() []StyleSource {
	return d.registry.Sources()
}

// Source returns one style source.
func (d *Document) Source(id string) (StyleSource, bool) {
	return d.registry.Get(id)
}

// CreateSource registers a local class with the given name.
func (d *Document) CreateSource(name string) (string, error) {
	id, err := d.registry.Create(KindLocal, name)
	if err != nil {
		return "", err
	}
	d.log.Debug("Source created", zap.String("id", id))
	return id, nil
}

// CreateClass registers a class with an auto-generated name for componentType.
func (d *Document) CreateClass(componentType string) (StyleSource, error) {
	gen, err := d.namer.Next(componentType, d.registry.Names(KindLocal))
	if err != nil {
		return StyleSource{}, err
	}
	id, err := d.registry.Create(KindLocal, gen.Name)
	if err != nil {
		return StyleSource{}, err
	}
	d.log.Debug("Class generated",
		zap.String("component", componentType),
		zap.String("id", id),
		zap.Int("index", gen.Index))
	src, _ := d.registry.Get(id)
	return src, nil
}

// RenameSource changes the emitted class name of a source.
func (d *Document) RenameSource(id, name string) error {
	if err := d.registry.Rename(id, name); err != nil {
		return err
	}
	d.log.Debug("Source renamed", zap.String("id", id), zap.String("name", SanitizeName(name)))
	return nil
}

// SetMeta replaces the compound effects of a source.
func (d *Document) SetMeta(id string, meta *Metadata) error {
	return d.registry.SetMeta(id, meta)
}

// DeleteSource removes a source and every declaration keyed to it. Chains and
// dependencies that mention it are left to the caller.
func (d *Document) DeleteSource(id string) error {
	if !d.registry.Remove(id) {
		return fmt.Errorf("delete %q: %w", id, ErrSourceNotFound)
	}
	n := d.store.DeleteSource(id)
	d.log.Debug("Source deleted", zap.String("id", id), zap.Int("declarations", n))
	return nil
}

// SetStyle upserts one declaration. An empty value removes it.
func (d *Document) SetStyle(id, breakpoint string, state PseudoState, property, value string) error {
	key, err := d.key(id, breakpoint, state, property)
	if err != nil {
		return err
	}
	if d.store.Set(key, strings.TrimSpace(value)) {
		d.log.Debug("Style set", zap.Stringer("key", key), zap.String("value", value))
	}
	return nil
}

// GetStyle returns the explicit value stored for one key.
func (d *Document) GetStyle(id, breakpoint string, state PseudoState, property string) (string, bool) {
	key, err := d.key(id, breakpoint, state, property)
	if err != nil {
		return "", false
	}
	return d.store.Get(key)
}

func (d *Document) key(id, breakpoint string, state PseudoState, property string) (StyleKey, error) {
	if !d.registry.Has(id) {
		return StyleKey{}, fmt.Errorf("%q: %w", id, ErrSourceNotFound)
	}
	bp, st, err := d.scope(breakpoint, state)
	if err != nil {
		return StyleKey{}, err
	}
	if strings.TrimSpace(property) == "" {
		return StyleKey{}, fmt.Errorf("%w: empty property", ErrInvalidKey)
	}
	return StyleKey{SourceID: id, Breakpoint: bp, State: st, Property: property}, nil
}

// ResetStyles removes every declaration of a source at one scope.
func (d *Document) ResetStyles(id, breakpoint string, state PseudoState) (int, error) {
	if !d.registry.Has(id) {
		return 0, fmt.Errorf("reset %q: %w", id, ErrSourceNotFound)
	}
	bp, st, err := d.scope(breakpoint, state)
	if err != nil {
		return 0, err
	}
	n := d.store.Reset(id, bp, st)
	d.log.Debug("Styles reset",
		zap.String("id", id),
		zap.String("breakpoint", bp),
		zap.String("state", string(st)),
		zap.Int("removed", n))
	return n, nil
}

// Declarations returns every stored key and value in the persisted flat form.
func (d *Document) Declarations() map[string]string {
	out := make(map[string]string, d.store.Len())
	for _, k := range d.store.Keys() {
		v, _ := d.store.Get(k)
		out[k.String()] = v
	}
	return out
}

// Version changes whenever a declaration changes.
func (d *Document) Version() uint64 {
	return d.store.Version()
}

// ComputedStyles flattens sourceIDs into one property map. Empty breakpoint
// or state take the ambient selection.
func (d *Document) ComputedStyles(sourceIDs []string, breakpoint string, state PseudoState) (map[string]string, error) {
	if breakpoint == "" {
		breakpoint = d.selection.Breakpoint
	}
	if state == "" {
		state = d.selection.State
	}
	return d.resolver.Resolve(sourceIDs, breakpoint, state)
}

// ElementStyles resolves the chain attached to an element.
func (d *Document) ElementStyles(elementID, breakpoint string, state PseudoState) (map[string]string, error) {
	return d.ComputedStyles(d.chains[elementID], breakpoint, state)
}

// IsEditable reports whether no class depends on id.
func (d *Document) IsEditable(id string) bool {
	return d.deps.IsEditable(id)
}

// DependentsOf lists the classes layered directly on id.
func (d *Document) DependentsOf(id string) []string {
	return d.deps.DependentsOf(id)
}

// Dependencies returns the dependency graph as base -> dependents.
func (d *Document) Dependencies() map[string][]string {
	return d.deps.Graph()
}

// Chain returns the classes attached to an element.
func (d *Document) Chain(elementID string) Chain {
	return slices.Clone(d.chains[elementID])
}

// Elements returns every element id that has a chain, in natural order.
func (d *Document) Elements() []string {
	out := make([]string, 0, len(d.chains))
	for id := range d.chains {
		out = append(out, id)
	}
	sort.Sort(natural.StringSlice(out))
	return out
}

// UpdateChain replaces an element's chain and re-derives the dependency
// edges that changed. An edge removed here is kept if another element's
// chain still has the same adjacent pair.
func (d *Document) UpdateChain(elementID string, next Chain) (added, removed []Edge, err error) {
	for _, id := range next {
		if !d.registry.Has(id) {
			return nil, nil, fmt.Errorf("chain of %q: %q: %w", elementID, id, ErrSourceNotFound)
		}
	}
	prev := d.chains[elementID]
	added, removed = DeriveAdjacency(prev, next)
	if len(next) == 0 {
		delete(d.chains, elementID)
	} else {
		d.chains[elementID] = slices.Clone(next)
	}
	removed = slices.DeleteFunc(removed, d.edgeInUse)
	d.deps.Apply(added, removed)
	if len(added) > 0 || len(removed) > 0 {
		d.log.Debug("Chain updated",
			zap.String("element", elementID),
			zap.Strings("chain", next),
			zap.Int("added", len(added)),
			zap.Int("removed", len(removed)))
	}
	return added, removed, nil
}

func (d *Document) edgeInUse(e Edge) bool {
	for _, c := range d.chains {
		if slices.Contains(c.Adjacency(), e) {
			return true
		}
	}
	return false
}

// AttachClass appends a class to an element's chain.
func (d *Document) AttachClass(elementID, id string) (Chain, error) {
	chain := d.chains[elementID]
	if chain.Contains(id) {
		return slices.Clone(chain), nil
	}
	next := append(slices.Clone(chain), id)
	if _, _, err := d.UpdateChain(elementID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// DetachClass removes a class from an element's chain. It is rejected with a
// *BlockedRemovalError while other classes depend on it.
func (d *Document) DetachClass(elementID, id string) (Chain, error) {
	chain := d.chains[elementID]
	idx := chain.Index(id)
	if idx < 0 {
		return nil, fmt.Errorf("detach %q from %q: %w", id, elementID, ErrNotInChain)
	}
	if deps := d.deps.DependentsOf(id); len(deps) > 0 {
		err := &BlockedRemovalError{ID: id, Dependents: deps}
		d.log.Warn("Removal blocked", zap.String("id", id), zap.Strings("dependents", deps))
		d.emit(Notice{Kind: NoticeBlocked, SourceID: id, Dependents: deps, Message: err.Error()})
		return slices.Clone(chain), err
	}
	next := slices.Delete(slices.Clone(chain), idx, idx+1)
	if _, _, err := d.UpdateChain(elementID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveElement drops an element's chain and the edges only it contributed.
func (d *Document) RemoveElement(elementID string) {
	_, _, _ = d.UpdateChain(elementID, nil)
}

// WriteRequest is a style edit aimed at a class in an element's chain.
type WriteRequest struct {
	ElementID  string
	Target     string // defaults to the chain tail
	Breakpoint string // defaults to the selection
	State      PseudoState
	Property   string
	Value      string // empty removes the declaration
}

// WriteResult reports where a write landed.
type WriteResult struct {
	Key         StyleKey
	Redirected  bool
	Requested   string
	ActiveIndex int // chain index the editor selection must follow
}

// WriteStyle applies the trailing-edit rule: a write aimed at a class that
// others depend on lands on the chain tail instead and a notice is emitted.
func (d *Document) WriteStyle(req WriteRequest) (WriteResult, error) {
	chain := d.chains[req.ElementID]
	if len(chain) == 0 {
		return WriteResult{}, fmt.Errorf("element %q has no classes: %w", req.ElementID, ErrNotInChain)
	}
	target := req.Target
	if target == "" {
		target = chain.Tail()
	}
	idx := chain.Index(target)
	if idx < 0 {
		return WriteResult{}, fmt.Errorf("write to %q on %q: %w", target, req.ElementID, ErrNotInChain)
	}

	res := WriteResult{Requested: target, ActiveIndex: idx}
	if idx != len(chain)-1 && !d.deps.IsEditable(target) {
		deps := d.deps.DependentsOf(target)
		tail := chain.Tail()
		res.Redirected = true
		res.ActiveIndex = len(chain) - 1
		msg := fmt.Sprintf("%q is locked by %d dependent class(es); edit applied to %q", target, len(deps), tail)
		d.log.Warn("Write redirected",
			zap.String("requested", target),
			zap.String("target", tail),
			zap.Strings("dependents", deps))
		d.emit(Notice{Kind: NoticeRedirect, SourceID: target, Target: tail, Dependents: deps, Message: msg})
		target = tail
	}

	key, err := d.key(target, req.Breakpoint, req.State, req.Property)
	if err != nil {
		return WriteResult{}, err
	}
	res.Key = key
	if d.store.Set(key, strings.TrimSpace(req.Value)) {
		d.log.Debug("Style written", zap.Stringer("key", key), zap.String("value", req.Value))
	}
	return res, nil
}

func (d *Document) emit(n Notice) {
	if d.notify != nil {
		d.notify(n)
	}
}

// Rules compiles the document into cascade-ordered stylesheet rules.
func (d *Document) Rules() []Rule {
	return CompileRules(d.registry, d.store, d.breakpoints)
}

// RawRules returns the imported rules the engine keeps verbatim.
func (d *Document) RawRules() []RawRule {
	return slices.Clone(d.raw)
}

// ClearRawRules drops every raw override.
func (d *Document) ClearRawRules() {
	d.raw = nil
}

// WriteStylesheet writes the compiled stylesheet followed by raw overrides.
func (d *Document) WriteStylesheet(w io.Writer) error {
	rules := d.Rules()
	d.log.Debug("Stylesheet compiled",
		zap.Int("rules", len(rules)),
		zap.Int("raw", len(d.raw)),
		zap.Uint64("version", d.store.Version()))
	if err := WriteRules(w, rules); err != nil {
		return err
	}
	return WriteRaw(w, d.raw)
}

// Compile returns the stylesheet text.
func (d *Document) Compile() string {
	var b strings.Builder
	_ = d.WriteStylesheet(&b)
	return b.String()
}

// ApplyStats summarizes an ApplyImport call.
type ApplyStats struct {
	SourcesCreated int
	Declarations   int
	RawRules       int
}

// ApplyImport writes imported declarations into the document, creating a
// source for every class name that is not registered yet.
func (d *Document) ApplyImport(res *ImportResult) (ApplyStats, error) {
	var stats ApplyStats
	for _, decl := range res.Declarations {
		if _, ok := d.breakpoints.Find(decl.Breakpoint); !ok {
			return stats, fmt.Errorf("import %q: %w: %q", decl.Class, ErrUnknownBreakpoint, decl.Breakpoint)
		}
	}
	ids := make(map[string]string)
	for _, class := range res.Classes() {
		if src, ok := d.registry.ByName(class); ok {
			ids[class] = src.ID
			continue
		}
		id, err := d.registry.Create(KindLocal, class)
		if err != nil {
			return stats, fmt.Errorf("import class %q: %w", class, err)
		}
		ids[class] = id
		stats.SourcesCreated++
	}
	for _, decl := range res.Declarations {
		key := StyleKey{SourceID: ids[decl.Class], Breakpoint: decl.Breakpoint, State: decl.State, Property: decl.Property}
		d.store.Set(key, decl.Value)
		stats.Declarations++
	}
	d.raw = append(d.raw, res.RawRules...)
	stats.RawRules = len(res.RawRules)
	d.log.Debug("Import applied",
		zap.Int("sources", stats.SourcesCreated),
		zap.Int("declarations", stats.Declarations),
		zap.Int("raw", stats.RawRules))
	return stats, nil
}
