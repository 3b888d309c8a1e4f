// Package cascade is a style cascade and class-dependency engine for visual
// site builders.
//
// A Document holds class-like style sources, their declarations keyed by
// (source, breakpoint, pseudo-state, property), the chains of classes
// attached to elements, and the dependency graph those chains imply.
//
// # Editing
//
//	doc, err := cascade.New(cascade.Options{})
//	btn, err := doc.CreateClass("ButtonPrimitive") // button-1
//	err = doc.SetStyle(btn.ID, "base", cascade.StateHover, "color", "white")
//
// # Resolving
//
// ComputedStyles flattens an ordered list of sources for one breakpoint and
// state. Later sources win, narrower breakpoints win, and a pseudo-state is
// layered over the default state.
//
// # Stylesheets
//
// Compile emits one rule per source, breakpoint and state in cascade order.
// Import reads a stylesheet back; rules the engine cannot model are kept as
// raw overrides and re-emitted verbatim.
//
// # CLI Tool
//
//	go install github.com/yacobolo/cascade/cmd/cascade@latest
package cascade

import (
	"fmt"
	"os"

	engine "github.com/yacobolo/cascade/internal/cascade"
)

type (
	Document            = engine.Document
	Options             = engine.Options
	Notice              = engine.Notice
	Selection           = engine.Selection
	Breakpoint          = engine.Breakpoint
	Breakpoints         = engine.Breakpoints
	NamerConfig         = engine.NamerConfig
	PseudoState         = engine.PseudoState
	StyleSource         = engine.StyleSource
	StyleKey            = engine.StyleKey
	Metadata            = engine.Metadata
	Chain               = engine.Chain
	Edge                = engine.Edge
	WriteRequest        = engine.WriteRequest
	WriteResult         = engine.WriteResult
	BlockedRemovalError = engine.BlockedRemovalError
	Snapshot            = engine.Snapshot
	ImportResult        = engine.ImportResult
	RawRule             = engine.RawRule
	Issue               = engine.Issue
	IssuePos            = engine.IssuePos
	ValidateResult      = engine.ValidateResult
	PropertyCategory    = engine.PropertyCategory
	CategorizedProperty = engine.CategorizedProperty
)

// Categories lists the property categories in display order.
var Categories = engine.Categories

// Pseudo-states
const (
	StateDefault = engine.StateDefault
	StateHover   = engine.StateHover
	StateFocus   = engine.StateFocus
	StateActive  = engine.StateActive
	StateVisited = engine.StateVisited
)

// Errors
var (
	ErrInvalidName       = engine.ErrInvalidName
	ErrNameTaken         = engine.ErrNameTaken
	ErrSourceNotFound    = engine.ErrSourceNotFound
	ErrUnknownBreakpoint = engine.ErrUnknownBreakpoint
	ErrUnknownState      = engine.ErrUnknownState
	ErrNotInChain        = engine.ErrNotInChain
	ErrInvalidKey        = engine.ErrInvalidKey
)

// New creates an empty document.
func New(opts Options) (*Document, error) {
	return engine.New(opts)
}

// DefaultBreakpoints returns the desktop-first breakpoint set.
func DefaultBreakpoints() Breakpoints {
	return engine.DefaultBreakpoints()
}

// DefaultNamerConfig returns the auto-class naming defaults (button-1, ...).
func DefaultNamerConfig() NamerConfig {
	return engine.DefaultNamerConfig()
}

// Import parses a stylesheet against the given breakpoints.
func Import(css string, breakpoints Breakpoints) *ImportResult {
	return engine.Import(css, breakpoints)
}

// CategorizeProperties groups a computed style map for display.
func CategorizeProperties(props map[string]string) map[PropertyCategory][]CategorizedProperty {
	return engine.CategorizeProperties(props)
}

// ParsePseudoState parses a state name such as "hover".
func ParsePseudoState(s string) (PseudoState, bool) {
	return engine.ParsePseudoState(s)
}

// ParseStyleKey parses a persisted "id:bp:state:prop" key.
func ParseStyleKey(s string) (StyleKey, error) {
	return engine.ParseStyleKey(s)
}

// FromSnapshot rebuilds a document from its persisted form.
func FromSnapshot(s *Snapshot, opts Options) (*Document, error) {
	return engine.FromSnapshot(s, opts)
}

// LoadSnapshotFile reads a JSON or YAML snapshot (chosen by extension) and
// rebuilds the document it describes.
func LoadSnapshotFile(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	snap, err := engine.DecodeSnapshot(f, engine.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, err := engine.FromSnapshot(snap, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// SaveSnapshotFile writes the document as a JSON or YAML snapshot, chosen by
// the extension of path.
func SaveSnapshotFile(path string, doc *Document) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	return engine.EncodeSnapshot(f, doc.Snapshot(), engine.FormatFromPath(path))
}
