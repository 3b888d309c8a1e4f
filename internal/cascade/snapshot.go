package cascade

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// Snapshot is the persisted form of a Document. Declarations keep the
// four-part "id:bp:state:prop" key.
type Snapshot struct {
	Version      int                 `json:"version" yaml:"version"`
	Breakpoints  Breakpoints         `json:"breakpoints" yaml:"breakpoints"`
	Naming       *NamerConfig        `json:"naming,omitempty" yaml:"naming,omitempty"`
	Sources      []StyleSource       `json:"sources" yaml:"sources"`
	Styles       map[string]string   `json:"styles" yaml:"styles"`
	Dependencies map[string][]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Chains       map[string]Chain    `json:"chains,omitempty" yaml:"chains,omitempty"`
	Counters     map[string]int      `json:"counters,omitempty" yaml:"counters,omitempty"`
	RawRules     []RawRule           `json:"rawRules,omitempty" yaml:"raw-rules,omitempty"`
}

// Snapshot captures the complete state of the document.
func (d *Document) Snapshot() *Snapshot {
	chains := make(map[string]Chain, len(d.chains))
	for id, c := range d.chains {
		chains[id] = append(Chain(nil), c...)
	}
	naming := d.namer.Config()
	return &Snapshot{
		Version:      SnapshotVersion,
		Breakpoints:  d.Breakpoints(),
		Naming:       &naming,
		Sources:      d.registry.Sources(),
		Styles:       d.Declarations(),
		Dependencies: d.deps.Graph(),
		Chains:       chains,
		Counters:     d.namer.Counters(),
		RawRules:     d.RawRules(),
	}
}

// FromSnapshot rebuilds a document. The snapshot's breakpoints and naming
// configuration replace those in opts.
func FromSnapshot(s *Snapshot, opts Options) (*Document, error) {
	if s.Version > SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}
	if len(s.Breakpoints) > 0 {
		opts.Breakpoints = s.Breakpoints
	}
	if s.Naming != nil {
		opts.Naming = s.Naming
	}
	d, err := New(opts)
	if err != nil {
		return nil, err
	}
	for _, src := range s.Sources {
		if err := d.registry.restore(src); err != nil {
			return nil, err
		}
	}
	for raw, value := range s.Styles {
		key, err := ParseStyleKey(raw)
		if err != nil {
			return nil, err
		}
		if !d.registry.Has(key.SourceID) {
			return nil, fmt.Errorf("style %q: %w", raw, ErrSourceNotFound)
		}
		if _, ok := d.breakpoints.Find(key.Breakpoint); !ok {
			return nil, fmt.Errorf("style %q: %w", raw, ErrUnknownBreakpoint)
		}
		d.store.Set(key, value)
	}
	for base, deps := range s.Dependencies {
		for _, dep := range deps {
			d.deps.SetDependency(base, dep)
		}
	}
	for id, c := range s.Chains {
		if len(c) > 0 {
			d.chains[id] = append(Chain(nil), c...)
		}
	}
	d.namer.restoreCounters(s.Counters)
	d.raw = append(d.raw, s.RawRules...)
	d.log.Debug("Snapshot loaded",
		zap.Int("sources", len(s.Sources)),
		zap.Int("styles", len(s.Styles)),
		zap.Int("chains", len(s.Chains)))
	return d, nil
}

// Format is a snapshot encoding.
type Format string

// Snapshot encodings
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks an encoding from a file extension; JSON is the default.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}

// EncodeSnapshot writes s in the given format.
func EncodeSnapshot(w io.Writer, s *Snapshot, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode yaml snapshot: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode json snapshot: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown snapshot format %q", format)
}

// DecodeSnapshot reads a snapshot in the given format.
func DecodeSnapshot(r io.Reader, format Format) (*Snapshot, error) {
	var s Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&s); err != nil {
			return nil, fmt.Errorf("decode json snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
	if s.Styles == nil {
		s.Styles = make(map[string]string)
	}
	return &s, nil
}
