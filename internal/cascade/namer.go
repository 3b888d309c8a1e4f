package cascade

import (
	"fmt"
	"strconv"
)

// NamerConfig controls how auto-generated class names look.
// Changing it only affects names generated afterwards.
type NamerConfig struct {
	Separator  string            `json:"separator" yaml:"separator" koanf:"separator"`
	Padding    int               `json:"padding" yaml:"padding" koanf:"padding"`
	StartIndex int               `json:"startIndex" yaml:"start-index" koanf:"start-index"`
	NoneFirst  bool              `json:"noneFirst" yaml:"none-first" koanf:"none-first"`
	Aliases    map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty" koanf:"aliases"`
}

// DefaultNamerConfig yields button-1, button-2, ...
func DefaultNamerConfig() NamerConfig {
	return NamerConfig{Separator: "-", StartIndex: 1}
}

// Generated describes one generated name.
type Generated struct {
	Name     string
	Base     string
	Index    int
	HasIndex bool // false when NoneFirst produced the bare base
}

// Namer issues sequential class names per component base. Counters are
// seeded by scanning existing names the first time a base is seen and never
// move backwards, so an index is not reissued after its class is deleted.
type Namer struct {
	cfg      NamerConfig
	counters map[string]int
}

// NewNamer returns a namer with empty counters.
func NewNamer(cfg NamerConfig) *Namer {
	if cfg.StartIndex < 0 {
		cfg.StartIndex = 0
	}
	return &Namer{cfg: cfg, counters: make(map[string]int)}
}

// Config returns the active configuration.
func (n *Namer) Config() NamerConfig {
	return n.cfg
}

// SetConfig replaces the configuration; existing counters are kept.
func (n *Namer) SetConfig(cfg NamerConfig) {
	if cfg.StartIndex < 0 {
		cfg.StartIndex = 0
	}
	n.cfg = cfg
}

// Next returns the next free name for componentType given the class names
// already in use, and advances the counter for its base.
func (n *Namer) Next(componentType string, existing []string) (Generated, error) {
	base := NormalizeComponentType(componentType, n.cfg.Aliases)
	if base == "" {
		return Generated{}, fmt.Errorf("component type %q: %w", componentType, ErrInvalidName)
	}

	bareTaken := false
	scanMax := -1
	for _, name := range existing {
		if name == base {
			bareTaken = true
			continue
		}
		if p, ok := parseIndexedName(name, base, n.cfg.Separator); ok && p.index > scanMax {
			scanMax = p.index
		}
	}

	next := n.cfg.StartIndex
	if scanMax >= 0 && scanMax+1 > next {
		next = scanMax + 1
	}
	if counter, seen := n.counters[base]; seen && counter > next {
		next = counter
	}
	if n.cfg.NoneFirst && !bareTaken {
		// The bare name is handed out whenever it is free; numbered names
		// continue from the counter.
		n.counters[base] = next
		return Generated{Name: base, Base: base}, nil
	}

	inUse := make(map[string]bool, len(existing))
	for _, name := range existing {
		inUse[name] = true
	}
	name := n.format(base, next)
	for inUse[name] {
		next++
		name = n.format(base, next)
	}
	n.counters[base] = next + 1
	return Generated{Name: name, Base: base, Index: next, HasIndex: true}, nil
}

func (n *Namer) format(base string, index int) string {
	digits := strconv.Itoa(index)
	for len(digits) < n.cfg.Padding {
		digits = "0" + digits
	}
	return base + n.cfg.Separator + digits
}

// Counters returns a copy of the per-base counters.
func (n *Namer) Counters() map[string]int {
	out := make(map[string]int, len(n.counters))
	for k, v := range n.counters {
		out[k] = v
	}
	return out
}

// restoreCounters merges persisted counters, keeping the larger value.
func (n *Namer) restoreCounters(counters map[string]int) {
	for k, v := range counters {
		if v > n.counters[k] {
			n.counters[k] = v
		}
	}
}
