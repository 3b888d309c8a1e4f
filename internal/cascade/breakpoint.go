package cascade

import (
	"fmt"
	"strconv"
)

// Breakpoint is a responsive layer. The base breakpoint sets neither width;
// every other breakpoint sets exactly one of MaxWidth (desktop-first,
// shrinking) or MinWidth (mobile-first, growing).
type Breakpoint struct {
	ID       string `json:"id" yaml:"id" koanf:"id"`
	Label    string `json:"label" yaml:"label" koanf:"label"`
	MaxWidth int    `json:"maxWidth,omitempty" yaml:"max-width,omitempty" koanf:"max-width"`
	MinWidth int    `json:"minWidth,omitempty" yaml:"min-width,omitempty" koanf:"min-width"`
}

// IsBase reports whether declarations at this breakpoint are unscoped.
func (b Breakpoint) IsBase() bool {
	return b.MaxWidth == 0 && b.MinWidth == 0
}

// MediaQuery returns the @media condition for the breakpoint, or "" for base.
func (b Breakpoint) MediaQuery() string {
	switch {
	case b.MaxWidth > 0:
		return "(max-width: " + strconv.Itoa(b.MaxWidth) + "px)"
	case b.MinWidth > 0:
		return "(min-width: " + strconv.Itoa(b.MinWidth) + "px)"
	}
	return ""
}

// Breakpoints is ordered from broadest to narrowest; later entries win ties.
type Breakpoints []Breakpoint

// DefaultBreakpoints is the desktop-first set used when nothing is configured.
func DefaultBreakpoints() Breakpoints {
	return Breakpoints{
		{ID: "base", Label: "Desktop"},
		{ID: "tablet", Label: "Tablet", MaxWidth: 991},
		{ID: "mobile-landscape", Label: "Mobile landscape", MaxWidth: 767},
		{ID: "mobile", Label: "Mobile portrait", MaxWidth: 478},
	}
}

// Validate checks ids are unique, exactly one base exists and it comes first,
// and no breakpoint sets both widths.
func (bs Breakpoints) Validate() error {
	if len(bs) == 0 {
		return fmt.Errorf("no breakpoints configured")
	}
	if !bs[0].IsBase() {
		return fmt.Errorf("first breakpoint %q must be the base breakpoint", bs[0].ID)
	}
	seen := make(map[string]bool, len(bs))
	for i, b := range bs {
		if b.ID == "" {
			return fmt.Errorf("breakpoint %d has no id", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate breakpoint %q", b.ID)
		}
		seen[b.ID] = true
		if b.MaxWidth > 0 && b.MinWidth > 0 {
			return fmt.Errorf("breakpoint %q sets both max-width and min-width", b.ID)
		}
		if i > 0 && b.IsBase() {
			return fmt.Errorf("breakpoint %q has no width; only the first breakpoint may be the base", b.ID)
		}
	}
	return nil
}

// Base returns the id of the base breakpoint.
func (bs Breakpoints) Base() string {
	if len(bs) == 0 {
		return ""
	}
	return bs[0].ID
}

// Find returns the breakpoint with the given id.
func (bs Breakpoints) Find(id string) (Breakpoint, bool) {
	for _, b := range bs {
		if b.ID == id {
			return b, true
		}
	}
	return Breakpoint{}, false
}

// Cascade returns the ids from the broadest breakpoint up to and including target.
func (bs Breakpoints) Cascade(target string) ([]string, error) {
	ids := make([]string, 0, len(bs))
	for _, b := range bs {
		ids = append(ids, b.ID)
		if b.ID == target {
			return ids, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBreakpoint, target)
}

// MatchMedia finds the breakpoint whose media condition is the given width
// constraint. feature is "max-width" or "min-width".
func (bs Breakpoints) MatchMedia(feature string, px int) (Breakpoint, bool) {
	for _, b := range bs {
		switch {
		case feature == "max-width" && b.MaxWidth == px:
			return b, true
		case feature == "min-width" && b.MinWidth == px:
			return b, true
		}
	}
	return Breakpoint{}, false
}
