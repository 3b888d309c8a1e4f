package cascade

import (
	"strings"
)

// Metadata holds compound visual effects that are edited as structured lists
// and flattened into shorthand properties when a stylesheet is compiled.
type Metadata struct {
	Shadows     []Shadow          `json:"shadows,omitempty" yaml:"shadows,omitempty"`
	Transforms  []Transform       `json:"transforms,omitempty" yaml:"transforms,omitempty"`
	Filters     []Filter          `json:"filters,omitempty" yaml:"filters,omitempty"`
	Backgrounds []BackgroundLayer `json:"backgrounds,omitempty" yaml:"backgrounds,omitempty"`
	Transitions []Transition      `json:"transitions,omitempty" yaml:"transitions,omitempty"`
}

// Shadow is one box-shadow layer.
type Shadow struct {
	Inset    bool   `json:"inset,omitempty" yaml:"inset,omitempty"`
	X        string `json:"x" yaml:"x"`
	Y        string `json:"y" yaml:"y"`
	Blur     string `json:"blur,omitempty" yaml:"blur,omitempty"`
	Spread   string `json:"spread,omitempty" yaml:"spread,omitempty"`
	Color    string `json:"color,omitempty" yaml:"color,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Transform is one transform function, e.g. {Function: "rotate", Args: ["45deg"]}.
type Transform struct {
	Function string   `json:"function" yaml:"function"`
	Args     []string `json:"args" yaml:"args"`
	Disabled bool     `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Filter is one filter function, e.g. {Function: "blur", Value: "4px"}.
type Filter struct {
	Function string `json:"function" yaml:"function"`
	Value    string `json:"value" yaml:"value"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Background layer types.
const (
	LayerLinear = "linear"
	LayerRadial = "radial"
	LayerImage  = "image"
)

// BackgroundLayer is one background-image layer: a gradient or an image URL.
type BackgroundLayer struct {
	Type     string      `json:"type" yaml:"type"`
	Angle    string      `json:"angle,omitempty" yaml:"angle,omitempty"` // linear only
	Shape    string      `json:"shape,omitempty" yaml:"shape,omitempty"` // radial only
	Stops    []ColorStop `json:"stops,omitempty" yaml:"stops,omitempty"`
	URL      string      `json:"url,omitempty" yaml:"url,omitempty"`
	Disabled bool        `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// ColorStop is a gradient stop.
type ColorStop struct {
	Color    string `json:"color" yaml:"color"`
	Position string `json:"position,omitempty" yaml:"position,omitempty"`
}

// Transition is one transition entry.
type Transition struct {
	Property string `json:"property" yaml:"property"`
	Duration string `json:"duration" yaml:"duration"`
	Easing   string `json:"easing,omitempty" yaml:"easing,omitempty"`
	Delay    string `json:"delay,omitempty" yaml:"delay,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// IsZero reports whether the metadata produces no properties.
func (m *Metadata) IsZero() bool {
	return m == nil || len(m.Effects()) == 0
}

// Effects flattens the metadata into shorthand declarations keyed by the
// internal property names (boxShadow, transform, filter, backgroundImage,
// transition). Disabled and incomplete entries are skipped; a list that
// produces nothing yields no key.
func (m *Metadata) Effects() map[string]string {
	out := make(map[string]string)
	if m == nil {
		return out
	}
	putList(out, "boxShadow", ", ", m.Shadows, Shadow.css)
	putList(out, "transform", " ", m.Transforms, Transform.css)
	putList(out, "filter", " ", m.Filters, Filter.css)
	putList(out, "backgroundImage", ", ", m.Backgrounds, BackgroundLayer.css)
	putList(out, "transition", ", ", m.Transitions, Transition.css)
	return out
}

func putList[T any](out map[string]string, prop, sep string, items []T, render func(T) string) {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if s := render(it); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		out[prop] = strings.Join(parts, sep)
	}
}

func (s Shadow) css() string {
	if s.Disabled || s.X == "" || s.Y == "" {
		return ""
	}
	fields := make([]string, 0, 6)
	if s.Inset {
		fields = append(fields, "inset")
	}
	fields = append(fields, s.X, s.Y)
	if s.Blur != "" {
		fields = append(fields, s.Blur)
		if s.Spread != "" {
			fields = append(fields, s.Spread)
		}
	} else if s.Spread != "" {
		fields = append(fields, "0", s.Spread)
	}
	if s.Color != "" {
		fields = append(fields, s.Color)
	}
	return strings.Join(fields, " ")
}

func (t Transform) css() string {
	if t.Disabled || t.Function == "" || len(t.Args) == 0 {
		return ""
	}
	return t.Function + "(" + strings.Join(t.Args, ", ") + ")"
}

func (f Filter) css() string {
	if f.Disabled || f.Function == "" || f.Value == "" {
		return ""
	}
	return f.Function + "(" + f.Value + ")"
}

func (l BackgroundLayer) css() string {
	if l.Disabled {
		return ""
	}
	switch l.Type {
	case LayerImage:
		if l.URL == "" {
			return ""
		}
		return `url("` + l.URL + `")`
	case LayerLinear, LayerRadial:
		if len(l.Stops) < 2 {
			return ""
		}
		args := make([]string, 0, len(l.Stops)+1)
		if l.Type == LayerLinear && l.Angle != "" {
			args = append(args, l.Angle)
		}
		if l.Type == LayerRadial && l.Shape != "" {
			args = append(args, l.Shape)
		}
		for _, st := range l.Stops {
			if st.Position != "" {
				args = append(args, st.Color+" "+st.Position)
			} else {
				args = append(args, st.Color)
			}
		}
		return l.Type + "-gradient(" + strings.Join(args, ", ") + ")"
	}
	return ""
}

func (t Transition) css() string {
	if t.Disabled || t.Property == "" || t.Duration == "" {
		return ""
	}
	fields := []string{t.Property, t.Duration}
	if t.Easing != "" {
		fields = append(fields, t.Easing)
	}
	if t.Delay != "" {
		fields = append(fields, t.Delay)
	}
	return strings.Join(fields, " ")
}
