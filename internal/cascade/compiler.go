package cascade

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Rule is one compiled selector block.
type Rule struct {
	Media        string // "" for unscoped rules
	Selector     string
	Declarations []Declaration
}

// Declaration is one hyphenated property and its value.
type Declaration struct {
	Property string
	Value    string
}

// CompileRules turns every source into cascade-ordered rules: for each source
// in creation order, the base breakpoint first, then one media block per
// narrower breakpoint, each holding only properties set at that breakpoint.
// Compound effects are merged into the base default rule and take precedence
// over plain declarations of the same property. Empty rules are never produced.
func CompileRules(reg *Registry, store *Store, breakpoints Breakpoints) []Rule {
	var rules []Rule
	for _, src := range reg.Sources() {
		for _, bp := range breakpoints {
			for _, st := range States {
				props := explicitDeclarations(store.Scope(src.ID, bp.ID, st))
				if bp.IsBase() && st == StateDefault {
					for p, v := range src.Meta.Effects() {
						props[p] = v
					}
				}
				if len(props) == 0 {
					continue
				}
				rules = append(rules, Rule{
					Media:        bp.MediaQuery(),
					Selector:     classSelector(src.Name, st),
					Declarations: toDeclarations(props),
				})
			}
		}
	}
	return rules
}

func explicitDeclarations(scope map[string]string) map[string]string {
	out := make(map[string]string, len(scope)+5)
	for p, v := range scope {
		if isExplicit(v) {
			out[p] = strings.TrimSpace(v)
		}
	}
	return out
}

func toDeclarations(props map[string]string) []Declaration {
	decls := make([]Declaration, 0, len(props))
	for p, v := range props {
		decls = append(decls, Declaration{Property: ToCSSProperty(p), Value: v})
	}
	sort.Slice(decls, func(i, j int) bool { return decls[i].Property < decls[j].Property })
	return decls
}

func classSelector(name string, state PseudoState) string {
	sel := "." + escapeIdent(name)
	if state != StateDefault {
		sel += ":" + string(state)
	}
	return sel
}

// escapeIdent escapes a leading digit, which is not allowed to start a CSS identifier.
func escapeIdent(name string) string {
	if name != "" && name[0] >= '0' && name[0] <= '9' {
		return fmt.Sprintf("\\%x %s", name[0], name[1:])
	}
	return name
}

// WriteRules renders rules as stylesheet text. Consecutive rules sharing a
// media condition are grouped into one @media block.
func WriteRules(w io.Writer, rules []Rule) error {
	var b strings.Builder
	for i := 0; i < len(rules); {
		if i > 0 {
			b.WriteByte('\n')
		}
		media := rules[i].Media
		if media == "" {
			writeRule(&b, rules[i], "")
			i++
			continue
		}
		b.WriteString("@media " + media + " {\n")
		for ; i < len(rules) && rules[i].Media == media; i++ {
			writeRule(&b, rules[i], "  ")
		}
		b.WriteString("}\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRule(b *strings.Builder, r Rule, indent string) {
	b.WriteString(indent + r.Selector + " {\n")
	for _, d := range r.Declarations {
		b.WriteString(indent + "  " + d.Property + ": " + d.Value + ";\n")
	}
	b.WriteString(indent + "}\n")
}

// WriteRaw re-emits raw override rules after the compiled ones, restoring the
// media block each was found in.
func WriteRaw(w io.Writer, raw []RawRule) error {
	var b strings.Builder
	for _, r := range raw {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		b.WriteByte('\n')
		if r.Media != "" {
			b.WriteString("@media " + r.Media + " {\n  " + text + "\n}\n")
			continue
		}
		b.WriteString(text + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
