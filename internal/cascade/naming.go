package cascade

import (
	"strings"
	"unicode"
)

// SanitizeName lowercases a class name and replaces every character outside
// [a-z0-9_-] with "-". Only surrounding whitespace is dropped.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// ToCSSProperty converts the internal camelCase key to hyphenated wire form:
// fontSize -> font-size, WebkitTextStroke -> -webkit-text-stroke.
// Custom properties (--x) and already-hyphenated keys pass through.
func ToCSSProperty(key string) string {
	if strings.HasPrefix(key, "--") || strings.ContainsRune(key, '-') {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		// Vendor prefixes are written with a leading capital (WebkitX).
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FromCSSProperty converts a hyphenated CSS property to the internal key:
// font-size -> fontSize, -webkit-text-stroke -> WebkitTextStroke.
func FromCSSProperty(prop string) string {
	prop = strings.TrimSpace(prop)
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	prop = strings.ToLower(prop)
	vendor := strings.HasPrefix(prop, "-")
	parts := strings.FieldsFunc(prop, func(r rune) bool { return r == '-' })
	for i, part := range parts {
		if part == "" || (i == 0 && !vendor) {
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, "")
}

// indexedName is the parsed form of an auto-generated class name.
type indexedName struct {
	base  string
	index int
}

// parseIndexedName tokenizes name against a base. Two rules are tried in
// order: base + separator + digits, then the legacy base + digits form.
func parseIndexedName(name, base, separator string) (indexedName, bool) {
	name = strings.ToLower(name)
	rest, ok := strings.CutPrefix(name, base)
	if !ok || rest == "" {
		return indexedName{}, false
	}
	if separator != "" {
		if digits, ok := strings.CutPrefix(rest, separator); ok {
			if n, ok := parseDigits(digits); ok {
				return indexedName{base: base, index: n}, true
			}
		}
	}
	if n, ok := parseDigits(rest); ok {
		return indexedName{base: base, index: n}, true
	}
	return indexedName{}, false
}

// parseDigits accepts a non-empty run of ASCII digits only (no sign, no spaces).
func parseDigits(s string) (int, bool) {
	if s == "" || len(s) > 9 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// componentBases maps editor component types to class-name bases.
var componentBases = map[string]string{
	"BoxPrimitive":       "box",
	"ButtonPrimitive":    "button",
	"ContainerPrimitive": "container",
	"FormPrimitive":      "form",
	"GridPrimitive":      "grid",
	"HeadingPrimitive":   "heading",
	"IconPrimitive":      "icon",
	"ImagePrimitive":     "image",
	"InputPrimitive":     "input",
	"LinkPrimitive":      "link",
	"ListItemPrimitive":  "list-item",
	"ListPrimitive":      "list",
	"ParagraphPrimitive": "paragraph",
	"SectionPrimitive":   "section",
	"TextPrimitive":      "text",
	"VideoPrimitive":     "video",
}

// NormalizeComponentType maps a component type to its class-name base.
// aliases take precedence over the built-in table; unknown types are sanitized.
func NormalizeComponentType(componentType string, aliases map[string]string) string {
	if base, ok := aliases[componentType]; ok && base != "" {
		return SanitizeName(base)
	}
	if base, ok := componentBases[componentType]; ok {
		return base
	}
	return SanitizeName(componentType)
}
