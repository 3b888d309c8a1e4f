package cascade

import (
	"sort"
	"strings"
)

// PropertyCategory groups related CSS properties for display.
type PropertyCategory string

// Property categories, in display order.
const (
	CategoryLayout     PropertyCategory = "Layout"
	CategorySpacing    PropertyCategory = "Spacing"
	CategorySize       PropertyCategory = "Size"
	CategoryTypography PropertyCategory = "Typography"
	CategoryVisual     PropertyCategory = "Visual"
	CategoryEffects    PropertyCategory = "Effects"
	CategoryTokens     PropertyCategory = "Tokens"
	CategoryVendor     PropertyCategory = "Vendor"
	CategoryOther      PropertyCategory = "Other"
)

// Categories lists every category in display order.
var Categories = []PropertyCategory{
	CategoryLayout, CategorySpacing, CategorySize, CategoryTypography,
	CategoryVisual, CategoryEffects, CategoryTokens, CategoryVendor, CategoryOther,
}

// CategorizedProperty is a computed property tagged with its category.
type CategorizedProperty struct {
	Name     string // hyphenated CSS name
	Value    string
	Category PropertyCategory
	IsToken  bool // value references a custom property
}

var exactCategories = map[string]PropertyCategory{
	"display":         CategoryLayout,
	"position":        CategoryLayout,
	"inset":           CategoryLayout,
	"top":             CategoryLayout,
	"right":           CategoryLayout,
	"bottom":          CategoryLayout,
	"left":            CategoryLayout,
	"float":           CategoryLayout,
	"clear":           CategoryLayout,
	"z-index":         CategoryLayout,
	"gap":             CategoryLayout,
	"row-gap":         CategoryLayout,
	"column-gap":      CategoryLayout,
	"justify-content": CategoryLayout,
	"justify-items":   CategoryLayout,
	"align-items":     CategoryLayout,
	"align-self":      CategoryLayout,
	"align-content":   CategoryLayout,
	"order":           CategoryLayout,
	"overflow":        CategoryLayout,
	"overflow-x":      CategoryLayout,
	"overflow-y":      CategoryLayout,
	"width":           CategorySize,
	"height":          CategorySize,
	"aspect-ratio":    CategorySize,
	"object-fit":      CategorySize,
	"object-position": CategorySize,
	"color":           CategoryVisual,
	"opacity":         CategoryVisual,
	"fill":            CategoryVisual,
	"stroke":          CategoryVisual,
	"cursor":          CategoryVisual,
	"white-space":     CategoryTypography,
	"word-break":      CategoryTypography,
	"hyphens":         CategoryTypography,
	"line-height":     CategoryTypography,
	"letter-spacing":  CategoryTypography,
	"box-shadow":      CategoryEffects,
	"transform":       CategoryEffects,
	"filter":          CategoryEffects,
	"backdrop-filter": CategoryEffects,
	"mix-blend-mode":  CategoryEffects,
	"clip-path":       CategoryEffects,
}

var prefixCategories = []struct {
	prefix   string
	category PropertyCategory
}{
	{"flex", CategoryLayout},
	{"grid", CategoryLayout},
	{"padding", CategorySpacing},
	{"margin", CategorySpacing},
	{"min-", CategorySize},
	{"max-", CategorySize},
	{"font", CategoryTypography},
	{"text-", CategoryTypography},
	{"background", CategoryVisual},
	{"border", CategoryVisual},
	{"outline", CategoryVisual},
	{"transition", CategoryEffects},
	{"transform", CategoryEffects},
	{"animation", CategoryEffects},
	{"mask", CategoryEffects},
}

// CategorizeProperty returns the category of an internal or hyphenated property key.
func CategorizeProperty(key string) PropertyCategory {
	name := ToCSSProperty(key)
	if strings.HasPrefix(name, "--") {
		return CategoryTokens
	}
	if cat, ok := exactCategories[name]; ok {
		return cat
	}
	if strings.HasPrefix(name, "-") {
		return CategoryVendor
	}
	for _, p := range prefixCategories {
		if strings.HasPrefix(name, p.prefix) {
			return p.category
		}
	}
	return CategoryOther
}

// CategorizeProperties groups a computed style map by category. Properties
// within a group are sorted by name.
func CategorizeProperties(props map[string]string) map[PropertyCategory][]CategorizedProperty {
	out := make(map[PropertyCategory][]CategorizedProperty)
	for key, value := range props {
		cat := CategorizeProperty(key)
		out[cat] = append(out[cat], CategorizedProperty{
			Name:     ToCSSProperty(key),
			Value:    value,
			Category: cat,
			IsToken:  strings.Contains(value, "var(--"),
		})
	}
	for cat := range out {
		group := out[cat]
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })
	}
	return out
}
