package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizeProperty(t *testing.T) {
	tests := []struct {
		key  string
		want PropertyCategory
	}{
		{"display", CategoryLayout},
		{"flexDirection", CategoryLayout},
		{"gridTemplateColumns", CategoryLayout},
		{"paddingTop", CategorySpacing},
		{"margin", CategorySpacing},
		{"minWidth", CategorySize},
		{"height", CategorySize},
		{"fontSize", CategoryTypography},
		{"text-align", CategoryTypography},
		{"lineHeight", CategoryTypography},
		{"backgroundColor", CategoryVisual},
		{"borderRadius", CategoryVisual},
		{"color", CategoryVisual},
		{"boxShadow", CategoryEffects},
		{"transitionDuration", CategoryEffects},
		{"--brand-color", CategoryTokens},
		{"WebkitLineClamp", CategoryVendor},
		{"content", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, CategorizeProperty(tt.key))
		})
	}
}

func TestCategorizeProperties(t *testing.T) {
	got := CategorizeProperties(map[string]string{
		"paddingTop":    "4px",
		"margin":        "0",
		"color":         "var(--brand)",
		"--brand":       "teal",
		"flexDirection": "row",
	})

	assert.Equal(t, []CategorizedProperty{
		{Name: "margin", Value: "0", Category: CategorySpacing},
		{Name: "padding-top", Value: "4px", Category: CategorySpacing},
	}, got[CategorySpacing])
	assert.Equal(t, []CategorizedProperty{
		{Name: "color", Value: "var(--brand)", Category: CategoryVisual, IsToken: true},
	}, got[CategoryVisual])
	assert.Len(t, got[CategoryTokens], 1)
	assert.Len(t, got[CategoryLayout], 1)
	assert.NotContains(t, got, CategoryOther)
}
