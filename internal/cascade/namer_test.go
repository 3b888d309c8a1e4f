package cascade

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// generate runs the namer n times, registering every result.
func generate(t *testing.T, n *Namer, componentType string, existing *[]string, count int) []string {
	t.Helper()
	var out []string
	for i := 0; i < count; i++ {
		g, err := n.Next(componentType, *existing)
		require.NoError(t, err)
		*existing = append(*existing, g.Name)
		out = append(out, g.Name)
	}
	return out
}

func TestNamerSequential(t *testing.T) {
	n := NewNamer(DefaultNamerConfig())
	var names []string
	assert.Equal(t, []string{"button-1", "button-2", "button-3"}, generate(t, n, "ButtonPrimitive", &names, 3))
}

func TestNamerNeverReusesDeletedIndex(t *testing.T) {
	n := NewNamer(DefaultNamerConfig())
	var names []string
	generate(t, n, "ButtonPrimitive", &names, 3)

	names = slices.DeleteFunc(names, func(s string) bool { return s == "button-2" })
	assert.Equal(t, []string{"button-4"}, generate(t, n, "ButtonPrimitive", &names, 1))

	// Removing the highest one does not roll the counter back either.
	names = slices.DeleteFunc(names, func(s string) bool { return s == "button-4" })
	assert.Equal(t, []string{"button-5"}, generate(t, n, "ButtonPrimitive", &names, 1))
}

func TestNamerSeedsFromScan(t *testing.T) {
	tests := []struct {
		name     string
		cfg      NamerConfig
		existing []string
		want     string
		wantIdx  int
		hasIndex bool
	}{
		{
			name:     "nothing registered",
			cfg:      DefaultNamerConfig(),
			want:     "image-1",
			wantIdx:  1,
			hasIndex: true,
		},
		{
			name:     "gap is not filled",
			cfg:      DefaultNamerConfig(),
			existing: []string{"image-1", "image-5"},
			want:     "image-6",
			wantIdx:  6,
			hasIndex: true,
		},
		{
			name:     "legacy names count",
			cfg:      DefaultNamerConfig(),
			existing: []string{"image9"},
			want:     "image-10",
			wantIdx:  10,
			hasIndex: true,
		},
		{
			name:     "start index",
			cfg:      NamerConfig{Separator: "-", StartIndex: 0},
			want:     "image-0",
			wantIdx:  0,
			hasIndex: true,
		},
		{
			name:     "padding",
			cfg:      NamerConfig{Separator: "-", StartIndex: 1, Padding: 3},
			existing: []string{"image-009"},
			want:     "image-010",
			wantIdx:  10,
			hasIndex: true,
		},
		{
			name: "none first",
			cfg:  NamerConfig{Separator: "-", StartIndex: 1, NoneFirst: true},
			want: "image",
		},
		{
			name:     "none first taken",
			cfg:      NamerConfig{Separator: "-", StartIndex: 1, NoneFirst: true},
			existing: []string{"image"},
			want:     "image-1",
			wantIdx:  1,
			hasIndex: true,
		},
		{
			name:     "none first, bare free, numbered exists",
			cfg:      NamerConfig{Separator: "-", StartIndex: 1, NoneFirst: true},
			existing: []string{"image-1"},
			want:     "image",
		},
		{
			name:     "other bases ignored",
			cfg:      DefaultNamerConfig(),
			existing: []string{"button-7", "imagery-3"},
			want:     "image-1",
			wantIdx:  1,
			hasIndex: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNamer(tt.cfg)
			g, err := n.Next("ImagePrimitive", tt.existing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Name)
			assert.Equal(t, "image", g.Base)
			assert.Equal(t, tt.hasIndex, g.HasIndex)
			if tt.hasIndex {
				assert.Equal(t, tt.wantIdx, g.Index)
			}
		})
	}
}

func TestNamerNoneFirstThenNumbered(t *testing.T) {
	n := NewNamer(NamerConfig{Separator: "-", StartIndex: 1, NoneFirst: true})
	var names []string
	assert.Equal(t, []string{"box", "box-1", "box-2"}, generate(t, n, "BoxPrimitive", &names, 3))
}

func TestNamerNoneFirstKeepsCounterAfterBare(t *testing.T) {
	n := NewNamer(NamerConfig{Separator: "-", StartIndex: 1, NoneFirst: true})
	names := []string{"box-1", "box-2"}
	assert.Equal(t, []string{"box", "box-3"}, generate(t, n, "BoxPrimitive", &names, 2))
}

func TestNamerSanitizesUnknownTypes(t *testing.T) {
	n := NewNamer(DefaultNamerConfig())
	g, err := n.Next("My Widget", []string{"my-widget-1", "my-widget-2"})
	require.NoError(t, err)
	assert.Equal(t, "my-widget-3", g.Name)
}

func TestNamerConfigChangeAffectsOnlyFutureNames(t *testing.T) {
	n := NewNamer(DefaultNamerConfig())
	var names []string
	generate(t, n, "ButtonPrimitive", &names, 2)

	n.SetConfig(NamerConfig{Separator: "_", StartIndex: 1, Padding: 2})
	got := generate(t, n, "ButtonPrimitive", &names, 1)

	assert.Equal(t, []string{"button-1", "button-2", "button_03"}, names)
	assert.Equal(t, []string{"button_03"}, got)
}

func TestNamerRejectsEmptyType(t *testing.T) {
	n := NewNamer(DefaultNamerConfig())
	_, err := n.Next("", nil)
	require.ErrorIs(t, err, ErrInvalidName)
}
