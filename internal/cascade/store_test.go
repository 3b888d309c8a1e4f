package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(id, bp string, st PseudoState, prop string) StyleKey {
	return StyleKey{SourceID: id, Breakpoint: bp, State: st, Property: prop}
}

func TestStoreSetGetDelete(t *testing.T) {
	s := NewStore()
	k := key("a", "base", StateDefault, "color")

	require.True(t, s.Set(k, "red"))
	v, ok := s.Get(k)
	require.True(t, ok)
	assert.Equal(t, "red", v)
	assert.Equal(t, 1, s.Len())

	// Same value is a no-op and does not bump the version.
	before := s.Version()
	assert.False(t, s.Set(k, "red"))
	assert.Equal(t, before, s.Version())

	require.True(t, s.Set(k, "blue"))
	assert.Greater(t, s.Version(), before)
	assert.Equal(t, 1, s.Len())

	// Empty value deletes.
	require.True(t, s.Set(k, ""))
	_, ok = s.Get(k)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.HasDeclarations("a"))
	assert.False(t, s.Delete(k))
}

func TestStoreScopeIsSnapshot(t *testing.T) {
	s := NewStore()
	s.Set(key("a", "base", StateDefault, "color"), "red")
	snap := s.Scope("a", "base", StateDefault)

	s.Set(key("a", "base", StateDefault, "color"), "blue")
	s.Set(key("a", "base", StateDefault, "margin"), "0")

	assert.Equal(t, map[string]string{"color": "red"}, snap)
	assert.Equal(t, map[string]string{"color": "blue", "margin": "0"}, s.Scope("a", "base", StateDefault))
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	s.Set(key("a", "base", StateDefault, "color"), "red")
	s.Set(key("a", "base", StateDefault, "margin"), "0")
	s.Set(key("a", "base", StateHover, "color"), "blue")
	s.Set(key("b", "base", StateDefault, "color"), "green")

	assert.Equal(t, 2, s.Reset("a", "base", StateDefault))
	assert.Empty(t, s.Scope("a", "base", StateDefault))
	assert.Equal(t, map[string]string{"color": "blue"}, s.Scope("a", "base", StateHover))
	assert.Equal(t, 2, s.Len())

	// Second reset is a no-op.
	v := s.Version()
	assert.Equal(t, 0, s.Reset("a", "base", StateDefault))
	assert.Equal(t, v, s.Version())
}

func TestStoreDeleteSource(t *testing.T) {
	s := NewStore()
	s.Set(key("a", "base", StateDefault, "color"), "red")
	s.Set(key("a", "tablet", StateHover, "color"), "blue")
	s.Set(key("b", "base", StateDefault, "color"), "green")

	assert.Equal(t, 2, s.DeleteSource("a"))
	assert.False(t, s.HasDeclarations("a"))
	assert.True(t, s.HasDeclarations("b"))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.DeleteSource("missing"))
}

func TestStoreKeysOrdered(t *testing.T) {
	s := NewStore()
	s.Set(key("button-10", "base", StateDefault, "color"), "x")
	s.Set(key("button-2", "base", StateDefault, "width"), "x")
	s.Set(key("button-2", "base", StateDefault, "color"), "x")

	keys := s.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, "button-2:base:default:color", keys[0].String())
	assert.Equal(t, "button-2:base:default:width", keys[1].String())
	assert.Equal(t, "button-10:base:default:color", keys[2].String())
}

func TestParseStyleKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    StyleKey
		wantErr bool
	}{
		{name: "simple", in: "btn:base:default:color", want: key("btn", "base", StateDefault, "color")},
		{name: "hover", in: "btn:mobile:hover:fontSize", want: key("btn", "mobile", StateHover, "fontSize")},
		{name: "custom property", in: "btn:base:default:--brand", want: key("btn", "base", StateDefault, "--brand")},
		{name: "too few parts", in: "btn:base:color", wantErr: true},
		{name: "unknown state", in: "btn:base:checked:color", wantErr: true},
		{name: "empty id", in: ":base:default:color", wantErr: true},
		{name: "empty state", in: "btn:base::color", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStyleKey(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidKey)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}
