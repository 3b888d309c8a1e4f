package cascade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencies(t *testing.T) {
	d := NewDependencies()

	d.SetDependency("a", "b")
	d.SetDependency("a", "b")
	d.SetDependency("a", "c")
	d.SetDependency("x", "x") // self edges are ignored

	assert.False(t, d.IsEditable("a"))
	assert.True(t, d.IsEditable("b"))
	assert.True(t, d.IsEditable("x"))
	assert.Equal(t, []string{"b", "c"}, d.DependentsOf("a"))

	d.RemoveDependency("a", "b")
	d.RemoveDependency("a", "b")
	assert.Equal(t, []string{"c"}, d.DependentsOf("a"))

	d.RemoveDependency("a", "c")
	assert.True(t, d.IsEditable("a"))
	assert.Empty(t, d.Graph(), "empty dependent sets must be dropped")
}

func TestDependentsNaturalOrder(t *testing.T) {
	d := NewDependencies()
	for _, dep := range []string{"item-10", "item-2", "item-1"} {
		d.SetDependency("base", dep)
	}
	assert.Equal(t, []string{"item-1", "item-2", "item-10"}, d.DependentsOf("base"))
}

func TestDependenciesForget(t *testing.T) {
	d := NewDependencies()
	d.SetDependency("a", "b")
	d.SetDependency("b", "c")
	d.SetDependency("z", "b")

	d.Forget("b")
	assert.Empty(t, d.Edges())
}

func TestChainAdjacency(t *testing.T) {
	c := Chain{"a", "b", "c"}
	assert.Equal(t, []Edge{{"a", "b"}, {"b", "c"}}, c.Adjacency())
	assert.Equal(t, "c", c.Tail())
	assert.Equal(t, 1, c.Index("b"))
	assert.Nil(t, Chain{"solo"}.Adjacency())
	assert.Equal(t, "", Chain{}.Tail())
}

func TestDeriveAdjacency(t *testing.T) {
	tests := []struct {
		name        string
		before      Chain
		after       Chain
		wantAdded   []Edge
		wantRemoved []Edge
	}{
		{
			name:      "attach",
			before:    Chain{"a", "b"},
			after:     Chain{"a", "b", "c"},
			wantAdded: []Edge{{"b", "c"}},
		},
		{
			name:        "detach tail",
			before:      Chain{"a", "b", "c"},
			after:       Chain{"a", "b"},
			wantRemoved: []Edge{{"b", "c"}},
		},
		{
			name:        "detach middle",
			before:      Chain{"a", "b", "c"},
			after:       Chain{"a", "c"},
			wantAdded:   []Edge{{"a", "c"}},
			wantRemoved: []Edge{{"a", "b"}, {"b", "c"}},
		},
		{
			name:   "unchanged",
			before: Chain{"a", "b"},
			after:  Chain{"a", "b"},
		},
		{
			name:      "from empty",
			after:     Chain{"a", "b", "c"},
			wantAdded: []Edge{{"a", "b"}, {"b", "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			added, removed := DeriveAdjacency(tt.before, tt.after)
			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}
