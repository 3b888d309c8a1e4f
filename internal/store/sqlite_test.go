package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cascade/internal/cascade"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "cascade.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testSnapshot(t *testing.T, colors ...string) *cascade.Snapshot {
	t.Helper()
	d, err := cascade.New(cascade.Options{})
	require.NoError(t, err)
	src, err := d.CreateClass("ButtonPrimitive")
	require.NoError(t, err)
	for i, c := range colors {
		bp := d.Breakpoints()[i%len(d.Breakpoints())].ID
		require.NoError(t, d.SetStyle(src.ID, bp, cascade.StateDefault, "color", c))
	}
	return d.Snapshot()
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), ":memory:", nil)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", s.Path())
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.List(context.Background())
	require.ErrorIs(t, err, ErrNotOpen)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	rev, err := s.Save(ctx, "Marketing Site", testSnapshot(t, "red"))
	require.NoError(t, err)
	assert.Equal(t, "marketing-site", rev.Document)
	assert.Equal(t, 1, rev.Number)
	assert.Equal(t, 1, rev.Sources)
	assert.Equal(t, 1, rev.Declarations)

	rev, err = s.Save(ctx, "marketing site", testSnapshot(t, "red", "blue"))
	require.NoError(t, err)
	assert.Equal(t, 2, rev.Number)

	snap, latest, err := s.Load(ctx, "Marketing Site")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Number)
	assert.Len(t, snap.Styles, 2)

	doc, err := cascade.FromSnapshot(snap, cascade.Options{})
	require.NoError(t, err)
	v, ok := doc.GetStyle("button-1", "tablet", cascade.StateDefault, "color")
	require.True(t, ok)
	assert.Equal(t, "blue", v)

	first, _, err := s.LoadRevision(ctx, "marketing-site", 1)
	require.NoError(t, err)
	assert.Len(t, first.Styles, 1)
}

func TestLoadMissing(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	_, _, err := s.Load(ctx, "nothing")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Save(ctx, "doc", testSnapshot(t))
	require.NoError(t, err)
	_, _, err = s.LoadRevision(ctx, "doc", 7)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.Save(ctx, "!!!", testSnapshot(t))
	require.ErrorIs(t, err, ErrInvalidTitle)
}

func TestListDocuments(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	for _, title := range []string{"page-10", "page-2", "page-1"} {
		_, err := s.Save(ctx, title, testSnapshot(t, "red"))
		require.NoError(t, err)
	}
	_, err := s.Save(ctx, "page-2", testSnapshot(t, "red", "blue", "green"))
	require.NoError(t, err)

	docs, err := s.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, d := range docs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"page-1", "page-2", "page-10"}, names)
	assert.Equal(t, 2, docs[1].Revision)
	assert.Equal(t, 3, docs[1].Declarations)
	assert.True(t, s.now().Equal(docs[0].UpdatedAt))
}

func TestRevisionsPruneAndDelete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	for i := 0; i < 4; i++ {
		_, err := s.Save(ctx, "doc", testSnapshot(t, "red"))
		require.NoError(t, err)
	}

	revs, err := s.Revisions(ctx, "doc")
	require.NoError(t, err)
	require.Len(t, revs, 4)
	assert.Equal(t, 4, revs[0].Number)

	n, err := s.Prune(ctx, "doc", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	revs, err = s.Revisions(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3}, []int{revs[0].Number, revs[1].Number})

	_, err = s.Prune(ctx, "doc", 0)
	require.Error(t, err)

	require.NoError(t, s.Delete(ctx, "doc"))
	_, err = s.Revisions(ctx, "doc")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "doc"), ErrNotFound)
}
